package domain

import "time"

// Project жилой комплекс со своими договорами, лимитом слотов и метаданными адреса
type Project struct {
	Name       string
	SlotsLimit int
	AddressRu  *string
	AddressUz  *string
	Latitude   *float64
	Longitude  *float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DailyCapacity максимальное количество записей в один день:
// количество слотов * лимит записей на слот
func (p *Project) DailyCapacity() int {
	return SlotsPerDay * p.EffectiveSlotsLimit()
}

// EffectiveSlotsLimit возвращает лимит записей на слот с учетом значения по умолчанию
func (p *Project) EffectiveSlotsLimit() int {
	if p.SlotsLimit <= 0 {
		return DefaultSlotsLimit
	}
	return p.SlotsLimit
}
