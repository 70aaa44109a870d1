package models

import "github.com/dks-soft/DKS-HandoverService/internal/domain"

// UpdateSlotsRequest запрос на изменение настроек проекта
// Незаполненные адрес и координаты сохраняют прежние значения
type UpdateSlotsRequest struct {
	ProjectName string
	SlotsLimit  int
	AddressRu   *string
	AddressUz   *string
	Latitude    *float64
	Longitude   *float64
}

// ProjectResponse настройки проекта
type ProjectResponse struct {
	ProjectName   string
	SlotsLimit    int
	DailyCapacity int
	AddressRu     *string
	AddressUz     *string
	Latitude      *float64
	Longitude     *float64
}

// FromDomainProject конвертирует проект в ответ сервиса
func FromDomainProject(p *domain.Project) *ProjectResponse {
	return &ProjectResponse{
		ProjectName:   p.Name,
		SlotsLimit:    p.EffectiveSlotsLimit(),
		DailyCapacity: p.DailyCapacity(),
		AddressRu:     p.AddressRu,
		AddressUz:     p.AddressUz,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
	}
}
