package domain

import (
	"strings"
	"time"
)

// Contract договор долевого участия: одна квартира, один покупатель
type Contract struct {
	ID          int64
	ProjectName string
	AptNum      string
	Entrance    string
	Floor       int
	ContractNum string // нормализован: верхний регистр, без пробелов
	ClientFIO   string
	DeliveryDate time.Time // дата сдачи объекта — нижняя граница дат записи

	// OwnerTgID telegram ID первого успешно записавшегося по договору.
	// Выставляется один раз, после этого блокирует доступ чужим пользователям.
	OwnerTgID *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeContractNum приводит номер договора к каноническому виду:
// верхний регистр, без пробельных символов
func NormalizeContractNum(num string) string {
	return strings.ToUpper(strings.Join(strings.Fields(num), ""))
}

// HasOwner возвращает true, если за договором уже закреплен владелец
func (c *Contract) HasOwner() bool {
	return c.OwnerTgID != nil
}

// IsOwnedBy возвращает true, если договор закреплен за указанным пользователем
func (c *Contract) IsOwnedBy(tgID int64) bool {
	return c.OwnerTgID != nil && *c.OwnerTgID == tgID
}
