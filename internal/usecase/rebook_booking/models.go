package rebook_booking

import (
	"time"

	"github.com/dks-soft/DKS-HandoverService/internal/domain"
)

// Request входные данные для переноса записи
type Request struct {
	BookingID int64
	UserTgID  int64
	NewDate   time.Time
	NewSlot   domain.TimeSlot
}

// Response результат переноса записи
type Response struct {
	BookingID   int64
	OldDate     time.Time
	OldSlot     domain.TimeSlot
	Date        time.Time
	TimeSlot    domain.TimeSlot
	ProjectName string
	AptNum      string
	ContractNum string
}
