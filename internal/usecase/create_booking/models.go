package create_booking

import (
	"time"

	"github.com/dks-soft/DKS-HandoverService/internal/domain"
)

// Request входные данные для создания записи на выдачу ключей
type Request struct {
	ProjectName string
	ContractNum string
	UserTgID    int64
	Date        time.Time
	TimeSlot    domain.TimeSlot
	ClientPhone string
}

// Response результат создания записи
type Response struct {
	BookingID   int64
	ContractID  int64
	ProjectName string
	AptNum      string
	ContractNum string
	ClientFIO   string
	Date        time.Time
	TimeSlot    domain.TimeSlot
	AddressRu   *string
	AddressUz   *string
}
