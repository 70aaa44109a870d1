package create_booking

import (
	"time"

	"github.com/dks-soft/DKS-HandoverService/internal/domain"
	createBooking "github.com/dks-soft/DKS-HandoverService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ProjectName string `json:"projectName"`
	ContractNum string `json:"contractNum"`
	Date        string `json:"date"` // "2026-03-02"
	TimeSlot    string `json:"timeSlot"` // "09:00"
	ClientPhone string `json:"clientPhone,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64   `json:"id"`
	ContractID  int64   `json:"contractId"`
	ProjectName string  `json:"projectName"`
	AptNum      string  `json:"aptNum"`
	ContractNum string  `json:"contractNum"`
	ClientFIO   string  `json:"clientFio"`
	Date        string  `json:"date"`
	TimeSlot    string  `json:"timeSlot"`
	AddressRu   *string `json:"addressRu,omitempty"`
	AddressUz   *string `json:"addressUz,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userTgID int64) (createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return createBooking.Request{}, err
	}

	return createBooking.Request{
		ProjectName: r.ProjectName,
		ContractNum: r.ContractNum,
		UserTgID:    userTgID,
		Date:        date,
		TimeSlot:    domain.TimeSlot(r.TimeSlot),
		ClientPhone: r.ClientPhone,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.BookingID,
		ContractID:  resp.ContractID,
		ProjectName: resp.ProjectName,
		AptNum:      resp.AptNum,
		ContractNum: resp.ContractNum,
		ClientFIO:   resp.ClientFIO,
		Date:        resp.Date.Format(domain.DateFormat),
		TimeSlot:    string(resp.TimeSlot),
		AddressRu:   resp.AddressRu,
		AddressUz:   resp.AddressUz,
	}
}
