package rebook_booking

import (
	"time"

	"github.com/dks-soft/DKS-HandoverService/internal/domain"
	rebookBooking "github.com/dks-soft/DKS-HandoverService/internal/usecase/rebook_booking"
)

// RebookBookingRequest HTTP request model
type RebookBookingRequest struct {
	Date     string `json:"date"`     // "2026-03-02"
	TimeSlot string `json:"timeSlot"` // "09:00"
}

// RebookBookingResponse HTTP response model
type RebookBookingResponse struct {
	ID          int64  `json:"id"`
	OldDate     string `json:"oldDate"`
	OldTimeSlot string `json:"oldTimeSlot"`
	Date        string `json:"date"`
	TimeSlot    string `json:"timeSlot"`
	ProjectName string `json:"projectName"`
	AptNum      string `json:"aptNum"`
	ContractNum string `json:"contractNum"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RebookBookingRequest) ToUseCaseRequest(bookingID, userTgID int64) (rebookBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return rebookBooking.Request{}, err
	}

	return rebookBooking.Request{
		BookingID: bookingID,
		UserTgID:  userTgID,
		NewDate:   date,
		NewSlot:   domain.TimeSlot(r.TimeSlot),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rebookBooking.Response) *RebookBookingResponse {
	return &RebookBookingResponse{
		ID:          resp.BookingID,
		OldDate:     resp.OldDate.Format(domain.DateFormat),
		OldTimeSlot: string(resp.OldSlot),
		Date:        resp.Date.Format(domain.DateFormat),
		TimeSlot:    string(resp.TimeSlot),
		ProjectName: resp.ProjectName,
		AptNum:      resp.AptNum,
		ContractNum: resp.ContractNum,
	}
}
