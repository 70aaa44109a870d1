package resolve_contract

import (
	"github.com/dks-soft/DKS-HandoverService/internal/domain"
	"github.com/dks-soft/DKS-HandoverService/internal/service/bookings/models"
)

// ResolveContractRequest HTTP request model
type ResolveContractRequest struct {
	ProjectName string `json:"projectName"`
	ContractNum string `json:"contractNum"`
}

// UpcomingBookingResponse предстоящая запись по договору
type UpcomingBookingResponse struct {
	ID       int64  `json:"id"`
	Date     string `json:"date"`
	TimeSlot string `json:"timeSlot"`
}

// ContractResponse HTTP response model
type ContractResponse struct {
	ID           int64                    `json:"id"`
	ProjectName  string                   `json:"projectName"`
	AptNum       string                   `json:"aptNum"`
	Entrance     string                   `json:"entrance,omitempty"`
	Floor        int                      `json:"floor"`
	ContractNum  string                   `json:"contractNum"`
	ClientFIO    string                   `json:"clientFio"`
	DeliveryDate string                   `json:"deliveryDate"`
	IsOwner      bool                     `json:"isOwner"`
	Upcoming     *UpcomingBookingResponse `json:"upcoming,omitempty"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.ContractResponse) *ContractResponse {
	out := &ContractResponse{
		ID:           resp.ContractID,
		ProjectName:  resp.ProjectName,
		AptNum:       resp.AptNum,
		Entrance:     resp.Entrance,
		Floor:        resp.Floor,
		ContractNum:  resp.ContractNum,
		ClientFIO:    resp.ClientFIO,
		DeliveryDate: resp.DeliveryDate.Format(domain.DateFormat),
		IsOwner:      resp.IsOwner,
	}

	if resp.Upcoming != nil {
		out.Upcoming = &UpcomingBookingResponse{
			ID:       resp.Upcoming.BookingID,
			Date:     resp.Upcoming.Date.Format(domain.DateFormat),
			TimeSlot: string(resp.Upcoming.TimeSlot),
		}
	}

	return out
}
