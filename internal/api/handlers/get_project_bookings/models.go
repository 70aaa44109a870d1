package get_project_bookings

import (
	"github.com/dks-soft/DKS-HandoverService/internal/domain"
	"github.com/dks-soft/DKS-HandoverService/internal/service/bookings/models"
)

// BookingItemResponse одна запись в списке проекта
type BookingItemResponse struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	TimeSlot    string `json:"timeSlot"`
	ContractNum string `json:"contractNum"`
	ClientFIO   string `json:"clientFio"`
	ClientPhone string `json:"clientPhone,omitempty"`
	AptNum      string `json:"aptNum"`
	Entrance    string `json:"entrance,omitempty"`
	Floor       int    `json:"floor"`
	RepeatVisit bool   `json:"repeatVisit"`
}

// ProjectBookingsResponse HTTP response model
type ProjectBookingsResponse struct {
	ProjectName string                `json:"projectName"`
	Items       []BookingItemResponse `json:"items"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.ProjectBookingsResponse) *ProjectBookingsResponse {
	items := make([]BookingItemResponse, 0, len(resp.Items))
	for _, item := range resp.Items {
		items = append(items, BookingItemResponse{
			ID:          item.BookingID,
			Date:        item.Date.Format(domain.DateFormat),
			TimeSlot:    string(item.TimeSlot),
			ContractNum: item.ContractNum,
			ClientFIO:   item.ClientFIO,
			ClientPhone: item.ClientPhone,
			AptNum:      item.AptNum,
			Entrance:    item.Entrance,
			Floor:       item.Floor,
			RepeatVisit: item.RepeatVisit,
		})
	}

	return &ProjectBookingsResponse{
		ProjectName: resp.ProjectName,
		Items:       items,
	}
}
