package get_available_slots

import (
	"github.com/dks-soft/DKS-HandoverService/internal/domain"
	getAvailableSlots "github.com/dks-soft/DKS-HandoverService/internal/usecase/get_available_slots"
)

// SlotResponse занятость одного слота расписания
type SlotResponse struct {
	TimeSlot  string `json:"timeSlot"`
	Occupied  int    `json:"occupied"`
	Limit     int    `json:"limit"`
	Available bool   `json:"available"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ProjectName string         `json:"projectName"`
	Date        string         `json:"date"`
	Slots       []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			TimeSlot:  string(s.TimeSlot),
			Occupied:  s.Occupied,
			Limit:     s.Limit,
			Available: s.Available,
		})
	}

	return &AvailableSlotsResponse{
		ProjectName: resp.ProjectName,
		Date:        resp.Date.Format(domain.DateFormat),
		Slots:       slots,
	}
}
