package get_available_slots

import (
	"time"

	"github.com/dks-soft/DKS-HandoverService/internal/domain"
)

// Request входные данные для получения доступных слотов на дату
type Request struct {
	ProjectName string
	Date        time.Time
}

// SlotAvailability занятость одного слота расписания
type SlotAvailability struct {
	TimeSlot  domain.TimeSlot
	Occupied  int
	Limit     int
	Available bool
}

// Response список слотов расписания с их занятостью
type Response struct {
	ProjectName string
	Date        time.Time
	Slots       []SlotAvailability
}

// HasAvailable сообщает, остался ли хотя бы один свободный слот
func (r *Response) HasAvailable() bool {
	for _, s := range r.Slots {
		if s.Available {
			return true
		}
	}
	return false
}
