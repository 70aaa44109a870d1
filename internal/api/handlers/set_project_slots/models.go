package set_project_slots

import "github.com/dks-soft/DKS-HandoverService/internal/service/projects/models"

// SetProjectSlotsRequest HTTP request model
// Незаполненные адрес и координаты сохраняют прежние значения
type SetProjectSlotsRequest struct {
	SlotsLimit int      `json:"slotsLimit"`
	AddressRu  *string  `json:"addressRu,omitempty"`
	AddressUz  *string  `json:"addressUz,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

// ProjectResponse HTTP response model
type ProjectResponse struct {
	ProjectName   string   `json:"projectName"`
	SlotsLimit    int      `json:"slotsLimit"`
	DailyCapacity int      `json:"dailyCapacity"`
	AddressRu     *string  `json:"addressRu,omitempty"`
	AddressUz     *string  `json:"addressUz,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.ProjectResponse) *ProjectResponse {
	return &ProjectResponse{
		ProjectName:   resp.ProjectName,
		SlotsLimit:    resp.SlotsLimit,
		DailyCapacity: resp.DailyCapacity,
		AddressRu:     resp.AddressRu,
		AddressUz:     resp.AddressUz,
		Latitude:      resp.Latitude,
		Longitude:     resp.Longitude,
	}
}
