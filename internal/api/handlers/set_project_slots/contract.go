package set_project_slots

import (
	"context"

	"github.com/dks-soft/DKS-HandoverService/internal/service/projects/models"
)

type ProjectService interface {
	UpdateSlots(ctx context.Context, req *models.UpdateSlotsRequest) (*models.ProjectResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
