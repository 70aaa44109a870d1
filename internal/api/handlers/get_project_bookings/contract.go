package get_project_bookings

import (
	"context"

	"github.com/dks-soft/DKS-HandoverService/internal/service/bookings/models"
)

type BookingService interface {
	ListProjectBookings(ctx context.Context, req *models.ListProjectBookingsRequest) (*models.ProjectBookingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
