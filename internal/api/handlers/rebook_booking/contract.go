package rebook_booking

import (
	"context"

	rebookBooking "github.com/dks-soft/DKS-HandoverService/internal/usecase/rebook_booking"
)

type RebookBookingUseCase interface {
	Execute(ctx context.Context, req rebookBooking.Request) (*rebookBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
