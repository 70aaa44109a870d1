package get_busy_dates

import (
	"context"

	getBusyDates "github.com/dks-soft/DKS-HandoverService/internal/usecase/get_busy_dates"
)

type GetBusyDatesUseCase interface {
	Execute(ctx context.Context, req getBusyDates.Request) (*getBusyDates.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
