package resolve_contract

import (
	"context"

	"github.com/dks-soft/DKS-HandoverService/internal/service/bookings/models"
)

type BookingService interface {
	ResolveContract(ctx context.Context, req *models.ResolveContractRequest) (*models.ContractResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
