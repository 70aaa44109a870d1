package import_contracts_apply

import (
	"context"

	reconcileContracts "github.com/dks-soft/DKS-HandoverService/internal/usecase/reconcile_contracts"
)

type ReconcileUseCase interface {
	Apply(ctx context.Context, req reconcileContracts.ApplyRequest) (*reconcileContracts.ApplyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
