package import_contracts_diff

import (
	"context"

	reconcileContracts "github.com/dks-soft/DKS-HandoverService/internal/usecase/reconcile_contracts"
)

type ReconcileUseCase interface {
	Diff(ctx context.Context, req reconcileContracts.DiffRequest) (*reconcileContracts.DiffResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
