package reconcile_contracts

import (
	"context"

	"github.com/dks-soft/DKS-HandoverService/internal/domain"
)

// ContractRepository интерфейс репозитория договоров
type ContractRepository interface {
	GetByKey(ctx context.Context, projectName, aptNum string) (*domain.Contract, error)
	Create(ctx context.Context, contract *domain.Contract) (*domain.Contract, error)
	Update(ctx context.Context, contract *domain.Contract) error
	ClearOwner(ctx context.Context, contractID int64) error
}

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	CountActiveByContract(ctx context.Context, contractID int64) (int, error)
	MarkCancelledByContract(ctx context.Context, contractID int64) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
