package create_booking

import (
	"context"
	"time"

	"github.com/dks-soft/DKS-HandoverService/internal/domain"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	FindUpcoming(ctx context.Context, contractID int64, today time.Time) (*domain.Booking, error)
	FindMostRecentActive(ctx context.Context, contractID int64) (*domain.Booking, error)
	CountActiveBySlot(ctx context.Context, projectName string, date time.Time, slot domain.TimeSlot) (int, error)
}

// ContractRepository интерфейс репозитория договоров
type ContractRepository interface {
	GetByNumber(ctx context.Context, projectName, contractNum string) (*domain.Contract, error)
	SetOwner(ctx context.Context, contractID int64, tgID int64) error
}

// ProjectRepository интерфейс репозитория настроек проектов
type ProjectRepository interface {
	GetByName(ctx context.Context, name string) (*domain.Project, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
