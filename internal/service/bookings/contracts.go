package bookings

import (
	"context"
	"time"

	"github.com/dks-soft/DKS-HandoverService/internal/domain"
	bookingRepo "github.com/dks-soft/DKS-HandoverService/internal/infra/storage/booking"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	FindUpcoming(ctx context.Context, contractID int64, today time.Time) (*domain.Booking, error)
	MarkCancelled(ctx context.Context, id int64) error
	ListByProjectAndRange(ctx context.Context, projectName string, from, to time.Time) ([]*bookingRepo.BookingWithContract, error)
	FindFirstActiveIDs(ctx context.Context, contractIDs []int64) (map[int64]int64, error)
}

// ContractRepository интерфейс репозитория договоров
type ContractRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Contract, error)
	GetByNumber(ctx context.Context, projectName, contractNum string) (*domain.Contract, error)
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
