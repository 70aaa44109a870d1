package get_available_slots

import (
	"context"
	"time"

	"github.com/dks-soft/DKS-HandoverService/internal/domain"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	CountActiveBySlotsForDate(ctx context.Context, projectName string, date time.Time) (map[domain.TimeSlot]int, error)
}

// ProjectRepository интерфейс репозитория настроек проектов
type ProjectRepository interface {
	GetByName(ctx context.Context, name string) (*domain.Project, error)
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
