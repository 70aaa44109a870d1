package get_busy_dates

import (
	"context"
	"time"

	"github.com/dks-soft/DKS-HandoverService/internal/domain"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	CountActiveByDateRange(ctx context.Context, projectName string, from, to time.Time) (map[time.Time]int, error)
}

// ProjectRepository интерфейс репозитория настроек проектов
type ProjectRepository interface {
	GetByName(ctx context.Context, name string) (*domain.Project, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
