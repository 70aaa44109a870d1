package projects

import (
	"context"

	"github.com/dks-soft/DKS-HandoverService/internal/domain"
)

// ProjectRepository интерфейс репозитория настроек проектов
type ProjectRepository interface {
	GetByName(ctx context.Context, name string) (*domain.Project, error)
	Upsert(ctx context.Context, project *domain.Project) (*domain.Project, error)
}

// ContractRepository интерфейс репозитория договоров
type ContractRepository interface {
	ListProjectNames(ctx context.Context) ([]string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
