package projects

import (
	"context"
	"errors"
	"fmt"

	"github.com/dks-soft/DKS-HandoverService/internal/domain"
	projectRepo "github.com/dks-soft/DKS-HandoverService/internal/infra/storage/project"
	"github.com/dks-soft/DKS-HandoverService/internal/service/projects/models"
)

// Service сервис настроек проектов
type Service struct {
	projectRepo  ProjectRepository
	contractRepo ContractRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса проектов
func NewService(
	projectRepo ProjectRepository,
	contractRepo ContractRepository,
	logger Logger,
) *Service {
	return &Service{
		projectRepo:  projectRepo,
		contractRepo: contractRepo,
		logger:       logger,
	}
}

// UpdateSlots создает или обновляет настройки проекта
func (s *Service) UpdateSlots(ctx context.Context, req *models.UpdateSlotsRequest) (*models.ProjectResponse, error) {
	s.logger.Info("UpdateSlots: project=%s, slotsLimit=%d", req.ProjectName, req.SlotsLimit)

	if req.ProjectName == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrInvalidInput)
	}
	if req.SlotsLimit < 1 {
		return nil, fmt.Errorf("%w: slots limit must be at least 1", ErrInvalidInput)
	}

	project, err := s.projectRepo.Upsert(ctx, &domain.Project{
		Name:       req.ProjectName,
		SlotsLimit: req.SlotsLimit,
		AddressRu:  req.AddressRu,
		AddressUz:  req.AddressUz,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
	})
	if err != nil {
		s.logger.Error("UpdateSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateSlots - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSlots: project %s now allows %d per slot", project.Name, project.SlotsLimit)
	return models.FromDomainProject(project), nil
}

// GetSettings возвращает настройки проекта
// Для проекта без настроек действуют значения по умолчанию
func (s *Service) GetSettings(ctx context.Context, projectName string) (*models.ProjectResponse, error) {
	if projectName == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrInvalidInput)
	}

	project, err := s.projectRepo.GetByName(ctx, projectName)
	if err != nil {
		if errors.Is(err, projectRepo.ErrProjectNotFound) {
			return models.FromDomainProject(&domain.Project{Name: projectName}), nil
		}
		s.logger.Error("GetSettings: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetSettings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainProject(project), nil
}

// ListProjects возвращает названия проектов, по которым загружены договоры
func (s *Service) ListProjects(ctx context.Context) ([]string, error) {
	names, err := s.contractRepo.ListProjectNames(ctx)
	if err != nil {
		s.logger.Error("ListProjects: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListProjects - repository error: %v", ErrInternal, err)
	}
	return names, nil
}
