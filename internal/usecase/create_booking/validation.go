package create_booking

import (
	"fmt"

	"github.com/dks-soft/DKS-HandoverService/internal/domain"
)

// validateRequest проверяет корректность входных данных
func (uc *UseCase) validateRequest(req Request) error {
	if req.ProjectName == "" {
		return fmt.Errorf("%w: project name is required", ErrInvalidInput)
	}

	if req.ContractNum == "" {
		return fmt.Errorf("%w: contract number is required", ErrInvalidInput)
	}

	if req.UserTgID <= 0 {
		return fmt.Errorf("%w: user telegram id must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.TimeSlot.Validate(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTimeSlot, req.TimeSlot)
	}

	return nil
}

// resolveSlotsLimit возвращает лимит мест на один слот для проекта
// Если настройки проекта не заданы, действует лимит по умолчанию
func resolveSlotsLimit(project *domain.Project) int {
	if project == nil {
		return domain.DefaultSlotsLimit
	}
	return project.EffectiveSlotsLimit()
}
