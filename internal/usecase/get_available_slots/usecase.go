package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/dks-soft/DKS-HandoverService/internal/domain"
	projectStorage "github.com/dks-soft/DKS-HandoverService/internal/infra/storage/project"
)

// UseCase получение занятости слотов расписания на дату
type UseCase struct {
	bookingRepo  BookingRepository
	projectRepo  ProjectRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый usecase получения доступных слотов
func NewUseCase(
	bookingRepo BookingRepository,
	projectRepo ProjectRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		projectRepo:  projectRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает все слоты расписания на дату с их занятостью
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	// 1. Валидируем входные данные
	if req.ProjectName == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date := domain.DateOnly(req.Date)
	now := uc.timeProvider.Now()

	// 2. Выходные и даты раньше минимально допустимой недоступны
	if !domain.IsWorkingDay(date) || date.Before(domain.MinBookingDate(now)) {
		return nil, ErrDateNotAllowed
	}

	// 3. Определяем лимит мест на слот для проекта
	slotsLimit := domain.DefaultSlotsLimit
	project, err := uc.projectRepo.GetByName(ctx, req.ProjectName)
	if err != nil && !errors.Is(err, projectStorage.ErrProjectNotFound) {
		uc.logger.Error("GetAvailableSlots failed: get project settings: %v", err)
		return nil, fmt.Errorf("%w: get project settings: %v", ErrInternal, err)
	}
	if project != nil {
		slotsLimit = project.EffectiveSlotsLimit()
	}

	// 4. Считаем занятость каждого слота
	occupancy, err := uc.bookingRepo.CountActiveBySlotsForDate(ctx, req.ProjectName, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots failed: count occupancy: %v", err)
		return nil, fmt.Errorf("%w: count slot occupancy: %v", ErrInternal, err)
	}

	slots := make([]SlotAvailability, 0, len(domain.TimeSlots))
	for _, slot := range domain.TimeSlots {
		occupied := occupancy[slot]
		slots = append(slots, SlotAvailability{
			TimeSlot:  slot,
			Occupied:  occupied,
			Limit:     slotsLimit,
			Available: occupied < slotsLimit,
		})
	}

	return &Response{
		ProjectName: req.ProjectName,
		Date:        date,
		Slots:       slots,
	}, nil
}
