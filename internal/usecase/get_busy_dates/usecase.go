package get_busy_dates

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dks-soft/DKS-HandoverService/internal/domain"
	projectStorage "github.com/dks-soft/DKS-HandoverService/internal/infra/storage/project"
)

// UseCase получение полностью занятых дат для отрисовки календаря
//
// Дата считается полностью занятой, когда число действующих записей
// достигает дневной емкости проекта: число слотов расписания, умноженное
// на лимит мест в одном слоте
type UseCase struct {
	bookingRepo BookingRepository
	projectRepo ProjectRepository
	logger      Logger
}

// NewUseCase создает новый usecase получения занятых дат
func NewUseCase(
	bookingRepo BookingRepository,
	projectRepo ProjectRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// Execute возвращает отсортированный список полностью занятых дат в диапазоне
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	// 1. Валидируем входные данные
	if req.ProjectName == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrInvalidInput)
	}
	if req.From.IsZero() || req.To.IsZero() {
		return nil, fmt.Errorf("%w: date range is required", ErrInvalidInput)
	}
	if req.To.Before(req.From) {
		return nil, fmt.Errorf("%w: range end is before range start", ErrInvalidInput)
	}

	from := domain.DateOnly(req.From)
	to := domain.DateOnly(req.To)

	// 2. Определяем дневную емкость проекта
	capacity := domain.SlotsPerDay * domain.DefaultSlotsLimit
	project, err := uc.projectRepo.GetByName(ctx, req.ProjectName)
	if err != nil && !errors.Is(err, projectStorage.ErrProjectNotFound) {
		uc.logger.Error("GetBusyDates failed: get project settings: %v", err)
		return nil, fmt.Errorf("%w: get project settings: %v", ErrInternal, err)
	}
	if project != nil {
		capacity = project.DailyCapacity()
	}

	// 3. Считаем записи по датам и отбираем достигшие емкости
	counts, err := uc.bookingRepo.CountActiveByDateRange(ctx, req.ProjectName, from, to)
	if err != nil {
		uc.logger.Error("GetBusyDates failed: count bookings: %v", err)
		return nil, fmt.Errorf("%w: count bookings by date: %v", ErrInternal, err)
	}

	busy := make([]time.Time, 0)
	for date, count := range counts {
		if count >= capacity {
			busy = append(busy, date)
		}
	}

	sort.Slice(busy, func(i, j int) bool { return busy[i].Before(busy[j]) })

	return &Response{
		ProjectName: req.ProjectName,
		BusyDates:   busy,
	}, nil
}
