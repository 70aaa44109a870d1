package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/dks-soft/DKS-HandoverService/internal/domain"
	bookingRepo "github.com/dks-soft/DKS-HandoverService/internal/infra/storage/booking"
	contractRepo "github.com/dks-soft/DKS-HandoverService/internal/infra/storage/contract"
	"github.com/dks-soft/DKS-HandoverService/internal/service/bookings/models"
)

// Service сервис для работы с договорами и записями вне транзакционных сценариев
type Service struct {
	bookingRepo  BookingRepository
	contractRepo ContractRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	bookingRepo BookingRepository,
	contractRepo ContractRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		contractRepo: contractRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// ResolveContract находит договор по номеру и проверяет права доступа
// Пользователь видит договор, если владелец еще не закреплен или это он сам
func (s *Service) ResolveContract(ctx context.Context, req *models.ResolveContractRequest) (*models.ContractResponse, error) {
	s.logger.Info("ResolveContract: project=%s, contract=%s, user=%d",
		req.ProjectName, req.ContractNum, req.UserTgID)

	if req.ProjectName == "" || req.ContractNum == "" || req.UserTgID <= 0 {
		return nil, fmt.Errorf("%w: project, contract number and user are required", ErrInvalidInput)
	}

	contract, err := s.contractRepo.GetByNumber(ctx, req.ProjectName, domain.NormalizeContractNum(req.ContractNum))
	if err != nil {
		if errors.Is(err, contractRepo.ErrContractNotFound) {
			s.logger.Warn("ResolveContract: contract %s not found in project %s", req.ContractNum, req.ProjectName)
			return nil, ErrContractNotFound
		}
		s.logger.Error("ResolveContract: repository error: %v", err)
		return nil, fmt.Errorf("%w: ResolveContract - repository error: %v", ErrInternal, err)
	}

	// Чужой договор выглядит как недоступный, детали не раскрываются
	if contract.HasOwner() && !contract.IsOwnedBy(req.UserTgID) {
		s.logger.Warn("ResolveContract: contract %d owned by another user, requested by %d",
			contract.ID, req.UserTgID)
		return nil, ErrAccessDenied
	}

	today := domain.DateOnly(s.timeProvider.Now())
	upcoming, err := s.bookingRepo.FindUpcoming(ctx, contract.ID, today)
	if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
		s.logger.Error("ResolveContract: find upcoming booking: %v", err)
		return nil, fmt.Errorf("%w: ResolveContract - find upcoming booking: %v", ErrInternal, err)
	}

	s.logger.Info("ResolveContract: contract %d resolved for user %d", contract.ID, req.UserTgID)
	return models.FromDomainContract(contract, req.UserTgID, upcoming), nil
}

// Cancel отменяет запись
// Отменить может автор записи или владелец договора, пока до визита
// остается хотя бы один рабочий день
func (s *Service) Cancel(ctx context.Context, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: booking=%d, user=%d", req.BookingID, req.UserTgID)

	if req.BookingID <= 0 || req.UserTgID <= 0 {
		return fmt.Errorf("%w: booking id and user are required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking %d not found", req.BookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error: %v", err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if booking.IsCancelled {
		s.logger.Warn("Cancel: booking %d is already cancelled", req.BookingID)
		return ErrBookingNotFound
	}

	if !booking.BelongsTo(req.UserTgID) {
		contract, err := s.contractRepo.GetByID(ctx, booking.ContractID)
		if err != nil {
			s.logger.Error("Cancel: get contract %d: %v", booking.ContractID, err)
			return fmt.Errorf("%w: Cancel - get contract: %v", ErrInternal, err)
		}
		if !contract.IsOwnedBy(req.UserTgID) {
			s.logger.Warn("Cancel: access denied for user %d to booking %d", req.UserTgID, req.BookingID)
			return ErrAccessDenied
		}
	}

	// Визит, до которого уже нельзя записаться, нельзя и отменить
	if booking.Date.Before(domain.MinBookingDate(s.timeProvider.Now())) {
		s.logger.Warn("Cancel: too late to cancel booking %d on %s",
			req.BookingID, booking.Date.Format(domain.DateFormat))
		return ErrTooLateToCancel
	}

	if err := s.bookingRepo.MarkCancelled(ctx, req.BookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: mark cancelled: %v", err)
		return fmt.Errorf("%w: Cancel - mark cancelled: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: booking %d cancelled by user %d", req.BookingID, req.UserTgID)
	return nil
}

// ListProjectBookings возвращает записи проекта за период для сотрудников
// Повторные визиты по одному договору помечаются отдельно
func (s *Service) ListProjectBookings(ctx context.Context, req *models.ListProjectBookingsRequest) (*models.ProjectBookingsResponse, error) {
	s.logger.Info("ListProjectBookings: project=%s, from=%s, to=%s",
		req.ProjectName, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	if req.ProjectName == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrInvalidInput)
	}
	if req.From.IsZero() || req.To.IsZero() || req.To.Before(req.From) {
		return nil, fmt.Errorf("%w: valid date range is required", ErrInvalidInput)
	}

	items, err := s.bookingRepo.ListByProjectAndRange(ctx, req.ProjectName,
		domain.DateOnly(req.From), domain.DateOnly(req.To))
	if err != nil {
		s.logger.Error("ListProjectBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListProjectBookings - repository error: %v", ErrInternal, err)
	}

	// Определяем первый визит по каждому договору, чтобы пометить повторные
	contractIDs := make([]int64, 0, len(items))
	seen := make(map[int64]bool)
	for _, item := range items {
		if !seen[item.Booking.ContractID] {
			seen[item.Booking.ContractID] = true
			contractIDs = append(contractIDs, item.Booking.ContractID)
		}
	}

	firstIDs := make(map[int64]int64)
	if len(contractIDs) > 0 {
		firstIDs, err = s.bookingRepo.FindFirstActiveIDs(ctx, contractIDs)
		if err != nil {
			s.logger.Error("ListProjectBookings: find first bookings: %v", err)
			return nil, fmt.Errorf("%w: ListProjectBookings - find first bookings: %v", ErrInternal, err)
		}
	}

	resp := &models.ProjectBookingsResponse{
		ProjectName: req.ProjectName,
		Items:       make([]models.ProjectBookingItem, 0, len(items)),
	}
	for _, item := range items {
		repeat := firstIDs[item.Booking.ContractID] != item.Booking.ID
		resp.Items = append(resp.Items, models.FromBookingWithContract(item, repeat))
	}

	s.logger.Info("ListProjectBookings: %d bookings for project %s", len(resp.Items), req.ProjectName)
	return resp, nil
}
