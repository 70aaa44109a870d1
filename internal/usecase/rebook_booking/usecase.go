package rebook_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/dks-soft/DKS-HandoverService/internal/domain"
	bookingStorage "github.com/dks-soft/DKS-HandoverService/internal/infra/storage/booking"
	projectStorage "github.com/dks-soft/DKS-HandoverService/internal/infra/storage/project"
)

// UseCase перенос записи на другие дату и время
//
// Отмена старой записи и создание новой выполняются в одной сериализуемой
// транзакции: если новые дата или время не проходят проверки, транзакция
// откатывается и исходная запись остается в силе
type UseCase struct {
	bookingRepo  BookingRepository
	contractRepo ContractRepository
	projectRepo  ProjectRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый usecase переноса записи
func NewUseCase(
	bookingRepo BookingRepository,
	contractRepo ContractRepository,
	projectRepo ProjectRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		contractRepo: contractRepo,
		projectRepo:  projectRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute переносит запись на новые дату и время
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	uc.logger.Info("RebookBooking started: booking=%d, user=%d, newDate=%s, newSlot=%s",
		req.BookingID, req.UserTgID, req.NewDate.Format(domain.DateFormat), req.NewSlot)

	// 1. Валидируем входные данные
	if err := uc.validateRequest(req); err != nil {
		uc.logger.Warn("RebookBooking validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	newDate := domain.DateOnly(req.NewDate)

	var resp *Response

	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// 2. Находим действующую запись
		booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingStorage.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: get booking: %v", ErrInternal, err)
		}
		if booking.IsCancelled {
			return ErrBookingNotFound
		}

		contract, err := uc.contractRepo.GetByID(ctx, booking.ContractID)
		if err != nil {
			return fmt.Errorf("%w: get contract: %v", ErrInternal, err)
		}

		// 3. Переносить запись может ее автор или владелец договора
		if !booking.BelongsTo(req.UserTgID) && !contract.IsOwnedBy(req.UserTgID) {
			uc.logger.Warn("RebookBooking denied: booking %d requested by %d", booking.ID, req.UserTgID)
			return ErrForbidden
		}

		// 4. Слишком близкий визит переносить уже нельзя
		if booking.Date.Before(domain.MinBookingDate(now)) {
			return ErrTooLateToRebook
		}

		// 5. Отменяем старую запись; при откате транзакции она восстановится
		if err := uc.bookingRepo.MarkCancelled(ctx, booking.ID); err != nil {
			return fmt.Errorf("%w: cancel old booking: %v", ErrInternal, err)
		}

		// 6. Проверяем новую дату с учетом кулдауна после прошлых визитов
		minDate := domain.EffectiveMinDate(now, contract.DeliveryDate)

		last, err := uc.bookingRepo.FindMostRecentActive(ctx, contract.ID)
		if err != nil && !errors.Is(err, bookingStorage.ErrBookingNotFound) {
			return fmt.Errorf("%w: find most recent booking: %v", ErrInternal, err)
		}
		if last != nil && last.ID != booking.ID {
			cooldownEnd := last.Date.AddDate(0, 0, domain.CooldownDays)
			if cooldownEnd.After(minDate) {
				minDate = cooldownEnd
			}
		}

		if !domain.IsWorkingDay(newDate) || newDate.Before(minDate) {
			return &DateNotAllowedError{MinDate: minDate}
		}

		// 7. Проверяем занятость нового слота
		slotsLimit := domain.DefaultSlotsLimit
		project, err := uc.projectRepo.GetByName(ctx, contract.ProjectName)
		if err != nil && !errors.Is(err, projectStorage.ErrProjectNotFound) {
			return fmt.Errorf("%w: get project settings: %v", ErrInternal, err)
		}
		if project != nil {
			slotsLimit = project.EffectiveSlotsLimit()
		}

		occupied, err := uc.bookingRepo.CountActiveBySlot(ctx, contract.ProjectName, newDate, req.NewSlot)
		if err != nil {
			return fmt.Errorf("%w: count slot occupancy: %v", ErrInternal, err)
		}
		if occupied >= slotsLimit {
			uc.logger.Info("RebookBooking rejected: slot %s on %s is full (%d/%d)",
				req.NewSlot, newDate.Format(domain.DateFormat), occupied, slotsLimit)
			return ErrSlotFull
		}

		// 8. Создаем новую запись с сохранением телефона клиента
		created, err := uc.bookingRepo.Create(ctx, &domain.Booking{
			ContractID:  contract.ID,
			Date:        newDate,
			TimeSlot:    req.NewSlot,
			CreatorTgID: booking.CreatorTgID,
			ClientPhone: booking.ClientPhone,
		})
		if err != nil {
			return fmt.Errorf("%w: create new booking: %v", ErrInternal, err)
		}

		resp = &Response{
			BookingID:   created.ID,
			OldDate:     booking.Date,
			OldSlot:     booking.TimeSlot,
			Date:        created.Date,
			TimeSlot:    created.TimeSlot,
			ProjectName: contract.ProjectName,
			AptNum:      contract.AptNum,
			ContractNum: contract.ContractNum,
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("RebookBooking failed: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("RebookBooking succeeded: old=%d, new=%d, date=%s, slot=%s",
		req.BookingID, resp.BookingID, resp.Date.Format(domain.DateFormat), resp.TimeSlot)

	return resp, nil
}
