package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/dks-soft/DKS-HandoverService/internal/domain"
	bookingStorage "github.com/dks-soft/DKS-HandoverService/internal/infra/storage/booking"
	contractStorage "github.com/dks-soft/DKS-HandoverService/internal/infra/storage/contract"
	projectStorage "github.com/dks-soft/DKS-HandoverService/internal/infra/storage/project"
)

// UseCase создание записи на выдачу ключей
//
// Все проверки доступности выполняются внутри сериализуемой транзакции
// вместе со вставкой, поэтому две конкурирующие записи на последнее место
// не могут пройти проверку одновременно
type UseCase struct {
	bookingRepo  BookingRepository
	contractRepo ContractRepository
	projectRepo  ProjectRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый usecase создания записи
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

// Execute создает запись на выдачу ключей по договору
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	uc.logger.Info("CreateBooking started: project=%s, contract=%s, user=%d, date=%s, slot=%s",
		req.ProjectName, req.ContractNum, req.UserTgID, req.Date.Format(domain.DateFormat), req.TimeSlot)

	// 1. Валидируем входные данные
	if err := uc.validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	date := domain.DateOnly(req.Date)

	var resp *Response

	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// 2. Находим договор по нормализованному номеру
		contract, err := uc.contractRepo.GetByNumber(ctx, req.ProjectName, domain.NormalizeContractNum(req.ContractNum))
		if err != nil {
			if errors.Is(err, contractStorage.ErrContractNotFound) {
				return ErrContractNotFound
			}
			return fmt.Errorf("%w: get contract: %v", ErrInternal, err)
		}

		// 3. Договор, закрепленный за другим пользователем, недоступен
		if contract.HasOwner() && !contract.IsOwnedBy(req.UserTgID) {
			uc.logger.Warn("CreateBooking denied: contract %d owned by another user, requested by %d",
				contract.ID, req.UserTgID)
			return ErrContractOwned
		}

		// 4. По договору не должно быть действующей предстоящей записи
		upcoming, err := uc.bookingRepo.FindUpcoming(ctx, contract.ID, domain.DateOnly(now))
		if err != nil && !errors.Is(err, bookingStorage.ErrBookingNotFound) {
			return fmt.Errorf("%w: find upcoming booking: %v", ErrInternal, err)
		}
		if upcoming != nil {
			uc.logger.Info("CreateBooking rejected: contract %d already booked on %s",
				contract.ID, upcoming.Date.Format(domain.DateFormat))
			return &AlreadyBookedError{ExistingDate: upcoming.Date}
		}

		// 5. Считаем минимально допустимую дату с учетом кулдауна
		// после последнего состоявшегося визита
		minDate := domain.EffectiveMinDate(now, contract.DeliveryDate)

		last, err := uc.bookingRepo.FindMostRecentActive(ctx, contract.ID)
		if err != nil && !errors.Is(err, bookingStorage.ErrBookingNotFound) {
			return fmt.Errorf("%w: find most recent booking: %v", ErrInternal, err)
		}
		if last != nil {
			cooldownEnd := last.Date.AddDate(0, 0, domain.CooldownDays)
			if cooldownEnd.After(minDate) {
				minDate = cooldownEnd
			}
		}

		// 6. Проверяем выбранную дату
		if !domain.IsWorkingDay(date) || date.Before(minDate) {
			return &DateNotAllowedError{MinDate: minDate}
		}

		// 7. Определяем лимит мест на слот для проекта
		project, err := uc.projectRepo.GetByName(ctx, req.ProjectName)
		if err != nil && !errors.Is(err, projectStorage.ErrProjectNotFound) {
			return fmt.Errorf("%w: get project settings: %v", ErrInternal, err)
		}
		slotsLimit := resolveSlotsLimit(project)

		// 8. Проверяем занятость слота
		occupied, err := uc.bookingRepo.CountActiveBySlot(ctx, req.ProjectName, date, req.TimeSlot)
		if err != nil {
			return fmt.Errorf("%w: count slot occupancy: %v", ErrInternal, err)
		}
		if occupied >= slotsLimit {
			uc.logger.Info("CreateBooking rejected: slot %s on %s is full (%d/%d)",
				req.TimeSlot, date.Format(domain.DateFormat), occupied, slotsLimit)
			return ErrSlotFull
		}

		// 9. Создаем запись
		booking, err := uc.bookingRepo.Create(ctx, &domain.Booking{
			ContractID:  contract.ID,
			Date:        date,
			TimeSlot:    req.TimeSlot,
			CreatorTgID: req.UserTgID,
			ClientPhone: req.ClientPhone,
		})
		if err != nil {
			return fmt.Errorf("%w: create booking: %v", ErrInternal, err)
		}

		// 10. Первая запись закрепляет договор за пользователем
		if !contract.HasOwner() {
			if err := uc.contractRepo.SetOwner(ctx, contract.ID, req.UserTgID); err != nil &&
				!errors.Is(err, contractStorage.ErrOwnerAlreadySet) {
				return fmt.Errorf("%w: set contract owner: %v", ErrInternal, err)
			}
		}

		addressRu, addressUz := projectAddresses(project)
		resp = &Response{
			BookingID:   booking.ID,
			ContractID:  contract.ID,
			ProjectName: contract.ProjectName,
			AptNum:      contract.AptNum,
			ContractNum: contract.ContractNum,
			ClientFIO:   contract.ClientFIO,
			Date:        booking.Date,
			TimeSlot:    booking.TimeSlot,
			AddressRu:   addressRu,
			AddressUz:   addressUz,
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("CreateBooking failed: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking succeeded: booking=%d, contract=%d, date=%s, slot=%s",
		resp.BookingID, resp.ContractID, resp.Date.Format(domain.DateFormat), resp.TimeSlot)

	return resp, nil
}

func projectAddresses(project *domain.Project) (*string, *string) {
	if project == nil {
		return nil, nil
	}
	return project.AddressRu, project.AddressUz
}
