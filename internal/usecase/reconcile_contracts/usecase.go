package reconcile_contracts

import (
	"context"
	"errors"
	"fmt"

	"github.com/dks-soft/DKS-HandoverService/internal/domain"
	contractStorage "github.com/dks-soft/DKS-HandoverService/internal/infra/storage/contract"
)

// UseCase сверка импортируемого реестра договоров с базой
//
// Ключ сверки — пара (проект, номер квартиры): квартира физически не меняется,
// а номер договора может быть перевыпущен. Diff только классифицирует
// расхождения, Apply применяет реестр в одной транзакции
type UseCase struct {
	contractRepo ContractRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый usecase сверки договоров
func NewUseCase(
	contractRepo ContractRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		contractRepo: contractRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Diff сравнивает реестр с базой и классифицирует каждое расхождение
// База при этом не изменяется
func (uc *UseCase) Diff(ctx context.Context, req DiffRequest) (*DiffResponse, error) {
	if req.ProjectName == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrInvalidInput)
	}

	uc.logger.Info("ReconcileDiff started: project=%s, records=%d", req.ProjectName, len(req.Records))

	resp := &DiffResponse{
		ProjectName: req.ProjectName,
		New:         make([]NewEntry, 0),
		Updated:     make([]FieldUpdateEntry, 0),
		Renumbered:  make([]NumberChangeEntry, 0),
		Errors:      make([]RecordError, 0),
	}

	for i, raw := range req.Records {
		rec := normalizeRecord(raw)

		// Ошибка в строке не прерывает обработку остальных
		if err := validateRecord(rec); err != nil {
			resp.Errors = append(resp.Errors, RecordError{Index: i, AptNum: rec.AptNum, Reason: err.Error()})
			continue
		}

		existing, err := uc.contractRepo.GetByKey(ctx, req.ProjectName, rec.AptNum)
		if err != nil {
			if errors.Is(err, contractStorage.ErrContractNotFound) {
				resp.New = append(resp.New, NewEntry{Record: rec})
				continue
			}
			uc.logger.Error("ReconcileDiff failed: get contract by key: %v", err)
			return nil, fmt.Errorf("%w: get contract by key: %v", ErrInternal, err)
		}

		changes := diffFields(existing, rec)

		if existing.ContractNum != rec.ContractNum {
			activeBookings, err := uc.bookingRepo.CountActiveByContract(ctx, existing.ID)
			if err != nil {
				uc.logger.Error("ReconcileDiff failed: count active bookings: %v", err)
				return nil, fmt.Errorf("%w: count active bookings: %v", ErrInternal, err)
			}

			resp.Renumbered = append(resp.Renumbered, NumberChangeEntry{
				ContractID:     existing.ID,
				AptNum:         rec.AptNum,
				OldNum:         existing.ContractNum,
				NewNum:         rec.ContractNum,
				ActiveBookings: activeBookings,
				OwnerTgID:      existing.OwnerTgID,
				Changes:        changes,
			})
			continue
		}

		if len(changes) > 0 {
			resp.Updated = append(resp.Updated, FieldUpdateEntry{
				ContractID: existing.ID,
				AptNum:     rec.AptNum,
				Changes:    changes,
			})
			continue
		}

		resp.Unchanged++
	}

	uc.logger.Info("ReconcileDiff finished: project=%s, new=%d, updated=%d, renumbered=%d, unchanged=%d, errors=%d",
		req.ProjectName, len(resp.New), len(resp.Updated), len(resp.Renumbered), resp.Unchanged, len(resp.Errors))

	return resp, nil
}

// Apply применяет реестр к базе в одной транзакции
// Для договоров со сменой номера действия определяются решением оператора
func (uc *UseCase) Apply(ctx context.Context, req ApplyRequest) (*ApplyResponse, error) {
	if req.ProjectName == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrInvalidInput)
	}

	uc.logger.Info("ReconcileApply started: project=%s, records=%d, cancelBookings=%t, clearOwner=%t",
		req.ProjectName, len(req.Records), req.Actions.CancelBookings, req.Actions.ClearOwner)

	resp := &ApplyResponse{NotifyTgIDs: make([]int64, 0)}

	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		for _, raw := range req.Records {
			rec := normalizeRecord(raw)

			if err := validateRecord(rec); err != nil {
				resp.Skipped++
				continue
			}

			existing, err := uc.contractRepo.GetByKey(ctx, req.ProjectName, rec.AptNum)
			if err != nil {
				if errors.Is(err, contractStorage.ErrContractNotFound) {
					if err := uc.createContract(ctx, req.ProjectName, rec); err != nil {
						return err
					}
					resp.Added++
					continue
				}
				return fmt.Errorf("%w: get contract by key: %v", ErrInternal, err)
			}

			numberChanged := existing.ContractNum != rec.ContractNum
			changes := diffFields(existing, rec)

			if !numberChanged && len(changes) == 0 {
				resp.Unchanged++
				continue
			}

			// Поля обновляются в любом случае, включая новый номер
			existing.Entrance = rec.Entrance
			existing.Floor = rec.Floor
			existing.ContractNum = rec.ContractNum
			existing.ClientFIO = rec.ClientFIO
			existing.DeliveryDate = rec.DeliveryDate

			if err := uc.contractRepo.Update(ctx, existing); err != nil {
				return fmt.Errorf("%w: update contract %d: %v", ErrInternal, existing.ID, err)
			}

			if !numberChanged {
				resp.Updated++
				continue
			}

			resp.Renumbered++

			if req.Actions.CancelBookings {
				cancelled, err := uc.bookingRepo.MarkCancelledByContract(ctx, existing.ID)
				if err != nil {
					return fmt.Errorf("%w: cancel bookings of contract %d: %v", ErrInternal, existing.ID, err)
				}
				resp.BookingsCancelled += cancelled
			}

			if req.Actions.Notify && existing.HasOwner() {
				resp.NotifyTgIDs = append(resp.NotifyTgIDs, *existing.OwnerTgID)
			}

			if req.Actions.ClearOwner && existing.HasOwner() {
				if err := uc.contractRepo.ClearOwner(ctx, existing.ID); err != nil {
					return fmt.Errorf("%w: clear owner of contract %d: %v", ErrInternal, existing.ID, err)
				}
				resp.OwnersCleared++
			}
		}

		return nil
	})

	if err != nil {
		uc.logger.Error("ReconcileApply failed: %v", err)
		return nil, err
	}

	uc.logger.Info("ReconcileApply finished: project=%s, added=%d, updated=%d, renumbered=%d, unchanged=%d, skipped=%d, bookingsCancelled=%d, ownersCleared=%d",
		req.ProjectName, resp.Added, resp.Updated, resp.Renumbered, resp.Unchanged, resp.Skipped,
		resp.BookingsCancelled, resp.OwnersCleared)

	return resp, nil
}

func (uc *UseCase) createContract(ctx context.Context, projectName string, rec ImportRecord) error {
	_, err := uc.contractRepo.Create(ctx, &domain.Contract{
		ProjectName:  projectName,
		AptNum:       rec.AptNum,
		Entrance:     rec.Entrance,
		Floor:        rec.Floor,
		ContractNum:  rec.ContractNum,
		ClientFIO:    rec.ClientFIO,
		DeliveryDate: rec.DeliveryDate,
	})
	if err != nil {
		return fmt.Errorf("%w: create contract for apartment %s: %v", ErrInternal, rec.AptNum, err)
	}
	return nil
}
