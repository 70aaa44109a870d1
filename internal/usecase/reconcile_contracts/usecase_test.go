package reconcile_contracts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dks-soft/DKS-HandoverService/internal/domain"
	contractStorage "github.com/dks-soft/DKS-HandoverService/internal/infra/storage/contract"
	"github.com/dks-soft/DKS-HandoverService/pkg/ptr"
)

type fakeContractRepo struct {
	byKey map[string]*domain.Contract

	created       []*domain.Contract
	updated       []*domain.Contract
	ownersCleared []int64
}

func (f *fakeContractRepo) GetByKey(_ context.Context, _, aptNum string) (*domain.Contract, error) {
	c, ok := f.byKey[aptNum]
	if !ok {
		return nil, contractStorage.ErrContractNotFound
	}
	return c, nil
}

func (f *fakeContractRepo) Create(_ context.Context, c *domain.Contract) (*domain.Contract, error) {
	c.ID = int64(100 + len(f.created))
	f.created = append(f.created, c)
	return c, nil
}

func (f *fakeContractRepo) Update(_ context.Context, c *domain.Contract) error {
	f.updated = append(f.updated, c)
	return nil
}

func (f *fakeContractRepo) ClearOwner(_ context.Context, contractID int64) error {
	f.ownersCleared = append(f.ownersCleared, contractID)
	return nil
}

type fakeBookingRepo struct {
	activeByContract map[int64]int
	cancelled        []int64
}

func (f *fakeBookingRepo) CountActiveByContract(_ context.Context, contractID int64) (int, error) {
	return f.activeByContract[contractID], nil
}

func (f *fakeBookingRepo) MarkCancelledByContract(_ context.Context, contractID int64) (int64, error) {
	f.cancelled = append(f.cancelled, contractID)
	return int64(f.activeByContract[contractID]), nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func date(s string) time.Time {
	t, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func existingContract() *domain.Contract {
	return &domain.Contract{
		ID:           7,
		ProjectName:  "riviera",
		AptNum:       "100",
		Entrance:     "2",
		Floor:        5,
		ContractNum:  "100-A",
		ClientFIO:    "Иванов Иван Иванович",
		DeliveryDate: date("2026-01-01"),
		OwnerTgID:    ptr.Ptr(int64(555)),
	}
}

func matchingRecord() ImportRecord {
	return ImportRecord{
		AptNum:       "100",
		Entrance:     "2",
		Floor:        5,
		ContractNum:  "100-A",
		ClientFIO:    "Иванов Иван Иванович",
		DeliveryDate: date("2026-01-01"),
	}
}

func newTestUseCase(contracts *fakeContractRepo, bookings *fakeBookingRepo) *UseCase {
	return NewUseCase(contracts, bookings, &fakeTxManager{}, nopLogger{})
}

func TestDiff_NewContract(t *testing.T) {
	uc := newTestUseCase(&fakeContractRepo{byKey: map[string]*domain.Contract{}}, &fakeBookingRepo{})

	resp, err := uc.Diff(context.Background(), DiffRequest{
		ProjectName: "riviera",
		Records:     []ImportRecord{matchingRecord()},
	})

	require.NoError(t, err)
	require.Len(t, resp.New, 1)
	assert.Equal(t, "100", resp.New[0].Record.AptNum)
	assert.Empty(t, resp.Updated)
	assert.Empty(t, resp.Renumbered)
	assert.Zero(t, resp.Unchanged)
}

func TestDiff_UnchangedContract(t *testing.T) {
	contracts := &fakeContractRepo{byKey: map[string]*domain.Contract{"100": existingContract()}}
	uc := newTestUseCase(contracts, &fakeBookingRepo{})

	resp, err := uc.Diff(context.Background(), DiffRequest{
		ProjectName: "riviera",
		Records:     []ImportRecord{matchingRecord()},
	})

	require.NoError(t, err)
	assert.Empty(t, resp.New)
	assert.Empty(t, resp.Updated)
	assert.Empty(t, resp.Renumbered)
	assert.Equal(t, 1, resp.Unchanged)
}

func TestDiff_FieldUpdate(t *testing.T) {
	contracts := &fakeContractRepo{byKey: map[string]*domain.Contract{"100": existingContract()}}
	uc := newTestUseCase(contracts, &fakeBookingRepo{})

	rec := matchingRecord()
	rec.Floor = 6
	rec.ClientFIO = "Петров Петр Петрович"

	resp, err := uc.Diff(context.Background(), DiffRequest{ProjectName: "riviera", Records: []ImportRecord{rec}})

	require.NoError(t, err)
	require.Len(t, resp.Updated, 1)
	assert.Equal(t, int64(7), resp.Updated[0].ContractID)

	changes := resp.Updated[0].Changes
	require.Len(t, changes, 2)
	assert.Equal(t, FieldChange{Field: "floor", Old: "5", New: "6"}, changes[0])
	assert.Equal(t, FieldChange{Field: "client_fio", Old: "Иванов Иван Иванович", New: "Петров Петр Петрович"}, changes[1])
}

func TestDiff_NumberChange(t *testing.T) {
	// Квартира 100: номер договора 100-A перевыпущен как 100-B
	contracts := &fakeContractRepo{byKey: map[string]*domain.Contract{"100": existingContract()}}
	bookings := &fakeBookingRepo{activeByContract: map[int64]int{7: 1}}
	uc := newTestUseCase(contracts, bookings)

	rec := matchingRecord()
	rec.ContractNum = "100-B"

	resp, err := uc.Diff(context.Background(), DiffRequest{ProjectName: "riviera", Records: []ImportRecord{rec}})

	require.NoError(t, err)
	require.Len(t, resp.Renumbered, 1)

	entry := resp.Renumbered[0]
	assert.Equal(t, "100-A", entry.OldNum)
	assert.Equal(t, "100-B", entry.NewNum)
	assert.Equal(t, 1, entry.ActiveBookings)
	require.NotNil(t, entry.OwnerTgID)
	assert.Equal(t, int64(555), *entry.OwnerTgID)
}

func TestDiff_InvalidRecordDoesNotStopBatch(t *testing.T) {
	uc := newTestUseCase(&fakeContractRepo{byKey: map[string]*domain.Contract{}}, &fakeBookingRepo{})

	bad := matchingRecord()
	bad.ContractNum = ""

	good := matchingRecord()
	good.AptNum = "101"

	resp, err := uc.Diff(context.Background(), DiffRequest{
		ProjectName: "riviera",
		Records:     []ImportRecord{bad, good},
	})

	require.NoError(t, err)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, 0, resp.Errors[0].Index)
	require.Len(t, resp.New, 1)
	assert.Equal(t, "101", resp.New[0].Record.AptNum)
}

func TestDiff_ContractNumNormalized(t *testing.T) {
	contracts := &fakeContractRepo{byKey: map[string]*domain.Contract{"100": existingContract()}}
	uc := newTestUseCase(contracts, &fakeBookingRepo{})

	rec := matchingRecord()
	rec.ContractNum = " 100-a "

	resp, err := uc.Diff(context.Background(), DiffRequest{ProjectName: "riviera", Records: []ImportRecord{rec}})

	require.NoError(t, err)
	assert.Empty(t, resp.Renumbered)
	assert.Equal(t, 1, resp.Unchanged)
}

func TestApply_AddsAndUpdates(t *testing.T) {
	contracts := &fakeContractRepo{byKey: map[string]*domain.Contract{"100": existingContract()}}
	uc := newTestUseCase(contracts, &fakeBookingRepo{})

	updated := matchingRecord()
	updated.Floor = 6

	added := matchingRecord()
	added.AptNum = "101"
	added.ContractNum = "101-A"

	resp, err := uc.Apply(context.Background(), ApplyRequest{
		ProjectName: "riviera",
		Records:     []ImportRecord{updated, added},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Added)
	assert.Equal(t, 1, resp.Updated)
	assert.Zero(t, resp.Renumbered)

	require.Len(t, contracts.created, 1)
	assert.Equal(t, "101-A", contracts.created[0].ContractNum)
	require.Len(t, contracts.updated, 1)
	assert.Equal(t, 6, contracts.updated[0].Floor)
}

func TestApply_NumberChangeFullActions(t *testing.T) {
	contracts := &fakeContractRepo{byKey: map[string]*domain.Contract{"100": existingContract()}}
	bookings := &fakeBookingRepo{activeByContract: map[int64]int{7: 2}}
	uc := newTestUseCase(contracts, bookings)

	rec := matchingRecord()
	rec.ContractNum = "100-B"

	resp, err := uc.Apply(context.Background(), ApplyRequest{
		ProjectName: "riviera",
		Records:     []ImportRecord{rec},
		Actions:     NumberChangeActions{CancelBookings: true, ClearOwner: true, Notify: true},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Renumbered)
	assert.Equal(t, int64(2), resp.BookingsCancelled)
	assert.Equal(t, 1, resp.OwnersCleared)
	assert.Equal(t, []int64{555}, resp.NotifyTgIDs)

	assert.Equal(t, []int64{7}, bookings.cancelled)
	assert.Equal(t, []int64{7}, contracts.ownersCleared)
	require.Len(t, contracts.updated, 1)
	assert.Equal(t, "100-B", contracts.updated[0].ContractNum)
}

func TestApply_NumberChangeNoActions(t *testing.T) {
	contracts := &fakeContractRepo{byKey: map[string]*domain.Contract{"100": existingContract()}}
	bookings := &fakeBookingRepo{activeByContract: map[int64]int{7: 2}}
	uc := newTestUseCase(contracts, bookings)

	rec := matchingRecord()
	rec.ContractNum = "100-B"

	resp, err := uc.Apply(context.Background(), ApplyRequest{
		ProjectName: "riviera",
		Records:     []ImportRecord{rec},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Renumbered)
	assert.Zero(t, resp.BookingsCancelled)
	assert.Zero(t, resp.OwnersCleared)
	assert.Empty(t, resp.NotifyTgIDs)
	assert.Empty(t, bookings.cancelled)
	assert.Empty(t, contracts.ownersCleared)
}

func TestApply_SkipsInvalidRecords(t *testing.T) {
	uc := newTestUseCase(&fakeContractRepo{byKey: map[string]*domain.Contract{}}, &fakeBookingRepo{})

	bad := matchingRecord()
	bad.ClientFIO = ""

	resp, err := uc.Apply(context.Background(), ApplyRequest{
		ProjectName: "riviera",
		Records:     []ImportRecord{bad},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Skipped)
	assert.Zero(t, resp.Added)
}

func TestApply_ProjectNameRequired(t *testing.T) {
	uc := newTestUseCase(&fakeContractRepo{}, &fakeBookingRepo{})

	_, err := uc.Apply(context.Background(), ApplyRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Diff(context.Background(), DiffRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
