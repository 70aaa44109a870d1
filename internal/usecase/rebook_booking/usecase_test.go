package rebook_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dks-soft/DKS-HandoverService/internal/domain"
	bookingStorage "github.com/dks-soft/DKS-HandoverService/internal/infra/storage/booking"
	projectStorage "github.com/dks-soft/DKS-HandoverService/internal/infra/storage/project"
	"github.com/dks-soft/DKS-HandoverService/pkg/ptr"
)

type fakeBookingRepo struct {
	booking    *domain.Booking
	slotCount  int
	cancelled  []int64
	created    *domain.Booking
	mostRecent *domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingStorage.ErrBookingNotFound
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	b.ID = 99
	f.created = b
	return b, nil
}

func (f *fakeBookingRepo) MarkCancelled(_ context.Context, id int64) error {
	f.cancelled = append(f.cancelled, id)
	return nil
}

func (f *fakeBookingRepo) FindMostRecentActive(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.mostRecent == nil {
		return nil, bookingStorage.ErrBookingNotFound
	}
	return f.mostRecent, nil
}

func (f *fakeBookingRepo) CountActiveBySlot(_ context.Context, _ string, _ time.Time, _ domain.TimeSlot) (int, error) {
	return f.slotCount, nil
}

type fakeContractRepo struct {
	contract *domain.Contract
}

func (f *fakeContractRepo) GetByID(_ context.Context, _ int64) (*domain.Contract, error) {
	return f.contract, nil
}

type fakeProjectRepo struct{}

func (f *fakeProjectRepo) GetByName(_ context.Context, _ string) (*domain.Project, error) {
	return nil, projectStorage.ErrProjectNotFound
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

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

// Среда 2026-01-28 до 12:00, минимальная дата — четверг 2026-01-29
var testNow = time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)

func activeBooking() *domain.Booking {
	return &domain.Booking{
		ID:          5,
		ContractID:  7,
		Date:        date("2026-02-02"),
		TimeSlot:    "09:00",
		CreatorTgID: 555,
		ClientPhone: "+998901234567",
	}
}

func testContract() *domain.Contract {
	return &domain.Contract{
		ID:           7,
		ProjectName:  "riviera",
		AptNum:       "100",
		ContractNum:  "dk1234",
		OwnerTgID:    ptr.Ptr(int64(555)),
		DeliveryDate: date("2026-01-01"),
	}
}

func newTestUseCase(bookings *fakeBookingRepo, contracts *fakeContractRepo) *UseCase {
	uc := NewUseCase(bookings, contracts, &fakeProjectRepo{}, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTime{now: testNow}
	return uc
}

func validRequest() Request {
	return Request{
		BookingID: 5,
		UserTgID:  555,
		NewDate:   date("2026-02-03"),
		NewSlot:   "14:00",
	}
}

func TestExecute_Success(t *testing.T) {
	bookings := &fakeBookingRepo{booking: activeBooking()}
	uc := newTestUseCase(bookings, &fakeContractRepo{contract: testContract()})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(99), resp.BookingID)
	assert.Equal(t, date("2026-02-02"), resp.OldDate)
	assert.Equal(t, domain.TimeSlot("09:00"), resp.OldSlot)
	assert.Equal(t, date("2026-02-03"), resp.Date)
	assert.Equal(t, domain.TimeSlot("14:00"), resp.TimeSlot)

	// Старая запись отменена, новая унаследовала автора и телефон
	assert.Equal(t, []int64{5}, bookings.cancelled)
	require.NotNil(t, bookings.created)
	assert.Equal(t, int64(555), bookings.created.CreatorTgID)
	assert.Equal(t, "+998901234567", bookings.created.ClientPhone)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeContractRepo{contract: testContract()})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_CancelledBookingNotFound(t *testing.T) {
	booking := activeBooking()
	booking.IsCancelled = true
	uc := newTestUseCase(&fakeBookingRepo{booking: booking}, &fakeContractRepo{contract: testContract()})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_ForbiddenForStranger(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{booking: activeBooking()}, &fakeContractRepo{contract: testContract()})

	req := validRequest()
	req.UserTgID = 777

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestExecute_ContractOwnerMayRebook(t *testing.T) {
	// Автор записи 555, владелец договора 888 — владельцу тоже можно
	contract := testContract()
	contract.OwnerTgID = ptr.Ptr(int64(888))

	uc := newTestUseCase(&fakeBookingRepo{booking: activeBooking()}, &fakeContractRepo{contract: contract})

	req := validRequest()
	req.UserTgID = 888

	_, err := uc.Execute(context.Background(), req)

	assert.NoError(t, err)
}

func TestExecute_TooLateToRebook(t *testing.T) {
	booking := activeBooking()
	booking.Date = date("2026-01-28") // визит сегодня

	uc := newTestUseCase(&fakeBookingRepo{booking: booking}, &fakeContractRepo{contract: testContract()})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrTooLateToRebook)
}

func TestExecute_NewDateNotAllowed(t *testing.T) {
	bookings := &fakeBookingRepo{booking: activeBooking()}
	uc := newTestUseCase(bookings, &fakeContractRepo{contract: testContract()})

	req := validRequest()
	req.NewDate = date("2026-01-31") // суббота

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrDateNotAllowed)
	assert.Nil(t, bookings.created)
}

func TestExecute_NewSlotFull(t *testing.T) {
	bookings := &fakeBookingRepo{booking: activeBooking(), slotCount: 1}
	uc := newTestUseCase(bookings, &fakeContractRepo{contract: testContract()})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotFull)
	assert.Nil(t, bookings.created)
}

func TestExecute_CooldownFromEarlierVisit(t *testing.T) {
	bookings := &fakeBookingRepo{
		booking: activeBooking(),
		// Прошлый визит по другому бронированию, кулдаун до 2026-02-04
		mostRecent: &domain.Booking{ID: 3, ContractID: 7, Date: date("2026-01-21"), TimeSlot: "11:00"},
	}
	uc := newTestUseCase(bookings, &fakeContractRepo{contract: testContract()})

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrDateNotAllowed)

	req := validRequest()
	req.NewDate = date("2026-02-04")
	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{booking: activeBooking()}, &fakeContractRepo{contract: testContract()})

	req := validRequest()
	req.NewSlot = "15:00"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	req = validRequest()
	req.BookingID = 0
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
