package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dks-soft/DKS-HandoverService/internal/domain"
	bookingStorage "github.com/dks-soft/DKS-HandoverService/internal/infra/storage/booking"
	contractStorage "github.com/dks-soft/DKS-HandoverService/internal/infra/storage/contract"
	"github.com/dks-soft/DKS-HandoverService/internal/service/bookings/models"
	"github.com/dks-soft/DKS-HandoverService/pkg/ptr"
)

type fakeBookingRepo struct {
	byID      map[int64]*domain.Booking
	upcoming  *domain.Booking
	listed    []*bookingStorage.BookingWithContract
	firstIDs  map[int64]int64
	cancelled []int64
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingStorage.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) FindUpcoming(_ context.Context, _ int64, _ time.Time) (*domain.Booking, error) {
	if f.upcoming == nil {
		return nil, bookingStorage.ErrBookingNotFound
	}
	return f.upcoming, nil
}

func (f *fakeBookingRepo) MarkCancelled(_ context.Context, id int64) error {
	f.cancelled = append(f.cancelled, id)
	return nil
}

func (f *fakeBookingRepo) ListByProjectAndRange(_ context.Context, _ string, _, _ time.Time) ([]*bookingStorage.BookingWithContract, error) {
	return f.listed, nil
}

func (f *fakeBookingRepo) FindFirstActiveIDs(_ context.Context, _ []int64) (map[int64]int64, error) {
	return f.firstIDs, nil
}

type fakeContractRepo struct {
	byID     map[int64]*domain.Contract
	byNumber map[string]*domain.Contract
}

func (f *fakeContractRepo) GetByID(_ context.Context, id int64) (*domain.Contract, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, contractStorage.ErrContractNotFound
	}
	return c, nil
}

func (f *fakeContractRepo) GetByNumber(_ context.Context, _, num string) (*domain.Contract, error) {
	c, ok := f.byNumber[num]
	if !ok {
		return nil, contractStorage.ErrContractNotFound
	}
	return c, nil
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

func testContract() *domain.Contract {
	return &domain.Contract{
		ID:           7,
		ProjectName:  "riviera",
		AptNum:       "100",
		ContractNum:  "DK1234",
		ClientFIO:    "Иванов Иван Иванович",
		DeliveryDate: date("2026-01-01"),
	}
}

func newTestService(bookings *fakeBookingRepo, contracts *fakeContractRepo) *Service {
	s := NewService(bookings, contracts, nopLogger{})
	s.timeProvider = &fixedTime{now: testNow}
	return s
}

func TestResolveContract_Success(t *testing.T) {
	contracts := &fakeContractRepo{byNumber: map[string]*domain.Contract{"DK1234": testContract()}}
	bookings := &fakeBookingRepo{
		upcoming: &domain.Booking{ID: 3, ContractID: 7, Date: date("2026-02-02"), TimeSlot: "10:00"},
	}
	s := newTestService(bookings, contracts)

	resp, err := s.ResolveContract(context.Background(), &models.ResolveContractRequest{
		ProjectName: "riviera",
		ContractNum: " dk1234 ", // номер нормализуется перед поиском
		UserTgID:    555,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ContractID)
	assert.False(t, resp.IsOwner)
	require.NotNil(t, resp.Upcoming)
	assert.Equal(t, date("2026-02-02"), resp.Upcoming.Date)
}

func TestResolveContract_NotFound(t *testing.T) {
	s := newTestService(&fakeBookingRepo{}, &fakeContractRepo{byNumber: map[string]*domain.Contract{}})

	_, err := s.ResolveContract(context.Background(), &models.ResolveContractRequest{
		ProjectName: "riviera",
		ContractNum: "DK9999",
		UserTgID:    555,
	})

	assert.ErrorIs(t, err, ErrContractNotFound)
}

func TestResolveContract_OwnedByAnotherUser(t *testing.T) {
	contract := testContract()
	contract.OwnerTgID = ptr.Ptr(int64(999))
	contracts := &fakeContractRepo{byNumber: map[string]*domain.Contract{"DK1234": contract}}
	s := newTestService(&fakeBookingRepo{}, contracts)

	_, err := s.ResolveContract(context.Background(), &models.ResolveContractRequest{
		ProjectName: "riviera",
		ContractNum: "DK1234",
		UserTgID:    555,
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestResolveContract_OwnerSeesOwnContract(t *testing.T) {
	contract := testContract()
	contract.OwnerTgID = ptr.Ptr(int64(555))
	contracts := &fakeContractRepo{byNumber: map[string]*domain.Contract{"DK1234": contract}}
	s := newTestService(&fakeBookingRepo{}, contracts)

	resp, err := s.ResolveContract(context.Background(), &models.ResolveContractRequest{
		ProjectName: "riviera",
		ContractNum: "DK1234",
		UserTgID:    555,
	})

	require.NoError(t, err)
	assert.True(t, resp.IsOwner)
	assert.Nil(t, resp.Upcoming)
}

func TestCancel_ByCreator(t *testing.T) {
	bookings := &fakeBookingRepo{byID: map[int64]*domain.Booking{
		5: {ID: 5, ContractID: 7, Date: date("2026-02-02"), TimeSlot: "09:00", CreatorTgID: 555},
	}}
	s := newTestService(bookings, &fakeContractRepo{})

	err := s.Cancel(context.Background(), &models.CancelBookingRequest{BookingID: 5, UserTgID: 555})

	require.NoError(t, err)
	assert.Equal(t, []int64{5}, bookings.cancelled)
}

func TestCancel_ByContractOwner(t *testing.T) {
	contract := testContract()
	contract.OwnerTgID = ptr.Ptr(int64(888))

	bookings := &fakeBookingRepo{byID: map[int64]*domain.Booking{
		5: {ID: 5, ContractID: 7, Date: date("2026-02-02"), TimeSlot: "09:00", CreatorTgID: 555},
	}}
	contracts := &fakeContractRepo{byID: map[int64]*domain.Contract{7: contract}}
	s := newTestService(bookings, contracts)

	err := s.Cancel(context.Background(), &models.CancelBookingRequest{BookingID: 5, UserTgID: 888})

	assert.NoError(t, err)
}

func TestCancel_AccessDeniedForStranger(t *testing.T) {
	bookings := &fakeBookingRepo{byID: map[int64]*domain.Booking{
		5: {ID: 5, ContractID: 7, Date: date("2026-02-02"), TimeSlot: "09:00", CreatorTgID: 555},
	}}
	contracts := &fakeContractRepo{byID: map[int64]*domain.Contract{7: testContract()}}
	s := newTestService(bookings, contracts)

	err := s.Cancel(context.Background(), &models.CancelBookingRequest{BookingID: 5, UserTgID: 777})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, bookings.cancelled)
}

func TestCancel_TooLate(t *testing.T) {
	bookings := &fakeBookingRepo{byID: map[int64]*domain.Booking{
		// Визит сегодня, минимальная дата — завтра
		5: {ID: 5, ContractID: 7, Date: date("2026-01-28"), TimeSlot: "09:00", CreatorTgID: 555},
	}}
	s := newTestService(bookings, &fakeContractRepo{})

	err := s.Cancel(context.Background(), &models.CancelBookingRequest{BookingID: 5, UserTgID: 555})

	assert.ErrorIs(t, err, ErrTooLateToCancel)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	bookings := &fakeBookingRepo{byID: map[int64]*domain.Booking{
		5: {ID: 5, ContractID: 7, Date: date("2026-02-02"), TimeSlot: "09:00", CreatorTgID: 555, IsCancelled: true},
	}}
	s := newTestService(bookings, &fakeContractRepo{})

	err := s.Cancel(context.Background(), &models.CancelBookingRequest{BookingID: 5, UserTgID: 555})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListProjectBookings_MarksRepeatVisits(t *testing.T) {
	bookings := &fakeBookingRepo{
		listed: []*bookingStorage.BookingWithContract{
			{
				Booking:     domain.Booking{ID: 10, ContractID: 7, Date: date("2026-02-02"), TimeSlot: "09:00"},
				ContractNum: "DK1234",
				ClientFIO:   "Иванов Иван Иванович",
				AptNum:      "100",
			},
			{
				Booking:     domain.Booking{ID: 11, ContractID: 8, Date: date("2026-02-02"), TimeSlot: "10:00"},
				ContractNum: "DK5678",
				ClientFIO:   "Петров Петр Петрович",
				AptNum:      "101",
			},
		},
		// По договору 7 первый визит был записью 2 — запись 10 повторная
		firstIDs: map[int64]int64{7: 2, 8: 11},
	}
	s := newTestService(bookings, &fakeContractRepo{})

	resp, err := s.ListProjectBookings(context.Background(), &models.ListProjectBookingsRequest{
		ProjectName: "riviera",
		From:        date("2026-02-01"),
		To:          date("2026-02-28"),
	})

	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.True(t, resp.Items[0].RepeatVisit)
	assert.False(t, resp.Items[1].RepeatVisit)
}

func TestListProjectBookings_InvalidRange(t *testing.T) {
	s := newTestService(&fakeBookingRepo{}, &fakeContractRepo{})

	_, err := s.ListProjectBookings(context.Background(), &models.ListProjectBookingsRequest{
		ProjectName: "riviera",
		From:        date("2026-02-28"),
		To:          date("2026-02-01"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
