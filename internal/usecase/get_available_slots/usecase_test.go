package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dks-soft/DKS-HandoverService/internal/domain"
	projectStorage "github.com/dks-soft/DKS-HandoverService/internal/infra/storage/project"
)

type fakeBookingRepo struct {
	occupancy map[domain.TimeSlot]int
}

func (f *fakeBookingRepo) CountActiveBySlotsForDate(_ context.Context, _ string, _ time.Time) (map[domain.TimeSlot]int, error) {
	return f.occupancy, nil
}

type fakeProjectRepo struct {
	project *domain.Project
}

func (f *fakeProjectRepo) GetByName(_ context.Context, _ string) (*domain.Project, error) {
	if f.project == nil {
		return nil, projectStorage.ErrProjectNotFound
	}
	return f.project, nil
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

func newTestUseCase(bookings *fakeBookingRepo, projects *fakeProjectRepo) *UseCase {
	uc := NewUseCase(bookings, projects, nopLogger{})
	uc.timeProvider = &fixedTime{now: testNow}
	return uc
}

func TestExecute_AllSlotsFree(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{occupancy: map[domain.TimeSlot]int{}}, &fakeProjectRepo{})

	resp, err := uc.Execute(context.Background(), Request{ProjectName: "riviera", Date: date("2026-01-29")})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 6)
	for _, s := range resp.Slots {
		assert.True(t, s.Available, "slot %s", s.TimeSlot)
		assert.Equal(t, 1, s.Limit)
	}
	assert.True(t, resp.HasAvailable())
}

func TestExecute_PartialOccupancy(t *testing.T) {
	bookings := &fakeBookingRepo{occupancy: map[domain.TimeSlot]int{
		"09:00": 1,
		"13:00": 1,
	}}
	uc := newTestUseCase(bookings, &fakeProjectRepo{})

	resp, err := uc.Execute(context.Background(), Request{ProjectName: "riviera", Date: date("2026-01-29")})

	require.NoError(t, err)

	bySlot := make(map[domain.TimeSlot]SlotAvailability)
	for _, s := range resp.Slots {
		bySlot[s.TimeSlot] = s
	}
	assert.False(t, bySlot["09:00"].Available)
	assert.False(t, bySlot["13:00"].Available)
	assert.True(t, bySlot["10:00"].Available)
	assert.True(t, bySlot["16:00"].Available)
}

func TestExecute_RaisedSlotsLimit(t *testing.T) {
	bookings := &fakeBookingRepo{occupancy: map[domain.TimeSlot]int{"09:00": 1}}
	projects := &fakeProjectRepo{project: &domain.Project{Name: "riviera", SlotsLimit: 2}}
	uc := newTestUseCase(bookings, projects)

	resp, err := uc.Execute(context.Background(), Request{ProjectName: "riviera", Date: date("2026-01-29")})

	require.NoError(t, err)
	for _, s := range resp.Slots {
		assert.True(t, s.Available, "slot %s", s.TimeSlot)
		assert.Equal(t, 2, s.Limit)
	}
}

func TestExecute_WeekendRejected(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeProjectRepo{})

	_, err := uc.Execute(context.Background(), Request{ProjectName: "riviera", Date: date("2026-01-31")})

	assert.ErrorIs(t, err, ErrDateNotAllowed)
}

func TestExecute_DateBeforeMinimum(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeProjectRepo{})

	_, err := uc.Execute(context.Background(), Request{ProjectName: "riviera", Date: date("2026-01-28")})

	assert.ErrorIs(t, err, ErrDateNotAllowed)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeProjectRepo{})

	_, err := uc.Execute(context.Background(), Request{ProjectName: "", Date: date("2026-01-29")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), Request{ProjectName: "riviera"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
