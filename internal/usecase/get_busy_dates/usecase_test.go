package get_busy_dates

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
	counts map[time.Time]int
}

func (f *fakeBookingRepo) CountActiveByDateRange(_ context.Context, _ string, _, _ time.Time) (map[time.Time]int, error) {
	return f.counts, nil
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

func TestExecute_DefaultCapacity(t *testing.T) {
	// Лимит по умолчанию 1, емкость дня — 6 записей
	bookings := &fakeBookingRepo{counts: map[time.Time]int{
		date("2026-03-02"): 6,
		date("2026-03-03"): 5,
		date("2026-03-04"): 7,
	}}
	uc := NewUseCase(bookings, &fakeProjectRepo{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), Request{
		ProjectName: "riviera",
		From:        date("2026-03-01"),
		To:          date("2026-03-31"),
	})

	require.NoError(t, err)
	assert.Equal(t, []time.Time{date("2026-03-02"), date("2026-03-04")}, resp.BusyDates)
}

func TestExecute_RaisedSlotsLimit(t *testing.T) {
	// Лимит 2 поднимает емкость дня до 12 записей
	bookings := &fakeBookingRepo{counts: map[time.Time]int{
		date("2026-03-02"): 12,
		date("2026-03-03"): 11,
	}}
	projects := &fakeProjectRepo{project: &domain.Project{Name: "riviera", SlotsLimit: 2}}
	uc := NewUseCase(bookings, projects, nopLogger{})

	resp, err := uc.Execute(context.Background(), Request{
		ProjectName: "riviera",
		From:        date("2026-03-01"),
		To:          date("2026-03-31"),
	})

	require.NoError(t, err)
	assert.Equal(t, []time.Time{date("2026-03-02")}, resp.BusyDates)
}

func TestExecute_EmptyRange(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{counts: map[time.Time]int{}}, &fakeProjectRepo{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), Request{
		ProjectName: "riviera",
		From:        date("2026-03-01"),
		To:          date("2026-03-31"),
	})

	require.NoError(t, err)
	assert.Empty(t, resp.BusyDates)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeProjectRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), Request{From: date("2026-03-01"), To: date("2026-03-31")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), Request{ProjectName: "riviera"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), Request{
		ProjectName: "riviera",
		From:        date("2026-03-31"),
		To:          date("2026-03-01"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
