package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hour, min int) time.Time {
	return time.Date(y, m, d, hour, min, 0, 0, time.UTC)
}

func TestNextWorkingDay(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		want time.Time
	}{
		{"monday to tuesday", date(2026, time.January, 26), date(2026, time.January, 27)},
		{"thursday to friday", date(2026, time.January, 29), date(2026, time.January, 30)},
		{"friday skips weekend", date(2026, time.January, 30), date(2026, time.February, 2)},
		{"saturday to monday", date(2026, time.January, 31), date(2026, time.February, 2)},
		{"sunday to monday", date(2026, time.February, 1), date(2026, time.February, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextWorkingDay(tt.from)
			assert.Equal(t, tt.want, got)
			assert.True(t, IsWorkingDay(got))
			assert.True(t, got.After(tt.from))
		})
	}
}

func TestNextWorkingDay_AlwaysSmallestWorkingDay(t *testing.T) {
	// Для каждого дня января проверяем минимальность результата
	for day := 1; day <= 31; day++ {
		from := date(2026, time.January, day)
		got := NextWorkingDay(from)
		for d := from.AddDate(0, 0, 1); d.Before(got); d = d.AddDate(0, 0, 1) {
			assert.False(t, IsWorkingDay(d), "skipped day %s must be a weekend", d.Format(DateFormat))
		}
	}
}

func TestMinBookingDate(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		// 2026-01-28 — среда
		{"wednesday before cutoff", at(2026, time.January, 28, 11, 59), date(2026, time.January, 29)},
		{"wednesday at cutoff", at(2026, time.January, 28, 12, 0), date(2026, time.January, 30)},
		{"wednesday after cutoff", at(2026, time.January, 28, 12, 1), date(2026, time.January, 30)},
		{"thursday before cutoff", at(2026, time.January, 29, 11, 59), date(2026, time.January, 30)},
		// Четверг после 12:00 пропускает пятницу и выходные
		{"thursday after cutoff", at(2026, time.January, 29, 12, 1), date(2026, time.February, 2)},
		// Пятница в любое время — следующий понедельник
		{"friday morning", at(2026, time.January, 30, 9, 0), date(2026, time.February, 2)},
		{"friday before cutoff", at(2026, time.January, 30, 11, 59), date(2026, time.February, 2)},
		{"friday after cutoff", at(2026, time.January, 30, 18, 30), date(2026, time.February, 2)},
		// Выходные — вторник после ближайшего понедельника
		{"saturday", at(2026, time.January, 31, 10, 0), date(2026, time.February, 3)},
		{"sunday", at(2026, time.February, 1, 23, 0), date(2026, time.February, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MinBookingDate(tt.now))
		})
	}
}

func TestMinBookingDate_NeverWeekend(t *testing.T) {
	for day := 1; day <= 28; day++ {
		for _, hour := range []int{0, 9, 12, 18, 23} {
			got := MinBookingDate(at(2026, time.February, day, hour, 0))
			assert.True(t, IsWorkingDay(got))
		}
	}
}

func TestEffectiveMinDate(t *testing.T) {
	now := at(2026, time.January, 28, 10, 0) // среда до 12:00, минимум — четверг 29-е

	t.Run("delivery date in the past has no effect", func(t *testing.T) {
		got := EffectiveMinDate(now, date(2025, time.June, 1))
		assert.Equal(t, date(2026, time.January, 29), got)
	})

	t.Run("future delivery date wins", func(t *testing.T) {
		got := EffectiveMinDate(now, date(2026, time.March, 15))
		assert.Equal(t, date(2026, time.March, 15), got)
	})
}

func TestTimeSlotValidate(t *testing.T) {
	for _, slot := range TimeSlots {
		assert.NoError(t, slot.Validate())
	}
	assert.Error(t, TimeSlot("12:00").Validate())
	assert.Error(t, TimeSlot("9:00").Validate())
	assert.Error(t, TimeSlot("").Validate())
}
