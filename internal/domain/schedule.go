package domain

import "time"

// Правила рабочих дней: запись возможна только в будни, минимальная дата
// зависит от текущего дня недели и времени суток (операционный дедлайн 12:00).

// IsWorkingDay возвращает true для будних дней (пн-пт)
func IsWorkingDay(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// DateOnly обнуляет время, оставляя только дату
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NextWorkingDay возвращает ближайший рабочий день после указанной даты
func NextWorkingDay(d time.Time) time.Time {
	next := DateOnly(d).AddDate(0, 0, 1)
	for !IsWorkingDay(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// MinBookingDate возвращает минимальную дату, на которую возможна новая запись:
//   - Пятница (в любое время) — следующий понедельник: в выходные некому
//     готовить выдачу, поэтому дедлайн 12:00 к пятнице не применяется
//   - Суббота и воскресенье — вторник после ближайшего понедельника
//   - Пн-Чт до 12:00 — следующий рабочий день
//   - Пн-Чт после 12:00 — через один рабочий день
func MinBookingDate(now time.Time) time.Time {
	today := DateOnly(now)

	switch now.Weekday() {
	case time.Friday:
		return NextWorkingDay(today) // понедельник
	case time.Saturday, time.Sunday:
		monday := NextWorkingDay(today)
		return NextWorkingDay(monday) // вторник
	}

	nextWorking := NextWorkingDay(today)
	if now.Hour() < CutoffHour {
		return nextWorking
	}
	return NextWorkingDay(nextWorking)
}

// EffectiveMinDate возвращает минимальную дату записи по договору:
// максимум из общего бизнес-правила и даты сдачи объекта
func EffectiveMinDate(now time.Time, deliveryDate time.Time) time.Time {
	minDate := MinBookingDate(now)
	delivery := DateOnly(deliveryDate)
	if delivery.After(minDate) {
		return delivery
	}
	return minDate
}
