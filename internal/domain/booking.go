package domain

import (
	"fmt"
	"time"
)

// TimeSlot метка одного из шести фиксированных часовых слотов, формат HH:MM
type TimeSlot string

// Validate проверяет, что слот входит в фиксированное расписание
func (s TimeSlot) Validate() error {
	for _, known := range TimeSlots {
		if s == known {
			return nil
		}
	}
	return fmt.Errorf("unknown time slot %q", string(s))
}

// String возвращает строковое представление слота
func (s TimeSlot) String() string {
	return string(s)
}

// Booking запись на передачу ключей по договору
type Booking struct {
	ID          int64
	ContractID  int64
	Date        time.Time
	TimeSlot    TimeSlot
	CreatorTgID int64 // кто создал запись; может отличаться от владельца договора в legacy данных
	ClientPhone string

	// IsCancelled мягкая отмена; записи никогда не удаляются физически
	IsCancelled bool

	// Одноразовые флаги напоминаний, выставляются внешним планировщиком
	ReminderDaySent  bool
	ReminderHourSent bool

	CreatedAt time.Time
}

// IsActive возвращает true, если запись не отменена
func (b *Booking) IsActive() bool {
	return !b.IsCancelled
}

// IsUpcoming возвращает true, если запись активна и её дата сегодня или позже
func (b *Booking) IsUpcoming(today time.Time) bool {
	return b.IsActive() && !DateOnly(b.Date).Before(DateOnly(today))
}

// BelongsTo возвращает true, если запись создана указанным пользователем
func (b *Booking) BelongsTo(tgID int64) bool {
	return b.CreatorTgID == tgID
}
