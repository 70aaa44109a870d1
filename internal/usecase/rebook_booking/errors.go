package rebook_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/dks-soft/DKS-HandoverService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда запись не найдена или уже отменена
	ErrBookingNotFound = errors.New("rebook_booking: booking not found")

	// ErrForbidden возвращается, когда запись принадлежит другому пользователю
	ErrForbidden = errors.New("rebook_booking: booking belongs to another user")

	// ErrTooLateToRebook возвращается, когда до визита осталось слишком мало времени
	ErrTooLateToRebook = errors.New("rebook_booking: too late to rebook")

	// ErrDateNotAllowed возвращается, когда новая дата раньше минимально допустимой
	// или приходится на выходной день
	ErrDateNotAllowed = errors.New("rebook_booking: date is not allowed")

	// ErrInvalidTimeSlot возвращается, когда метка слота не входит в расписание
	ErrInvalidTimeSlot = errors.New("rebook_booking: invalid time slot")

	// ErrSlotFull возвращается, когда все места на новые дату и время заняты
	// Исходная запись при этом остается в силе
	ErrSlotFull = errors.New("rebook_booking: slot is full")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("rebook_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("rebook_booking: internal error")
)

// DateNotAllowedError несет минимально допустимую дату записи
// Сопоставляется с ErrDateNotAllowed через errors.Is
type DateNotAllowedError struct {
	MinDate time.Time
}

func (e *DateNotAllowedError) Error() string {
	return fmt.Sprintf("rebook_booking: date is not allowed, earliest allowed is %s",
		e.MinDate.Format(domain.DateFormat))
}

func (e *DateNotAllowedError) Unwrap() error {
	return ErrDateNotAllowed
}
