package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/dks-soft/DKS-HandoverService/internal/domain"
)

var (
	// ErrContractNotFound возвращается, когда договор не найден в проекте
	ErrContractNotFound = errors.New("create_booking: contract not found")

	// ErrContractOwned возвращается, когда договор закреплен за другим пользователем
	// Детали договора при этом не раскрываются
	ErrContractOwned = errors.New("create_booking: contract belongs to another user")

	// ErrAlreadyBooked возвращается, когда по договору уже есть активная запись
	ErrAlreadyBooked = errors.New("create_booking: contract already has an active booking")

	// ErrDateNotAllowed возвращается, когда дата раньше минимально допустимой
	// или приходится на выходной день
	ErrDateNotAllowed = errors.New("create_booking: date is not allowed")

	// ErrInvalidTimeSlot возвращается, когда метка слота не входит в расписание
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotFull возвращается, когда все места на выбранные дату и время заняты
	ErrSlotFull = errors.New("create_booking: slot is full")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// AlreadyBookedError несет дату существующей активной записи
// Сопоставляется с ErrAlreadyBooked через errors.Is
type AlreadyBookedError struct {
	ExistingDate time.Time
}

func (e *AlreadyBookedError) Error() string {
	return fmt.Sprintf("create_booking: contract already has an active booking on %s",
		e.ExistingDate.Format(domain.DateFormat))
}

func (e *AlreadyBookedError) Unwrap() error {
	return ErrAlreadyBooked
}

// DateNotAllowedError несет минимально допустимую дату записи
// Сопоставляется с ErrDateNotAllowed через errors.Is
type DateNotAllowedError struct {
	MinDate time.Time
}

func (e *DateNotAllowedError) Error() string {
	return fmt.Sprintf("create_booking: date is not allowed, earliest allowed is %s",
		e.MinDate.Format(domain.DateFormat))
}

func (e *DateNotAllowedError) Unwrap() error {
	return ErrDateNotAllowed
}
