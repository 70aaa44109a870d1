package bookings

import "errors"

var (
	// ErrContractNotFound возвращается, когда договор не найден в проекте
	ErrContractNotFound = errors.New("service.bookings: contract not found")

	// ErrBookingNotFound возвращается, когда запись не найдена или уже отменена
	ErrBookingNotFound = errors.New("service.bookings: booking not found")

	// ErrAccessDenied возвращается, когда договор или запись принадлежат
	// другому пользователю. Детали при этом не раскрываются
	ErrAccessDenied = errors.New("service.bookings: access denied")

	// ErrTooLateToCancel возвращается, когда до визита осталось слишком мало времени
	ErrTooLateToCancel = errors.New("service.bookings: too late to cancel")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("service.bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service.bookings: internal error")
)
