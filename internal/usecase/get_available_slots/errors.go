package get_available_slots

import "errors"

var (
	// ErrDateNotAllowed возвращается, когда дата раньше минимально допустимой
	// или приходится на выходной день
	ErrDateNotAllowed = errors.New("get_available_slots: date is not allowed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
