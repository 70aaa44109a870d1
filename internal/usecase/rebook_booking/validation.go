package rebook_booking

import "fmt"

// validateRequest проверяет корректность входных данных
func (uc *UseCase) validateRequest(req Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	if req.UserTgID <= 0 {
		return fmt.Errorf("%w: user telegram id must be positive", ErrInvalidInput)
	}

	if req.NewDate.IsZero() {
		return fmt.Errorf("%w: new date is required", ErrInvalidInput)
	}

	if err := req.NewSlot.Validate(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTimeSlot, req.NewSlot)
	}

	return nil
}
