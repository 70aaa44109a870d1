package cancel_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dks-soft/DKS-HandoverService/internal/api/handlers"
	"github.com/dks-soft/DKS-HandoverService/internal/api/middleware"
	bookingsService "github.com/dks-soft/DKS-HandoverService/internal/service/bookings"
	"github.com/dks-soft/DKS-HandoverService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID = "некорректный идентификатор записи"
	msgBookingNotFound  = "запись не найдена"
	msgAccessDenied     = "запись принадлежит другому пользователю"
	msgTooLateToCancel  = "отменить запись уже нельзя, до визита осталось слишком мало времени"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userTgID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "требуется авторизация")
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid booking id: %s", mux.Vars(r)["bookingId"])
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	err = h.service.Cancel(r.Context(), &models.CancelBookingRequest{
		BookingID: bookingID,
		UserTgID:  userTgID,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/%d/cancel - Booking not found", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/%d/cancel - Access denied for user=%d", bookingID, userTgID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookingsService.ErrTooLateToCancel):
			h.logger.Warn("PATCH /bookings/%d/cancel - Too late to cancel", bookingID)
			handlers.RespondBadRequest(w, msgTooLateToCancel)

		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/%d/cancel - Invalid input: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("PATCH /bookings/%d/cancel - Failed: user=%d, error=%v", bookingID, userTgID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/%d/cancel - Booking cancelled by user=%d", bookingID, userTgID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
