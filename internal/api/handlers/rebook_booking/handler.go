package rebook_booking

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dks-soft/DKS-HandoverService/internal/api/handlers"
	"github.com/dks-soft/DKS-HandoverService/internal/api/middleware"
	"github.com/dks-soft/DKS-HandoverService/internal/domain"
	rebookBooking "github.com/dks-soft/DKS-HandoverService/internal/usecase/rebook_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный идентификатор записи"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgBookingNotFound    = "запись не найдена"
	msgAccessDenied       = "запись принадлежит другому пользователю"
	msgTooLateToRebook    = "перенести запись уже нельзя, до визита осталось слишком мало времени"
	msgDateNotAllowed     = "перенос на эту дату недоступен, ближайшая доступная дата %s"
	msgInvalidTimeSlot    = "некорректное время, выберите слот из расписания"
	msgSlotFull           = "все места на выбранные дату и время заняты, исходная запись сохранена"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase RebookBookingUseCase
	logger  Logger
}

func NewHandler(useCase RebookBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/rebook
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userTgID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "требуется авторизация")
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("POST /bookings/{id}/rebook - Invalid booking id: %s", mux.Vars(r)["bookingId"])
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RebookBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/%d/rebook - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, userTgID)
	if err != nil {
		h.logger.Warn("POST /bookings/%d/rebook - Failed to parse date %q: %v", bookingID, req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rebookBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/%d/rebook - Booking not found", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, rebookBooking.ErrForbidden):
			h.logger.Warn("POST /bookings/%d/rebook - Access denied for user=%d", bookingID, userTgID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, rebookBooking.ErrTooLateToRebook):
			h.logger.Warn("POST /bookings/%d/rebook - Too late to rebook", bookingID)
			handlers.RespondBadRequest(w, msgTooLateToRebook)

		case errors.Is(err, rebookBooking.ErrDateNotAllowed):
			var dnaErr *rebookBooking.DateNotAllowedError
			msg := msgInvalidInput
			if errors.As(err, &dnaErr) {
				msg = fmt.Sprintf(msgDateNotAllowed, dnaErr.MinDate.Format(domain.DateFormat))
			}
			h.logger.Warn("POST /bookings/%d/rebook - Date not allowed: date=%s", bookingID, req.Date)
			handlers.RespondBadRequest(w, msg)

		case errors.Is(err, rebookBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings/%d/rebook - Invalid time slot: %s", bookingID, req.TimeSlot)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, rebookBooking.ErrSlotFull):
			h.logger.Warn("POST /bookings/%d/rebook - Slot full: date=%s, slot=%s", bookingID, req.Date, req.TimeSlot)
			handlers.RespondError(w, http.StatusConflict, msgSlotFull)

		case errors.Is(err, rebookBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/%d/rebook - Invalid input: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/%d/rebook - Failed: user=%d, error=%v", bookingID, userTgID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/%d/rebook - Booking rebooked: new_id=%d, user=%d, date=%s, slot=%s",
		bookingID, result.BookingID, userTgID, req.Date, req.TimeSlot)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
