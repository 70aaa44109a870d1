package create_booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dks-soft/DKS-HandoverService/internal/api/handlers"
	"github.com/dks-soft/DKS-HandoverService/internal/api/middleware"
	"github.com/dks-soft/DKS-HandoverService/internal/domain"
	createBooking "github.com/dks-soft/DKS-HandoverService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgContractNotFound   = "договор не найден"
	msgContractOwned      = "договор закреплен за другим пользователем"
	msgAlreadyBooked      = "по договору уже есть запись на %s"
	msgDateNotAllowed     = "запись на эту дату недоступна, ближайшая доступная дата %s"
	msgInvalidTimeSlot    = "некорректное время, выберите слот из расписания"
	msgSlotFull           = "все места на выбранные дату и время заняты"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userTgID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "требуется авторизация")
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userTgID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrContractNotFound):
			h.logger.Warn("POST /bookings - Contract not found: project=%s, contract=%s",
				req.ProjectName, req.ContractNum)
			handlers.RespondNotFound(w, msgContractNotFound)

		case errors.Is(err, createBooking.ErrContractOwned):
			h.logger.Warn("POST /bookings - Contract owned by another user: user=%d", userTgID)
			handlers.RespondForbidden(w, msgContractOwned)

		case errors.Is(err, createBooking.ErrAlreadyBooked):
			var abErr *createBooking.AlreadyBookedError
			msg := msgInvalidInput
			if errors.As(err, &abErr) {
				msg = fmt.Sprintf(msgAlreadyBooked, abErr.ExistingDate.Format(domain.DateFormat))
			}
			h.logger.Warn("POST /bookings - Already booked: user=%d, contract=%s", userTgID, req.ContractNum)
			handlers.RespondError(w, http.StatusConflict, msg)

		case errors.Is(err, createBooking.ErrDateNotAllowed):
			var dnaErr *createBooking.DateNotAllowedError
			msg := msgInvalidInput
			if errors.As(err, &dnaErr) {
				msg = fmt.Sprintf(msgDateNotAllowed, dnaErr.MinDate.Format(domain.DateFormat))
			}
			h.logger.Warn("POST /bookings - Date not allowed: user=%d, date=%s", userTgID, req.Date)
			handlers.RespondBadRequest(w, msg)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: user=%d, slot=%s", userTgID, req.TimeSlot)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrSlotFull):
			h.logger.Warn("POST /bookings - Slot full: project=%s, date=%s, slot=%s",
				req.ProjectName, req.Date, req.TimeSlot)
			handlers.RespondError(w, http.StatusConflict, msgSlotFull)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user=%d: %v", userTgID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user=%d, error=%v", userTgID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, user=%d, date=%s, slot=%s",
		result.BookingID, userTgID, req.Date, req.TimeSlot)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
