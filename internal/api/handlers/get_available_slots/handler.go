package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dks-soft/DKS-HandoverService/internal/api/handlers"
	"github.com/dks-soft/DKS-HandoverService/internal/domain"
	getAvailableSlots "github.com/dks-soft/DKS-HandoverService/internal/usecase/get_available_slots"
)

const (
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateNotAllowed = "запись на эту дату недоступна"
	msgInvalidInput   = "некорректные данные запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/projects/{project}/available-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	projectName := mux.Vars(r)["project"]

	rawDate := r.URL.Query().Get("date")
	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		h.logger.Warn("GET /projects/%s/available-slots - Invalid date %q: %v", projectName, rawDate, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), getAvailableSlots.Request{
		ProjectName: projectName,
		Date:        date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrDateNotAllowed):
			h.logger.Warn("GET /projects/%s/available-slots - Date not allowed: %s", projectName, rawDate)
			handlers.RespondBadRequest(w, msgDateNotAllowed)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /projects/%s/available-slots - Invalid input: %v", projectName, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /projects/%s/available-slots - Failed: %v", projectName, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
