package get_project_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dks-soft/DKS-HandoverService/internal/api/handlers"
	"github.com/dks-soft/DKS-HandoverService/internal/domain"
	bookingsService "github.com/dks-soft/DKS-HandoverService/internal/service/bookings"
	"github.com/dks-soft/DKS-HandoverService/internal/service/bookings/models"
)

const (
	msgInvalidRange = "некорректный диапазон дат, ожидается from=YYYY-MM-DD&to=YYYY-MM-DD"
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

// Handle GET /api/v1/projects/{project}/bookings?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	projectName := mux.Vars(r)["project"]

	from, errFrom := time.Parse(domain.DateFormat, r.URL.Query().Get("from"))
	to, errTo := time.Parse(domain.DateFormat, r.URL.Query().Get("to"))
	if errFrom != nil || errTo != nil {
		h.logger.Warn("GET /projects/%s/bookings - Invalid range: from=%q, to=%q",
			projectName, r.URL.Query().Get("from"), r.URL.Query().Get("to"))
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	result, err := h.service.ListProjectBookings(r.Context(), &models.ListProjectBookingsRequest{
		ProjectName: projectName,
		From:        from,
		To:          to,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("GET /projects/%s/bookings - Invalid input: %v", projectName, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /projects/%s/bookings - Failed: %v", projectName, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /projects/%s/bookings - %d bookings returned", projectName, len(result.Items))
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
