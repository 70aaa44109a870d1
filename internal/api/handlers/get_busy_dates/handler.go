package get_busy_dates

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dks-soft/DKS-HandoverService/internal/api/handlers"
	"github.com/dks-soft/DKS-HandoverService/internal/domain"
	getBusyDates "github.com/dks-soft/DKS-HandoverService/internal/usecase/get_busy_dates"
)

const (
	msgInvalidRange = "некорректный диапазон дат, ожидается from=YYYY-MM-DD&to=YYYY-MM-DD"
)

// BusyDatesResponse HTTP response model
type BusyDatesResponse struct {
	ProjectName string   `json:"projectName"`
	BusyDates   []string `json:"busyDates"`
}

type Handler struct {
	useCase GetBusyDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetBusyDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/projects/{project}/busy-dates?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	projectName := mux.Vars(r)["project"]

	from, errFrom := time.Parse(domain.DateFormat, r.URL.Query().Get("from"))
	to, errTo := time.Parse(domain.DateFormat, r.URL.Query().Get("to"))
	if errFrom != nil || errTo != nil {
		h.logger.Warn("GET /projects/%s/busy-dates - Invalid range: from=%q, to=%q",
			projectName, r.URL.Query().Get("from"), r.URL.Query().Get("to"))
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	result, err := h.useCase.Execute(r.Context(), getBusyDates.Request{
		ProjectName: projectName,
		From:        from,
		To:          to,
	})
	if err != nil {
		switch {
		case errors.Is(err, getBusyDates.ErrInvalidInput):
			h.logger.Warn("GET /projects/%s/busy-dates - Invalid input: %v", projectName, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /projects/%s/busy-dates - Failed: %v", projectName, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	dates := make([]string, 0, len(result.BusyDates))
	for _, d := range result.BusyDates {
		dates = append(dates, d.Format(domain.DateFormat))
	}

	handlers.RespondJSON(w, http.StatusOK, &BusyDatesResponse{
		ProjectName: result.ProjectName,
		BusyDates:   dates,
	})
}
