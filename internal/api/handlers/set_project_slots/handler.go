package set_project_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dks-soft/DKS-HandoverService/internal/api/handlers"
	projectsService "github.com/dks-soft/DKS-HandoverService/internal/service/projects"
	"github.com/dks-soft/DKS-HandoverService/internal/service/projects/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные настройки проекта, лимит слотов должен быть не меньше 1"
)

type Handler struct {
	service ProjectService
	logger  Logger
}

func NewHandler(service ProjectService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/projects/{project}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	projectName := mux.Vars(r)["project"]

	var req SetProjectSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /projects/%s/slots - Invalid request body: %v", projectName, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateSlots(r.Context(), &models.UpdateSlotsRequest{
		ProjectName: projectName,
		SlotsLimit:  req.SlotsLimit,
		AddressRu:   req.AddressRu,
		AddressUz:   req.AddressUz,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		switch {
		case errors.Is(err, projectsService.ErrInvalidInput):
			h.logger.Warn("PUT /projects/%s/slots - Invalid input: %v", projectName, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /projects/%s/slots - Failed: %v", projectName, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /projects/%s/slots - Slots limit set to %d", projectName, result.SlotsLimit)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
