package import_contracts_apply

import (
	"errors"
	"net/http"

	"github.com/dks-soft/DKS-HandoverService/internal/api/handlers"
	reconcileContracts "github.com/dks-soft/DKS-HandoverService/internal/usecase/reconcile_contracts"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные реестра"
)

type Handler struct {
	useCase ReconcileUseCase
	logger  Logger
}

func NewHandler(useCase ReconcileUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/contracts/import/apply
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ApplyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /contracts/import/apply - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Apply(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, reconcileContracts.ErrInvalidInput):
			h.logger.Warn("POST /contracts/import/apply - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /contracts/import/apply - Failed: project=%s, error=%v", req.ProjectName, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /contracts/import/apply - project=%s: added=%d, updated=%d, renumbered=%d, skipped=%d",
		req.ProjectName, result.Added, result.Updated, result.Renumbered, result.Skipped)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
