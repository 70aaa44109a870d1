package import_contracts_diff

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

// Handle POST /api/v1/contracts/import/diff
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req DiffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /contracts/import/diff - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Diff(r.Context(), reconcileContracts.DiffRequest{
		ProjectName: req.ProjectName,
		Records:     ToUseCaseRecords(req.Records),
	})
	if err != nil {
		switch {
		case errors.Is(err, reconcileContracts.ErrInvalidInput):
			h.logger.Warn("POST /contracts/import/diff - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /contracts/import/diff - Failed: project=%s, error=%v", req.ProjectName, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /contracts/import/diff - project=%s: new=%d, updated=%d, renumbered=%d, unchanged=%d, errors=%d",
		req.ProjectName, len(result.New), len(result.Updated), len(result.Renumbered), result.Unchanged, len(result.Errors))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
