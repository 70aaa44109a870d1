package resolve_contract

import (
	"errors"
	"net/http"

	"github.com/dks-soft/DKS-HandoverService/internal/api/handlers"
	"github.com/dks-soft/DKS-HandoverService/internal/api/middleware"
	bookingsService "github.com/dks-soft/DKS-HandoverService/internal/service/bookings"
	"github.com/dks-soft/DKS-HandoverService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgContractNotFound   = "договор не найден, проверьте номер"
	msgAccessDenied       = "договор закреплен за другим пользователем"
	msgInvalidInput       = "некорректные данные запроса"
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

// Handle POST /api/v1/contracts/resolve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userTgID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "требуется авторизация")
		return
	}

	var req ResolveContractRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /contracts/resolve - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ResolveContract(r.Context(), &models.ResolveContractRequest{
		ProjectName: req.ProjectName,
		ContractNum: req.ContractNum,
		UserTgID:    userTgID,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrContractNotFound):
			h.logger.Warn("POST /contracts/resolve - Contract not found: project=%s, contract=%s",
				req.ProjectName, req.ContractNum)
			handlers.RespondNotFound(w, msgContractNotFound)

		case errors.Is(err, bookingsService.ErrAccessDenied):
			h.logger.Warn("POST /contracts/resolve - Access denied: user=%d", userTgID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("POST /contracts/resolve - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /contracts/resolve - Failed: user=%d, error=%v", userTgID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /contracts/resolve - Contract resolved: contract_id=%d, user=%d", result.ContractID, userTgID)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
