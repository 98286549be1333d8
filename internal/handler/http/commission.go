package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/barberdesk/salon-backend-go/internal/domain/auth"
	"github.com/barberdesk/salon-backend-go/internal/domain/commission"
	"github.com/barberdesk/salon-backend-go/internal/domain/user"
	"github.com/barberdesk/salon-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type CommissionHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Validate(w http.ResponseWriter, r *http.Request)
	Pay(w http.ResponseWriter, r *http.Request)
}

type CommissionHandlerImpl struct {
	commissionService commission.CommissionService
}

func NewCommissionHandler(commissionService commission.CommissionService) CommissionHandler {
	return &CommissionHandlerImpl{commissionService: commissionService}
}

// Generate implements CommissionHandler. Admin-triggered recomputation of
// the weekly snapshots; the scheduler runs the same operation nightly.
func (h *CommissionHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var generateReq commission.GenerateRequest

	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&generateReq); err != nil {
			slog.Error("Generate commissions decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	summary, err := h.commissionService.Generate(r.Context(), generateReq)
	if err != nil {
		slog.Error("Generate commissions service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Weekly commissions generated", summary)
}

// ListMine implements CommissionHandler.
func (h *CommissionHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, err := user.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	commissions, err := h.commissionService.ListMine(r.Context(), principal, limit)
	if err != nil {
		slog.Error("ListMine commissions service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, commissions)
}

// Validate implements CommissionHandler.
func (h *CommissionHandlerImpl) Validate(w http.ResponseWriter, r *http.Request) {
	principal, err := user.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	validated, err := h.commissionService.Validate(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("Validate commission service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Commission validated", validated)
}

// Pay implements CommissionHandler.
func (h *CommissionHandlerImpl) Pay(w http.ResponseWriter, r *http.Request) {
	principal, err := user.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	paid, err := h.commissionService.Pay(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("Pay commission service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Commission marked as paid", paid)
}
