package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/barberdesk/salon-backend-go/internal/domain/auth"
	"github.com/barberdesk/salon-backend-go/internal/domain/revenue"
	"github.com/barberdesk/salon-backend-go/internal/domain/user"
	"github.com/barberdesk/salon-backend-go/internal/handler/http/response"
)

type RevenueHandler interface {
	SelectPackage(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
}

type RevenueHandlerImpl struct {
	revenueService revenue.RevenueService
}

func NewRevenueHandler(revenueService revenue.RevenueService) RevenueHandler {
	return &RevenueHandlerImpl{revenueService: revenueService}
}

// SelectPackage implements RevenueHandler.
func (h *RevenueHandlerImpl) SelectPackage(w http.ResponseWriter, r *http.Request) {
	principal, err := user.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var selectReq revenue.SelectPackageRequest
	if err := json.NewDecoder(r.Body).Decode(&selectReq); err != nil {
		slog.Error("SelectPackage decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	sale, err := h.revenueService.SelectPackage(r.Context(), principal, selectReq)
	if err != nil {
		slog.Error("SelectPackage service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Sale recorded successfully", sale)
}

// ListMine implements RevenueHandler.
func (h *RevenueHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, err := user.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	revenues, err := h.revenueService.ListMine(r.Context(), principal, limit)
	if err != nil {
		slog.Error("ListMine revenues service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, revenues)
}
