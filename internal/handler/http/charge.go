package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/barberdesk/salon-backend-go/internal/domain/auth"
	"github.com/barberdesk/salon-backend-go/internal/domain/charge"
	"github.com/barberdesk/salon-backend-go/internal/domain/user"
	"github.com/barberdesk/salon-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ChargeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type ChargeHandlerImpl struct {
	chargeService charge.ChargeService
}

func NewChargeHandler(chargeService charge.ChargeService) ChargeHandler {
	return &ChargeHandlerImpl{chargeService: chargeService}
}

// Create implements ChargeHandler.
func (h *ChargeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	principal, err := user.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var createReq charge.CreateChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create charge decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.chargeService.Create(r.Context(), principal, createReq)
	if err != nil {
		slog.Error("Create charge service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Charge recorded successfully", created)
}

// List implements ChargeHandler.
func (h *ChargeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	principal, err := user.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	listReq := charge.ListChargesRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	charges, err := h.chargeService.List(r.Context(), principal, listReq)
	if err != nil {
		slog.Error("List charges service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, charges)
}

// Delete implements ChargeHandler.
func (h *ChargeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	principal, err := user.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	if err := h.chargeService.Delete(r.Context(), principal, chi.URLParam(r, "id")); err != nil {
		slog.Error("Delete charge service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Charge deleted successfully", nil)
}
