package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/barberdesk/salon-backend-go/internal/domain/auth"
	"github.com/barberdesk/salon-backend-go/internal/domain/catalog"
	"github.com/barberdesk/salon-backend-go/internal/domain/user"
	"github.com/barberdesk/salon-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PackageHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type PackageHandlerImpl struct {
	packageService catalog.PackageService
}

func NewPackageHandler(packageService catalog.PackageService) PackageHandler {
	return &PackageHandlerImpl{packageService: packageService}
}

// Create implements PackageHandler.
func (h *PackageHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	principal, err := user.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var createReq catalog.CreatePackageRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create package decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.packageService.Create(r.Context(), principal, createReq)
	if err != nil {
		slog.Error("Create package service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Package created successfully", created)
}

// List implements PackageHandler.
func (h *PackageHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	principal, err := user.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	packages, err := h.packageService.List(r.Context(), principal)
	if err != nil {
		slog.Error("List packages service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, packages)
}

// Update implements PackageHandler.
func (h *PackageHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	principal, err := user.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var updateReq catalog.UpdatePackageRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update package decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")

	updated, err := h.packageService.Update(r.Context(), principal, updateReq)
	if err != nil {
		slog.Error("Update package service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Package updated successfully", updated)
}

// Delete implements PackageHandler.
func (h *PackageHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	principal, err := user.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	if err := h.packageService.Delete(r.Context(), principal, chi.URLParam(r, "id")); err != nil {
		slog.Error("Delete package service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Package deleted successfully", nil)
}
