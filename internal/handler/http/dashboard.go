package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/barberdesk/salon-backend-go/internal/domain/auth"
	"github.com/barberdesk/salon-backend-go/internal/domain/stats"
	"github.com/barberdesk/salon-backend-go/internal/domain/user"
	"github.com/barberdesk/salon-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DashboardHandler interface {
	Admin(w http.ResponseWriter, r *http.Request)
	Employee(w http.ResponseWriter, r *http.Request)
	Archive(w http.ResponseWriter, r *http.Request)
	GlobalArchive(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	statsService stats.StatsService
}

func NewDashboardHandler(statsService stats.StatsService) DashboardHandler {
	return &DashboardHandlerImpl{statsService: statsService}
}

// Admin implements DashboardHandler.
func (h *DashboardHandlerImpl) Admin(w http.ResponseWriter, r *http.Request) {
	principal, err := user.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	dashboard, err := h.statsService.AdminDashboard(r.Context(), principal)
	if err != nil {
		slog.Error("Admin dashboard service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, dashboard)
}

// Employee implements DashboardHandler.
func (h *DashboardHandlerImpl) Employee(w http.ResponseWriter, r *http.Request) {
	principal, err := user.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	dashboard, err := h.statsService.EmployeeDashboard(r.Context(), principal)
	if err != nil {
		slog.Error("Employee dashboard service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, dashboard)
}

// Archive implements DashboardHandler. Serves the archived period snapshots
// of one employee; ?period defaults to daily.
func (h *DashboardHandlerImpl) Archive(w http.ResponseWriter, r *http.Request) {
	principal, err := user.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	// monthly_global rows carry no employee id; they live on /dashboard/archive
	period := stats.Period(r.URL.Query().Get("period"))
	switch period {
	case stats.StatPeriodDaily, stats.StatPeriodWeekly:
	case "":
		period = stats.StatPeriodDaily
	default:
		response.BadRequest(w, "Unknown period", map[string]string{"period": "must be daily or weekly"})
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	rows, err := h.statsService.ListArchive(r.Context(), principal, chi.URLParam(r, "id"), period, limit)
	if err != nil {
		slog.Error("Archive stats service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

// GlobalArchive implements DashboardHandler. Serves the monthly all-employee
// snapshots.
func (h *DashboardHandlerImpl) GlobalArchive(w http.ResponseWriter, r *http.Request) {
	principal, err := user.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	rows, err := h.statsService.ListGlobalArchive(r.Context(), principal, limit)
	if err != nil {
		slog.Error("Global archive stats service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}
