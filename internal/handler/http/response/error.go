package response

import (
	"errors"
	"net/http"

	"github.com/barberdesk/salon-backend-go/internal/domain/auth"
	"github.com/barberdesk/salon-backend-go/internal/domain/catalog"
	"github.com/barberdesk/salon-backend-go/internal/domain/charge"
	"github.com/barberdesk/salon-backend-go/internal/domain/commission"
	"github.com/barberdesk/salon-backend-go/internal/domain/employee"
	"github.com/barberdesk/salon-backend-go/internal/domain/revenue"
	"github.com/barberdesk/salon-backend-go/internal/domain/user"
	"github.com/barberdesk/salon-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidRefreshToken):
		Unauthorized(w, "Invalid or expired refresh token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token revoked")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this employee")

	// Catalog domain errors
	case errors.Is(err, catalog.ErrPackageNotFound):
		NotFound(w, "Package not found")
	case errors.Is(err, catalog.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this package")

	// Revenue domain errors
	case errors.Is(err, revenue.ErrRevenueNotFound):
		NotFound(w, "Revenue not found")
	case errors.Is(err, revenue.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this revenue")

	// Charge domain errors
	case errors.Is(err, charge.ErrChargeNotFound):
		NotFound(w, "Charge not found")
	case errors.Is(err, charge.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this charge")

	// Commission domain errors
	case errors.Is(err, commission.ErrCommissionNotFound):
		NotFound(w, "Weekly commission not found")
	case errors.Is(err, commission.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this commission")
	case errors.Is(err, commission.ErrAlreadyValidated):
		Conflict(w, "Commission already validated")
	case errors.Is(err, commission.ErrNotValidatedYet):
		Conflict(w, "Commission must be validated before payment")
	case errors.Is(err, commission.ErrAlreadyPaid):
		Conflict(w, "Commission already paid")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
