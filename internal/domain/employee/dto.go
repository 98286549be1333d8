package employee

import (
	"time"

	"github.com/barberdesk/salon-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	FirstName            string          `json:"first_name"`
	LastName             string          `json:"last_name"`
	Email                string          `json:"email"`
	Password             string          `json:"password"`
	CommissionPercentage decimal.Decimal `json:"commission_percentage"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "is required"})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "must be at least 8 characters"})
	}
	if r.CommissionPercentage.IsNegative() || r.CommissionPercentage.GreaterThan(decimal.NewFromInt(100)) {
		errs = append(errs, validator.ValidationError{Field: "commission_percentage", Message: "must be between 0 and 100"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID                   string
	FirstName            *string          `json:"first_name,omitempty"`
	LastName             *string          `json:"last_name,omitempty"`
	Password             *string          `json:"password,omitempty"`
	CommissionPercentage *decimal.Decimal `json:"commission_percentage,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FirstName != nil && validator.IsEmpty(*r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "cannot be empty"})
	}
	if r.LastName != nil && validator.IsEmpty(*r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "cannot be empty"})
	}
	if r.Password != nil && len(*r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "must be at least 8 characters"})
	}
	if r.CommissionPercentage != nil && (r.CommissionPercentage.IsNegative() || r.CommissionPercentage.GreaterThan(decimal.NewFromInt(100))) {
		errs = append(errs, validator.ValidationError{Field: "commission_percentage", Message: "must be between 0 and 100"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID                   string          `json:"id"`
	FirstName            string          `json:"first_name"`
	LastName             string          `json:"last_name"`
	Email                string          `json:"email"`
	CommissionPercentage decimal.Decimal `json:"commission_percentage"`
	CreatedAt            time.Time       `json:"created_at"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                   e.ID,
		FirstName:            e.FirstName,
		LastName:             e.LastName,
		Email:                e.Email,
		CommissionPercentage: e.CommissionPercentage,
		CreatedAt:            e.CreatedAt,
	}
}
