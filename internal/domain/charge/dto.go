package charge

import (
	"time"

	"github.com/barberdesk/salon-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateChargeRequest struct {
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"` // YYYY-MM-DD; empty means today
	Description *string         `json:"description,omitempty"`
}

func (r *CreateChargeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}
	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListChargesRequest struct {
	StartDate string // optional YYYY-MM-DD
	EndDate   string // optional YYYY-MM-DD, inclusive
}

func (r *ListChargesRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.StartDate != "" {
		if _, ok := validator.IsValidDate(r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
		}
	}
	if r.EndDate != "" {
		if _, ok := validator.IsValidDate(r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ChargeResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description *string         `json:"description,omitempty"`
}

func ToResponse(c Charge) ChargeResponse {
	return ChargeResponse{
		ID:          c.ID,
		Name:        c.Name,
		Amount:      c.Amount,
		Date:        c.Date,
		Description: c.Description,
	}
}
