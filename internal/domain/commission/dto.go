package commission

import (
	"time"

	"github.com/barberdesk/salon-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const DefaultWeeksBack = 4

// GenerateRequest drives one run of the weekly commission generator.
type GenerateRequest struct {
	// WeeksBack is how many past weeks to (re)compute, current week included.
	WeeksBack int `json:"weeks_back"`
	// Force recomputes validated rows too, when the deployment allows it.
	Force bool `json:"force"`
	// DryRun computes and reports without writing anything.
	DryRun bool `json:"dry_run"`
}

func (r *GenerateRequest) Validate() error {
	var errors validator.ValidationErrors

	if r.WeeksBack < 0 {
		errors = append(errors, validator.ValidationError{
			Field:   "weeks_back",
			Message: "Weeks back must not be negative",
		})
	}
	if r.WeeksBack == 0 {
		r.WeeksBack = DefaultWeeksBack
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}

// GenerateSummary reports what one generator run did.
type GenerateSummary struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Failed  int      `json:"failed"`
	DryRun  bool     `json:"dry_run"`
	Errors  []string `json:"errors,omitempty"`
}

type CommissionResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	WeekStart       string          `json:"week_start"`
	WeekEnd         string          `json:"week_end"`
	TotalRevenueHt  decimal.Decimal `json:"total_revenue_ht"`
	TotalCommission decimal.Decimal `json:"total_commission"`
	ClientsCount    int             `json:"clients_count"`
	Validated       bool            `json:"validated"`
	ValidatedAt     *time.Time      `json:"validated_at,omitempty"`
	Paid            bool            `json:"paid"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
}

func ToResponse(c WeeklyCommission) CommissionResponse {
	return CommissionResponse{
		ID:              c.ID,
		EmployeeID:      c.EmployeeID,
		WeekStart:       c.WeekStart.Format("2006-01-02"),
		WeekEnd:         c.WeekEnd.Format("2006-01-02"),
		TotalRevenueHt:  c.TotalRevenueHt,
		TotalCommission: c.TotalCommission,
		ClientsCount:    c.ClientsCount,
		Validated:       c.Validated,
		ValidatedAt:     c.ValidatedAt,
		Paid:            c.Paid,
		PaidAt:          c.PaidAt,
	}
}

func ToResponses(rows []WeeklyCommission) []CommissionResponse {
	responses := make([]CommissionResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, ToResponse(row))
	}
	return responses
}
