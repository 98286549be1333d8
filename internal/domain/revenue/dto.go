package revenue

import (
	"time"

	"github.com/barberdesk/salon-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// SelectPackageRequest records a package sale for the acting employee.
type SelectPackageRequest struct {
	PackageID string `json:"package_id"`
}

func (r *SelectPackageRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PackageID) {
		errs = append(errs, validator.ValidationError{Field: "package_id", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RevenueResponse struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employee_id"`
	AmountHt   decimal.Decimal `json:"amount_ht"`
	AmountTtc  decimal.Decimal `json:"amount_ttc"`
	Date       time.Time       `json:"date"`
	PackageID  *string         `json:"package_id,omitempty"`
}

// SaleResponse is returned after a package sale: the revenue entry plus the
// commission the employee earned on it.
type SaleResponse struct {
	PackageName string          `json:"package_name"`
	PriceHt     decimal.Decimal `json:"price_ht"`
	Commission  decimal.Decimal `json:"commission"`
	Revenue     RevenueResponse `json:"revenue"`
}

func ToResponse(r Revenue) RevenueResponse {
	return RevenueResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		AmountHt:   r.AmountHt,
		AmountTtc:  r.AmountTtc,
		Date:       r.Date,
		PackageID:  r.PackageID,
	}
}
