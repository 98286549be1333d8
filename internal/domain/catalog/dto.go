package catalog

import (
	"github.com/barberdesk/salon-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreatePackageRequest struct {
	Name     string          `json:"name"`
	PriceTtc decimal.Decimal `json:"price_ttc"`
}

func (r *CreatePackageRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !r.PriceTtc.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "price_ttc", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePackageRequest struct {
	ID       string
	Name     *string          `json:"name,omitempty"`
	PriceTtc *decimal.Decimal `json:"price_ttc,omitempty"`
}

func (r *UpdatePackageRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "cannot be empty"})
	}
	if r.PriceTtc != nil && !r.PriceTtc.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "price_ttc", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PackageResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	PriceTtc decimal.Decimal `json:"price_ttc"`
	PriceHt  decimal.Decimal `json:"price_ht"`
	// Commission is the amount the requesting employee would earn by selling
	// this package; zero for admin principals.
	Commission decimal.Decimal `json:"commission"`
}
