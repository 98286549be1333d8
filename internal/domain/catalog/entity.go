package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Package is a sellable service bundle ("forfait"). PriceTtc is the
// tax-inclusive price shown to clients; the pre-tax amount is derived with
// the fixed 20% VAT rate when a sale is recorded.
type Package struct {
	ID        string
	Name      string
	PriceTtc  decimal.Decimal
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VATDivisor converts a TTC price to HT: ht = ttc / 1.20.
var VATDivisor = decimal.NewFromFloat(1.20)

// PriceHt returns the pre-tax price of the package.
func (p Package) PriceHt() decimal.Decimal {
	return p.PriceTtc.Div(VATDivisor).Round(2)
}
