package revenue

import (
	"time"

	"github.com/shopspring/decimal"
)

// Revenue is one completed service sale. Immutable after creation.
type Revenue struct {
	ID         string
	EmployeeID string
	AmountHt   decimal.Decimal
	AmountTtc  decimal.Decimal
	Date       time.Time
	PackageID  *string
	CreatedAt  time.Time
}
