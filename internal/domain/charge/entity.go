package charge

import (
	"time"

	"github.com/shopspring/decimal"
)

// Charge is a cost entry logged by an admin (rent, supplies, ...).
// Immutable; consumed only in aggregates.
type Charge struct {
	ID          string
	EmployeeID  string // the admin / cost-bearer who logged the charge
	Name        string
	Amount      decimal.Decimal
	Date        time.Time
	Description *string
	CreatedAt   time.Time
}
