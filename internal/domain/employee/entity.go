package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID                   string
	FirstName            string
	LastName             string
	Email                string
	CommissionPercentage decimal.Decimal
	// CreatedBy is the user id of the admin who created this employee.
	// Nil marks an orphaned employee visible to every admin.
	CreatedBy *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
