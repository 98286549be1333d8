package stats

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period tags an archived Statistic row.
type Period string

const (
	StatPeriodDaily         Period = "daily"
	StatPeriodWeekly        Period = "weekly"
	StatPeriodMonthlyGlobal Period = "monthly_global"
)

// Statistic is a durable snapshot of one period's aggregate, written by the
// archival jobs. EmployeeID is nil for global (all-employee) rows.
type Statistic struct {
	ID           string
	EmployeeID   *string
	Period       Period
	Date         time.Time
	RevenueHt    decimal.Decimal
	RevenueTtc   decimal.Decimal
	Charges      decimal.Decimal
	Commission   decimal.Decimal
	Profit       decimal.Decimal
	ClientsCount int
	CreatedAt    time.Time
}
