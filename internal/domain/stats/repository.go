package stats

import "context"

type StatisticRepository interface {
	Create(ctx context.Context, s Statistic) (Statistic, error)
	// ListByEmployeeAndPeriod returns the employee's archived rows for one
	// period kind, most recent first, at most limit rows.
	ListByEmployeeAndPeriod(ctx context.Context, employeeID string, period Period, limit int) ([]Statistic, error)
	// ListGlobalByPeriod returns the archived rows with no employee (the
	// all-employee snapshots), most recent first, at most limit rows.
	ListGlobalByPeriod(ctx context.Context, period Period, limit int) ([]Statistic, error)
}
