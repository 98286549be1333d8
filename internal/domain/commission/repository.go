package commission

import (
	"context"
	"time"
)

type WeeklyCommissionRepository interface {
	// Upsert inserts the row or, when a row for the same
	// (employee_id, week_start, week_end) already exists, refreshes its
	// totals in place. It returns the stored row and whether it was created.
	Upsert(ctx context.Context, c WeeklyCommission) (WeeklyCommission, bool, error)
	GetByID(ctx context.Context, id string) (WeeklyCommission, error)
	FindByEmployeeAndWeek(ctx context.Context, employeeID string, weekStart, weekEnd time.Time) (WeeklyCommission, error)
	// ListByEmployee returns the employee's rows most recent week first, at
	// most limit rows. limit <= 0 means no limit.
	ListByEmployee(ctx context.Context, employeeID string, limit int) ([]WeeklyCommission, error)
	// ListByEmployeeSince returns rows whose week starts on or after since.
	ListByEmployeeSince(ctx context.Context, employeeID string, since time.Time) ([]WeeklyCommission, error)
	// ListValidatedByScopeSince returns validated rows for every employee in
	// the admin's scope whose week starts on or after since.
	ListValidatedByScopeSince(ctx context.Context, adminID string, since time.Time) ([]WeeklyCommission, error)
	MarkValidated(ctx context.Context, id string, at time.Time) error
	MarkPaid(ctx context.Context, id string, at time.Time) error
}
