package revenue

import (
	"context"
	"time"
)

type RevenueRepository interface {
	Create(ctx context.Context, r Revenue) (Revenue, error)
	// ListByEmployeeAndRange returns the employee's revenues inside the
	// half-open window [start, end), most recent first.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]Revenue, error)
	ListByEmployee(ctx context.Context, employeeID string, limit int) ([]Revenue, error)
	// ListByScopeAndRange returns revenues of every employee in the admin's
	// scope (created_by = adminID or created_by IS NULL) inside [start, end).
	ListByScopeAndRange(ctx context.Context, adminID string, start, end time.Time) ([]Revenue, error)
}
