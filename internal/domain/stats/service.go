package stats

import (
	"context"

	"github.com/barberdesk/salon-backend-go/internal/domain/user"
)

type StatsService interface {
	AdminDashboard(ctx context.Context, principal user.Principal) (AdminDashboardResponse, error)
	EmployeeDashboard(ctx context.Context, principal user.Principal) (EmployeeDashboardResponse, error)
	// ListArchive returns an employee's archived period snapshots, most
	// recent first.
	ListArchive(ctx context.Context, principal user.Principal, employeeID string, period Period, limit int) ([]StatisticResponse, error)
	// ListGlobalArchive returns the admin's all-employee monthly snapshots,
	// most recent first. Those rows carry no employee id, so they are not
	// reachable through ListArchive.
	ListGlobalArchive(ctx context.Context, principal user.Principal, limit int) ([]StatisticResponse, error)

	// ArchiveDaily snapshots yesterday's per-employee aggregates.
	ArchiveDaily(ctx context.Context) error
	// ArchiveWeekly snapshots last week's per-employee aggregates.
	ArchiveWeekly(ctx context.Context) error
	// ArchiveMonthlyGlobal snapshots last month's all-employee aggregate.
	// The monthly counters themselves derive from dated records, so the
	// snapshot is the whole of the monthly reset.
	ArchiveMonthlyGlobal(ctx context.Context) error
}
