package stats

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/barberdesk/salon-backend-go/internal/domain/charge"
	"github.com/barberdesk/salon-backend-go/internal/domain/commission"
	"github.com/barberdesk/salon-backend-go/internal/domain/employee"
	"github.com/barberdesk/salon-backend-go/internal/domain/revenue"
	"github.com/barberdesk/salon-backend-go/internal/domain/stats"
	"github.com/barberdesk/salon-backend-go/internal/domain/user"
	"github.com/barberdesk/salon-backend-go/internal/pkg/clock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListByScope(ctx context.Context, adminID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.CreatedBy == nil || *e.CreatedBy == adminID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) ListAll(ctx context.Context) ([]employee.Employee, error) {
	return f.employees, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, e employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error           { return nil }

type fakeRevenueRepo struct {
	revenues []revenue.Revenue
}

func (f *fakeRevenueRepo) Create(ctx context.Context, r revenue.Revenue) (revenue.Revenue, error) {
	return r, nil
}

func (f *fakeRevenueRepo) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]revenue.Revenue, error) {
	var out []revenue.Revenue
	for _, r := range f.revenues {
		if r.EmployeeID == employeeID && !r.Date.Before(start) && r.Date.Before(end) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRevenueRepo) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]revenue.Revenue, error) {
	return nil, nil
}

func (f *fakeRevenueRepo) ListByScopeAndRange(ctx context.Context, adminID string, start, end time.Time) ([]revenue.Revenue, error) {
	var out []revenue.Revenue
	for _, r := range f.revenues {
		if !r.Date.Before(start) && r.Date.Before(end) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeChargeRepo struct {
	charges []charge.Charge
}

func (f *fakeChargeRepo) Create(ctx context.Context, c charge.Charge) (charge.Charge, error) {
	return c, nil
}

func (f *fakeChargeRepo) GetByID(ctx context.Context, id string) (charge.Charge, error) {
	return charge.Charge{}, charge.ErrChargeNotFound
}

func (f *fakeChargeRepo) ListByScope(ctx context.Context, adminID string, start, end time.Time) ([]charge.Charge, error) {
	var out []charge.Charge
	for _, c := range f.charges {
		if !start.IsZero() && c.Date.Before(start) {
			continue
		}
		if !end.IsZero() && !c.Date.Before(end) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeChargeRepo) ListByRange(ctx context.Context, start, end time.Time) ([]charge.Charge, error) {
	return f.ListByScope(ctx, "", start, end)
}

func (f *fakeChargeRepo) ListAll(ctx context.Context) ([]charge.Charge, error) {
	return f.charges, nil
}

func (f *fakeChargeRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeCommissionRepo struct {
	rows []commission.WeeklyCommission
}

func (f *fakeCommissionRepo) Upsert(ctx context.Context, c commission.WeeklyCommission) (commission.WeeklyCommission, bool, error) {
	f.rows = append(f.rows, c)
	return c, true, nil
}

func (f *fakeCommissionRepo) GetByID(ctx context.Context, id string) (commission.WeeklyCommission, error) {
	return commission.WeeklyCommission{}, commission.ErrCommissionNotFound
}

func (f *fakeCommissionRepo) FindByEmployeeAndWeek(ctx context.Context, employeeID string, weekStart, weekEnd time.Time) (commission.WeeklyCommission, error) {
	return commission.WeeklyCommission{}, commission.ErrCommissionNotFound
}

func (f *fakeCommissionRepo) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]commission.WeeklyCommission, error) {
	var out []commission.WeeklyCommission
	for _, row := range f.rows {
		if row.EmployeeID == employeeID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeCommissionRepo) ListByEmployeeSince(ctx context.Context, employeeID string, since time.Time) ([]commission.WeeklyCommission, error) {
	return f.ListByEmployee(ctx, employeeID, 0)
}

func (f *fakeCommissionRepo) ListValidatedByScopeSince(ctx context.Context, adminID string, since time.Time) ([]commission.WeeklyCommission, error) {
	var out []commission.WeeklyCommission
	for _, row := range f.rows {
		if row.Validated && !row.WeekStart.Before(since) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeCommissionRepo) MarkValidated(ctx context.Context, id string, at time.Time) error {
	return nil
}

func (f *fakeCommissionRepo) MarkPaid(ctx context.Context, id string, at time.Time) error {
	return nil
}

type fakeStatisticRepo struct {
	rows []stats.Statistic
}

func (f *fakeStatisticRepo) Create(ctx context.Context, s stats.Statistic) (stats.Statistic, error) {
	f.rows = append(f.rows, s)
	return s, nil
}

func (f *fakeStatisticRepo) ListByEmployeeAndPeriod(ctx context.Context, employeeID string, period stats.Period, limit int) ([]stats.Statistic, error) {
	var out []stats.Statistic
	for _, row := range f.rows {
		if row.EmployeeID != nil && *row.EmployeeID == employeeID && row.Period == period {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeStatisticRepo) ListGlobalByPeriod(ctx context.Context, period stats.Period, limit int) ([]stats.Statistic, error) {
	var out []stats.Statistic
	for _, row := range f.rows {
		if row.EmployeeID == nil && row.Period == period {
			out = append(out, row)
		}
	}
	return out, nil
}

// Wednesday 2025-03-12; current week starts Monday 2025-03-10.
var testNow = time.Date(2025, time.March, 12, 15, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestService(
	employees []employee.Employee,
	revenues []revenue.Revenue,
	charges []charge.Charge,
	commissions []commission.WeeklyCommission,
) (stats.StatsService, *fakeStatisticRepo) {
	statisticRepo := &fakeStatisticRepo{}
	svc := NewStatsService(
		&fakeRevenueRepo{revenues: revenues},
		&fakeChargeRepo{charges: charges},
		&fakeEmployeeRepo{employees: employees},
		&fakeCommissionRepo{rows: commissions},
		statisticRepo,
		clock.Fixed(testNow),
		stats.ChargePolicyWindowed,
		slog.New(slog.DiscardHandler),
	)
	return svc, statisticRepo
}

func TestEmployeeDashboardSums(t *testing.T) {
	weekStart := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	lastWeek := weekStart.AddDate(0, 0, -7)
	validatedAt := testNow

	emp := employee.Employee{ID: "e1", FirstName: "Lea", LastName: "Martin", CommissionPercentage: dec("10")}
	revenues := []revenue.Revenue{
		{ID: "r1", EmployeeID: "e1", AmountHt: dec("50.00"), AmountTtc: dec("60.00"), Date: testNow},
	}
	commissions := []commission.WeeklyCommission{
		{ID: "c1", EmployeeID: "e1", WeekStart: weekStart, WeekEnd: weekStart.AddDate(0, 0, 6), TotalCommission: dec("5.00")},
		{ID: "c2", EmployeeID: "e1", WeekStart: lastWeek, WeekEnd: lastWeek.AddDate(0, 0, 6), TotalCommission: dec("8.00"), Validated: true, ValidatedAt: &validatedAt, Paid: true, PaidAt: &validatedAt},
	}

	svc, _ := newTestService([]employee.Employee{emp}, revenues, nil, commissions)

	principal := user.Principal{UserID: "u1", Role: user.RoleEmployee, EmployeeID: "e1"}
	dashboard, err := svc.EmployeeDashboard(context.Background(), principal)
	require.NoError(t, err)

	assert.True(t, dashboard.Today.RevenueHt.Equal(dec("50.00")))
	assert.True(t, dashboard.Today.Commission.Equal(dec("5.00")))
	assert.Equal(t, 1, dashboard.Today.ClientsCount)

	require.NotNil(t, dashboard.CurrentWeek)
	assert.Equal(t, "c1", dashboard.CurrentWeek.ID)

	assert.True(t, dashboard.PendingCommission.Equal(dec("5.00")), "pending: %s", dashboard.PendingCommission)
	assert.True(t, dashboard.ValidatedThisMonth.Equal(dec("8.00")))
	assert.True(t, dashboard.PaidThisMonth.Equal(dec("8.00")))
	assert.Len(t, dashboard.History, 2)
}

func TestEmployeeDashboardRequiresEmployee(t *testing.T) {
	svc, _ := newTestService(nil, nil, nil, nil)

	_, err := svc.EmployeeDashboard(context.Background(), user.Principal{UserID: "a", Role: user.RoleAdmin})
	assert.ErrorIs(t, err, employee.ErrUnauthorized)
}

func TestAdminDashboardCommissionFromValidatedRows(t *testing.T) {
	weekStart := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	adminID := "admin-1"
	validatedAt := testNow

	emp := employee.Employee{ID: "e1", FirstName: "Lea", LastName: "Martin", CommissionPercentage: dec("10"), CreatedBy: &adminID}
	revenues := []revenue.Revenue{
		{ID: "r1", EmployeeID: "e1", AmountHt: dec("100.00"), AmountTtc: dec("120.00"), Date: testNow},
	}
	charges := []charge.Charge{
		{ID: "ch1", EmployeeID: adminID, Amount: dec("20.00"), Date: testNow},
	}
	commissions := []commission.WeeklyCommission{
		{ID: "c1", EmployeeID: "e1", WeekStart: weekStart, WeekEnd: weekStart.AddDate(0, 0, 6), TotalCommission: dec("10.00"), Validated: true, ValidatedAt: &validatedAt},
	}

	svc, _ := newTestService([]employee.Employee{emp}, revenues, charges, commissions)

	dashboard, err := svc.AdminDashboard(context.Background(), user.Principal{UserID: adminID, Role: user.RoleAdmin})
	require.NoError(t, err)

	assert.True(t, dashboard.ThisWeek.RevenueHt.Equal(dec("100.00")))
	assert.True(t, dashboard.ThisWeek.Charges.Equal(dec("20.00")))
	// commission comes from the validated weekly row, not the live rate
	assert.True(t, dashboard.ThisWeek.Commission.Equal(dec("10.00")))
	// profit = 100 - 20 - 10
	assert.True(t, dashboard.ThisWeek.Profit.Equal(dec("70.00")), "profit: %s", dashboard.ThisWeek.Profit)

	require.Len(t, dashboard.Employees, 1)
	assert.Equal(t, "Lea Martin", dashboard.Employees[0].Name)
	assert.True(t, dashboard.Employees[0].RevenueHt.Equal(dec("100.00")))
	assert.True(t, dashboard.Employees[0].Commission.Equal(dec("10.00")))
}

func TestAdminDashboardSumsValidatedRowsAcrossEmployees(t *testing.T) {
	weekStart := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	adminID := "admin-1"
	validatedAt := testNow

	employees := []employee.Employee{
		{ID: "e1", FirstName: "Lea", LastName: "Martin", CommissionPercentage: dec("10"), CreatedBy: &adminID},
		{ID: "e2", FirstName: "Max", LastName: "Dubois", CommissionPercentage: dec("10"), CreatedBy: &adminID},
	}
	commissions := []commission.WeeklyCommission{
		{ID: "c1", EmployeeID: "e1", WeekStart: weekStart, WeekEnd: weekStart.AddDate(0, 0, 6), TotalCommission: dec("10.00"), Validated: true, ValidatedAt: &validatedAt},
		{ID: "c2", EmployeeID: "e2", WeekStart: weekStart, WeekEnd: weekStart.AddDate(0, 0, 6), TotalCommission: dec("10.00"), Validated: true, ValidatedAt: &validatedAt},
	}

	svc, _ := newTestService(employees, nil, nil, commissions)

	dashboard, err := svc.AdminDashboard(context.Background(), user.Principal{UserID: adminID, Role: user.RoleAdmin})
	require.NoError(t, err)

	// both employees' validated rows for the same week count
	assert.True(t, dashboard.ThisWeek.Commission.Equal(dec("20.00")), "week commission: %s", dashboard.ThisWeek.Commission)
	assert.True(t, dashboard.ThisWeek.Profit.Equal(dec("-20.00")), "week profit: %s", dashboard.ThisWeek.Profit)
}

func TestAdminDashboardRequiresAdmin(t *testing.T) {
	svc, _ := newTestService(nil, nil, nil, nil)

	_, err := svc.AdminDashboard(context.Background(), user.Principal{UserID: "u1", Role: user.RoleEmployee, EmployeeID: "e1"})
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)
}

func TestArchiveDailySnapshotsYesterday(t *testing.T) {
	yesterday := time.Date(2025, time.March, 11, 10, 0, 0, 0, time.UTC)
	emp := employee.Employee{ID: "e1", FirstName: "Lea", LastName: "Martin", CommissionPercentage: dec("10")}
	revenues := []revenue.Revenue{
		{ID: "r1", EmployeeID: "e1", AmountHt: dec("50.00"), AmountTtc: dec("60.00"), Date: yesterday},
		{ID: "r2", EmployeeID: "e1", AmountHt: dec("99.00"), AmountTtc: dec("118.80"), Date: testNow}, // today, excluded
	}

	svc, statisticRepo := newTestService([]employee.Employee{emp}, revenues, nil, nil)

	require.NoError(t, svc.ArchiveDaily(context.Background()))
	require.Len(t, statisticRepo.rows, 1)

	row := statisticRepo.rows[0]
	assert.Equal(t, stats.StatPeriodDaily, row.Period)
	require.NotNil(t, row.EmployeeID)
	assert.Equal(t, "e1", *row.EmployeeID)
	assert.True(t, row.Date.Equal(time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC)))
	assert.True(t, row.RevenueHt.Equal(dec("50.00")))
	assert.True(t, row.Commission.Equal(dec("5.00")))
	assert.Equal(t, 1, row.ClientsCount)
}

func TestGlobalArchiveReadableAfterMonthlyRun(t *testing.T) {
	february := time.Date(2025, time.February, 14, 12, 0, 0, 0, time.UTC)
	emp := employee.Employee{ID: "e1", FirstName: "Lea", LastName: "Martin", CommissionPercentage: dec("10")}
	revenues := []revenue.Revenue{
		{ID: "r1", EmployeeID: "e1", AmountHt: dec("100.00"), AmountTtc: dec("120.00"), Date: february},
	}

	svc, _ := newTestService([]employee.Employee{emp}, revenues, nil, nil)

	require.NoError(t, svc.ArchiveMonthlyGlobal(context.Background()))

	admin := user.Principal{UserID: "admin-1", Role: user.RoleAdmin}
	rows, err := svc.ListGlobalArchive(context.Background(), admin, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, stats.StatPeriodMonthlyGlobal, rows[0].Period)

	_, err = svc.ListGlobalArchive(context.Background(), user.Principal{UserID: "u1", Role: user.RoleEmployee, EmployeeID: "e1"}, 0)
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)
}

func TestArchiveMonthlyGlobalAggregatesEveryone(t *testing.T) {
	february := time.Date(2025, time.February, 14, 12, 0, 0, 0, time.UTC)
	employees := []employee.Employee{
		{ID: "e1", FirstName: "Lea", LastName: "Martin", CommissionPercentage: dec("10")},
		{ID: "e2", FirstName: "Max", LastName: "Dubois", CommissionPercentage: dec("20")},
	}
	revenues := []revenue.Revenue{
		{ID: "r1", EmployeeID: "e1", AmountHt: dec("100.00"), AmountTtc: dec("120.00"), Date: february},
		{ID: "r2", EmployeeID: "e2", AmountHt: dec("200.00"), AmountTtc: dec("240.00"), Date: february},
	}
	charges := []charge.Charge{
		{ID: "ch1", EmployeeID: "admin-1", Amount: dec("50.00"), Date: february},
	}

	svc, statisticRepo := newTestService(employees, revenues, charges, nil)

	require.NoError(t, svc.ArchiveMonthlyGlobal(context.Background()))
	require.Len(t, statisticRepo.rows, 1)

	row := statisticRepo.rows[0]
	assert.Equal(t, stats.StatPeriodMonthlyGlobal, row.Period)
	assert.Nil(t, row.EmployeeID)
	assert.True(t, row.RevenueHt.Equal(dec("300.00")))
	assert.True(t, row.Charges.Equal(dec("50.00")))
	// 100*10% + 200*20% = 50
	assert.True(t, row.Commission.Equal(dec("50.00")), "commission: %s", row.Commission)
	// 300 - 50 - 50
	assert.True(t, row.Profit.Equal(dec("200.00")), "profit: %s", row.Profit)
	assert.Equal(t, 2, row.ClientsCount)
}
