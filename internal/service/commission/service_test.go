package commission

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/barberdesk/salon-backend-go/internal/domain/commission"
	"github.com/barberdesk/salon-backend-go/internal/domain/employee"
	"github.com/barberdesk/salon-backend-go/internal/domain/revenue"
	"github.com/barberdesk/salon-backend-go/internal/domain/user"
	"github.com/barberdesk/salon-backend-go/internal/pkg/clock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmployeeRepo serves a fixed set of employees.
type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	f.employees = append(f.employees, e)
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
	for _, e := range f.employees {
		if e.Email == email {
			return e, nil
		}
	}
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

// fakeRevenueRepo serves a fixed set of revenues.
type fakeRevenueRepo struct {
	revenues []revenue.Revenue
}

func (f *fakeRevenueRepo) Create(ctx context.Context, r revenue.Revenue) (revenue.Revenue, error) {
	f.revenues = append(f.revenues, r)
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
	return nil, nil
}

// fakeCommissionRepo stores rows in memory keyed by employee and week.
type fakeCommissionRepo struct {
	rows   map[string]commission.WeeklyCommission
	nextID int
	// listLimit records the limit passed to the last ListByEmployee call.
	listLimit int
}

func newFakeCommissionRepo() *fakeCommissionRepo {
	return &fakeCommissionRepo{rows: make(map[string]commission.WeeklyCommission)}
}

func weekKey(employeeID string, weekStart time.Time) string {
	return employeeID + "|" + weekStart.Format("2006-01-02")
}

func (f *fakeCommissionRepo) Upsert(ctx context.Context, c commission.WeeklyCommission) (commission.WeeklyCommission, bool, error) {
	key := weekKey(c.EmployeeID, c.WeekStart)
	if existing, ok := f.rows[key]; ok {
		existing.TotalRevenueHt = c.TotalRevenueHt
		existing.TotalCommission = c.TotalCommission
		existing.ClientsCount = c.ClientsCount
		f.rows[key] = existing
		return existing, false, nil
	}
	f.rows[key] = c
	return c, true, nil
}

func (f *fakeCommissionRepo) GetByID(ctx context.Context, id string) (commission.WeeklyCommission, error) {
	for _, row := range f.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return commission.WeeklyCommission{}, commission.ErrCommissionNotFound
}

func (f *fakeCommissionRepo) FindByEmployeeAndWeek(ctx context.Context, employeeID string, weekStart, weekEnd time.Time) (commission.WeeklyCommission, error) {
	if row, ok := f.rows[weekKey(employeeID, weekStart)]; ok {
		return row, nil
	}
	return commission.WeeklyCommission{}, commission.ErrCommissionNotFound
}

func (f *fakeCommissionRepo) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]commission.WeeklyCommission, error) {
	f.listLimit = limit
	var out []commission.WeeklyCommission
	for _, row := range f.rows {
		if row.EmployeeID == employeeID {
			out = append(out, row)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeCommissionRepo) ListByEmployeeSince(ctx context.Context, employeeID string, since time.Time) ([]commission.WeeklyCommission, error) {
	var out []commission.WeeklyCommission
	for _, row := range f.rows {
		if row.EmployeeID == employeeID && !row.WeekStart.Before(since) {
			out = append(out, row)
		}
	}
	return out, nil
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
	for key, row := range f.rows {
		if row.ID == id {
			if row.Validated {
				return commission.ErrAlreadyValidated
			}
			row.Validated = true
			row.ValidatedAt = &at
			f.rows[key] = row
			return nil
		}
	}
	return commission.ErrCommissionNotFound
}

func (f *fakeCommissionRepo) MarkPaid(ctx context.Context, id string, at time.Time) error {
	for key, row := range f.rows {
		if row.ID == id {
			if !row.Validated || row.Paid {
				return commission.ErrAlreadyPaid
			}
			row.Paid = true
			row.PaidAt = &at
			f.rows[key] = row
			return nil
		}
	}
	return commission.ErrCommissionNotFound
}

// Wednesday 2025-03-12; the current week is Monday 2025-03-10.
var testNow = time.Date(2025, time.March, 12, 15, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, employees []employee.Employee, revenues []revenue.Revenue, forceOverwrites bool) (commission.CommissionService, *fakeCommissionRepo) {
	t.Helper()

	commissionRepo := newFakeCommissionRepo()
	svc := NewCommissionService(
		commissionRepo,
		&fakeEmployeeRepo{employees: employees},
		&fakeRevenueRepo{revenues: revenues},
		clock.Fixed(testNow),
		forceOverwrites,
		slog.New(slog.DiscardHandler),
	)
	return svc, commissionRepo
}

func testEmployee(id, pct string, createdBy *string) employee.Employee {
	return employee.Employee{
		ID:                   id,
		FirstName:            "Test",
		LastName:             "Employee",
		Email:                id + "@example.com",
		CommissionPercentage: decimal.RequireFromString(pct),
		CreatedBy:            createdBy,
	}
}

func testRevenue(employeeID, ht string, date time.Time) revenue.Revenue {
	return revenue.Revenue{
		ID:         fmt.Sprintf("rev-%s-%s", employeeID, date.Format("2006-01-02")),
		EmployeeID: employeeID,
		AmountHt:   decimal.RequireFromString(ht),
		AmountTtc:  decimal.RequireFromString(ht).Mul(decimal.RequireFromString("1.2")),
		Date:       date,
	}
}

func TestGenerateComputesWeeklyTotals(t *testing.T) {
	monday := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	svc, repo := newTestService(t,
		[]employee.Employee{testEmployee("e1", "10", nil)},
		[]revenue.Revenue{
			testRevenue("e1", "50.00", monday),
			testRevenue("e1", "50.00", monday.AddDate(0, 0, 2)),
			testRevenue("e1", "999.00", monday.AddDate(0, 0, 7)), // next week
		},
		false,
	)

	summary, err := svc.Generate(context.Background(), commission.GenerateRequest{WeeksBack: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 0, summary.Failed)

	row, err := repo.FindByEmployeeAndWeek(context.Background(), "e1", monday, monday.AddDate(0, 0, 6))
	require.NoError(t, err)
	assert.True(t, row.TotalRevenueHt.Equal(decimal.RequireFromString("100.00")), "revenue: %s", row.TotalRevenueHt)
	assert.True(t, row.TotalCommission.Equal(decimal.RequireFromString("10.00")), "commission: %s", row.TotalCommission)
	assert.Equal(t, 2, row.ClientsCount)
	assert.False(t, row.Validated)
}

func TestGenerateIsIdempotent(t *testing.T) {
	monday := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	svc, repo := newTestService(t,
		[]employee.Employee{testEmployee("e1", "10", nil)},
		[]revenue.Revenue{testRevenue("e1", "50.00", monday)},
		false,
	)

	first, err := svc.Generate(context.Background(), commission.GenerateRequest{WeeksBack: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, first.Created)

	second, err := svc.Generate(context.Background(), commission.GenerateRequest{WeeksBack: 2})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 2, second.Updated)

	row, err := repo.FindByEmployeeAndWeek(context.Background(), "e1", monday, monday.AddDate(0, 0, 6))
	require.NoError(t, err)
	assert.True(t, row.TotalRevenueHt.Equal(decimal.RequireFromString("50.00")))
}

func TestGenerateSkipsValidatedRows(t *testing.T) {
	monday := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	commissionRepo := newFakeCommissionRepo()
	revenueRepo := &fakeRevenueRepo{revenues: []revenue.Revenue{testRevenue("e1", "50.00", monday)}}
	svc := NewCommissionService(
		commissionRepo,
		&fakeEmployeeRepo{employees: []employee.Employee{testEmployee("e1", "10", nil)}},
		revenueRepo,
		clock.Fixed(testNow),
		false,
		slog.New(slog.DiscardHandler),
	)

	_, err := svc.Generate(context.Background(), commission.GenerateRequest{WeeksBack: 1})
	require.NoError(t, err)

	row, err := commissionRepo.FindByEmployeeAndWeek(context.Background(), "e1", monday, monday.AddDate(0, 0, 6))
	require.NoError(t, err)
	require.NoError(t, commissionRepo.MarkValidated(context.Background(), row.ID, testNow))

	// More revenue lands after validation; a plain rerun must not touch the row.
	revenueRepo.revenues = append(revenueRepo.revenues, testRevenue("e1", "500.00", monday.AddDate(0, 0, 1)))

	summary, err := svc.Generate(context.Background(), commission.GenerateRequest{WeeksBack: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Skipped)

	frozen, err := commissionRepo.FindByEmployeeAndWeek(context.Background(), "e1", monday, monday.AddDate(0, 0, 6))
	require.NoError(t, err)
	assert.True(t, frozen.TotalRevenueHt.Equal(decimal.RequireFromString("50.00")))
}

func TestGenerateForceRespectsDeploymentFlag(t *testing.T) {
	monday := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	t.Run("force without the flag still skips", func(t *testing.T) {
		svc, repo := newTestService(t,
			[]employee.Employee{testEmployee("e1", "10", nil)},
			[]revenue.Revenue{testRevenue("e1", "50.00", monday)},
			false,
		)
		_, err := svc.Generate(context.Background(), commission.GenerateRequest{WeeksBack: 1})
		require.NoError(t, err)
		row, _ := repo.FindByEmployeeAndWeek(context.Background(), "e1", monday, monday.AddDate(0, 0, 6))
		require.NoError(t, repo.MarkValidated(context.Background(), row.ID, testNow))

		summary, err := svc.Generate(context.Background(), commission.GenerateRequest{WeeksBack: 1, Force: true})
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Skipped)
	})

	t.Run("force with the flag recomputes", func(t *testing.T) {
		svc, repo := newTestService(t,
			[]employee.Employee{testEmployee("e1", "10", nil)},
			[]revenue.Revenue{testRevenue("e1", "50.00", monday)},
			true,
		)
		_, err := svc.Generate(context.Background(), commission.GenerateRequest{WeeksBack: 1})
		require.NoError(t, err)
		row, _ := repo.FindByEmployeeAndWeek(context.Background(), "e1", monday, monday.AddDate(0, 0, 6))
		require.NoError(t, repo.MarkValidated(context.Background(), row.ID, testNow))

		summary, err := svc.Generate(context.Background(), commission.GenerateRequest{WeeksBack: 1, Force: true})
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Updated)
	})
}

func TestGenerateDryRunWritesNothing(t *testing.T) {
	monday := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	svc, repo := newTestService(t,
		[]employee.Employee{testEmployee("e1", "10", nil)},
		[]revenue.Revenue{testRevenue("e1", "50.00", monday)},
		false,
	)

	summary, err := svc.Generate(context.Background(), commission.GenerateRequest{WeeksBack: 2, DryRun: true})
	require.NoError(t, err)
	assert.True(t, summary.DryRun)
	assert.Equal(t, 2, summary.Created)
	assert.Empty(t, repo.rows)
}

func TestGenerateDefaultsWeeksBack(t *testing.T) {
	svc, repo := newTestService(t,
		[]employee.Employee{testEmployee("e1", "10", nil)},
		nil,
		false,
	)

	summary, err := svc.Generate(context.Background(), commission.GenerateRequest{})
	require.NoError(t, err)
	assert.Equal(t, commission.DefaultWeeksBack, summary.Created)
	assert.Len(t, repo.rows, commission.DefaultWeeksBack)
}

func TestValidateAndPayWorkflow(t *testing.T) {
	monday := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	adminID := "admin-1"
	svc, repo := newTestService(t,
		[]employee.Employee{testEmployee("e1", "10", &adminID)},
		[]revenue.Revenue{testRevenue("e1", "50.00", monday)},
		false,
	)
	_, err := svc.Generate(context.Background(), commission.GenerateRequest{WeeksBack: 1})
	require.NoError(t, err)
	row, _ := repo.FindByEmployeeAndWeek(context.Background(), "e1", monday, monday.AddDate(0, 0, 6))

	employeePrincipal := user.Principal{UserID: "u1", Role: user.RoleEmployee, EmployeeID: "e1"}
	adminPrincipal := user.Principal{UserID: adminID, Role: user.RoleAdmin}

	// paying before validation is rejected
	_, err = svc.Pay(context.Background(), adminPrincipal, row.ID)
	assert.ErrorIs(t, err, commission.ErrNotValidatedYet)

	validated, err := svc.Validate(context.Background(), employeePrincipal, row.ID)
	require.NoError(t, err)
	assert.True(t, validated.Validated)

	_, err = svc.Validate(context.Background(), employeePrincipal, row.ID)
	assert.ErrorIs(t, err, commission.ErrAlreadyValidated)

	paid, err := svc.Pay(context.Background(), adminPrincipal, row.ID)
	require.NoError(t, err)
	assert.True(t, paid.Paid)

	_, err = svc.Pay(context.Background(), adminPrincipal, row.ID)
	assert.ErrorIs(t, err, commission.ErrAlreadyPaid)
}

func TestValidateRejectsForeignPrincipal(t *testing.T) {
	monday := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	adminID := "admin-1"
	svc, repo := newTestService(t,
		[]employee.Employee{testEmployee("e1", "10", &adminID)},
		[]revenue.Revenue{testRevenue("e1", "50.00", monday)},
		false,
	)
	_, err := svc.Generate(context.Background(), commission.GenerateRequest{WeeksBack: 1})
	require.NoError(t, err)
	row, _ := repo.FindByEmployeeAndWeek(context.Background(), "e1", monday, monday.AddDate(0, 0, 6))

	otherEmployee := user.Principal{UserID: "u2", Role: user.RoleEmployee, EmployeeID: "e2"}
	_, err = svc.Validate(context.Background(), otherEmployee, row.ID)
	assert.ErrorIs(t, err, commission.ErrUnauthorized)

	otherAdmin := user.Principal{UserID: "admin-2", Role: user.RoleAdmin}
	_, err = svc.Validate(context.Background(), otherAdmin, row.ID)
	assert.ErrorIs(t, err, commission.ErrUnauthorized)
}

func TestListMineDeduplicatesAndLimits(t *testing.T) {
	svc, repo := newTestService(t, []employee.Employee{testEmployee("e1", "10", nil)}, nil, false)

	// 14 distinct weeks, oldest first
	base := time.Date(2024, time.December, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 14; i++ {
		start := base.AddDate(0, 0, 7*i)
		repo.rows[weekKey("e1", start)] = commission.WeeklyCommission{
			ID:         fmt.Sprintf("018e%04d-0000-7000-8000-000000000000", i),
			EmployeeID: "e1",
			WeekStart:  start,
			WeekEnd:    start.AddDate(0, 0, 6),
		}
	}

	principal := user.Principal{UserID: "u1", Role: user.RoleEmployee, EmployeeID: "e1"}
	rows, err := svc.ListMine(context.Background(), principal, 0)
	require.NoError(t, err)
	assert.Len(t, rows, DefaultHistoryWeeks)
	// the fetch is bounded, not the whole history
	assert.Equal(t, 2*DefaultHistoryWeeks, repo.listLimit)
}
