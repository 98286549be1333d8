package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/barberdesk/salon-backend-go/internal/domain/charge"
	"github.com/barberdesk/salon-backend-go/internal/domain/commission"
	"github.com/barberdesk/salon-backend-go/internal/domain/employee"
	"github.com/barberdesk/salon-backend-go/internal/domain/revenue"
	"github.com/barberdesk/salon-backend-go/internal/domain/stats"
	"github.com/barberdesk/salon-backend-go/internal/domain/user"
	"github.com/barberdesk/salon-backend-go/internal/pkg/clock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type StatsServiceImpl struct {
	revenueRepo    revenue.RevenueRepository
	chargeRepo     charge.ChargeRepository
	employeeRepo   employee.EmployeeRepository
	commissionRepo commission.WeeklyCommissionRepository
	statisticRepo  stats.StatisticRepository
	clock          clock.Clock
	chargePolicy   stats.ChargePolicy
	logger         *slog.Logger
}

func NewStatsService(
	revenueRepo revenue.RevenueRepository,
	chargeRepo charge.ChargeRepository,
	employeeRepo employee.EmployeeRepository,
	commissionRepo commission.WeeklyCommissionRepository,
	statisticRepo stats.StatisticRepository,
	clk clock.Clock,
	chargePolicy stats.ChargePolicy,
	logger *slog.Logger,
) stats.StatsService {
	return &StatsServiceImpl{
		revenueRepo:    revenueRepo,
		chargeRepo:     chargeRepo,
		employeeRepo:   employeeRepo,
		commissionRepo: commissionRepo,
		statisticRepo:  statisticRepo,
		clock:          clk,
		chargePolicy:   chargePolicy,
		logger:         logger,
	}
}

// AdminDashboard implements stats.StatsService. Revenue and charge totals
// come from the dated records; the commission inside each window is the sum
// of validated weekly rows whose week starts inside it, so the dashboard
// shows what is actually owed rather than a live projection.
func (s *StatsServiceImpl) AdminDashboard(ctx context.Context, principal user.Principal) (stats.AdminDashboardResponse, error) {
	if !principal.IsAdmin() {
		return stats.AdminDashboardResponse{}, user.ErrAdminPrivilegeRequired
	}

	now := s.clock.Now()
	windows := map[string]struct {
		w    stats.Window
		kind stats.PeriodKind
	}{
		"today": {stats.Window{Start: clock.StartOfDay(now), End: clock.StartOfDay(now).AddDate(0, 0, 1)}, stats.PeriodDaily},
		"week":  {stats.Window{Start: clock.MondayOfWeek(now), End: clock.MondayOfWeek(now).AddDate(0, 0, 7)}, stats.PeriodWeekly},
		"month": {stats.Window{Start: clock.StartOfMonth(now), End: clock.EndOfMonth(now)}, stats.PeriodMonthly},
		"year":  {stats.Window{Start: clock.StartOfYear(now), End: clock.StartOfYear(now).AddDate(1, 0, 0)}, stats.PeriodMonthly},
	}

	validated, err := s.commissionRepo.ListValidatedByScopeSince(ctx, principal.UserID, clock.StartOfYear(now))
	if err != nil {
		return stats.AdminDashboardResponse{}, err
	}
	validated = commission.Deduplicate(validated)

	var response stats.AdminDashboardResponse
	for name, period := range windows {
		agg, err := s.scopedAggregate(ctx, principal.UserID, period.w, period.kind, validated)
		if err != nil {
			return stats.AdminDashboardResponse{}, fmt.Errorf("failed to aggregate %s window: %w", name, err)
		}
		switch name {
		case "today":
			response.Today = agg
		case "week":
			response.ThisWeek = agg
		case "month":
			response.ThisMonth = agg
		case "year":
			response.ThisYear = agg
		}
	}

	employees, err := s.employeeRepo.ListByScope(ctx, principal.UserID)
	if err != nil {
		return stats.AdminDashboardResponse{}, err
	}

	monthWindow := stats.Window{Start: clock.StartOfMonth(now), End: clock.EndOfMonth(now)}
	response.Employees = make([]stats.EmployeeMonthStatsResponse, 0, len(employees))
	for _, emp := range employees {
		revenues, err := s.revenueRepo.ListByEmployeeAndRange(ctx, emp.ID, monthWindow.Start, monthWindow.End)
		if err != nil {
			return stats.AdminDashboardResponse{}, err
		}
		agg := stats.Compute(revenues, nil, monthWindow, emp.CommissionPercentage, stats.ChargePolicyWindowed, stats.PeriodMonthly)
		response.Employees = append(response.Employees, stats.EmployeeMonthStatsResponse{
			EmployeeID:   emp.ID,
			Name:         emp.FullName(),
			RevenueHt:    agg.RevenueHt,
			RevenueTtc:   agg.RevenueTtc,
			Commission:   agg.Commission.Round(2),
			ClientsCount: agg.ClientsCount,
		})
	}

	return response, nil
}

func (s *StatsServiceImpl) scopedAggregate(ctx context.Context, adminID string, w stats.Window, kind stats.PeriodKind, validated []commission.WeeklyCommission) (stats.PeriodStatsResponse, error) {
	revenues, err := s.revenueRepo.ListByScopeAndRange(ctx, adminID, w.Start, w.End)
	if err != nil {
		return stats.PeriodStatsResponse{}, err
	}

	var charges []charge.Charge
	if s.chargePolicy == stats.ChargePolicyProrated {
		charges, err = s.chargeRepo.ListByScope(ctx, adminID, time.Time{}, time.Time{})
	} else {
		charges, err = s.chargeRepo.ListByScope(ctx, adminID, w.Start, w.End)
	}
	if err != nil {
		return stats.PeriodStatsResponse{}, err
	}

	agg := stats.Compute(revenues, charges, w, decimal.Zero, s.chargePolicy, kind)

	commissionTotal := decimal.Zero
	for _, row := range validated {
		if w.Contains(row.WeekStart) {
			commissionTotal = commissionTotal.Add(row.TotalCommission)
		}
	}
	agg.Commission = commissionTotal
	agg.Profit = agg.RevenueHt.Sub(agg.Charges).Sub(agg.Commission)

	return stats.PeriodStatsResponse{
		RevenueHt:    agg.RevenueHt,
		RevenueTtc:   agg.RevenueTtc,
		Charges:      agg.Charges,
		Commission:   agg.Commission,
		Profit:       agg.Profit,
		ClientsCount: agg.ClientsCount,
	}, nil
}

// EmployeeDashboard implements stats.StatsService.
func (s *StatsServiceImpl) EmployeeDashboard(ctx context.Context, principal user.Principal) (stats.EmployeeDashboardResponse, error) {
	if principal.EmployeeID == "" {
		return stats.EmployeeDashboardResponse{}, employee.ErrUnauthorized
	}

	emp, err := s.employeeRepo.GetByID(ctx, principal.EmployeeID)
	if err != nil {
		return stats.EmployeeDashboardResponse{}, err
	}

	now := s.clock.Now()
	todayWindow := stats.Window{Start: clock.StartOfDay(now), End: clock.StartOfDay(now).AddDate(0, 0, 1)}
	monthWindow := stats.Window{Start: clock.StartOfMonth(now), End: clock.EndOfMonth(now)}

	response := stats.EmployeeDashboardResponse{
		CommissionPercentage: emp.CommissionPercentage,
		ValidatedThisMonth:   decimal.Zero,
		PaidThisMonth:        decimal.Zero,
		PendingCommission:    decimal.Zero,
	}

	for _, pair := range []struct {
		w    stats.Window
		kind stats.PeriodKind
		dst  *stats.PeriodStatsResponse
	}{
		{todayWindow, stats.PeriodDaily, &response.Today},
		{monthWindow, stats.PeriodMonthly, &response.ThisMonth},
	} {
		revenues, err := s.revenueRepo.ListByEmployeeAndRange(ctx, emp.ID, pair.w.Start, pair.w.End)
		if err != nil {
			return stats.EmployeeDashboardResponse{}, err
		}
		agg := stats.Compute(revenues, nil, pair.w, emp.CommissionPercentage, stats.ChargePolicyWindowed, pair.kind)
		*pair.dst = stats.PeriodStatsResponse{
			RevenueHt:    agg.RevenueHt,
			RevenueTtc:   agg.RevenueTtc,
			Charges:      agg.Charges,
			Commission:   agg.Commission.Round(2),
			Profit:       agg.Profit,
			ClientsCount: agg.ClientsCount,
		}
	}

	rows, err := s.commissionRepo.ListByEmployee(ctx, emp.ID, 0)
	if err != nil {
		return stats.EmployeeDashboardResponse{}, err
	}
	rows = commission.Deduplicate(rows)

	weekStart := clock.MondayOfWeek(now)
	for _, row := range rows {
		if row.WeekStart.Equal(weekStart) {
			current := commission.ToResponse(row)
			response.CurrentWeek = &current
		}
		if !row.Validated {
			response.PendingCommission = response.PendingCommission.Add(row.TotalCommission)
			continue
		}
		if monthWindow.Contains(row.WeekStart) {
			response.ValidatedThisMonth = response.ValidatedThisMonth.Add(row.TotalCommission)
			if row.Paid {
				response.PaidThisMonth = response.PaidThisMonth.Add(row.TotalCommission)
			}
		}
	}

	if len(rows) > DefaultHistoryWeeks {
		rows = rows[:DefaultHistoryWeeks]
	}
	response.History = commission.ToResponses(rows)

	return response, nil
}

// DefaultHistoryWeeks bounds the commission history shown on the dashboard.
const DefaultHistoryWeeks = 12

// ListArchive implements stats.StatsService.
func (s *StatsServiceImpl) ListArchive(ctx context.Context, principal user.Principal, employeeID string, period stats.Period, limit int) ([]stats.StatisticResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !principal.OwnsEmployee(emp.ID, emp.CreatedBy) {
		return nil, employee.ErrUnauthorized
	}
	if limit <= 0 {
		limit = 30
	}

	rows, err := s.statisticRepo.ListByEmployeeAndPeriod(ctx, employeeID, period, limit)
	if err != nil {
		return nil, err
	}

	return stats.ToStatisticResponses(rows), nil
}

// ListGlobalArchive implements stats.StatsService. Monthly global snapshots
// have no employee id, so they get their own read path.
func (s *StatsServiceImpl) ListGlobalArchive(ctx context.Context, principal user.Principal, limit int) ([]stats.StatisticResponse, error) {
	if !principal.IsAdmin() {
		return nil, user.ErrAdminPrivilegeRequired
	}
	if limit <= 0 {
		limit = 30
	}

	rows, err := s.statisticRepo.ListGlobalByPeriod(ctx, stats.StatPeriodMonthlyGlobal, limit)
	if err != nil {
		return nil, err
	}

	return stats.ToStatisticResponses(rows), nil
}

// ArchiveDaily implements stats.StatsService. It snapshots yesterday's
// per-employee aggregates; running it twice on the same day writes duplicate
// rows, so the scheduler guards the hour.
func (s *StatsServiceImpl) ArchiveDaily(ctx context.Context) error {
	now := s.clock.Now()
	end := clock.StartOfDay(now)
	start := end.AddDate(0, 0, -1)

	return s.archivePerEmployee(ctx, stats.StatPeriodDaily, stats.Window{Start: start, End: end}, stats.PeriodDaily)
}

// ArchiveWeekly implements stats.StatsService. Runs on Mondays for the week
// that just closed.
func (s *StatsServiceImpl) ArchiveWeekly(ctx context.Context) error {
	now := s.clock.Now()
	end := clock.MondayOfWeek(now)
	start := end.AddDate(0, 0, -7)

	return s.archivePerEmployee(ctx, stats.StatPeriodWeekly, stats.Window{Start: start, End: end}, stats.PeriodWeekly)
}

func (s *StatsServiceImpl) archivePerEmployee(ctx context.Context, period stats.Period, w stats.Window, kind stats.PeriodKind) error {
	employees, err := s.employeeRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}

	var failed int
	for _, emp := range employees {
		if err := s.archiveEmployeeWindow(ctx, emp, period, w, kind); err != nil {
			failed++
			s.logger.Error("statistic archival failed for employee",
				slog.String("employee_id", emp.ID),
				slog.String("period", string(period)),
				slog.Any("error", err),
			)
		}
	}

	s.logger.Info("statistic archival finished",
		slog.String("period", string(period)),
		slog.Time("window_start", w.Start),
		slog.Int("employees", len(employees)),
		slog.Int("failed", failed),
	)

	if failed == len(employees) && failed > 0 {
		return fmt.Errorf("statistic archival failed for all %d employees", failed)
	}
	return nil
}

func (s *StatsServiceImpl) archiveEmployeeWindow(ctx context.Context, emp employee.Employee, period stats.Period, w stats.Window, kind stats.PeriodKind) error {
	revenues, err := s.revenueRepo.ListByEmployeeAndRange(ctx, emp.ID, w.Start, w.End)
	if err != nil {
		return err
	}

	agg := stats.Compute(revenues, nil, w, emp.CommissionPercentage, stats.ChargePolicyWindowed, kind)

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate id: %w", err)
	}

	employeeID := emp.ID
	_, err = s.statisticRepo.Create(ctx, stats.Statistic{
		ID:           id.String(),
		EmployeeID:   &employeeID,
		Period:       period,
		Date:         w.Start,
		RevenueHt:    agg.RevenueHt,
		RevenueTtc:   agg.RevenueTtc,
		Charges:      agg.Charges,
		Commission:   agg.Commission.Round(2),
		Profit:       agg.Profit,
		ClientsCount: agg.ClientsCount,
	})
	return err
}

// ArchiveMonthlyGlobal implements stats.StatsService. One all-employee row
// for the month that just closed. Monthly counters derive from the dated
// records, so writing the snapshot is the whole of the monthly rollover.
func (s *StatsServiceImpl) ArchiveMonthlyGlobal(ctx context.Context) error {
	now := s.clock.Now()
	end := clock.StartOfMonth(now)
	start := end.AddDate(0, -1, 0)
	w := stats.Window{Start: start, End: end}

	employees, err := s.employeeRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}

	total := stats.Aggregate{
		RevenueHt:  decimal.Zero,
		RevenueTtc: decimal.Zero,
		Charges:    decimal.Zero,
		Commission: decimal.Zero,
		Profit:     decimal.Zero,
	}

	for _, emp := range employees {
		revenues, err := s.revenueRepo.ListByEmployeeAndRange(ctx, emp.ID, w.Start, w.End)
		if err != nil {
			return err
		}
		agg := stats.Compute(revenues, nil, w, emp.CommissionPercentage, stats.ChargePolicyWindowed, stats.PeriodMonthly)
		total.RevenueHt = total.RevenueHt.Add(agg.RevenueHt)
		total.RevenueTtc = total.RevenueTtc.Add(agg.RevenueTtc)
		total.Commission = total.Commission.Add(agg.Commission)
		total.ClientsCount += agg.ClientsCount
	}

	charges, err := s.chargeRepo.ListByRange(ctx, w.Start, w.End)
	if err != nil {
		return err
	}
	for _, c := range charges {
		total.Charges = total.Charges.Add(c.Amount)
	}
	total.Profit = total.RevenueHt.Sub(total.Charges).Sub(total.Commission)

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate id: %w", err)
	}

	_, err = s.statisticRepo.Create(ctx, stats.Statistic{
		ID:           id.String(),
		Period:       stats.StatPeriodMonthlyGlobal,
		Date:         w.Start,
		RevenueHt:    total.RevenueHt,
		RevenueTtc:   total.RevenueTtc,
		Charges:      total.Charges,
		Commission:   total.Commission.Round(2),
		Profit:       total.Profit,
		ClientsCount: total.ClientsCount,
	})
	if err != nil {
		return err
	}

	s.logger.Info("monthly global statistic archived",
		slog.Time("month_start", w.Start),
		slog.String("revenue_ht", total.RevenueHt.String()),
		slog.Int("clients", total.ClientsCount),
	)

	return nil
}
