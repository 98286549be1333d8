package commission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/barberdesk/salon-backend-go/internal/domain/commission"
	"github.com/barberdesk/salon-backend-go/internal/domain/employee"
	"github.com/barberdesk/salon-backend-go/internal/domain/revenue"
	"github.com/barberdesk/salon-backend-go/internal/domain/stats"
	"github.com/barberdesk/salon-backend-go/internal/domain/user"
	"github.com/barberdesk/salon-backend-go/internal/pkg/clock"
	"github.com/google/uuid"
)

// DefaultHistoryWeeks bounds the employee commission history endpoint.
const DefaultHistoryWeeks = 12

type CommissionServiceImpl struct {
	commissionRepo commission.WeeklyCommissionRepository
	employeeRepo   employee.EmployeeRepository
	revenueRepo    revenue.RevenueRepository
	clock          clock.Clock
	// forceOverwritesValidated lets a forced run recompute validated rows.
	// Off by default; validated rows are the employee's acknowledged state.
	forceOverwritesValidated bool
	logger                   *slog.Logger
}

func NewCommissionService(
	commissionRepo commission.WeeklyCommissionRepository,
	employeeRepo employee.EmployeeRepository,
	revenueRepo revenue.RevenueRepository,
	clk clock.Clock,
	forceOverwritesValidated bool,
	logger *slog.Logger,
) commission.CommissionService {
	return &CommissionServiceImpl{
		commissionRepo:           commissionRepo,
		employeeRepo:             employeeRepo,
		revenueRepo:              revenueRepo,
		clock:                    clk,
		forceOverwritesValidated: forceOverwritesValidated,
		logger:                   logger,
	}
}

// Generate implements commission.CommissionService. It walks every employee
// over the requested weeks, recomputes each week's totals from the revenue
// records and upserts the snapshot. One employee failing does not abort the
// run; failures are counted and reported in the summary.
func (s *CommissionServiceImpl) Generate(ctx context.Context, req commission.GenerateRequest) (commission.GenerateSummary, error) {
	if err := req.Validate(); err != nil {
		return commission.GenerateSummary{}, err
	}

	summary := commission.GenerateSummary{DryRun: req.DryRun}

	employees, err := s.employeeRepo.ListAll(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to list employees: %w", err)
	}

	currentMonday := clock.MondayOfWeek(s.clock.Now())

	for _, emp := range employees {
		if err := s.generateForEmployee(ctx, emp, currentMonday, req, &summary); err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("employee %s: %v", emp.ID, err))
			s.logger.Error("weekly commission generation failed for employee",
				slog.String("employee_id", emp.ID),
				slog.Any("error", err),
			)
		}
	}

	s.logger.Info("weekly commission generation finished",
		slog.Int("created", summary.Created),
		slog.Int("updated", summary.Updated),
		slog.Int("skipped", summary.Skipped),
		slog.Int("failed", summary.Failed),
		slog.Bool("dry_run", summary.DryRun),
	)

	return summary, nil
}

func (s *CommissionServiceImpl) generateForEmployee(ctx context.Context, emp employee.Employee, currentMonday time.Time, req commission.GenerateRequest, summary *commission.GenerateSummary) error {
	for weekOffset := 0; weekOffset < req.WeeksBack; weekOffset++ {
		weekStart := currentMonday.AddDate(0, 0, -7*weekOffset)
		weekEnd := weekStart.AddDate(0, 0, 6)
		windowEnd := weekStart.AddDate(0, 0, 7)

		existing, err := s.commissionRepo.FindByEmployeeAndWeek(ctx, emp.ID, weekStart, weekEnd)
		exists := err == nil
		if err != nil && !errors.Is(err, commission.ErrCommissionNotFound) {
			return err
		}

		if exists && existing.Validated && !(req.Force && s.forceOverwritesValidated) {
			summary.Skipped++
			continue
		}

		revenues, err := s.revenueRepo.ListByEmployeeAndRange(ctx, emp.ID, weekStart, windowEnd)
		if err != nil {
			return err
		}

		agg := stats.Compute(revenues, nil,
			stats.Window{Start: weekStart, End: windowEnd},
			emp.CommissionPercentage, stats.ChargePolicyWindowed, stats.PeriodWeekly)

		if req.DryRun {
			if exists {
				summary.Updated++
			} else {
				summary.Created++
			}
			continue
		}

		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate id: %w", err)
		}

		_, created, err := s.commissionRepo.Upsert(ctx, commission.WeeklyCommission{
			ID:              id.String(),
			EmployeeID:      emp.ID,
			WeekStart:       weekStart,
			WeekEnd:         weekEnd,
			TotalRevenueHt:  agg.RevenueHt,
			TotalCommission: agg.Commission.Round(2),
			ClientsCount:    agg.ClientsCount,
		})
		if err != nil {
			return err
		}
		if created {
			summary.Created++
		} else {
			summary.Updated++
		}
	}

	return nil
}

// ListMine implements commission.CommissionService.
func (s *CommissionServiceImpl) ListMine(ctx context.Context, principal user.Principal, limit int) ([]commission.CommissionResponse, error) {
	if principal.EmployeeID == "" {
		return nil, commission.ErrUnauthorized
	}
	if limit <= 0 {
		limit = DefaultHistoryWeeks
	}

	// Double the limit covers pre-constraint duplicates collapsing in dedup
	// without reading the whole history.
	rows, err := s.commissionRepo.ListByEmployee(ctx, principal.EmployeeID, limit*2)
	if err != nil {
		return nil, err
	}

	deduped := commission.Deduplicate(rows)
	if len(deduped) > limit {
		deduped = deduped[:limit]
	}

	return commission.ToResponses(deduped), nil
}

// Validate implements commission.CommissionService.
func (s *CommissionServiceImpl) Validate(ctx context.Context, principal user.Principal, id string) (commission.CommissionResponse, error) {
	row, err := s.authorize(ctx, principal, id)
	if err != nil {
		return commission.CommissionResponse{}, err
	}

	now := s.clock.Now()
	if err := row.Validate(now); err != nil {
		return commission.CommissionResponse{}, err
	}
	if err := s.commissionRepo.MarkValidated(ctx, row.ID, now); err != nil {
		return commission.CommissionResponse{}, err
	}

	return commission.ToResponse(row), nil
}

// Pay implements commission.CommissionService.
func (s *CommissionServiceImpl) Pay(ctx context.Context, principal user.Principal, id string) (commission.CommissionResponse, error) {
	row, err := s.authorize(ctx, principal, id)
	if err != nil {
		return commission.CommissionResponse{}, err
	}

	now := s.clock.Now()
	if err := row.MarkPaid(now); err != nil {
		return commission.CommissionResponse{}, err
	}
	if err := s.commissionRepo.MarkPaid(ctx, row.ID, now); err != nil {
		return commission.CommissionResponse{}, err
	}

	return commission.ToResponse(row), nil
}

// authorize loads the row and checks the principal may act on it: the
// employee it belongs to, or an admin whose scope contains that employee.
func (s *CommissionServiceImpl) authorize(ctx context.Context, principal user.Principal, id string) (commission.WeeklyCommission, error) {
	row, err := s.commissionRepo.GetByID(ctx, id)
	if err != nil {
		return commission.WeeklyCommission{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, row.EmployeeID)
	if err != nil {
		return commission.WeeklyCommission{}, err
	}

	if !principal.OwnsEmployee(emp.ID, emp.CreatedBy) {
		return commission.WeeklyCommission{}, commission.ErrUnauthorized
	}

	return row, nil
}
