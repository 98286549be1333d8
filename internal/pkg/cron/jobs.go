package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/barberdesk/salon-backend-go/internal/domain/commission"
	"github.com/barberdesk/salon-backend-go/internal/domain/stats"
	"github.com/barberdesk/salon-backend-go/internal/pkg/clock"
)

// StatsJobs owns the periodic statistic archival work.
type StatsJobs struct {
	statsService stats.StatsService
	clock        clock.Clock
}

func NewStatsJobs(statsService stats.StatsService, clk clock.Clock) *StatsJobs {
	return &StatsJobs{
		statsService: statsService,
		clock:        clk,
	}
}

func (j *StatsJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("archive_daily_statistics", 1*time.Hour, j.ArchiveDailyStatistics)
	scheduler.AddJob("archive_weekly_statistics", 1*time.Hour, j.ArchiveWeeklyStatistics)
	scheduler.AddJob("archive_monthly_global_statistics", 1*time.Hour, j.ArchiveMonthlyGlobalStatistics)
}

// ArchiveDailyStatistics snapshots yesterday's per-employee totals.
func (j *StatsJobs) ArchiveDailyStatistics(ctx context.Context) error {
	// Only run at midnight (00:00-00:59)
	if j.clock.Now().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting daily statistics archival")
	return j.statsService.ArchiveDaily(ctx)
}

// ArchiveWeeklyStatistics snapshots the week that just closed.
func (j *StatsJobs) ArchiveWeeklyStatistics(ctx context.Context) error {
	// Only run on Monday at midnight
	now := j.clock.Now()
	if now.Weekday() != time.Monday || now.Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting weekly statistics archival")
	return j.statsService.ArchiveWeekly(ctx)
}

// ArchiveMonthlyGlobalStatistics snapshots the month that just closed.
func (j *StatsJobs) ArchiveMonthlyGlobalStatistics(ctx context.Context) error {
	// Only run on the first of the month at midnight
	now := j.clock.Now()
	if now.Day() != 1 || now.Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting monthly global statistics archival")
	return j.statsService.ArchiveMonthlyGlobal(ctx)
}

// CommissionJobs owns the nightly weekly-commission generation.
type CommissionJobs struct {
	commissionService commission.CommissionService
	clock             clock.Clock
	weeksBack         int
}

func NewCommissionJobs(commissionService commission.CommissionService, clk clock.Clock, weeksBack int) *CommissionJobs {
	return &CommissionJobs{
		commissionService: commissionService,
		clock:             clk,
		weeksBack:         weeksBack,
	}
}

func (j *CommissionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("generate_weekly_commissions", 1*time.Hour, j.GenerateWeeklyCommissions)
}

// GenerateWeeklyCommissions refreshes the recent weekly snapshots so the
// dashboards never lag a full week behind.
func (j *CommissionJobs) GenerateWeeklyCommissions(ctx context.Context) error {
	// Only run at 01:00-01:59, after the archival jobs
	if j.clock.Now().Hour() != 1 {
		return nil
	}

	slog.Info("Cron: Starting weekly commission generation")
	_, err := j.commissionService.Generate(ctx, commission.GenerateRequest{WeeksBack: j.weeksBack})
	return err
}
