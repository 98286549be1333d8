package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/barberdesk/salon-backend-go/internal/config"
	"github.com/barberdesk/salon-backend-go/internal/domain/commission"
	"github.com/barberdesk/salon-backend-go/internal/domain/stats"
	"github.com/barberdesk/salon-backend-go/internal/pkg/clock"
	"github.com/barberdesk/salon-backend-go/internal/pkg/database"
	"github.com/barberdesk/salon-backend-go/internal/repository/postgresql"
	commissionService "github.com/barberdesk/salon-backend-go/internal/service/commission"
	statsService "github.com/barberdesk/salon-backend-go/internal/service/stats"
)

// Runs one maintenance job and exits. Intended for operators and external
// schedulers; the API process runs the same jobs on its internal ticker.
func main() {
	var (
		weeksBack = flag.Int("weeks-back", 0, "weeks to recompute for generate-commissions (0 uses the configured default)")
		force     = flag.Bool("force", false, "recompute validated commission rows too, when allowed")
		dryRun    = flag.Bool("dry-run", false, "report what would change without writing")
	)
	flag.Parse()

	jobName := flag.Arg(0)
	if jobName == "" {
		fmt.Fprintln(os.Stderr, "usage: jobs [flags] <generate-commissions|archive-daily|archive-weekly|archive-monthly>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	clk := clock.System()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	revenueRepo := postgresql.NewRevenueRepository(db)
	chargeRepo := postgresql.NewChargeRepository(db)
	commissionRepo := postgresql.NewWeeklyCommissionRepository(db)
	statisticRepo := postgresql.NewStatisticRepository(db)

	commissionSvc := commissionService.NewCommissionService(
		commissionRepo, employeeRepo, revenueRepo, clk,
		cfg.Commission.ForceOverwritesValidated, logger,
	)
	statsSvc := statsService.NewStatsService(
		revenueRepo, chargeRepo, employeeRepo, commissionRepo, statisticRepo, clk,
		stats.ChargePolicy(cfg.Stats.ChargePolicy), logger,
	)

	ctx := context.Background()

	switch jobName {
	case "generate-commissions":
		weeks := *weeksBack
		if weeks <= 0 {
			weeks = cfg.Commission.WeeksBack
		}
		summary, err := commissionSvc.Generate(ctx, commission.GenerateRequest{
			WeeksBack: weeks,
			Force:     *force,
			DryRun:    *dryRun,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "generate-commissions failed:", err)
			os.Exit(1)
		}
		fmt.Printf("created=%d updated=%d skipped=%d failed=%d dry_run=%t\n",
			summary.Created, summary.Updated, summary.Skipped, summary.Failed, summary.DryRun)
	case "archive-daily":
		err = statsSvc.ArchiveDaily(ctx)
	case "archive-weekly":
		err = statsSvc.ArchiveWeekly(ctx)
	case "archive-monthly":
		err = statsSvc.ArchiveMonthlyGlobal(ctx)
	default:
		fmt.Fprintln(os.Stderr, "unknown job:", jobName)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", jobName, err)
		os.Exit(1)
	}
}
