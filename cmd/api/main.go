package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/barberdesk/salon-backend-go/internal/config"
	"github.com/barberdesk/salon-backend-go/internal/domain/stats"
	appHTTP "github.com/barberdesk/salon-backend-go/internal/handler/http"
	"github.com/barberdesk/salon-backend-go/internal/pkg/clock"
	"github.com/barberdesk/salon-backend-go/internal/pkg/cron"
	"github.com/barberdesk/salon-backend-go/internal/pkg/database"
	"github.com/barberdesk/salon-backend-go/internal/pkg/jwt"
	"github.com/barberdesk/salon-backend-go/internal/repository/postgresql"
	authService "github.com/barberdesk/salon-backend-go/internal/service/auth"
	catalogService "github.com/barberdesk/salon-backend-go/internal/service/catalog"
	chargeService "github.com/barberdesk/salon-backend-go/internal/service/charge"
	commissionService "github.com/barberdesk/salon-backend-go/internal/service/commission"
	employeeService "github.com/barberdesk/salon-backend-go/internal/service/employee"
	revenueService "github.com/barberdesk/salon-backend-go/internal/service/revenue"
	statsService "github.com/barberdesk/salon-backend-go/internal/service/stats"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	clk := clock.System()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	packageRepo := postgresql.NewPackageRepository(db)
	revenueRepo := postgresql.NewRevenueRepository(db)
	chargeRepo := postgresql.NewChargeRepository(db)
	commissionRepo := postgresql.NewWeeklyCommissionRepository(db)
	statisticRepo := postgresql.NewStatisticRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authSvc := authService.NewAuthService(db, userRepo, jwtService)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, userRepo)
	packageSvc := catalogService.NewPackageService(packageRepo, employeeRepo)
	revenueSvc := revenueService.NewRevenueService(revenueRepo, packageRepo, employeeRepo, clk)
	chargeSvc := chargeService.NewChargeService(chargeRepo, clk)
	commissionSvc := commissionService.NewCommissionService(
		commissionRepo, employeeRepo, revenueRepo, clk,
		cfg.Commission.ForceOverwritesValidated, logger,
	)
	statsSvc := statsService.NewStatsService(
		revenueRepo, chargeRepo, employeeRepo, commissionRepo, statisticRepo, clk,
		stats.ChargePolicy(cfg.Stats.ChargePolicy), logger,
	)

	scheduler := cron.NewScheduler(logger)
	cron.NewStatsJobs(statsSvc, clk).RegisterJobs(scheduler)
	cron.NewCommissionJobs(commissionSvc, clk, cfg.Commission.WeeksBack).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AppEnv:         cfg.App.Env,
			AllowedOrigins: cfg.App.AllowedOrigins,
		},
		jwtService,
		appHTTP.NewAuthHandler(jwtService, authSvc),
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewPackageHandler(packageSvc),
		appHTTP.NewRevenueHandler(revenueSvc),
		appHTTP.NewChargeHandler(chargeSvc),
		appHTTP.NewCommissionHandler(commissionSvc),
		appHTTP.NewDashboardHandler(statsSvc),
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
