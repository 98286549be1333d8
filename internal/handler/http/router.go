package http

import (
	"log/slog"
	"os"

	"github.com/barberdesk/salon-backend-go/internal/handler/http/middleware"
	"github.com/barberdesk/salon-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	AppEnv         string
	AllowedOrigins []string
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	packageHandler PackageHandler,
	revenueHandler RevenueHandler,
	chargeHandler ChargeHandler,
	commissionHandler CommissionHandler,
	dashboardHandler DashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "salon-backend"),
		slog.String("env", cfg.AppEnv),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Get("/auth/me", authHandler.Me)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Get("/{id}", employeeHandler.GetByID)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", employeeHandler.Create)
					r.Put("/{id}", employeeHandler.Update)
					r.Delete("/{id}", employeeHandler.Delete)
				})
			})

			r.Route("/packages", func(r chi.Router) {
				r.Get("/", packageHandler.List)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", packageHandler.Create)
					r.Put("/{id}", packageHandler.Update)
					r.Delete("/{id}", packageHandler.Delete)
				})
			})

			r.Route("/revenues", func(r chi.Router) {
				r.Post("/select-package", revenueHandler.SelectPackage)
				r.Get("/my", revenueHandler.ListMine)
			})

			// Admin only
			r.Route("/charges", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/", chargeHandler.Create)
				r.Get("/", chargeHandler.List)
				r.Delete("/{id}", chargeHandler.Delete)
			})

			r.Route("/commissions", func(r chi.Router) {
				r.Get("/my", commissionHandler.ListMine)
				r.Post("/{id}/validate", commissionHandler.Validate)
				r.Post("/{id}/pay", commissionHandler.Pay)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/generate", commissionHandler.Generate)
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/employee", dashboardHandler.Employee)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/admin", dashboardHandler.Admin)
					r.Get("/archive", dashboardHandler.GlobalArchive)
					r.Get("/employees/{id}/archive", dashboardHandler.Archive)
				})
			})
		})
	})
	return r
}
