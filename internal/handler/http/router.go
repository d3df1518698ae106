package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/uniadmin/payroll-backend-go/internal/handler/http/middleware"
	"github.com/uniadmin/payroll-backend-go/internal/pkg/jwt"
)

// RouterConfig carries the HTTP surface's environment-dependent settings.
type RouterConfig struct {
	AllowedOrigins []string
	Logger         *slog.Logger
}

func NewRouter(
	cfg RouterConfig,
	JWTService jwt.Service,
	payrollHandler PayrollHandler,
	salaryHandler SalaryHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	ja := JWTService.JWTAuth()

	r.Route("/api/v1", func(r chi.Router) {

		// Event streams authenticate with ?token= as well as the header
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verify(ja, jwtauth.TokenFromHeader, middleware.TokenFromQuery))
			r.Use(middleware.AuthRequired)
			r.Use(middleware.RequireRole(jwt.RoleAdmin, jwt.RoleFinance))
			r.Get("/payroll/events", notificationHandler.Stream)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(ja))
			r.Use(middleware.AuthRequired)

			r.Route("/salary-configurations/{employeeId}", func(r chi.Router) {
				r.With(middleware.RequireRole(jwt.RoleAdmin, jwt.RoleFinance)).Get("/", salaryHandler.GetConfiguration)
				r.With(middleware.RequireRole(jwt.RoleAdmin)).Put("/", salaryHandler.UpsertConfiguration)
			})

			r.Route("/payroll", func(r chi.Router) {

				// Read access
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(jwt.RoleAdmin, jwt.RoleFinance))
					r.Get("/records", payrollHandler.ListPayrollRecords)
					r.Get("/records/{id}", payrollHandler.GetPayrollRecord)
					r.Get("/summary", payrollHandler.GetPayrollSummary)
					r.Get("/export", payrollHandler.ExportPayroll)
					r.Get("/audit", notificationHandler.ListAudit)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(jwt.RoleAdmin))
					r.Post("/generate", payrollHandler.GeneratePayroll)
					r.Post("/records/{id}/approve", payrollHandler.ApprovePayrollRecord)
					r.Post("/records/{id}/pay", payrollHandler.MarkPayrollRecordPaid)
				})
			})
		})
	})
	return r
}
