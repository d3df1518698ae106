package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"
	"github.com/uniadmin/payroll-backend-go/internal/config"
	"github.com/uniadmin/payroll-backend-go/internal/fixtures"
	appHTTP "github.com/uniadmin/payroll-backend-go/internal/handler/http"
	"github.com/uniadmin/payroll-backend-go/internal/pkg/cron"
	"github.com/uniadmin/payroll-backend-go/internal/pkg/database"
	"github.com/uniadmin/payroll-backend-go/internal/pkg/jwt"
	"github.com/uniadmin/payroll-backend-go/internal/pkg/sse"
	"github.com/uniadmin/payroll-backend-go/internal/repository/postgresql"
	notificationService "github.com/uniadmin/payroll-backend-go/internal/service/notification"
	payrollService "github.com/uniadmin/payroll-backend-go/internal/service/payroll"
	salaryService "github.com/uniadmin/payroll-backend-go/internal/service/salary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.App)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{MaxConns: cfg.Database.MaxConns})
	if err != nil {
		logger.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		logger.Error("Error applying migrations", "error", err)
		os.Exit(1)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	salaryConfigRepo := postgresql.NewSalaryConfigurationRepository(db)
	attendanceLedger := postgresql.NewAttendanceLedger(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub(32)

	notifSvc := notificationService.NewNotificationService(notificationRepo, hub, logger, notificationService.Config{})
	resolver := salaryService.NewResolver(salaryConfigRepo, fixtures.DefaultSalaryTable())
	salarySvc := salaryService.NewSalaryService(employeeRepo, salaryConfigRepo, resolver, logger)
	payrollSvc := payrollService.NewPayrollService(
		payrollRepo,
		employeeRepo,
		attendanceLedger,
		resolver,
		notifSvc,
		logger,
		payrollService.Config{
			WorkerCount:   cfg.Payroll.WorkerCount,
			LockFinalized: cfg.Payroll.LockFinalized,
		},
	)

	scheduler := cron.NewScheduler(logger)
	cron.NewPayrollJobs(payrollSvc, logger).RegisterJobs(scheduler, cfg.Payroll.AutoGenerateInterval)
	scheduler.Start()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{AllowedOrigins: cfg.App.AllowedOrigins, Logger: logger},
		JWTService,
		appHTTP.NewPayrollHandler(payrollSvc),
		appHTTP.NewSalaryHandler(salarySvc),
		appHTTP.NewNotificationHandler(notifSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	scheduler.Stop()
	// Drains queued audit events before the pool closes.
	notifSvc.Stop()
}

func newLogger(app config.AppConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(app.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logFormat := httplog.SchemaECS.Concise(app.Env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "uniadmin-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", app.Env),
	)
}
