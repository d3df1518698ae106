package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/uniadmin/payroll-backend-go/internal/domain/payroll"
)

type PayrollJobs struct {
	payrollService payroll.PayrollService
	logger         *slog.Logger
	now            func() time.Time
}

func NewPayrollJobs(payrollService payroll.PayrollService, logger *slog.Logger) *PayrollJobs {
	if logger == nil {
		logger = slog.Default()
	}
	return &PayrollJobs{
		payrollService: payrollService,
		logger:         logger.With("component", "payroll_jobs"),
		now:            time.Now,
	}
}

// RegisterJobs adds the auto-generation job. A zero interval disables it.
func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	if interval <= 0 {
		j.logger.Info("Cron: payroll auto-generation disabled")
		return
	}
	scheduler.AddJob("generate_current_month_payroll", interval, j.GenerateCurrentMonth)
}

// GenerateCurrentMonth regenerates payroll for the current UTC month.
func (j *PayrollJobs) GenerateCurrentMonth(ctx context.Context) error {
	month := payroll.MonthOf(j.now().UTC()).String()

	j.logger.Info("Cron: starting payroll generation", "month", month)

	result, err := j.payrollService.GenerateMonthlyPayroll(ctx, payroll.GeneratePayrollRequest{Month: month})
	if err != nil {
		return fmt.Errorf("failed to generate payroll for %s: %w", month, err)
	}

	j.logger.Info("Cron: payroll generation finished",
		"month", month,
		"generated", len(result.Records),
		"skipped", len(result.Skipped),
		"failed", len(result.Failures),
	)
	return nil
}
