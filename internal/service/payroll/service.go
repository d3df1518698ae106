package payroll

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/uniadmin/payroll-backend-go/internal/domain/attendance"
	"github.com/uniadmin/payroll-backend-go/internal/domain/employee"
	"github.com/uniadmin/payroll-backend-go/internal/domain/notification"
	"github.com/uniadmin/payroll-backend-go/internal/domain/payroll"
	"github.com/uniadmin/payroll-backend-go/internal/domain/salary"
	"github.com/uniadmin/payroll-backend-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

// Config tunes payroll generation.
type Config struct {
	// WorkerCount bounds how many employees are generated concurrently. Default 4.
	WorkerCount int
	// LockFinalized leaves approved and paid records untouched on regeneration.
	LockFinalized bool
	// Now is the clock used for generatedAt and lifecycle timestamps. Default time.Now.
	Now func() time.Time
}

type PayrollServiceImpl struct {
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	ledger       attendance.Ledger
	resolver     salary.Resolver
	calculator   *Calculator
	publisher    notification.Publisher
	logger       *slog.Logger
	config       Config
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	ledger attendance.Ledger,
	resolver salary.Resolver,
	publisher notification.Publisher,
	logger *slog.Logger,
	cfg Config,
) payroll.PayrollService {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PayrollServiceImpl{
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		ledger:       ledger,
		resolver:     resolver,
		calculator:   NewCalculator(),
		publisher:    publisher,
		logger:       logger.With("component", "payroll"),
		config:       cfg,
	}
}

// ========== GENERATION ==========

type employeeOutcome struct {
	record  payroll.PayrollRecord
	applied bool
	failure *payroll.GenerationFailure
}

// GenerateMonthlyPayroll computes and stores a record for every active employee.
// A failing employee is reported in the result and does not stop the others.
func (s *PayrollServiceImpl) GenerateMonthlyPayroll(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.GenerationResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.GenerationResponse{}, err
	}
	month, err := payroll.ParseMonth(req.Month)
	if err != nil {
		return payroll.GenerationResponse{}, err
	}

	employees, err := s.employeeRepo.ListActive(ctx, nil)
	if err != nil {
		return payroll.GenerationResponse{}, err
	}

	generatedAt := s.config.Now()
	started := time.Now()
	s.logger.Info("payroll generation started", "month", month.String(), "employees", len(employees))

	var (
		mu       sync.Mutex
		outcomes = make([]employeeOutcome, 0, len(employees))
		g        errgroup.Group
	)
	g.SetLimit(s.config.WorkerCount)

	for _, emp := range employees {
		g.Go(func() error {
			outcome := s.generateForEmployee(ctx, emp, month, generatedAt)
			mu.Lock()
			outcomes = append(outcomes, outcome)
			mu.Unlock()
			return nil
		})
	}
	// Workers never return an error; failures are collected per employee.
	_ = g.Wait()

	resp := payroll.GenerationResponse{
		Month:    month.String(),
		Records:  []payroll.PayrollRecordResponse{},
		Skipped:  []payroll.PayrollRecordResponse{},
		Failures: []payroll.GenerationFailure{},
	}
	var records, skipped []payroll.PayrollRecord
	for _, o := range outcomes {
		switch {
		case o.failure != nil:
			resp.Failures = append(resp.Failures, *o.failure)
		case o.applied:
			records = append(records, o.record)
		default:
			skipped = append(skipped, o.record)
		}
	}
	sortRecords(records)
	sortRecords(skipped)
	sort.Slice(resp.Failures, func(i, j int) bool {
		return resp.Failures[i].EmployeeCode < resp.Failures[j].EmployeeCode
	})
	for _, r := range records {
		resp.Records = append(resp.Records, payroll.NewPayrollRecordResponse(r))
	}
	for _, r := range skipped {
		resp.Skipped = append(resp.Skipped, payroll.NewPayrollRecordResponse(r))
	}

	s.logger.Info("payroll generation finished",
		"month", month.String(),
		"generated", len(resp.Records),
		"skipped", len(resp.Skipped),
		"failed", len(resp.Failures),
		"duration", time.Since(started))

	s.publish(ctx, notification.PublishRequest{
		Type:  notification.TypePayrollGenerated,
		Month: month.String(),
		Data: map[string]interface{}{
			"generated": len(resp.Records),
			"skipped":   len(resp.Skipped),
			"failed":    len(resp.Failures),
		},
	})
	for _, f := range resp.Failures {
		employeeID := f.EmployeeID
		s.publish(ctx, notification.PublishRequest{
			Type:       notification.TypePayrollGenerationFailed,
			EmployeeID: &employeeID,
			Month:      month.String(),
			Data: map[string]interface{}{
				"stage": f.Stage,
				"error": f.Error,
			},
		})
	}

	return resp, nil
}

func (s *PayrollServiceImpl) generateForEmployee(ctx context.Context, emp employee.Employee, month payroll.Month, generatedAt time.Time) employeeOutcome {
	fail := func(stage string, err error) employeeOutcome {
		s.logger.Error("payroll generation failed for employee",
			"month", month.String(),
			"employee_id", emp.ID,
			"employee_code", emp.DisplayCode,
			"stage", stage,
			"error", err)
		return employeeOutcome{failure: &payroll.GenerationFailure{
			EmployeeID:   emp.ID,
			EmployeeCode: emp.DisplayCode,
			Stage:        stage,
			Error:        err.Error(),
		}}
	}

	if err := ctx.Err(); err != nil {
		return fail(payroll.StageConfiguration, err)
	}

	cfg, err := s.resolver.Resolve(ctx, emp)
	if err != nil {
		return fail(payroll.StageConfiguration, err)
	}

	events, err := s.ledger.GetEvents(ctx, emp.ID, month.Start(), month.End())
	if err != nil {
		return fail(payroll.StageAttendance, err)
	}

	computed, err := s.calculator.ComputeMonth(emp, cfg, events, month, generatedAt)
	if err != nil {
		return fail(payroll.StageCompute, err)
	}

	stored, applied, err := s.payrollRepo.UpsertComputed(ctx, computed, s.config.LockFinalized)
	if err != nil {
		return fail(payroll.StageStore, err)
	}
	if stored.EmployeeName == nil {
		stored.EmployeeName = computed.EmployeeName
	}
	if stored.EmployeeCode == nil {
		stored.EmployeeCode = computed.EmployeeCode
	}

	switch {
	case !applied:
		s.logger.Info("finalized payroll record left unchanged",
			"record_id", stored.ID, "employee_id", emp.ID, "month", month.String(), "status", stored.Status)
	case stored.Status.IsFinalized():
		s.logger.Warn("recomputed finalized payroll record",
			"record_id", stored.ID, "employee_id", emp.ID, "month", month.String(), "status", stored.Status)
	}

	return employeeOutcome{record: stored, applied: applied}
}

func sortRecords(records []payroll.PayrollRecord) {
	code := func(r payroll.PayrollRecord) string {
		if r.EmployeeCode == nil {
			return ""
		}
		return *r.EmployeeCode
	}
	sort.SliceStable(records, func(i, j int) bool {
		ci, cj := code(records[i]), code(records[j])
		if ci != cj {
			return ci < cj
		}
		return records[i].EmployeeID < records[j].EmployeeID
	})
}

// ========== LIFECYCLE ==========

// Approve moves a draft record to approved, stamping the approver.
func (s *PayrollServiceImpl) Approve(ctx context.Context, id string, approvedBy string) (payroll.PayrollRecordResponse, error) {
	if validator.IsEmpty(approvedBy) {
		return payroll.PayrollRecordResponse{}, payroll.ErrApproverRequired
	}
	return s.transition(ctx, id, payroll.ApproveTransition(approvedBy, s.config.Now()), notification.TypePayrollApproved)
}

// MarkPaid moves an approved record to paid.
func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	return s.transition(ctx, id, payroll.MarkPaidTransition(s.config.Now()), notification.TypePayrollPaid)
}

func (s *PayrollServiceImpl) transition(ctx context.Context, id string, t payroll.StatusTransition, eventType notification.EventType) (payroll.PayrollRecordResponse, error) {
	if !validator.IsValidUUID(id) {
		return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordNotFound
	}

	rec, err := s.payrollRepo.UpdateStatus(ctx, id, t)
	if err != nil {
		if errors.Is(err, payroll.ErrInvalidStatusTransition) {
			s.logger.Warn("rejected payroll status transition", "record_id", id, "to", t.To, "error", err)
		}
		return payroll.PayrollRecordResponse{}, err
	}

	s.logger.Info("payroll record status changed",
		"record_id", rec.ID, "employee_id", rec.EmployeeID, "month", rec.Month.String(), "status", rec.Status)

	recordID, employeeID := rec.ID, rec.EmployeeID
	s.publish(ctx, notification.PublishRequest{
		Type:       eventType,
		RecordID:   &recordID,
		EmployeeID: &employeeID,
		Month:      rec.Month.String(),
		Actor:      t.Actor,
		Data: map[string]interface{}{
			"from":         string(t.From),
			"to":           string(t.To),
			"total_salary": rec.TotalSalary.StringFixed(2),
		},
	})

	return payroll.NewPayrollRecordResponse(rec), nil
}

// ========== QUERIES ==========

func (s *PayrollServiceImpl) GetPayrollRecord(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	if !validator.IsValidUUID(id) {
		return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordNotFound
	}

	rec, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return payroll.NewPayrollRecordResponse(rec), nil
}

func (s *PayrollServiceImpl) ListPayrollRecords(ctx context.Context, req payroll.ListPayrollRecordsRequest) ([]payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	filter, err := req.ToFilter()
	if err != nil {
		return nil, err
	}

	records, err := s.payrollRepo.ListByMonth(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapToRecordResponses(records), nil
}

func (s *PayrollServiceImpl) GetPayrollSummary(ctx context.Context, month string) (payroll.PayrollSummaryResponse, error) {
	m, err := payroll.ParseMonth(month)
	if err != nil {
		return payroll.PayrollSummaryResponse{}, err
	}

	summary, err := s.payrollRepo.GetSummary(ctx, m)
	if err != nil {
		return payroll.PayrollSummaryResponse{}, err
	}
	return payroll.NewPayrollSummaryResponse(summary), nil
}

// publish records an audit event. Failures are logged and never surface to the caller.
func (s *PayrollServiceImpl) publish(ctx context.Context, req notification.PublishRequest) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(context.WithoutCancel(ctx), req); err != nil {
		s.logger.Error("failed to publish payroll audit event", "type", req.Type, "month", req.Month, "error", err)
	}
}

func mapToRecordResponses(records []payroll.PayrollRecord) []payroll.PayrollRecordResponse {
	responses := make([]payroll.PayrollRecordResponse, len(records))
	for i, r := range records {
		responses[i] = payroll.NewPayrollRecordResponse(r)
	}
	return responses
}
