package payroll

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uniadmin/payroll-backend-go/internal/domain/attendance"
	"github.com/uniadmin/payroll-backend-go/internal/domain/employee"
	"github.com/uniadmin/payroll-backend-go/internal/domain/notification"
	"github.com/uniadmin/payroll-backend-go/internal/domain/payroll"
	"github.com/uniadmin/payroll-backend-go/internal/domain/salary"
)

// fakePayrollRepo mirrors the PostgreSQL store: partial upsert keyed by
// (employee, month) and compare-and-set status updates.
type fakePayrollRepo struct {
	mu      sync.Mutex
	records map[string]payroll.PayrollRecord
	failFor map[string]error
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{
		records: make(map[string]payroll.PayrollRecord),
		failFor: make(map[string]error),
	}
}

func (r *fakePayrollRepo) findKey(employeeID string, month payroll.Month) (string, bool) {
	for id, rec := range r.records {
		if rec.EmployeeID == employeeID && rec.Month.Equal(month) {
			return id, true
		}
	}
	return "", false
}

func (r *fakePayrollRepo) UpsertComputed(ctx context.Context, rec payroll.PayrollRecord, lockFinalized bool) (payroll.PayrollRecord, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.failFor[rec.EmployeeID]; err != nil {
		return payroll.PayrollRecord{}, false, err
	}

	if id, ok := r.findKey(rec.EmployeeID, rec.Month); ok {
		existing := r.records[id]
		if lockFinalized && existing.Status.IsFinalized() {
			return existing, false, nil
		}
		payroll.ApplyComputed(&existing, rec)
		existing.UpdatedAt = rec.GeneratedAt
		r.records[id] = existing
		return existing, true, nil
	}

	rec.ID = uuid.Must(uuid.NewV7()).String()
	rec.Status = payroll.PayrollStatusDraft
	rec.CreatedAt = rec.GeneratedAt
	rec.UpdatedAt = rec.GeneratedAt
	r.records[rec.ID] = rec
	return rec, true, nil
}

func (r *fakePayrollRepo) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return rec, nil
}

func (r *fakePayrollRepo) GetByEmployeeMonth(ctx context.Context, employeeID string, month payroll.Month) (payroll.PayrollRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.findKey(employeeID, month)
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return r.records[id], nil
}

func (r *fakePayrollRepo) ListByMonth(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []payroll.PayrollRecord
	for _, rec := range r.records {
		if !rec.Month.Equal(filter.Month) {
			continue
		}
		if filter.Status != nil && rec.Status != *filter.Status {
			continue
		}
		if filter.EmployeeID != nil && rec.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, rec)
	}
	sortRecords(out)
	return out, nil
}

func (r *fakePayrollRepo) UpdateStatus(ctx context.Context, id string, t payroll.StatusTransition) (payroll.PayrollRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	if rec.Status != t.From {
		return payroll.PayrollRecord{}, t.Rejection(rec.Status)
	}
	t.Apply(&rec)
	rec.UpdatedAt = t.At
	r.records[id] = rec
	return rec, nil
}

func (r *fakePayrollRepo) GetSummary(ctx context.Context, month payroll.Month) (payroll.PayrollSummary, error) {
	records, _ := r.ListByMonth(ctx, payroll.PayrollFilter{Month: month})
	s := payroll.PayrollSummary{Month: month}
	for _, rec := range records {
		s.TotalEmployees++
		s.TotalBasicSalary = s.TotalBasicSalary.Add(rec.BasicSalary)
		s.TotalOvertimePay = s.TotalOvertimePay.Add(rec.OvertimePay)
		s.TotalDeductions = s.TotalDeductions.Add(rec.TotalDeductions)
		s.TotalSalary = s.TotalSalary.Add(rec.TotalSalary)
		switch rec.Status {
		case payroll.PayrollStatusDraft:
			s.DraftCount++
		case payroll.PayrollStatusApproved:
			s.ApprovedCount++
		case payroll.PayrollStatusPaid:
			s.PaidCount++
		}
	}
	return s, nil
}

func (r *fakePayrollRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
	listErr   error
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) ListActive(ctx context.Context, category *employee.Category) ([]employee.Employee, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []employee.Employee
	for _, e := range r.employees {
		if !e.IsActive {
			continue
		}
		if category != nil && e.Category != *category {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

type fakeLedger struct {
	mu      sync.Mutex
	events  map[string][]attendance.Event
	failFor map[string]error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{events: make(map[string][]attendance.Event), failFor: make(map[string]error)}
}

func (l *fakeLedger) GetEvents(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.failFor[employeeID]; err != nil {
		return nil, err
	}
	var out []attendance.Event
	for _, e := range l.events[employeeID] {
		if !e.Date.Before(from) && e.Date.Before(to) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (l *fakeLedger) Upsert(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	events := l.events[event.EmployeeID]
	for i, e := range events {
		if e.DayKey() == event.DayKey() {
			events[i] = event
			return event, nil
		}
	}
	l.events[event.EmployeeID] = append(events, event)
	return event, nil
}

type fakeConfigRepo struct {
	mu      sync.Mutex
	configs map[string]salary.Configuration
}

func newFakeConfigRepo() *fakeConfigRepo {
	return &fakeConfigRepo{configs: make(map[string]salary.Configuration)}
}

func (r *fakeConfigRepo) GetByEmployeeID(ctx context.Context, employeeID string) (salary.Configuration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg, ok := r.configs[employeeID]
	if !ok {
		return salary.Configuration{}, salary.ErrSalaryConfigurationNotFound
	}
	return cfg, nil
}

func (r *fakeConfigRepo) Upsert(ctx context.Context, cfg salary.Configuration) (salary.Configuration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs[cfg.EmployeeID] = cfg
	return cfg, nil
}

func (r *fakeConfigRepo) set(employeeID, basic string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs[employeeID] = salary.Configuration{EmployeeID: employeeID, BasicSalary: decimal.RequireFromString(basic)}
}

type fakePublisher struct {
	mu       sync.Mutex
	requests []notification.PublishRequest
	err      error
}

func (p *fakePublisher) Publish(ctx context.Context, req notification.PublishRequest) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests = append(p.requests, req)
	return p.err
}

func (p *fakePublisher) types() []notification.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]notification.EventType, len(p.requests))
	for i, r := range p.requests {
		out[i] = r.Type
	}
	return out
}
