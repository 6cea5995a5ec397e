package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	jwxjwt "github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffsync/badging-backend-go/internal/domain/badge"
	"github.com/staffsync/badging-backend-go/internal/domain/contract"
	"github.com/staffsync/badging-backend-go/internal/domain/employee"
	"github.com/staffsync/badging-backend-go/internal/domain/reconcile"
	"github.com/staffsync/badging-backend-go/internal/domain/schedule"
	"github.com/staffsync/badging-backend-go/internal/domain/tenant"
)

const testBusinessID = "business-1"

func adminContext(t *testing.T) context.Context {
	tok := jwxjwt.New()
	require.NoError(t, tok.Set("business_id", testBusinessID))
	require.NoError(t, tok.Set("employee_id", "employee-admin"))
	require.NoError(t, tok.Set("user_id", "user-1"))
	require.NoError(t, tok.Set("role", string(tenant.RoleAdmin)))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

type stubShiftRepo struct {
	schedule.ShiftRepository
	byEmployee map[string][]schedule.ScheduledShift
}

func (f *stubShiftRepo) ListByEmployeeInRange(ctx context.Context, employeeID string, start, end time.Time, businessID string) ([]schedule.ScheduledShift, error) {
	return f.byEmployee[employeeID], nil
}

type stubClosingRepo struct {
	schedule.ClosingPeriodRepository
	periods []schedule.ClosingPeriod
}

func (f *stubClosingRepo) List(ctx context.Context, businessID string) ([]schedule.ClosingPeriod, error) {
	return f.periods, nil
}

type stubAbsenceRepo struct {
	schedule.AbsenceRepository
	byEmployee map[string][]schedule.AbsenceRequest
}

func (f *stubAbsenceRepo) ListByEmployee(ctx context.Context, employeeID string, businessID string) ([]schedule.AbsenceRequest, error) {
	return f.byEmployee[employeeID], nil
}

type stubSessionRepo struct {
	badge.SessionRepository
	byEmployee map[string][]badge.Session
	failFor    string
}

func (f *stubSessionRepo) ListByEmployeeInRange(ctx context.Context, employeeID string, start, end time.Time, businessID string) ([]badge.Session, error) {
	if f.failFor == employeeID {
		return nil, errors.New("connection reset")
	}
	return f.byEmployee[employeeID], nil
}

type stubContractRepo struct {
	contract.ContractRepository
	byEmployee map[string]contract.Contract
}

func (f *stubContractRepo) GetActiveByEmployee(ctx context.Context, employeeID string, businessID string) (contract.Contract, error) {
	c, ok := f.byEmployee[employeeID]
	if !ok {
		return contract.Contract{}, contract.ErrContractNotFound
	}
	return c, nil
}

type stubEmployeeRepo struct {
	employee.EmployeeRepository
	employees []employee.Employee
}

func (f *stubEmployeeRepo) ListActive(ctx context.Context, businessID string) ([]employee.Employee, error) {
	return f.employees, nil
}

func (f *stubEmployeeRepo) GetByID(ctx context.Context, id string, businessID string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func newBatchService(sessions *stubSessionRepo, contracts *stubContractRepo, employees *stubEmployeeRepo, shifts *stubShiftRepo) reconcile.ReconcileService {
	return NewReconcileService(
		shifts,
		&stubClosingRepo{},
		&stubAbsenceRepo{},
		sessions,
		contracts,
		employees,
		nil,
	)
}

func TestReconcileService_OvertimeStats_AllEmployees(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)

	checkIn := start.Add(9 * time.Hour)
	checkOut := checkIn.Add(10 * time.Hour)
	sessions := &stubSessionRepo{byEmployee: map[string][]badge.Session{
		"employee-1": {{Status: badge.StatusCompleted, CheckIn: checkIn, CheckOut: &checkOut}},
	}}
	contracts := &stubContractRepo{byEmployee: map[string]contract.Contract{
		"employee-1": {WeeklyHours: 10, Status: contract.StatusActive},
	}}
	employees := &stubEmployeeRepo{employees: []employee.Employee{
		{ID: "employee-1", BusinessID: testBusinessID, Name: "Alex", Active: true},
		{ID: "employee-2", BusinessID: testBusinessID, Name: "Sam", Active: true},
	}}

	svc := newBatchService(sessions, contracts, employees, &stubShiftRepo{})
	batch, err := svc.OvertimeStats(adminContext(t), reconcile.AllEmployees, start, end)

	require.NoError(t, err)
	require.Len(t, batch.Stats, 2)
	assert.Empty(t, batch.Failures)
	assert.Equal(t, "2026-03-02", batch.Start)

	first := batch.Stats[0]
	assert.Equal(t, "employee-1", first.EmployeeID)
	assert.InDelta(t, 10.0, first.WorkedHours, 0.001)
	assert.InDelta(t, 10.0, first.ExpectedHours, 0.001)
	assert.Zero(t, first.OvertimeHours)

	second := batch.Stats[1]
	assert.True(t, second.ContractMissing)
	assert.Zero(t, second.WorkedHours)
}

func TestReconcileService_OvertimeStats_FailureDoesNotAbortBatch(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)

	sessions := &stubSessionRepo{failFor: "employee-1", byEmployee: map[string][]badge.Session{}}
	employees := &stubEmployeeRepo{employees: []employee.Employee{
		{ID: "employee-1", BusinessID: testBusinessID, Active: true},
		{ID: "employee-2", BusinessID: testBusinessID, Active: true},
	}}

	svc := newBatchService(sessions, &stubContractRepo{}, employees, &stubShiftRepo{})
	batch, err := svc.OvertimeStats(adminContext(t), reconcile.AllEmployees, start, end)

	require.NoError(t, err)
	assert.Len(t, batch.Stats, 1)
	require.Len(t, batch.Failures, 1)
	assert.Equal(t, "employee-1", batch.Failures[0].EmployeeID)
	assert.Contains(t, batch.Failures[0].Reason, "connection reset")
}

func TestReconcileService_TardinessStats_SingleEmployee(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)

	shifts := &stubShiftRepo{byEmployee: map[string][]schedule.ScheduledShift{
		"employee-1": {
			{ID: "shift-1", Day: start, StartTime: "09:00", EndTime: "17:00", EmployeeID: "employee-1"},
			{ID: "shift-2", Day: start.AddDate(0, 0, 1), StartTime: "09:00", EndTime: "17:00", EmployeeID: "employee-1"},
		},
	}}
	sessions := &stubSessionRepo{byEmployee: map[string][]badge.Session{
		"employee-1": {{Status: badge.StatusCompleted, CheckIn: start.Add(9*time.Hour + 20*time.Minute)}},
	}}
	employees := &stubEmployeeRepo{employees: []employee.Employee{
		{ID: "employee-1", BusinessID: testBusinessID, Name: "Alex", Active: true},
	}}

	svc := newBatchService(sessions, &stubContractRepo{}, employees, shifts)
	batch, err := svc.TardinessStats(adminContext(t), "employee-1", start, end)

	require.NoError(t, err)
	require.Len(t, batch.Stats, 1)

	stats := batch.Stats[0]
	assert.Equal(t, "Alex", stats.EmployeeName)
	assert.Equal(t, 2, stats.ShiftsScheduled)
	assert.Equal(t, 1, stats.LateArrivals)
	assert.Equal(t, 20, stats.TotalMinutesLate)
	assert.Equal(t, 1, stats.UnauthorizedAbsences)
}

func TestReconcileService_InvalidRange(t *testing.T) {
	svc := newBatchService(&stubSessionRepo{}, &stubContractRepo{}, &stubEmployeeRepo{}, &stubShiftRepo{})

	later := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	earlier := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	_, err := svc.TardinessStats(adminContext(t), reconcile.AllEmployees, later, earlier)
	assert.ErrorIs(t, err, reconcile.ErrInvalidRange)

	_, err = svc.OvertimeStats(adminContext(t), reconcile.AllEmployees, later, earlier)
	assert.ErrorIs(t, err, reconcile.ErrInvalidRange)
}

func TestReconcileService_NoTenantContext(t *testing.T) {
	svc := newBatchService(&stubSessionRepo{}, &stubContractRepo{}, &stubEmployeeRepo{}, &stubShiftRepo{})

	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)

	batch, err := svc.TardinessStats(context.Background(), reconcile.AllEmployees, start, end)

	require.NoError(t, err)
	assert.Empty(t, batch.Stats)
	assert.Empty(t, batch.Failures)
}
