package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	jwxjwt "github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffsync/badging-backend-go/internal/domain/schedule"
	"github.com/staffsync/badging-backend-go/internal/domain/tenant"
)

const (
	testBusinessID = "business-1"
	testEmployeeID = "employee-1"
)

func tenantContext(t *testing.T, role tenant.Role) context.Context {
	tok := jwxjwt.New()
	require.NoError(t, tok.Set("business_id", testBusinessID))
	require.NoError(t, tok.Set("employee_id", testEmployeeID))
	require.NoError(t, tok.Set("user_id", "user-1"))
	require.NoError(t, tok.Set("role", string(role)))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

type fakeShiftRepo struct {
	shifts map[string]schedule.ScheduledShift
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{shifts: make(map[string]schedule.ScheduledShift)}
}

func (f *fakeShiftRepo) Create(ctx context.Context, shift schedule.ScheduledShift) (schedule.ScheduledShift, error) {
	f.shifts[shift.ID] = shift
	return shift, nil
}

func (f *fakeShiftRepo) Update(ctx context.Context, shift schedule.ScheduledShift) error {
	if _, ok := f.shifts[shift.ID]; !ok {
		return schedule.ErrShiftNotFound
	}
	f.shifts[shift.ID] = shift
	return nil
}

func (f *fakeShiftRepo) Delete(ctx context.Context, id string, businessID string) error {
	shift, ok := f.shifts[id]
	if !ok || shift.BusinessID != businessID {
		return schedule.ErrShiftNotFound
	}
	delete(f.shifts, id)
	return nil
}

func (f *fakeShiftRepo) GetByID(ctx context.Context, id string, businessID string) (schedule.ScheduledShift, error) {
	shift, ok := f.shifts[id]
	if !ok || shift.BusinessID != businessID {
		return schedule.ScheduledShift{}, schedule.ErrShiftNotFound
	}
	return shift, nil
}

func (f *fakeShiftRepo) ListByEmployee(ctx context.Context, employeeID string, businessID string) ([]schedule.ScheduledShift, error) {
	var out []schedule.ScheduledShift
	for _, shift := range f.shifts {
		if shift.EmployeeID == employeeID && shift.BusinessID == businessID {
			out = append(out, shift)
		}
	}
	return out, nil
}

func (f *fakeShiftRepo) ListByEmployeeInRange(ctx context.Context, employeeID string, start, end time.Time, businessID string) ([]schedule.ScheduledShift, error) {
	var out []schedule.ScheduledShift
	for _, shift := range f.shifts {
		if shift.EmployeeID != employeeID || shift.BusinessID != businessID {
			continue
		}
		if shift.Day.Before(start) || shift.Day.After(end) {
			continue
		}
		out = append(out, shift)
	}
	return out, nil
}

type fakeClosingRepo struct {
	periods map[string]schedule.ClosingPeriod
}

func newFakeClosingRepo() *fakeClosingRepo {
	return &fakeClosingRepo{periods: make(map[string]schedule.ClosingPeriod)}
}

func (f *fakeClosingRepo) Create(ctx context.Context, period schedule.ClosingPeriod) (schedule.ClosingPeriod, error) {
	f.periods[period.ID] = period
	return period, nil
}

func (f *fakeClosingRepo) Delete(ctx context.Context, id string, businessID string) error {
	period, ok := f.periods[id]
	if !ok || period.BusinessID != businessID {
		return schedule.ErrClosingPeriodNotFound
	}
	delete(f.periods, id)
	return nil
}

func (f *fakeClosingRepo) List(ctx context.Context, businessID string) ([]schedule.ClosingPeriod, error) {
	var out []schedule.ClosingPeriod
	for _, p := range f.periods {
		if p.BusinessID == businessID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeClosingRepo) ListCovering(ctx context.Context, date time.Time, businessID string) ([]schedule.ClosingPeriod, error) {
	var out []schedule.ClosingPeriod
	for _, p := range f.periods {
		if p.BusinessID == businessID && p.Contains(date) {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeAbsenceRepo struct {
	absences map[string]schedule.AbsenceRequest
}

func newFakeAbsenceRepo() *fakeAbsenceRepo {
	return &fakeAbsenceRepo{absences: make(map[string]schedule.AbsenceRequest)}
}

func (f *fakeAbsenceRepo) Create(ctx context.Context, absence schedule.AbsenceRequest) (schedule.AbsenceRequest, error) {
	f.absences[absence.ID] = absence
	return absence, nil
}

func (f *fakeAbsenceRepo) GetByID(ctx context.Context, id string, businessID string) (schedule.AbsenceRequest, error) {
	absence, ok := f.absences[id]
	if !ok || absence.BusinessID != businessID {
		return schedule.AbsenceRequest{}, schedule.ErrAbsenceNotFound
	}
	return absence, nil
}

func (f *fakeAbsenceRepo) SetStatus(ctx context.Context, id string, status schedule.AbsenceStatus, businessID string) error {
	absence, ok := f.absences[id]
	if !ok || absence.BusinessID != businessID {
		return schedule.ErrAbsenceNotFound
	}
	absence.Status = status
	f.absences[id] = absence
	return nil
}

func (f *fakeAbsenceRepo) ListByEmployee(ctx context.Context, employeeID string, businessID string) ([]schedule.AbsenceRequest, error) {
	var out []schedule.AbsenceRequest
	for _, a := range f.absences {
		if a.EmployeeID == employeeID && a.BusinessID == businessID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAbsenceRepo) ListApprovedCovering(ctx context.Context, employeeID string, date time.Time, businessID string) ([]schedule.AbsenceRequest, error) {
	var out []schedule.AbsenceRequest
	for _, a := range f.absences {
		if a.EmployeeID == employeeID && a.BusinessID == businessID && a.Status == schedule.AbsenceApproved && a.Contains(date) {
			out = append(out, a)
		}
	}
	return out, nil
}

func newTestService() (*ScheduleServiceImpl, *fakeShiftRepo, *fakeClosingRepo, *fakeAbsenceRepo) {
	shiftRepo := newFakeShiftRepo()
	closingRepo := newFakeClosingRepo()
	absenceRepo := newFakeAbsenceRepo()
	svc := &ScheduleServiceImpl{
		ShiftRepository:         shiftRepo,
		ClosingPeriodRepository: closingRepo,
		AbsenceRepository:       absenceRepo,
	}
	return svc, shiftRepo, closingRepo, absenceRepo
}

func validShiftRequest() schedule.CreateShiftRequest {
	return schedule.CreateShiftRequest{
		Day:          "2026-03-02",
		StartTime:    "09:00",
		EndTime:      "17:00",
		EmployeeID:   testEmployeeID,
		EmployeeName: "Alex",
		Role:         "barista",
	}
}

func TestScheduleService_CreateShift_AdminOnly(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.CreateShift(tenantContext(t, tenant.RoleEmployee), validShiftRequest())
	assert.ErrorIs(t, err, tenant.ErrAdminRequired)

	resp, err := svc.CreateShift(tenantContext(t, tenant.RoleAdmin), validShiftRequest())
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", resp.Day)
	assert.Equal(t, "Monday", resp.Weekday)
}

func TestScheduleService_CreateShift_NoTenantContext(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.CreateShift(context.Background(), validShiftRequest())

	assert.ErrorIs(t, err, tenant.ErrNoTenantContext)
}

func TestScheduleService_UpdateShift_NotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.UpdateShift(tenantContext(t, tenant.RoleAdmin), "missing", validShiftRequest())

	assert.ErrorIs(t, err, schedule.ErrShiftNotFound)
}

func TestScheduleService_MyShifts_NoTenantContext(t *testing.T) {
	svc, _, _, _ := newTestService()

	shifts, err := svc.MyShifts(context.Background())

	require.NoError(t, err)
	assert.Empty(t, shifts)
}

func TestScheduleService_ShiftsForEmployeeOnDay_MatchesWeekday(t *testing.T) {
	svc, _, _, _ := newTestService()
	admin := tenantContext(t, tenant.RoleAdmin)

	// Template shifts on a Monday and a Wednesday.
	_, err := svc.CreateShift(admin, validShiftRequest())
	require.NoError(t, err)
	wednesday := validShiftRequest()
	wednesday.Day = "2026-03-04"
	_, err = svc.CreateShift(admin, wednesday)
	require.NoError(t, err)

	// A much later Monday still matches the Monday template.
	matched, err := svc.ShiftsForEmployeeOnDay(admin, testEmployeeID, time.Date(2026, 4, 6, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, time.Monday, matched[0].Day.Weekday())
}

func TestScheduleService_ShiftsForEmployeeInRange_InvalidRange(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.ShiftsForEmployeeInRange(
		tenantContext(t, tenant.RoleAdmin),
		testEmployeeID,
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	)

	assert.ErrorIs(t, err, schedule.ErrInvalidDateRange)
}

func TestScheduleService_IsClosingDay(t *testing.T) {
	svc, _, _, _ := newTestService()
	admin := tenantContext(t, tenant.RoleAdmin)

	_, err := svc.CreateClosingPeriod(admin, schedule.CreateClosingPeriodRequest{
		StartDate:   "2026-03-09",
		EndDate:     "2026-03-13",
		Description: "renovation",
	})
	require.NoError(t, err)

	closed, err := svc.IsClosingDay(admin, time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, closed)

	closed, err = svc.IsClosingDay(admin, time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, closed)
}

func TestScheduleService_RequestAbsence_EmployeeFilesForSelf(t *testing.T) {
	svc, _, _, absenceRepo := newTestService()

	resp, err := svc.RequestAbsence(tenantContext(t, tenant.RoleEmployee), schedule.CreateAbsenceRequest{
		EmployeeID: "someone-else",
		StartDate:  "2026-03-09",
		EndDate:    "2026-03-10",
		Reason:     "medical",
	})

	require.NoError(t, err)
	assert.Equal(t, testEmployeeID, resp.EmployeeID)
	assert.Equal(t, string(schedule.AbsencePending), resp.Status)
	assert.Len(t, absenceRepo.absences, 1)
}

func TestScheduleService_SetAbsenceStatus(t *testing.T) {
	svc, _, _, _ := newTestService()
	admin := tenantContext(t, tenant.RoleAdmin)

	resp, err := svc.RequestAbsence(admin, schedule.CreateAbsenceRequest{
		EmployeeID: testEmployeeID,
		StartDate:  "2026-03-09",
		EndDate:    "2026-03-10",
	})
	require.NoError(t, err)

	t.Run("employee cannot approve", func(t *testing.T) {
		err := svc.SetAbsenceStatus(tenantContext(t, tenant.RoleEmployee), resp.ID, schedule.AbsenceApproved)
		assert.ErrorIs(t, err, tenant.ErrAdminRequired)
	})

	t.Run("pending can be approved once", func(t *testing.T) {
		require.NoError(t, svc.SetAbsenceStatus(admin, resp.ID, schedule.AbsenceApproved))

		err := svc.SetAbsenceStatus(admin, resp.ID, schedule.AbsenceRejected)
		assert.ErrorIs(t, err, schedule.ErrAbsenceProcessed)
	})

	t.Run("pending is not a target status", func(t *testing.T) {
		err := svc.SetAbsenceStatus(admin, resp.ID, schedule.AbsencePending)
		assert.ErrorIs(t, err, schedule.ErrAbsenceProcessed)
	})
}

func TestScheduleService_IsAbsentDay(t *testing.T) {
	svc, _, _, _ := newTestService()
	admin := tenantContext(t, tenant.RoleAdmin)

	resp, err := svc.RequestAbsence(admin, schedule.CreateAbsenceRequest{
		EmployeeID: testEmployeeID,
		StartDate:  "2026-03-09",
		EndDate:    "2026-03-10",
	})
	require.NoError(t, err)

	// Pending requests do not block.
	absent, err := svc.IsAbsentDay(admin, testEmployeeID, time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, absent)

	require.NoError(t, svc.SetAbsenceStatus(admin, resp.ID, schedule.AbsenceApproved))

	absent, err = svc.IsAbsentDay(admin, testEmployeeID, time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, absent)
}
