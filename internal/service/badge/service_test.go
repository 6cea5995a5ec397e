package badge

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	jwxjwt "github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffsync/badging-backend-go/internal/domain/badge"
	"github.com/staffsync/badging-backend-go/internal/domain/geofence"
	"github.com/staffsync/badging-backend-go/internal/domain/schedule"
	"github.com/staffsync/badging-backend-go/internal/domain/tenant"
	"github.com/staffsync/badging-backend-go/internal/pkg/geo"
)

const (
	testBusinessID = "business-1"
	testEmployeeID = "employee-1"
)

func testTenantContext(t *testing.T, employeeID string) context.Context {
	tok := jwxjwt.New()
	require.NoError(t, tok.Set("business_id", testBusinessID))
	require.NoError(t, tok.Set("employee_id", employeeID))
	require.NoError(t, tok.Set("user_id", "user-1"))
	require.NoError(t, tok.Set("role", string(tenant.RoleEmployee)))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

type fakeScheduleService struct {
	schedule.ScheduleService
	shifts     []schedule.ScheduledShift
	closingDay bool
	absentDay  bool
}

func (f *fakeScheduleService) IsClosingDay(ctx context.Context, date time.Time) (bool, error) {
	return f.closingDay, nil
}

func (f *fakeScheduleService) IsAbsentDay(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	return f.absentDay, nil
}

func (f *fakeScheduleService) ShiftsForEmployeeOnDay(ctx context.Context, employeeID string, day time.Time) ([]schedule.ScheduledShift, error) {
	return f.shifts, nil
}

type fakeGeofenceService struct {
	geofence.GeofenceService
	allowed bool
	err     error
}

func (f *fakeGeofenceService) WithinWorkArea(ctx context.Context, provider geo.PositionProvider) (geofence.CheckResult, error) {
	if f.err != nil {
		return geofence.CheckResult{}, f.err
	}
	return geofence.CheckResult{Allowed: f.allowed, DistanceKm: 0.1, RadiusKm: 0.5}, nil
}

type fakeSessionRepo struct {
	sessions map[string]badge.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]badge.Session)}
}

func (f *fakeSessionRepo) CreateGuarded(ctx context.Context, session badge.Session) (badge.Session, error) {
	for _, existing := range f.sessions {
		if existing.EmployeeID != session.EmployeeID || existing.BusinessID != session.BusinessID {
			continue
		}
		if existing.IsOpen() {
			return badge.Session{}, badge.ErrAlreadyCheckedIn
		}
		if existing.ShiftID == session.ShiftID && existing.SameDay(session.CheckIn) {
			return badge.Session{}, badge.ErrShiftAlreadyBadged
		}
	}
	f.sessions[session.ID] = session
	return session, nil
}

func (f *fakeSessionRepo) Update(ctx context.Context, session badge.Session) error {
	if _, ok := f.sessions[session.ID]; !ok {
		return badge.ErrSessionNotFound
	}
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id string, businessID string) (badge.Session, error) {
	session, ok := f.sessions[id]
	if !ok || session.BusinessID != businessID {
		return badge.Session{}, badge.ErrSessionNotFound
	}
	return session, nil
}

func (f *fakeSessionRepo) GetOpenByEmployee(ctx context.Context, employeeID string, businessID string) (badge.Session, error) {
	for _, session := range f.sessions {
		if session.EmployeeID == employeeID && session.BusinessID == businessID && session.IsOpen() {
			return session, nil
		}
	}
	return badge.Session{}, badge.ErrNoOpenSession
}

func (f *fakeSessionRepo) ListByEmployeeInRange(ctx context.Context, employeeID string, start, end time.Time, businessID string) ([]badge.Session, error) {
	var out []badge.Session
	for _, session := range f.sessions {
		if session.EmployeeID != employeeID || session.BusinessID != businessID {
			continue
		}
		if session.CheckIn.Before(start) || session.CheckIn.After(end) {
			continue
		}
		out = append(out, session)
	}
	return out, nil
}

func (f *fakeSessionRepo) ListOpenOlderThan(ctx context.Context, cutoff time.Time) ([]badge.Session, error) {
	var out []badge.Session
	for _, session := range f.sessions {
		if session.IsOpen() && session.CheckIn.Before(cutoff) {
			out = append(out, session)
		}
	}
	return out, nil
}

func newTestService(repo *fakeSessionRepo, sched *fakeScheduleService, fence *fakeGeofenceService, now time.Time) *BadgeServiceImpl {
	return &BadgeServiceImpl{
		SessionRepository: repo,
		scheduleService:   sched,
		geofenceService:   fence,
		now:               func() time.Time { return now },
	}
}

func morningShift() schedule.ScheduledShift {
	return schedule.ScheduledShift{
		ID:         "shift-1",
		BusinessID: testBusinessID,
		Day:        time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		StartTime:  "09:00",
		EndTime:    "17:00",
		EmployeeID: testEmployeeID,
	}
}

func TestBadgeService_CheckIn_ScheduledShift(t *testing.T) {
	ctx := testTenantContext(t, testEmployeeID)
	now := time.Date(2026, 3, 2, 9, 3, 0, 0, time.UTC)
	repo := newFakeSessionRepo()
	svc := newTestService(repo, &fakeScheduleService{shifts: []schedule.ScheduledShift{morningShift()}}, &fakeGeofenceService{allowed: true}, now)

	resp, err := svc.CheckIn(ctx, badge.CheckInRequest{ShiftID: "shift-1", Latitude: 48.85, Longitude: 2.35})

	require.NoError(t, err)
	assert.Equal(t, "shift-1", resp.ShiftID)
	assert.Equal(t, "09:00 - 17:00", resp.ShiftLabel)
	assert.Equal(t, string(badge.StatusCheckedIn), resp.Status)
	assert.Len(t, repo.sessions, 1)
}

func TestBadgeService_CheckIn_DefaultsToExtra(t *testing.T) {
	ctx := testTenantContext(t, testEmployeeID)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeSessionRepo(), &fakeScheduleService{}, &fakeGeofenceService{allowed: true}, now)

	resp, err := svc.CheckIn(ctx, badge.CheckInRequest{Latitude: 48.85, Longitude: 2.35})

	require.NoError(t, err)
	assert.Equal(t, badge.ExtraShiftID, resp.ShiftID)
	assert.Empty(t, resp.ShiftLabel)
}

func TestBadgeService_CheckIn_ClosingDay(t *testing.T) {
	ctx := testTenantContext(t, testEmployeeID)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeSessionRepo(), &fakeScheduleService{closingDay: true}, &fakeGeofenceService{allowed: true}, now)

	_, err := svc.CheckIn(ctx, badge.CheckInRequest{Latitude: 48.85, Longitude: 2.35})

	assert.ErrorIs(t, err, badge.ErrClosingDay)
}

func TestBadgeService_CheckIn_ApprovedAbsence(t *testing.T) {
	ctx := testTenantContext(t, testEmployeeID)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeSessionRepo(), &fakeScheduleService{absentDay: true}, &fakeGeofenceService{allowed: true}, now)

	_, err := svc.CheckIn(ctx, badge.CheckInRequest{Latitude: 48.85, Longitude: 2.35})

	assert.ErrorIs(t, err, badge.ErrApprovedAbsence)
}

func TestBadgeService_CheckIn_OutsideRadius(t *testing.T) {
	ctx := testTenantContext(t, testEmployeeID)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeSessionRepo(), &fakeScheduleService{}, &fakeGeofenceService{allowed: false}, now)

	_, err := svc.CheckIn(ctx, badge.CheckInRequest{Latitude: 0, Longitude: 0})

	assert.ErrorIs(t, err, geofence.ErrOutsideRadius)
}

func TestBadgeService_CheckIn_SettingsMissingFailsClosed(t *testing.T) {
	ctx := testTenantContext(t, testEmployeeID)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeSessionRepo(), &fakeScheduleService{}, &fakeGeofenceService{err: geofence.ErrSettingsMissing}, now)

	_, err := svc.CheckIn(ctx, badge.CheckInRequest{Latitude: 48.85, Longitude: 2.35})

	assert.ErrorIs(t, err, geofence.ErrSettingsMissing)
}

func TestBadgeService_CheckIn_UnknownShift(t *testing.T) {
	ctx := testTenantContext(t, testEmployeeID)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeSessionRepo(), &fakeScheduleService{shifts: []schedule.ScheduledShift{morningShift()}}, &fakeGeofenceService{allowed: true}, now)

	_, err := svc.CheckIn(ctx, badge.CheckInRequest{ShiftID: "shift-other", Latitude: 48.85, Longitude: 2.35})

	assert.ErrorIs(t, err, schedule.ErrShiftNotFound)
}

func TestBadgeService_CheckIn_AlreadyCheckedIn(t *testing.T) {
	ctx := testTenantContext(t, testEmployeeID)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	repo := newFakeSessionRepo()
	svc := newTestService(repo, &fakeScheduleService{}, &fakeGeofenceService{allowed: true}, now)

	_, err := svc.CheckIn(ctx, badge.CheckInRequest{Latitude: 48.85, Longitude: 2.35})
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, badge.CheckInRequest{Latitude: 48.85, Longitude: 2.35})
	assert.ErrorIs(t, err, badge.ErrAlreadyCheckedIn)
}

func TestBadgeService_CheckIn_ShiftAlreadyBadgedSameDay(t *testing.T) {
	ctx := testTenantContext(t, testEmployeeID)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	repo := newFakeSessionRepo()
	svc := newTestService(repo, &fakeScheduleService{shifts: []schedule.ScheduledShift{morningShift()}}, &fakeGeofenceService{allowed: true}, now)

	resp, err := svc.CheckIn(ctx, badge.CheckInRequest{ShiftID: "shift-1", Latitude: 48.85, Longitude: 2.35})
	require.NoError(t, err)
	_, err = svc.CheckOut(ctx, resp.ID)
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, badge.CheckInRequest{ShiftID: "shift-1", Latitude: 48.85, Longitude: 2.35})
	assert.ErrorIs(t, err, badge.ErrShiftAlreadyBadged)
}

func TestBadgeService_CheckIn_NoTenantContext(t *testing.T) {
	svc := newTestService(newFakeSessionRepo(), &fakeScheduleService{}, &fakeGeofenceService{allowed: true}, time.Now())

	_, err := svc.CheckIn(context.Background(), badge.CheckInRequest{Latitude: 48.85, Longitude: 2.35})

	assert.ErrorIs(t, err, tenant.ErrNoTenantContext)
}

func TestBadgeService_ToggleBreak_Bookkeeping(t *testing.T) {
	ctx := testTenantContext(t, testEmployeeID)
	repo := newFakeSessionRepo()
	svc := newTestService(repo, &fakeScheduleService{}, &fakeGeofenceService{allowed: true}, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))

	resp, err := svc.CheckIn(ctx, badge.CheckInRequest{Latitude: 48.85, Longitude: 2.35})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC) }
	onBreak, err := svc.ToggleBreak(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, string(badge.StatusOnBreak), onBreak.Status)
	require.NotNil(t, onBreak.BreakStart)

	svc.now = func() time.Time { return time.Date(2026, 3, 2, 12, 45, 0, 0, time.UTC) }
	resumed, err := svc.ToggleBreak(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, string(badge.StatusCheckedIn), resumed.Status)
	assert.Nil(t, resumed.BreakStart)

	stored := repo.sessions[resp.ID]
	assert.Equal(t, 45*time.Minute, stored.BreakTotal)
}

func TestBadgeService_ToggleBreak_CompletedSession(t *testing.T) {
	ctx := testTenantContext(t, testEmployeeID)
	repo := newFakeSessionRepo()
	svc := newTestService(repo, &fakeScheduleService{}, &fakeGeofenceService{allowed: true}, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))

	resp, err := svc.CheckIn(ctx, badge.CheckInRequest{Latitude: 48.85, Longitude: 2.35})
	require.NoError(t, err)
	_, err = svc.CheckOut(ctx, resp.ID)
	require.NoError(t, err)

	_, err = svc.ToggleBreak(ctx, resp.ID)
	assert.ErrorIs(t, err, badge.ErrInvalidTransition)
}

func TestBadgeService_ToggleBreak_OtherEmployeeSession(t *testing.T) {
	ctx := testTenantContext(t, testEmployeeID)
	repo := newFakeSessionRepo()
	svc := newTestService(repo, &fakeScheduleService{}, &fakeGeofenceService{allowed: true}, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))

	resp, err := svc.CheckIn(ctx, badge.CheckInRequest{Latitude: 48.85, Longitude: 2.35})
	require.NoError(t, err)

	otherCtx := testTenantContext(t, "employee-2")
	_, err = svc.ToggleBreak(otherCtx, resp.ID)
	assert.ErrorIs(t, err, badge.ErrSessionNotFound)
}

func TestBadgeService_CheckOut_FoldsOpenBreak(t *testing.T) {
	ctx := testTenantContext(t, testEmployeeID)
	repo := newFakeSessionRepo()
	svc := newTestService(repo, &fakeScheduleService{}, &fakeGeofenceService{allowed: true}, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))

	resp, err := svc.CheckIn(ctx, badge.CheckInRequest{Latitude: 48.85, Longitude: 2.35})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC) }
	_, err = svc.ToggleBreak(ctx, resp.ID)
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2026, 3, 2, 12, 30, 0, 0, time.UTC) }
	out, err := svc.CheckOut(ctx, resp.ID)
	require.NoError(t, err)

	assert.Equal(t, string(badge.StatusCompleted), out.Status)
	require.NotNil(t, out.CheckOut)
	assert.Nil(t, out.BreakStart)

	stored := repo.sessions[resp.ID]
	assert.Equal(t, 30*time.Minute, stored.BreakTotal)
	assert.InDelta(t, 3.0, stored.WorkedHours(), 0.001)
}

func TestBadgeService_CheckOut_ClampsBeforeCheckIn(t *testing.T) {
	ctx := testTenantContext(t, testEmployeeID)
	repo := newFakeSessionRepo()
	checkIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, &fakeScheduleService{}, &fakeGeofenceService{allowed: true}, checkIn)

	resp, err := svc.CheckIn(ctx, badge.CheckInRequest{Latitude: 48.85, Longitude: 2.35})
	require.NoError(t, err)

	// Clock skew: the server clock moved backwards.
	svc.now = func() time.Time { return checkIn.Add(-time.Hour) }
	out, err := svc.CheckOut(ctx, resp.ID)
	require.NoError(t, err)

	stored := repo.sessions[resp.ID]
	require.NotNil(t, stored.CheckOut)
	assert.True(t, stored.CheckOut.Equal(checkIn))
	assert.Equal(t, 0.0, stored.WorkedHours())
	assert.Equal(t, string(badge.StatusCompleted), out.Status)
}

func TestBadgeService_CheckOut_AlreadyCompleted(t *testing.T) {
	ctx := testTenantContext(t, testEmployeeID)
	repo := newFakeSessionRepo()
	svc := newTestService(repo, &fakeScheduleService{}, &fakeGeofenceService{allowed: true}, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))

	resp, err := svc.CheckIn(ctx, badge.CheckInRequest{Latitude: 48.85, Longitude: 2.35})
	require.NoError(t, err)
	_, err = svc.CheckOut(ctx, resp.ID)
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx, resp.ID)
	assert.ErrorIs(t, err, badge.ErrInvalidTransition)
}

func TestBadgeService_ActiveSession_NoneOpen(t *testing.T) {
	ctx := testTenantContext(t, testEmployeeID)
	svc := newTestService(newFakeSessionRepo(), &fakeScheduleService{}, &fakeGeofenceService{allowed: true}, time.Now())

	_, err := svc.ActiveSession(ctx)

	assert.ErrorIs(t, err, badge.ErrNoOpenSession)
}

func TestBadgeService_TodayAvailability(t *testing.T) {
	ctx := testTenantContext(t, testEmployeeID)
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	repo := newFakeSessionRepo()
	sched := &fakeScheduleService{shifts: []schedule.ScheduledShift{morningShift()}}
	svc := newTestService(repo, sched, &fakeGeofenceService{allowed: true}, now)

	checkOut := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	repo.sessions["done"] = badge.Session{
		ID:         "done",
		BusinessID: testBusinessID,
		EmployeeID: testEmployeeID,
		ShiftID:    "shift-1",
		Status:     badge.StatusCompleted,
		CheckIn:    time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		CheckOut:   &checkOut,
	}
	repo.sessions["open"] = badge.Session{
		ID:         "open",
		BusinessID: testBusinessID,
		EmployeeID: testEmployeeID,
		ShiftID:    badge.ExtraShiftID,
		Status:     badge.StatusCheckedIn,
		CheckIn:    time.Date(2026, 3, 2, 9, 45, 0, 0, time.UTC),
	}

	resp, err := svc.TodayAvailability(ctx)

	require.NoError(t, err)
	require.Len(t, resp.Shifts, 1)
	assert.True(t, resp.Shifts[0].Completed)
	assert.False(t, resp.ExtraCompleted)
	assert.False(t, resp.ClosingDay)
	assert.False(t, resp.AbsenceDay)
	require.NotNil(t, resp.ActiveSession)
	assert.Equal(t, "open", resp.ActiveSession.ID)
}

func TestBadgeService_TodayAvailability_NoTenantContext(t *testing.T) {
	svc := newTestService(newFakeSessionRepo(), &fakeScheduleService{}, &fakeGeofenceService{allowed: true}, time.Now())

	resp, err := svc.TodayAvailability(context.Background())

	require.NoError(t, err)
	assert.Empty(t, resp.Shifts)
	assert.Nil(t, resp.ActiveSession)
}
