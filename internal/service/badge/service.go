package badge

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/staffsync/badging-backend-go/internal/domain/badge"
	"github.com/staffsync/badging-backend-go/internal/domain/geofence"
	"github.com/staffsync/badging-backend-go/internal/domain/schedule"
	"github.com/staffsync/badging-backend-go/internal/domain/tenant"
	"github.com/staffsync/badging-backend-go/internal/pkg/geo"
	"github.com/staffsync/badging-backend-go/internal/pkg/live"
)

type BadgeServiceImpl struct {
	badge.SessionRepository
	scheduleService schedule.ScheduleService
	geofenceService geofence.GeofenceService
	hub             *live.Hub

	// now is swapped out in tests.
	now func() time.Time
}

// CheckIn implements badge.BadgeService. Every gate is re-checked at
// action time; stale client state never authorizes a badge.
func (b *BadgeServiceImpl) CheckIn(ctx context.Context, req badge.CheckInRequest) (badge.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return badge.SessionResponse{}, err
	}

	tc, err := tenant.FromContext(ctx)
	if err != nil {
		return badge.SessionResponse{}, err
	}

	now := b.now()

	closed, err := b.scheduleService.IsClosingDay(ctx, now)
	if err != nil {
		return badge.SessionResponse{}, fmt.Errorf("failed to check closing day: %w", err)
	}
	if closed {
		return badge.SessionResponse{}, badge.ErrClosingDay
	}

	absent, err := b.scheduleService.IsAbsentDay(ctx, tc.EmployeeID, now)
	if err != nil {
		return badge.SessionResponse{}, fmt.Errorf("failed to check absence day: %w", err)
	}
	if absent {
		return badge.SessionResponse{}, badge.ErrApprovedAbsence
	}

	check, err := b.geofenceService.WithinWorkArea(ctx, geo.StaticProvider{
		Position: geo.Position{
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
			Timestamp: now,
		},
	})
	if err != nil {
		return badge.SessionResponse{}, err
	}
	if !check.Allowed {
		return badge.SessionResponse{}, geofence.ErrOutsideRadius
	}

	shiftID := req.ShiftID
	if shiftID == "" {
		shiftID = badge.ExtraShiftID
	}

	var shiftLabel string
	if shiftID != badge.ExtraShiftID {
		shifts, err := b.scheduleService.ShiftsForEmployeeOnDay(ctx, tc.EmployeeID, now)
		if err != nil {
			return badge.SessionResponse{}, fmt.Errorf("failed to resolve shift: %w", err)
		}
		found := false
		for _, shift := range shifts {
			if shift.ID == shiftID {
				shiftLabel = shift.Label()
				found = true
				break
			}
		}
		if !found {
			return badge.SessionResponse{}, schedule.ErrShiftNotFound
		}
	}

	session := badge.Session{
		ID:         uuid.NewString(),
		BusinessID: tc.BusinessID,
		EmployeeID: tc.EmployeeID,
		ShiftID:    shiftID,
		ShiftLabel: shiftLabel,
		Status:     badge.StatusCheckedIn,
		CheckIn:    now,
	}

	created, err := b.SessionRepository.CreateGuarded(ctx, session)
	if err != nil {
		return badge.SessionResponse{}, err
	}

	b.publish(tc, "check-in", created)
	return badge.NewSessionResponse(created), nil
}

// ToggleBreak implements badge.BadgeService.
func (b *BadgeServiceImpl) ToggleBreak(ctx context.Context, recordID string) (badge.SessionResponse, error) {
	tc, err := tenant.FromContext(ctx)
	if err != nil {
		return badge.SessionResponse{}, err
	}

	session, err := b.SessionRepository.GetByID(ctx, recordID, tc.BusinessID)
	if err != nil {
		return badge.SessionResponse{}, err
	}
	if session.EmployeeID != tc.EmployeeID {
		return badge.SessionResponse{}, badge.ErrSessionNotFound
	}

	now := b.now()

	switch session.Status {
	case badge.StatusCheckedIn:
		if !badge.CanTransition(session.Status, badge.StatusOnBreak) {
			return badge.SessionResponse{}, badge.ErrInvalidTransition
		}
		session.Status = badge.StatusOnBreak
		session.BreakStart = &now
	case badge.StatusOnBreak:
		if !badge.CanTransition(session.Status, badge.StatusCheckedIn) {
			return badge.SessionResponse{}, badge.ErrInvalidTransition
		}
		session.Status = badge.StatusCheckedIn
		if session.BreakStart != nil {
			session.BreakTotal += now.Sub(*session.BreakStart)
			session.BreakStart = nil
		}
	default:
		return badge.SessionResponse{}, badge.ErrInvalidTransition
	}

	if err := b.SessionRepository.Update(ctx, session); err != nil {
		return badge.SessionResponse{}, fmt.Errorf("failed to update session: %w", err)
	}

	b.publish(tc, "break", session)
	return badge.NewSessionResponse(session), nil
}

// CheckOut implements badge.BadgeService.
func (b *BadgeServiceImpl) CheckOut(ctx context.Context, recordID string) (badge.SessionResponse, error) {
	tc, err := tenant.FromContext(ctx)
	if err != nil {
		return badge.SessionResponse{}, err
	}

	session, err := b.SessionRepository.GetByID(ctx, recordID, tc.BusinessID)
	if err != nil {
		return badge.SessionResponse{}, err
	}
	if session.EmployeeID != tc.EmployeeID {
		return badge.SessionResponse{}, badge.ErrSessionNotFound
	}

	if !badge.CanTransition(session.Status, badge.StatusCompleted) {
		return badge.SessionResponse{}, badge.ErrInvalidTransition
	}

	now := b.now()
	if now.Before(session.CheckIn) {
		now = session.CheckIn
	}

	if session.Status == badge.StatusOnBreak && session.BreakStart != nil {
		session.BreakTotal += now.Sub(*session.BreakStart)
		session.BreakStart = nil
	}

	session.Status = badge.StatusCompleted
	session.CheckOut = &now

	if err := b.SessionRepository.Update(ctx, session); err != nil {
		return badge.SessionResponse{}, fmt.Errorf("failed to update session: %w", err)
	}

	b.publish(tc, "check-out", session)
	return badge.NewSessionResponse(session), nil
}

// ActiveSession implements badge.BadgeService.
func (b *BadgeServiceImpl) ActiveSession(ctx context.Context) (badge.SessionResponse, error) {
	tc, err := tenant.FromContext(ctx)
	if err != nil {
		return badge.SessionResponse{}, err
	}

	session, err := b.SessionRepository.GetOpenByEmployee(ctx, tc.EmployeeID, tc.BusinessID)
	if err != nil {
		return badge.SessionResponse{}, err
	}

	return badge.NewSessionResponse(session), nil
}

// TodayAvailability implements badge.BadgeService.
func (b *BadgeServiceImpl) TodayAvailability(ctx context.Context) (badge.AvailabilityResponse, error) {
	tc, err := tenant.FromContext(ctx)
	if err != nil {
		return badge.AvailabilityResponse{Shifts: []badge.AvailableShift{}}, nil
	}

	now := b.now()
	resp := badge.AvailabilityResponse{Shifts: []badge.AvailableShift{}}

	resp.ClosingDay, err = b.scheduleService.IsClosingDay(ctx, now)
	if err != nil {
		return badge.AvailabilityResponse{}, fmt.Errorf("failed to check closing day: %w", err)
	}

	resp.AbsenceDay, err = b.scheduleService.IsAbsentDay(ctx, tc.EmployeeID, now)
	if err != nil {
		return badge.AvailabilityResponse{}, fmt.Errorf("failed to check absence day: %w", err)
	}

	shifts, err := b.scheduleService.ShiftsForEmployeeOnDay(ctx, tc.EmployeeID, now)
	if err != nil {
		return badge.AvailabilityResponse{}, fmt.Errorf("failed to list today's shifts: %w", err)
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.Add(24*time.Hour - time.Nanosecond)

	sessions, err := b.SessionRepository.ListByEmployeeInRange(ctx, tc.EmployeeID, startOfDay, endOfDay, tc.BusinessID)
	if err != nil {
		return badge.AvailabilityResponse{}, fmt.Errorf("failed to list today's sessions: %w", err)
	}

	completedByShift := make(map[string]bool)
	for _, session := range sessions {
		if session.Status == badge.StatusCompleted {
			completedByShift[session.ShiftID] = true
		}
		if session.IsOpen() {
			active := badge.NewSessionResponse(session)
			resp.ActiveSession = &active
		}
	}
	resp.ExtraCompleted = completedByShift[badge.ExtraShiftID]

	for _, shift := range shifts {
		resp.Shifts = append(resp.Shifts, badge.AvailableShift{
			ShiftID:   shift.ID,
			Label:     shift.Label(),
			StartTime: shift.StartTime,
			EndTime:   shift.EndTime,
			Completed: completedByShift[shift.ID],
		})
	}

	return resp, nil
}

// SessionsInRange implements badge.BadgeService.
func (b *BadgeServiceImpl) SessionsInRange(ctx context.Context, employeeID string, start, end time.Time) ([]badge.SessionResponse, error) {
	tc, err := tenant.FromContext(ctx)
	if err != nil {
		return []badge.SessionResponse{}, nil
	}

	sessions, err := b.SessionRepository.ListByEmployeeInRange(ctx, employeeID, start, end, tc.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	responses := make([]badge.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, badge.NewSessionResponse(session))
	}
	return responses, nil
}

func (b *BadgeServiceImpl) publish(tc tenant.Context, name string, session badge.Session) {
	if b.hub == nil {
		return
	}
	b.hub.Publish(live.Event{
		BusinessID: tc.BusinessID,
		Topic:      "badge/" + session.EmployeeID,
		Name:       name,
		Data:       badge.NewSessionResponse(session),
	})
}

func NewBadgeService(
	sessionRepo badge.SessionRepository,
	scheduleService schedule.ScheduleService,
	geofenceService geofence.GeofenceService,
	hub *live.Hub,
) badge.BadgeService {
	return &BadgeServiceImpl{
		SessionRepository: sessionRepo,
		scheduleService:   scheduleService,
		geofenceService:   geofenceService,
		hub:               hub,
		now:               time.Now,
	}
}
