package badge

import (
	"context"
	"time"
)

// BadgeService defines business logic for badge sessions.
type BadgeService interface {
	// CheckIn opens a session for the authenticated employee after
	// closing-day, absence and geofence checks.
	CheckIn(ctx context.Context, req CheckInRequest) (SessionResponse, error)

	// ToggleBreak flips the session between checked-in and on-break.
	ToggleBreak(ctx context.Context, recordID string) (SessionResponse, error)

	// CheckOut completes the session. Legal from checked-in or on-break
	// only.
	CheckOut(ctx context.Context, recordID string) (SessionResponse, error)

	// ActiveSession returns the employee's open session, or
	// ErrNoOpenSession.
	ActiveSession(ctx context.Context) (SessionResponse, error)

	// TodayAvailability describes what the employee can badge right now:
	// today's shifts with completion flags, plus closing-day and
	// absence-day flags.
	TodayAvailability(ctx context.Context) (AvailabilityResponse, error)

	// SessionsInRange lists an employee's sessions between start and end.
	SessionsInRange(ctx context.Context, employeeID string, start, end time.Time) ([]SessionResponse, error)
}
