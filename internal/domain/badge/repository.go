package badge

import (
	"context"
	"time"
)

// SessionRepository defines data access for badge sessions. Every method
// takes businessID so sessions never leak across tenants.
type SessionRepository interface {
	// CreateGuarded inserts a new session only if the employee has no
	// open session and, for scheduled shifts, the shift was not already
	// completed on the check-in day. The check and the insert run inside
	// one transaction.
	CreateGuarded(ctx context.Context, session Session) (Session, error)

	Update(ctx context.Context, session Session) error
	GetByID(ctx context.Context, id string, businessID string) (Session, error)

	// GetOpenByEmployee returns the employee's open session, or
	// ErrNoOpenSession.
	GetOpenByEmployee(ctx context.Context, employeeID string, businessID string) (Session, error)

	// ListByEmployeeInRange returns sessions whose check-in falls within
	// [start, end].
	ListByEmployeeInRange(ctx context.Context, employeeID string, start, end time.Time, businessID string) ([]Session, error)

	// ListOpenOlderThan returns open sessions across all tenants whose
	// check-in is before cutoff. Used by the auto-close job.
	ListOpenOlderThan(ctx context.Context, cutoff time.Time) ([]Session, error)
}
