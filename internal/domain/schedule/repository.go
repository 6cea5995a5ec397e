package schedule

import (
	"context"
	"time"
)

// ShiftRepository defines data access for scheduled shifts. Every method
// takes businessID so a tenant can never read another tenant's schedule.
type ShiftRepository interface {
	Create(ctx context.Context, shift ScheduledShift) (ScheduledShift, error)
	Update(ctx context.Context, shift ScheduledShift) error
	Delete(ctx context.Context, id string, businessID string) error
	GetByID(ctx context.Context, id string, businessID string) (ScheduledShift, error)

	// ListByEmployee returns the employee's full recurring-shift set.
	ListByEmployee(ctx context.Context, employeeID string, businessID string) ([]ScheduledShift, error)

	// ListByEmployeeInRange returns shifts whose day falls in
	// [start, end], both at day precision.
	ListByEmployeeInRange(ctx context.Context, employeeID string, start, end time.Time, businessID string) ([]ScheduledShift, error)
}

type ClosingPeriodRepository interface {
	Create(ctx context.Context, period ClosingPeriod) (ClosingPeriod, error)
	Delete(ctx context.Context, id string, businessID string) error
	List(ctx context.Context, businessID string) ([]ClosingPeriod, error)

	// ListCovering returns periods whose interval contains date.
	ListCovering(ctx context.Context, date time.Time, businessID string) ([]ClosingPeriod, error)
}

type AbsenceRepository interface {
	Create(ctx context.Context, absence AbsenceRequest) (AbsenceRequest, error)
	GetByID(ctx context.Context, id string, businessID string) (AbsenceRequest, error)
	SetStatus(ctx context.Context, id string, status AbsenceStatus, businessID string) error
	ListByEmployee(ctx context.Context, employeeID string, businessID string) ([]AbsenceRequest, error)

	// ListApprovedCovering returns the employee's approved absences whose
	// interval contains date.
	ListApprovedCovering(ctx context.Context, employeeID string, date time.Time, businessID string) ([]AbsenceRequest, error)
}
