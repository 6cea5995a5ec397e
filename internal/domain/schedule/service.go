package schedule

import (
	"context"
	"time"
)

// ScheduleService defines business logic for shift planning, closing
// periods and absence requests.
type ScheduleService interface {
	// CreateShift creates a scheduled shift (admin only).
	CreateShift(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)

	// UpdateShift rewrites a shift's day, times or assignment (admin only).
	UpdateShift(ctx context.Context, id string, req CreateShiftRequest) (ShiftResponse, error)

	// DeleteShift removes a shift (admin only).
	DeleteShift(ctx context.Context, id string) error

	// MyShifts lists the authenticated employee's shifts.
	MyShifts(ctx context.Context) ([]ShiftResponse, error)

	// ShiftsForEmployeeOnDay returns the employee's shifts whose weekday
	// matches day's weekday.
	ShiftsForEmployeeOnDay(ctx context.Context, employeeID string, day time.Time) ([]ScheduledShift, error)

	// ShiftsForEmployeeInRange returns shifts scheduled between start and
	// end, inclusive at day precision.
	ShiftsForEmployeeInRange(ctx context.Context, employeeID string, start, end time.Time) ([]ScheduledShift, error)

	// CreateClosingPeriod records a tenant-wide closure (admin only).
	CreateClosingPeriod(ctx context.Context, req CreateClosingPeriodRequest) (ClosingPeriodResponse, error)

	// DeleteClosingPeriod removes a closure (admin only).
	DeleteClosingPeriod(ctx context.Context, id string) error

	// ListClosingPeriods lists the tenant's closures.
	ListClosingPeriods(ctx context.Context) ([]ClosingPeriodResponse, error)

	// IsClosingDay reports whether date falls inside any closing period.
	IsClosingDay(ctx context.Context, date time.Time) (bool, error)

	// RequestAbsence files a leave request for the authenticated employee.
	RequestAbsence(ctx context.Context, req CreateAbsenceRequest) (AbsenceResponse, error)

	// SetAbsenceStatus approves or rejects a pending request (admin only).
	SetAbsenceStatus(ctx context.Context, id string, status AbsenceStatus) error

	// MyAbsences lists the authenticated employee's requests.
	MyAbsences(ctx context.Context) ([]AbsenceResponse, error)

	// IsAbsentDay reports whether the employee has an approved absence
	// covering date.
	IsAbsentDay(ctx context.Context, employeeID string, date time.Time) (bool, error)
}
