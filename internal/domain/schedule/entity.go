package schedule

import (
	"time"
)

// ScheduledShift is one recurring shift assignment. Day is stored at day
// precision; StartTime/EndTime are local "HH:MM" wall-clock strings.
type ScheduledShift struct {
	ID           string
	BusinessID   string
	Day          time.Time
	StartTime    string
	EndTime      string
	EmployeeID   string
	EmployeeName string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StartsAt combines Day and StartTime into a local datetime.
func (s ScheduledShift) StartsAt(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("15:04", s.StartTime, loc)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(s.Day.Year(), s.Day.Month(), s.Day.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

// Label renders the shift's time window, e.g. "09:00 - 17:00".
func (s ScheduledShift) Label() string {
	return s.StartTime + " - " + s.EndTime
}

// ClosingPeriod is a tenant-wide non-working interval, bounds inclusive.
type ClosingPeriod struct {
	ID          string
	BusinessID  string
	StartDate   time.Time
	EndDate     time.Time
	Description string
}

// Contains reports whether date falls within the period. The end bound is
// extended to the last instant of its day.
func (p ClosingPeriod) Contains(date time.Time) bool {
	return withinInclusiveDays(date, p.StartDate, p.EndDate)
}

type AbsenceStatus string

const (
	AbsencePending  AbsenceStatus = "pending"
	AbsenceApproved AbsenceStatus = "approved"
	AbsenceRejected AbsenceStatus = "rejected"
)

// AbsenceRequest is an employee's leave request. Only approved requests
// block badging.
type AbsenceRequest struct {
	ID         string
	BusinessID string
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	Status     AbsenceStatus
	Reason     string
	CreatedAt  time.Time
}

// Contains reports whether date falls within the absence interval,
// end-of-day inclusive.
func (a AbsenceRequest) Contains(date time.Time) bool {
	return withinInclusiveDays(date, a.StartDate, a.EndDate)
}

func withinInclusiveDays(date, start, end time.Time) bool {
	endOfDay := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999_000_000, end.Location())
	return !date.Before(start) && !date.After(endOfDay)
}
