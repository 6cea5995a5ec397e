package badge

import (
	"time"
)

// ExtraShiftID marks a badge session opened without a matching scheduled
// shift.
const ExtraShiftID = "extra"

// Status is the badge session lifecycle state.
type Status string

const (
	// StatusCheckedIn means the employee is on the clock.
	StatusCheckedIn Status = "checked-in"

	// StatusOnBreak means the session is paused for a break.
	StatusOnBreak Status = "on-break"

	// StatusCompleted means the employee checked out; the session is final.
	StatusCompleted Status = "completed"
)

var transitions = map[Status]map[Status]bool{
	StatusCheckedIn: {
		StatusOnBreak:   true,
		StatusCompleted: true,
	},
	StatusOnBreak: {
		StatusCheckedIn: true,
		StatusCompleted: true,
	},
	StatusCompleted: {},
}

// CanTransition reports whether moving from one status to another is a
// legal lifecycle step.
func CanTransition(from, to Status) bool {
	return transitions[from][to]
}

// Session is one employee's work session for a day, opened by a check-in
// and closed by a check-out.
type Session struct {
	ID          string
	BusinessID  string
	EmployeeID  string
	ShiftID     string
	ShiftLabel  string
	Status      Status
	CheckIn     time.Time
	CheckOut    *time.Time
	BreakStart  *time.Time
	BreakTotal  time.Duration
	AutoClosed  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsExtra reports whether the session was opened outside any scheduled
// shift.
func (s Session) IsExtra() bool {
	return s.ShiftID == ExtraShiftID
}

// IsOpen reports whether the session still accepts transitions.
func (s Session) IsOpen() bool {
	return s.Status != StatusCompleted
}

// SameDay reports whether the session's check-in falls on the same
// calendar day as t, in t's location.
func (s Session) SameDay(t time.Time) bool {
	y1, m1, d1 := s.CheckIn.In(t.Location()).Date()
	y2, m2, d2 := t.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// WorkedHours is the session's net worked time in hours. Sessions without
// a check-out, or with a check-out before the check-in, count as zero.
func (s Session) WorkedHours() float64 {
	if s.CheckOut == nil {
		return 0
	}
	d := s.CheckOut.Sub(s.CheckIn) - s.BreakTotal
	if d < 0 {
		return 0
	}
	return d.Hours()
}
