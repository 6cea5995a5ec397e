package contract

import "time"

type Status string

const (
	StatusActive     Status = "active"
	StatusTerminated Status = "terminated"
)

// Contract records an employee's weekly working agreement. WeeklyHours
// drives the expected-hours side of overtime.
type Contract struct {
	ID          string
	BusinessID  string
	EmployeeID  string
	WeeklyHours float64
	Status      Status
	StartDate   time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
}

// DailyHours spreads the weekly commitment over a five-day work week.
func (c Contract) DailyHours() float64 {
	return c.WeeklyHours / 5
}
