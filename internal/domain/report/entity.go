package report

// DayEntry is one calendar day's worked and scheduled hours.
type DayEntry struct {
	Day            string  `json:"day"`
	Weekday        string  `json:"weekday"`
	WorkedHours    float64 `json:"worked_hours"`
	ScheduledHours float64 `json:"scheduled_hours"`
}

// WeekBucket groups the days of one Monday-start week inside the month.
// Days outside the month are not included even when the week spans it.
type WeekBucket struct {
	WeekStart      string     `json:"week_start"`
	Days           []DayEntry `json:"days"`
	WorkedHours    float64    `json:"worked_hours"`
	ScheduledHours float64    `json:"scheduled_hours"`
}

// MonthlyReport is one employee's month of worked versus scheduled time.
type MonthlyReport struct {
	EmployeeID     string       `json:"employee_id"`
	Year           int          `json:"year"`
	Month          int          `json:"month"`
	Weeks          []WeekBucket `json:"weeks"`
	WorkedHours    float64      `json:"worked_hours"`
	ScheduledHours float64      `json:"scheduled_hours"`
}
