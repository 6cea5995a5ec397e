package reconcile

// AllEmployees selects every active employee of the tenant for a batch.
const AllEmployees = "all"

// EmployeeFailure records one employee whose stats could not be computed.
// Failures ride along with the batch instead of aborting it.
type EmployeeFailure struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

// TardinessStats is one employee's lateness summary over a date range.
type TardinessStats struct {
	EmployeeID           string        `json:"employee_id"`
	EmployeeName         string        `json:"employee_name,omitempty"`
	ShiftsScheduled      int           `json:"shifts_scheduled"`
	LateArrivals         int           `json:"late_arrivals"`
	TotalMinutesLate     int           `json:"total_minutes_late"`
	UnauthorizedAbsences int           `json:"unauthorized_absences"`
	ClosedDays           int           `json:"closed_days"`
	ApprovedAbsences     int           `json:"approved_absences"`
	Details              []LateItem    `json:"details,omitempty"`
	Absences             []AbsenceItem `json:"absences,omitempty"`
}

// LateItem is one late arrival. ScheduledStart and ActualStart are local
// "HH:MM" wall-clock strings.
type LateItem struct {
	Day            string `json:"day"`
	ShiftLabel     string `json:"shift_label"`
	ScheduledStart string `json:"scheduled_start"`
	ActualStart    string `json:"actual_start"`
	MinutesLate    int    `json:"minutes_late"`
}

// AbsenceItem is one scheduled shift with no badge record and no excuse.
type AbsenceItem struct {
	Day        string `json:"day"`
	ShiftLabel string `json:"shift_label"`
}

// TardinessBatch is the result of a tardiness run over one or all
// employees.
type TardinessBatch struct {
	Start    string            `json:"start"`
	End      string            `json:"end"`
	Stats    []TardinessStats  `json:"stats"`
	Failures []EmployeeFailure `json:"failures,omitempty"`
}

// OvertimeStats is one employee's worked-versus-expected summary.
type OvertimeStats struct {
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    string  `json:"employee_name,omitempty"`
	WorkedHours     float64 `json:"worked_hours"`
	ExpectedHours   float64 `json:"expected_hours"`
	OvertimeHours   float64 `json:"overtime_hours"`
	ContractMissing bool    `json:"contract_missing,omitempty"`
}

// OvertimeBatch is the result of an overtime run over one or all
// employees.
type OvertimeBatch struct {
	Start    string            `json:"start"`
	End      string            `json:"end"`
	Stats    []OvertimeStats   `json:"stats"`
	Failures []EmployeeFailure `json:"failures,omitempty"`
}
