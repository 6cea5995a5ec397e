package schedule

import (
	"time"

	"github.com/staffsync/badging-backend-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	Day          string `json:"day"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Role         string `json:"role"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Day); !ok {
		errs = append(errs, validator.ValidationError{Field: "day", Message: "day must be a YYYY-MM-DD date"})
	}
	if !validator.IsValidClockTime(r.StartTime) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "start_time must be HH:MM"})
	}
	if !validator.IsValidClockTime(r.EndTime) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "end_time must be HH:MM"})
	}
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if validator.IsEmpty(r.Role) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateClosingPeriodRequest struct {
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

func (r *CreateClosingPeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be a YYYY-MM-DD date"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be a YYYY-MM-DD date"})
	}
	if okStart && okEnd && start.After(end) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateAbsenceRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason"`
}

func (r *CreateAbsenceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be a YYYY-MM-DD date"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be a YYYY-MM-DD date"})
	}
	if okStart && okEnd && start.After(end) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ShiftResponse struct {
	ID           string `json:"id"`
	Day          string `json:"day"`
	Weekday      string `json:"weekday"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Role         string `json:"role"`
}

func NewShiftResponse(s ScheduledShift) ShiftResponse {
	return ShiftResponse{
		ID:           s.ID,
		Day:          s.Day.Format("2006-01-02"),
		Weekday:      s.Day.Weekday().String(),
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		EmployeeID:   s.EmployeeID,
		EmployeeName: s.EmployeeName,
		Role:         s.Role,
	}
}

type ClosingPeriodResponse struct {
	ID          string `json:"id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description,omitempty"`
}

func NewClosingPeriodResponse(p ClosingPeriod) ClosingPeriodResponse {
	return ClosingPeriodResponse{
		ID:          p.ID,
		StartDate:   p.StartDate.Format("2006-01-02"),
		EndDate:     p.EndDate.Format("2006-01-02"),
		Description: p.Description,
	}
}

type AbsenceResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Status     string `json:"status"`
	Reason     string `json:"reason,omitempty"`
}

func NewAbsenceResponse(a AbsenceRequest) AbsenceResponse {
	return AbsenceResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		StartDate:  a.StartDate.Format("2006-01-02"),
		EndDate:    a.EndDate.Format("2006-01-02"),
		Status:     string(a.Status),
		Reason:     a.Reason,
	}
}

// MustParseDate converts a validated YYYY-MM-DD string. Callers validate
// first; a zero time comes back for anything malformed.
func MustParseDate(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}
