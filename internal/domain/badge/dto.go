package badge

import (
	"github.com/staffsync/badging-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	ShiftID   string  `json:"shift_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}
	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SessionResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	ShiftID    string  `json:"shift_id"`
	ShiftLabel string  `json:"shift_label,omitempty"`
	Status     string  `json:"status"`
	CheckIn    string  `json:"check_in"`
	CheckOut   *string `json:"check_out,omitempty"`
	BreakStart *string `json:"break_start,omitempty"`
	AutoClosed bool    `json:"auto_closed,omitempty"`
}

// AvailableShift is one of today's scheduled shifts annotated with
// whether it was already badged.
type AvailableShift struct {
	ShiftID   string `json:"shift_id"`
	Label     string `json:"label"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Completed bool   `json:"completed"`
}

type AvailabilityResponse struct {
	Shifts         []AvailableShift `json:"shifts"`
	ExtraCompleted bool             `json:"extra_completed"`
	ClosingDay     bool             `json:"closing_day"`
	AbsenceDay     bool             `json:"absence_day"`
	ActiveSession  *SessionResponse `json:"active_session,omitempty"`
}

func NewSessionResponse(s Session) SessionResponse {
	resp := SessionResponse{
		ID:         s.ID,
		EmployeeID: s.EmployeeID,
		ShiftID:    s.ShiftID,
		ShiftLabel: s.ShiftLabel,
		Status:     string(s.Status),
		CheckIn:    s.CheckIn.Format("2006-01-02T15:04:05Z07:00"),
		AutoClosed: s.AutoClosed,
	}
	if s.CheckOut != nil {
		out := s.CheckOut.Format("2006-01-02T15:04:05Z07:00")
		resp.CheckOut = &out
	}
	if s.BreakStart != nil {
		br := s.BreakStart.Format("2006-01-02T15:04:05Z07:00")
		resp.BreakStart = &br
	}
	return resp
}
