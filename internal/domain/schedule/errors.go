package schedule

import "errors"

// Schedule domain errors
var (
	ErrShiftNotFound         = errors.New("scheduled shift not found")
	ErrClosingPeriodNotFound = errors.New("closing period not found")
	ErrAbsenceNotFound       = errors.New("absence request not found")
	ErrAbsenceProcessed      = errors.New("absence request has already been approved or rejected")
	ErrInvalidDateRange      = errors.New("start date must not be after end date")
)
