package badge

import "errors"

var (
	// ErrAlreadyCheckedIn is returned when the employee already has an
	// open session.
	ErrAlreadyCheckedIn = errors.New("employee already has an open session")

	// ErrShiftAlreadyBadged is returned when the shift was already
	// completed today.
	ErrShiftAlreadyBadged = errors.New("shift already badged today")

	// ErrInvalidTransition is returned for an illegal status change.
	ErrInvalidTransition = errors.New("invalid session status transition")

	// ErrSessionNotFound is returned when no session matches.
	ErrSessionNotFound = errors.New("session not found")

	// ErrNoOpenSession is returned when an operation needs an open
	// session and the employee has none.
	ErrNoOpenSession = errors.New("no open session")

	// ErrClosingDay is returned when badging is attempted on a
	// tenant-wide closing day.
	ErrClosingDay = errors.New("badging is closed for the day")

	// ErrApprovedAbsence is returned when the employee has an approved
	// absence covering today.
	ErrApprovedAbsence = errors.New("employee has an approved absence today")
)
