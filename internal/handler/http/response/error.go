package response

import (
	"errors"
	"net/http"

	"github.com/staffsync/badging-backend-go/internal/domain/auth"
	"github.com/staffsync/badging-backend-go/internal/domain/badge"
	"github.com/staffsync/badging-backend-go/internal/domain/contract"
	"github.com/staffsync/badging-backend-go/internal/domain/employee"
	"github.com/staffsync/badging-backend-go/internal/domain/geofence"
	"github.com/staffsync/badging-backend-go/internal/domain/reconcile"
	"github.com/staffsync/badging-backend-go/internal/domain/schedule"
	"github.com/staffsync/badging-backend-go/internal/domain/tenant"
	"github.com/staffsync/badging-backend-go/internal/pkg/geo"
	"github.com/staffsync/badging-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Tenant errors
	case errors.Is(err, tenant.ErrNoTenantContext):
		Unauthorized(w, "No business context available")
	case errors.Is(err, tenant.ErrAdminRequired):
		Forbidden(w, "Admin privilege required")

	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// Badge domain errors
	case errors.Is(err, badge.ErrAlreadyCheckedIn):
		Conflict(w, "An open session already exists")
	case errors.Is(err, badge.ErrShiftAlreadyBadged):
		Conflict(w, "Shift already badged today")
	case errors.Is(err, badge.ErrInvalidTransition):
		Conflict(w, "Session does not allow this transition")
	case errors.Is(err, badge.ErrClosingDay):
		Conflict(w, "Badging is closed for the day")
	case errors.Is(err, badge.ErrApprovedAbsence):
		Conflict(w, "An approved absence covers today")
	case errors.Is(err, badge.ErrSessionNotFound):
		NotFound(w, "Session not found")
	case errors.Is(err, badge.ErrNoOpenSession):
		NotFound(w, "No open session")

	// Geofence errors
	case errors.Is(err, geofence.ErrSettingsMissing):
		NotFound(w, "Work location not configured")
	case errors.Is(err, geofence.ErrOutsideRadius):
		Forbidden(w, "Position outside allowed radius")
	case errors.Is(err, geo.ErrPermissionDenied):
		Forbidden(w, "Location permission denied")
	case errors.Is(err, geo.ErrPositionUnavailable),
		errors.Is(err, geo.ErrTimeout):
		BadRequest(w, "Device position unavailable", nil)

	// Schedule domain errors
	case errors.Is(err, schedule.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, schedule.ErrClosingPeriodNotFound):
		NotFound(w, "Closing period not found")
	case errors.Is(err, schedule.ErrAbsenceNotFound):
		NotFound(w, "Absence request not found")
	case errors.Is(err, schedule.ErrAbsenceProcessed):
		Conflict(w, "Absence request already processed")
	case errors.Is(err, schedule.ErrInvalidDateRange),
		errors.Is(err, reconcile.ErrInvalidRange):
		BadRequest(w, "Invalid date range", nil)

	// Supporting domain errors
	case errors.Is(err, contract.ErrContractNotFound):
		NotFound(w, "Contract not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
