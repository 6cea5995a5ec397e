package reconcile

import (
	"context"
	"time"
)

// ReconcileService reconciles badge records against schedules and
// contracts. Pass AllEmployees as employeeID to cover the whole tenant.
type ReconcileService interface {
	// TardinessStats compares scheduled shift starts against badge
	// check-ins over [start, end].
	TardinessStats(ctx context.Context, employeeID string, start, end time.Time) (TardinessBatch, error)

	// OvertimeStats compares worked hours against contract expectations
	// over [start, end].
	OvertimeStats(ctx context.Context, employeeID string, start, end time.Time) (OvertimeBatch, error)
}
