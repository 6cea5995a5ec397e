package geofence

import (
	"context"

	"github.com/staffsync/badging-backend-go/internal/pkg/geo"
)

// GeofenceService defines business logic for the tenant badging
// perimeter.
type GeofenceService interface {
	// CurrentSettings returns the tenant's work location, or
	// ErrSettingsMissing.
	CurrentSettings(ctx context.Context) (SettingsResponse, error)

	// UpdateSettings replaces the tenant's work location (admin only).
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)

	// WithinWorkArea resolves the device position through provider and
	// evaluates it against the tenant's perimeter. Missing settings fail
	// closed with ErrSettingsMissing.
	WithinWorkArea(ctx context.Context, provider geo.PositionProvider) (CheckResult, error)
}
