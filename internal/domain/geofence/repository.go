package geofence

import "context"

// SettingsRepository defines data access for work location settings.
type SettingsRepository interface {
	// Get returns the tenant's settings, or ErrSettingsMissing.
	Get(ctx context.Context, businessID string) (WorkLocationSettings, error)

	// Upsert creates or replaces the tenant's settings.
	Upsert(ctx context.Context, settings WorkLocationSettings) (WorkLocationSettings, error)
}
