package geofence

import (
	"context"
	"fmt"

	"github.com/staffsync/badging-backend-go/internal/domain/geofence"
	"github.com/staffsync/badging-backend-go/internal/domain/tenant"
	"github.com/staffsync/badging-backend-go/internal/pkg/geo"
)

type GeofenceServiceImpl struct {
	geofence.SettingsRepository
}

// CurrentSettings implements geofence.GeofenceService.
func (g *GeofenceServiceImpl) CurrentSettings(ctx context.Context) (geofence.SettingsResponse, error) {
	tc, err := tenant.FromContext(ctx)
	if err != nil {
		return geofence.SettingsResponse{}, err
	}

	settings, err := g.SettingsRepository.Get(ctx, tc.BusinessID)
	if err != nil {
		return geofence.SettingsResponse{}, err
	}

	return geofence.NewSettingsResponse(settings), nil
}

// UpdateSettings implements geofence.GeofenceService.
func (g *GeofenceServiceImpl) UpdateSettings(ctx context.Context, req geofence.UpdateSettingsRequest) (geofence.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return geofence.SettingsResponse{}, err
	}

	tc, err := tenant.FromContext(ctx)
	if err != nil {
		return geofence.SettingsResponse{}, err
	}
	if tc.Role != tenant.RoleAdmin {
		return geofence.SettingsResponse{}, tenant.ErrAdminRequired
	}

	settings := geofence.WorkLocationSettings{
		BusinessID: tc.BusinessID,
		Name:       req.Name,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		RadiusKm:   req.RadiusKm,
	}

	updated, err := g.SettingsRepository.Upsert(ctx, settings)
	if err != nil {
		return geofence.SettingsResponse{}, fmt.Errorf("failed to update work location: %w", err)
	}

	return geofence.NewSettingsResponse(updated), nil
}

// WithinWorkArea implements geofence.GeofenceService. Missing settings
// fail closed; provider errors propagate so callers can tell a denied
// permission from an unavailable fix.
func (g *GeofenceServiceImpl) WithinWorkArea(ctx context.Context, provider geo.PositionProvider) (geofence.CheckResult, error) {
	tc, err := tenant.FromContext(ctx)
	if err != nil {
		return geofence.CheckResult{}, err
	}

	settings, err := g.SettingsRepository.Get(ctx, tc.BusinessID)
	if err != nil {
		return geofence.CheckResult{}, err
	}

	pos, err := provider.CurrentPosition(ctx)
	if err != nil {
		return geofence.CheckResult{}, err
	}

	distance := geo.HaversineDistanceKm(pos.Latitude, pos.Longitude, settings.Latitude, settings.Longitude)

	return geofence.CheckResult{
		Allowed:    distance <= settings.RadiusKm,
		DistanceKm: distance,
		RadiusKm:   settings.RadiusKm,
	}, nil
}

func NewGeofenceService(settingsRepo geofence.SettingsRepository) geofence.GeofenceService {
	return &GeofenceServiceImpl{SettingsRepository: settingsRepo}
}
