package geofence

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	jwxjwt "github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffsync/badging-backend-go/internal/domain/geofence"
	"github.com/staffsync/badging-backend-go/internal/domain/tenant"
	"github.com/staffsync/badging-backend-go/internal/pkg/geo"
)

const testBusinessID = "business-1"

func tenantContext(t *testing.T, role tenant.Role) context.Context {
	tok := jwxjwt.New()
	require.NoError(t, tok.Set("business_id", testBusinessID))
	require.NoError(t, tok.Set("employee_id", "employee-1"))
	require.NoError(t, tok.Set("user_id", "user-1"))
	require.NoError(t, tok.Set("role", string(role)))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

type fakeSettingsRepo struct {
	settings map[string]geofence.WorkLocationSettings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: make(map[string]geofence.WorkLocationSettings)}
}

func (f *fakeSettingsRepo) Get(ctx context.Context, businessID string) (geofence.WorkLocationSettings, error) {
	settings, ok := f.settings[businessID]
	if !ok {
		return geofence.WorkLocationSettings{}, geofence.ErrSettingsMissing
	}
	return settings, nil
}

func (f *fakeSettingsRepo) Upsert(ctx context.Context, settings geofence.WorkLocationSettings) (geofence.WorkLocationSettings, error) {
	f.settings[settings.BusinessID] = settings
	return settings, nil
}

// Paris city hall, with a half kilometer radius.
var parisSettings = geofence.WorkLocationSettings{
	BusinessID: testBusinessID,
	Name:       "HQ",
	Latitude:   48.8566,
	Longitude:  2.3522,
	RadiusKm:   0.5,
}

func staticPosition(lat, lon float64) geo.StaticProvider {
	return geo.StaticProvider{Position: geo.Position{Latitude: lat, Longitude: lon}}
}

func TestGeofenceService_WithinWorkArea(t *testing.T) {
	ctx := tenantContext(t, tenant.RoleEmployee)
	repo := newFakeSettingsRepo()
	repo.settings[testBusinessID] = parisSettings
	svc := NewGeofenceService(repo)

	t.Run("inside the radius", func(t *testing.T) {
		check, err := svc.WithinWorkArea(ctx, staticPosition(48.857, 2.3525))
		require.NoError(t, err)
		assert.True(t, check.Allowed)
		assert.Equal(t, 0.5, check.RadiusKm)
		assert.Less(t, check.DistanceKm, 0.5)
	})

	t.Run("outside the radius", func(t *testing.T) {
		// Montmartre, well over half a kilometer away.
		check, err := svc.WithinWorkArea(ctx, staticPosition(48.8867, 2.3431))
		require.NoError(t, err)
		assert.False(t, check.Allowed)
		assert.Greater(t, check.DistanceKm, 0.5)
	})
}

func TestGeofenceService_WithinWorkArea_FailsClosed(t *testing.T) {
	ctx := tenantContext(t, tenant.RoleEmployee)
	svc := NewGeofenceService(newFakeSettingsRepo())

	_, err := svc.WithinWorkArea(ctx, staticPosition(48.8566, 2.3522))

	assert.ErrorIs(t, err, geofence.ErrSettingsMissing)
}

func TestGeofenceService_WithinWorkArea_ProviderErrorPropagates(t *testing.T) {
	ctx := tenantContext(t, tenant.RoleEmployee)
	repo := newFakeSettingsRepo()
	repo.settings[testBusinessID] = parisSettings
	svc := NewGeofenceService(repo)

	denied := geo.ProviderFunc(func(ctx context.Context) (geo.Position, error) {
		return geo.Position{}, geo.ErrPermissionDenied
	})

	_, err := svc.WithinWorkArea(ctx, denied)

	assert.ErrorIs(t, err, geo.ErrPermissionDenied)
}

func TestGeofenceService_UpdateSettings(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := NewGeofenceService(repo)

	req := geofence.UpdateSettingsRequest{
		Name:      "HQ",
		Latitude:  48.8566,
		Longitude: 2.3522,
		RadiusKm:  0.5,
	}

	t.Run("employee is rejected", func(t *testing.T) {
		_, err := svc.UpdateSettings(tenantContext(t, tenant.RoleEmployee), req)
		assert.ErrorIs(t, err, tenant.ErrAdminRequired)
	})

	t.Run("admin upserts", func(t *testing.T) {
		resp, err := svc.UpdateSettings(tenantContext(t, tenant.RoleAdmin), req)
		require.NoError(t, err)
		assert.Equal(t, "HQ", resp.Name)
		assert.Equal(t, 0.5, resp.RadiusKm)

		stored, err := repo.Get(context.Background(), testBusinessID)
		require.NoError(t, err)
		assert.Equal(t, 48.8566, stored.Latitude)
	})
}

func TestGeofenceService_CurrentSettings_Missing(t *testing.T) {
	svc := NewGeofenceService(newFakeSettingsRepo())

	_, err := svc.CurrentSettings(tenantContext(t, tenant.RoleAdmin))

	assert.ErrorIs(t, err, geofence.ErrSettingsMissing)
}
