package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/staffsync/badging-backend-go/internal/domain/geofence"
	"github.com/staffsync/badging-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workLocationRepository struct {
	db *database.DB
}

// Get implements geofence.SettingsRepository.
func (r *workLocationRepository) Get(ctx context.Context, businessID string) (geofence.WorkLocationSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT business_id, name, latitude, longitude, radius_km, updated_at
		FROM work_locations
		WHERE business_id = $1
	`

	var s geofence.WorkLocationSettings
	err := q.QueryRow(ctx, query, businessID).Scan(
		&s.BusinessID, &s.Name, &s.Latitude, &s.Longitude, &s.RadiusKm, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return geofence.WorkLocationSettings{}, geofence.ErrSettingsMissing
		}
		return geofence.WorkLocationSettings{}, fmt.Errorf("failed to get work location: %w", err)
	}

	return s, nil
}

// Upsert implements geofence.SettingsRepository.
func (r *workLocationRepository) Upsert(ctx context.Context, settings geofence.WorkLocationSettings) (geofence.WorkLocationSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_locations (business_id, name, latitude, longitude, radius_km, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (business_id) DO UPDATE
		SET name = EXCLUDED.name,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			radius_km = EXCLUDED.radius_km,
			updated_at = NOW()
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		settings.BusinessID, settings.Name, settings.Latitude, settings.Longitude, settings.RadiusKm,
	).Scan(&settings.UpdatedAt)
	if err != nil {
		return geofence.WorkLocationSettings{}, fmt.Errorf("failed to upsert work location: %w", err)
	}

	return settings, nil
}

func NewWorkLocationRepository(db *database.DB) geofence.SettingsRepository {
	return &workLocationRepository{db: db}
}
