package geofence

import (
	"github.com/staffsync/badging-backend-go/internal/pkg/validator"
)

type UpdateSettingsRequest struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	RadiusKm  float64 `json:"radius_km"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}
	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}
	if r.RadiusKm <= 0 {
		errs = append(errs, validator.ValidationError{Field: "radius_km", Message: "radius_km must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SettingsResponse struct {
	Name      string  `json:"name,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	RadiusKm  float64 `json:"radius_km"`
}

func NewSettingsResponse(s WorkLocationSettings) SettingsResponse {
	return SettingsResponse{
		Name:      s.Name,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		RadiusKm:  s.RadiusKm,
	}
}

// CheckResult reports a position check against the tenant perimeter.
type CheckResult struct {
	Allowed    bool    `json:"allowed"`
	DistanceKm float64 `json:"distance_km"`
	RadiusKm   float64 `json:"radius_km"`
}
