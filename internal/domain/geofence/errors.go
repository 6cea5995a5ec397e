package geofence

import "errors"

var (
	// ErrSettingsMissing is returned when the tenant has no work
	// location configured. Badging fails closed in that case.
	ErrSettingsMissing = errors.New("work location settings missing")

	// ErrOutsideRadius is returned when the position falls outside the
	// configured perimeter.
	ErrOutsideRadius = errors.New("position outside allowed radius")
)
