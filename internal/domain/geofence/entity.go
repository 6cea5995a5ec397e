package geofence

import "time"

// WorkLocationSettings is one tenant's badging perimeter. RadiusKm bounds
// how far from (Latitude, Longitude) an employee may badge.
type WorkLocationSettings struct {
	BusinessID string
	Name       string
	Latitude   float64
	Longitude  float64
	RadiusKm   float64
	UpdatedAt  time.Time
}
