package geo

import (
	"context"
	"errors"
	"time"
)

// Position is a device-reported coordinate fix.
type Position struct {
	Latitude  float64
	Longitude float64
	Timestamp time.Time
}

// Position acquisition errors. Platform-specific failures are normalized to
// these kinds so callers can render a distinct message for each.
var (
	ErrPermissionDenied    = errors.New("location permission denied")
	ErrPositionUnavailable = errors.New("location currently unavailable")
	ErrTimeout             = errors.New("location request timed out")
)

// PositionProvider abstracts the device geolocation source.
type PositionProvider interface {
	CurrentPosition(ctx context.Context) (Position, error)
}

// StaticProvider serves a position that was already acquired, typically the
// coordinates a client submitted with a badge request.
type StaticProvider struct {
	Position Position
}

func (p StaticProvider) CurrentPosition(ctx context.Context) (Position, error) {
	return p.Position, nil
}

// ProviderFunc adapts a function to the PositionProvider interface.
type ProviderFunc func(ctx context.Context) (Position, error)

func (f ProviderFunc) CurrentPosition(ctx context.Context) (Position, error) {
	return f(ctx)
}
