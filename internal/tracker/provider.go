package tracker

import (
	"context"
	"errors"
	"time"
)

// Position is one acquired device coordinate.
type Position struct {
	Latitude  float64
	Longitude float64
}

// AcquireOptions is the request policy for one position acquisition,
// mirroring the browser geolocation options.
type AcquireOptions struct {
	HighAccuracy bool
	MaximumAge   time.Duration
	Timeout      time.Duration
}

// Position acquisition failure modes.
var (
	ErrTimeout          = errors.New("position request timed out")
	ErrUnavailable      = errors.New("position unavailable")
	ErrPermissionDenied = errors.New("position permission denied")
)

// PositionProvider acquires the current device position under the policy in
// opts. Implementations return ErrTimeout when the bounded wait elapses.
type PositionProvider interface {
	Current(ctx context.Context, opts AcquireOptions) (Position, error)
}
