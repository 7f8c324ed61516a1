package timeclock

import (
	"context"
	"fmt"

	"OnShift/internal/model"
)

// FailureReason classifies geolocation acquisition failures.
type FailureReason string

const (
	ReasonPermissionDenied    FailureReason = "permission_denied"
	ReasonPositionUnavailable FailureReason = "position_unavailable"
	ReasonTimeout             FailureReason = "timeout"
	ReasonUnsupported         FailureReason = "unsupported"
)

// LocationError is returned when a position could not be acquired at
// all; the record is left unchanged.
type LocationError struct {
	Reason FailureReason
}

func (e *LocationError) Error() string {
	return fmt.Sprintf("location unavailable: %s", e.Reason)
}

// LocationProvider is the geolocation sensor contract. Implementations
// must honor ctx cancellation; the engine bounds every acquisition
// with its configured timeout.
type LocationProvider interface {
	CurrentPosition(ctx context.Context) (model.GeoPoint, error)
}

// StaticProvider wraps a reading the client already acquired and sent
// with the request. This is the normal server-side case.
type StaticProvider struct {
	Point model.GeoPoint
}

func (p StaticProvider) CurrentPosition(ctx context.Context) (model.GeoPoint, error) {
	return p.Point, nil
}

// FailedProvider represents a sensor that already failed client-side
// (permission denied, unsupported device, client-side timeout).
type FailedProvider struct {
	Reason FailureReason
}

func (p FailedProvider) CurrentPosition(ctx context.Context) (model.GeoPoint, error) {
	return model.GeoPoint{}, &LocationError{Reason: p.Reason}
}

// ParseFailureReason maps a client-reported failure string onto the
// taxonomy, defaulting to position_unavailable for unknown values.
func ParseFailureReason(s string) FailureReason {
	switch FailureReason(s) {
	case ReasonPermissionDenied, ReasonPositionUnavailable, ReasonTimeout, ReasonUnsupported:
		return FailureReason(s)
	default:
		return ReasonPositionUnavailable
	}
}
