package timeclock

import "fmt"

// GeofenceError is returned when the clock-in reading falls outside
// the office radius. DistanceMeters is rounded to the nearest meter
// for display; the comparison itself uses the unrounded distance.
type GeofenceError struct {
	DistanceMeters    int
	MaxDistanceMeters int
}

func (e *GeofenceError) Error() string {
	return fmt.Sprintf("geofence violation: %dm from office, limit %dm", e.DistanceMeters, e.MaxDistanceMeters)
}
