package timeclock

import (
	"math"

	"OnShift/internal/model"
)

// earthRadiusM is the Earth's mean radius in meters.
const earthRadiusM = 6371000.0

// Distance returns the great-circle distance between two points in
// meters, computed with the haversine formula.
func Distance(a, b model.GeoPoint) float64 {
	lat1 := radians(a.Latitude)
	lat2 := radians(b.Latitude)
	dLat := radians(b.Latitude - a.Latitude)
	dLon := radians(b.Longitude - a.Longitude)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	return 2 * earthRadiusM * math.Asin(math.Sqrt(h))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
