package timeclock

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"OnShift/internal/model"
)

var office = model.GeoPoint{Latitude: 12.874256, Longitude: 77.613996}

// metersPerLatDegree follows from the sphere radius used by Distance.
const metersPerLatDegree = earthRadiusM * 3.14159265358979323846 / 180.0

// pointNorthOf returns a point the given number of meters due north of
// the origin.
func pointNorthOf(origin model.GeoPoint, meters float64) model.GeoPoint {
	return model.GeoPoint{
		Latitude:  origin.Latitude + meters/metersPerLatDegree,
		Longitude: origin.Longitude,
	}
}

func TestDistanceZeroAtSamePoint(t *testing.T) {
	assert.Equal(t, 0.0, Distance(office, office))
}

func TestDistanceIsSymmetric(t *testing.T) {
	p := pointNorthOf(office, 120)
	assert.InDelta(t, Distance(office, p), Distance(p, office), 1e-9)
}

func TestDistanceAlongMeridian(t *testing.T) {
	for _, meters := range []float64{10, 30, 31, 500, 25000} {
		p := pointNorthOf(office, meters)
		assert.InDelta(t, meters, Distance(office, p), 0.01)
	}
}

func TestDistanceKnownCities(t *testing.T) {
	bengaluru := model.GeoPoint{Latitude: 12.9716, Longitude: 77.5946}
	chennai := model.GeoPoint{Latitude: 13.0827, Longitude: 80.2707}

	// Great-circle distance Bengaluru to Chennai is about 290 km.
	d := Distance(bengaluru, chennai)
	assert.InDelta(t, 290_000, d, 3_000)
}
