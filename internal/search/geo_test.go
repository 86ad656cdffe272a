package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pulseai-health/hospital-directory/internal/domain/entities"
)

var (
	dakar  = entities.Location{Latitude: 14.6928, Longitude: -17.4467}
	thies  = entities.Location{Latitude: 14.7886, Longitude: -16.9246}
	paris  = entities.Location{Latitude: 48.8566, Longitude: 2.3522}
	london = entities.Location{Latitude: 51.5074, Longitude: -0.1278}
)

func TestDistanceKm_Symmetry(t *testing.T) {
	assert.Equal(t, DistanceKm(dakar, thies), DistanceKm(thies, dakar))
	assert.Equal(t, DistanceKm(paris, london), DistanceKm(london, paris))
}

func TestDistanceKm_IdenticalPoints(t *testing.T) {
	assert.Equal(t, 0.0, DistanceKm(dakar, dakar))
}

func TestDistanceKm_KnownDistances(t *testing.T) {
	// Paris-London great-circle distance is about 344 km
	assert.InDelta(t, 344, DistanceKm(paris, london), 1.5)

	// Dakar-Thiès is about 57 km
	assert.InDelta(t, 57, DistanceKm(dakar, thies), 2)
}

func TestDistanceKm_TwoDecimalRounding(t *testing.T) {
	d := DistanceKm(dakar, thies)
	rounded := float64(int(d*100)) / 100
	assert.Equal(t, rounded, d)
}

func TestDistanceKm_TriangleInequality(t *testing.T) {
	ab := DistanceKm(dakar, paris)
	bc := DistanceKm(paris, london)
	ac := DistanceKm(dakar, london)
	assert.LessOrEqual(t, ac, ab+bc+0.01)
}
