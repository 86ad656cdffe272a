package search

import (
	"math"

	"github.com/pulseai-health/hospital-directory/internal/domain/entities"
)

const earthRadiusKm = 6371

// DistanceKm returns the great-circle distance between two points in
// kilometers, Haversine formula, rounded to 2 decimal places.
func DistanceKm(a, b entities.Location) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return math.Round(earthRadiusKm*c*100) / 100
}
