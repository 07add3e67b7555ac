// Package geo holds the coordinate math and name normalization shared by
// the enrichment engine and the refresh controller.
package geo

import (
	"math"
	"strings"

	"github.com/petapp4all/petrol-go/internal/models"
)

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// DistanceKm returns the great-circle distance between two coordinates in
// kilometers.
func DistanceKm(a, b models.Coordinate) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

// DistanceMeters returns the same great-circle distance scaled to meters.
// The movement gate works at meters scale.
func DistanceMeters(a, b models.Coordinate) float64 {
	return DistanceKm(a, b) * 1000
}

// NormalizeName produces the join key for station names: leading and
// trailing whitespace removed, case folded to lowercase. Matching is
// exact after normalization; there is deliberately no fuzzy fallback.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Valid reports whether the coordinate lies within WGS84 bounds.
func Valid(c models.Coordinate) bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}
