// Package geo provides great-circle distance and walking estimation.
package geo

import (
	"math"

	"makanmap.sg/internal/appconf"
)

// DistanceMeters calculates the great-circle distance between two points in meters
func DistanceMeters(latA, lngA, latB, lngB float64) float64 {
	const earthRadius = 6371000 // Earth radius in meters

	// Convert to radians
	latARad := latA * math.Pi / 180
	latBRad := latB * math.Pi / 180
	deltaLat := (latB - latA) * math.Pi / 180
	deltaLng := (lngB - lngA) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(latARad)*math.Cos(latBRad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// Estimator converts straight-line distances into walking distances and
// times when no routed value is available.
type Estimator struct {
	detourFactor         float64
	speedMetersPerMinute float64
}

func NewEstimator(engine appconf.Engine) Estimator {
	return Estimator{
		detourFactor:         engine.WalkingDetourFactor,
		speedMetersPerMinute: engine.WalkingSpeedMetersPerMinute,
	}
}

// WalkingDistance inflates a straight-line distance by the detour factor to
// approximate path indirection.
func (e Estimator) WalkingDistance(straightLineMeters float64) float64 {
	return straightLineMeters * e.detourFactor
}

// WalkingMinutes converts a walking distance into whole minutes, never less
// than 1: a venue at distance 0 must not report "0 minutes".
func (e Estimator) WalkingMinutes(walkingMeters float64) int {
	minutes := int(walkingMeters / e.speedMetersPerMinute)
	if minutes < 1 {
		return 1
	}
	return minutes
}
