package geo

import (
	"fmt"
	"math"
)

// EarthRadius is the mean Earth radius in meters.
const EarthRadius = 6371e3

// WorldMaxErrorDistance is half the Earth's circumference, the scale used to
// score guesses on a world map.
const WorldMaxErrorDistance = math.Pi * EarthRadius

// MinFiveKRadius keeps the full-score radius from collapsing on tight maps.
const MinFiveKRadius = 25.0

// MaxScore is awarded for a perfect guess.
const MaxScore = 5000

// DistanceMeters is the haversine great-circle distance between a and b.
func DistanceMeters(a, b Point) float64 {
	φ1 := a.Lat * math.Pi / 180
	φ2 := b.Lat * math.Pi / 180
	Δφ := (b.Lat - a.Lat) * math.Pi / 180
	Δλ := (b.Lon - a.Lon) * math.Pi / 180

	sinΔφ := math.Sin(Δφ / 2)
	sinΔλ := math.Sin(Δλ / 2)
	h := sinΔφ*sinΔφ + math.Cos(φ1)*math.Cos(φ2)*sinΔλ*sinΔλ
	// float error can nudge h just past 1 for antipodes
	h = Clamp(h, 0, 1)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadius * c
}

// FiveKRadiusMeters returns the distance under which a guess scores MaxScore.
func FiveKRadiusMeters(maxErrorDistance float64) float64 {
	if maxErrorDistance <= 0 {
		return 0
	}
	// r = ln(5000/4999.5) * maxErrorDistance / 10
	r := math.Log(MaxScore/(MaxScore-0.5)) * maxErrorDistance / 10
	return max(r, MinFiveKRadius)
}

// Score maps a guess distance to [0, MaxScore] with an exponential falloff
// scaled by maxErrorDistance.
func Score(distance, maxErrorDistance float64) int {
	if maxErrorDistance <= 0 {
		return 0
	}
	if distance <= FiveKRadiusMeters(maxErrorDistance) {
		return MaxScore
	}
	raw := MaxScore * math.Exp(-10*distance/maxErrorDistance)
	return Clamp(int(math.Round(raw)), 0, MaxScore)
}

// FormatDistance renders meters as kilometers with two decimals.
func FormatDistance(meters float64) string {
	return fmt.Sprintf("%.2f km", meters/1000)
}
