package geo

import (
	"cmp"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidCoordinates is returned when a point falls outside the WGS84 ranges
// or cannot be parsed.
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// Point is a geographic position in decimal degrees.
type Point struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Validate checks lon in [-180,180] and lat in [-90,90].
func (p Point) Validate() error {
	if p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("%w: longitude must be between -180 and 180", ErrInvalidCoordinates)
	}
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: latitude must be between -90 and 90", ErrInvalidCoordinates)
	}
	return nil
}

// String renders the point in DMS, longitude first.
func (p Point) String() string {
	return "Longitude: " + FormatDMS(p.Lon) + " | Latitude: " + FormatDMS(p.Lat)
}

// ParsePoint parses a "lon,lat" string.
func ParsePoint(raw string) (Point, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return Point{}, ErrInvalidCoordinates
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Point{}, ErrInvalidCoordinates
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Point{}, ErrInvalidCoordinates
	}
	p := Point{Lon: lon, Lat: lat}
	if err := p.Validate(); err != nil {
		return Point{}, err
	}
	return p, nil
}

// Clamp saturates v to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}
