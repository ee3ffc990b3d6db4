package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Axis selects the degree range used when clamping form input.
type Axis int

const (
	Longitude Axis = iota
	Latitude
)

// MaxSeconds is the largest seconds value accepted from a form.
const MaxSeconds = 59.9999

func (a Axis) maxDegrees() float64 {
	if a == Latitude {
		return 90
	}
	return 180
}

// DMS is one angular coordinate split into degrees, minutes and seconds.
// Degrees holds the whole-degree magnitude; the sign lives in Negative so that
// values between -1 and 0 keep it.
type DMS struct {
	Negative bool    `json:"negative"`
	Degrees  float64 `json:"degrees"`
	Minutes  int     `json:"minutes"`
	Seconds  float64 `json:"seconds"`
}

// FromDecimal splits d into whole degrees, floored minutes and rounded seconds.
// Non-finite input yields the zero DMS; see ValidateDegrees.
func FromDecimal(d float64) DMS {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return DMS{}
	}
	mag := math.Abs(d)
	deg := math.Floor(mag)
	minFloat := (mag - deg) * 60
	mins := math.Floor(minFloat)
	secs := math.Round((minFloat - mins) * 60)

	// rounding can push seconds (and then minutes) over the top
	if secs >= 60 {
		secs -= 60
		mins++
	}
	if mins >= 60 {
		mins -= 60
		deg++
	}
	return DMS{
		Negative: d < 0 && (deg != 0 || mins != 0 || secs != 0),
		Degrees:  deg,
		Minutes:  int(mins),
		Seconds:  secs,
	}
}

// Decimal folds the triple back into signed decimal degrees.
func (v DMS) Decimal() float64 {
	out := v.Degrees + float64(v.Minutes)/60 + v.Seconds/3600
	if v.Negative {
		return -out
	}
	return out
}

func (v DMS) String() string {
	sign := ""
	if v.Negative {
		sign = "-"
	}
	return fmt.Sprintf("%s%s° %d′ %s″", sign,
		strconv.FormatFloat(v.Degrees, 'f', 0, 64), v.Minutes,
		strconv.FormatFloat(v.Seconds, 'f', -1, 64))
}

// ValidateDegrees accepts finite values within [-180, 180], the widest range a
// coordinate axis can take.
func ValidateDegrees(d float64) error {
	if math.IsNaN(d) || math.IsInf(d, 0) || d < -180 || d > 180 {
		return fmt.Errorf("%w: %v is not within [-180, 180] degrees", ErrInvalidCoordinates, d)
	}
	return nil
}

// FormatDMS renders decimal degrees as "{d}° {m}′ {s}″".
func FormatDMS(d float64) string {
	return FromDecimal(d).String()
}

// ParseDMSFields reads the three raw form fields of one axis. Anything that is
// not a number counts as zero, degrees and minutes drop their fraction, and
// every field is clamped to its range.
func ParseDMSFields(deg, mins, secs string, axis Axis) DMS {
	d := parseField(deg)
	// Signbit keeps "-0" negative so "-0 30 0" reads as -0.5.
	negative := math.Signbit(d)
	limit := axis.maxDegrees()
	d = Clamp(math.Trunc(d), -limit, limit)

	return DMS{
		Negative: negative,
		Degrees:  math.Abs(d),
		Minutes:  int(Clamp(math.Trunc(parseField(mins)), 0, 59)),
		Seconds:  Clamp(parseField(secs), 0, MaxSeconds),
	}
}

func parseField(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
