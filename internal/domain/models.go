package domain

import (
	"fmt"
	"time"

	"geoquiz-service/internal/geo"
)

// Mode selects what the player is shown and what they must produce.
type Mode string

const (
	ModeExplore Mode = "explore"
	// ModeCoordinatesToPoint shows target coordinates; the player clicks the map.
	ModeCoordinatesToPoint Mode = "coordinates-to-point"
	// ModePointToCoordinates pins the target on the map; the player types DMS.
	ModePointToCoordinates Mode = "point-to-coordinates"
)

// ParseMode validates a mode name.
func ParseMode(raw string) (Mode, error) {
	switch m := Mode(raw); m {
	case ModeExplore, ModeCoordinatesToPoint, ModePointToCoordinates:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, raw)
}

// Guessing reports whether the mode plays rounds against a target.
func (m Mode) Guessing() bool {
	return m == ModeCoordinatesToPoint || m == ModePointToCoordinates
}

// Difficulty restricts the pool targets are drawn from.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists every tier in increasing order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParseDifficulty validates a tier name.
func ParseDifficulty(raw string) (Difficulty, error) {
	switch d := Difficulty(raw); d {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, raw)
}

// Curated reports whether the tier samples from a fixed landmark list.
func (d Difficulty) Curated() bool {
	return d == DifficultyEasy || d == DifficultyNormal
}

// Landmark is a named entry of a curated tier.
type Landmark struct {
	Name    string    `json:"name"`
	Country string    `json:"country"`
	Point   geo.Point `json:"point"`
}

// Label is "Name, Country", or just the name when the country is empty.
func (l Landmark) Label() string {
	if l.Country == "" {
		return l.Name
	}
	return l.Name + ", " + l.Country
}

// Target is the point a round is played against. Name is empty for points
// drawn uniformly over the globe.
type Target struct {
	Name    string    `json:"name,omitempty"`
	Country string    `json:"country,omitempty"`
	Point   geo.Point `json:"point"`
}

// Label names the target, falling back to its coordinates.
func (t Target) Label() string {
	if t.Name == "" {
		return t.Point.String()
	}
	return Landmark{Name: t.Name, Country: t.Country}.Label()
}

// RoundResult is the outcome of one answered round.
type RoundResult struct {
	Target         Target    `json:"target"`
	Guess          geo.Point `json:"guess"`
	DistanceMeters float64   `json:"distanceMeters"`
	Score          int       `json:"score"`
}

// State is everything the quiz knows about one player's session.
type State struct {
	SessionID  string       `json:"sessionId"`
	Mode       Mode         `json:"mode"`
	Difficulty Difficulty   `json:"difficulty"`
	Target     *Target      `json:"target,omitempty"`
	Guess      *geo.Point   `json:"guess,omitempty"`
	Result     *RoundResult `json:"result,omitempty"`
	Rounds     int          `json:"rounds"`
	TotalScore int          `json:"totalScore"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// NewState starts a session in explore mode.
func NewState(sessionID string, difficulty Difficulty, now time.Time) State {
	return State{
		SessionID:  sessionID,
		Mode:       ModeExplore,
		Difficulty: difficulty,
		UpdatedAt:  now,
	}
}

// RoundOpen reports whether a guessing round is waiting for an answer.
func (s State) RoundOpen() bool {
	return s.Mode.Guessing() && s.Target != nil && s.Result == nil
}

// RoundRecord is a completed round as written to history.
type RoundRecord struct {
	SessionID  string      `json:"sessionId"`
	Mode       Mode        `json:"mode"`
	Difficulty Difficulty  `json:"difficulty"`
	Result     RoundResult `json:"result"`
	PlayedAt   time.Time   `json:"playedAt"`
}

// GuessForm holds the raw text of the six DMS input fields.
type GuessForm struct {
	LonDeg string `json:"lonDeg"`
	LonMin string `json:"lonMin"`
	LonSec string `json:"lonSec"`
	LatDeg string `json:"latDeg"`
	LatMin string `json:"latMin"`
	LatSec string `json:"latSec"`
}

// Point parses and clamps the form into a geographic point.
func (f GuessForm) Point() geo.Point {
	lon := geo.ParseDMSFields(f.LonDeg, f.LonMin, f.LonSec, geo.Longitude).Decimal()
	lat := geo.ParseDMSFields(f.LatDeg, f.LatMin, f.LatSec, geo.Latitude).Decimal()
	return geo.Point{
		Lon: geo.Clamp(lon, -180, 180),
		Lat: geo.Clamp(lat, -90, 90),
	}
}
