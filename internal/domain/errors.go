package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a quiz session has not been opened or has expired.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrUnknownMode is returned for a mode name outside the known set.
	ErrUnknownMode = errors.New("unknown quiz mode")
	// ErrUnknownDifficulty is returned for a tier name outside the known set.
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	// ErrEmptyTier indicates a curated tier has nothing to sample from.
	ErrEmptyTier = errors.New("difficulty tier has no landmarks")
	// ErrModeMismatch is returned when an action does not belong to the active mode.
	ErrModeMismatch = errors.New("action not available in current mode")
	// ErrNoGuess indicates coordinates were submitted before a guess was placed on the map.
	ErrNoGuess = errors.New("no guess placed on the map")
	// ErrNoTarget indicates a guessing round has no target.
	ErrNoTarget = errors.New("no target for this round")
	// ErrRoundComplete is returned when a round was already answered.
	ErrRoundComplete = errors.New("round already answered")
)
