package app

import (
	"context"
	"fmt"

	"geoquiz-service/internal/domain"
	"geoquiz-service/internal/geo"
)

const (
	exploreInstructions = "🗺️ Click the map to explore"
	guessInstructions   = "🧭 Enter your guess (DMS) and Submit"
	submitInstructions  = "🧭 Click the map to place your guess and then submit"
)

// Controller is the quiz state machine. Every transition takes a State and
// an input and returns the next State with the render commands that bring the
// view in line with it. On error the input State is returned unchanged and no
// commands are emitted.
type Controller struct {
	sampler TargetSampler
}

func NewController(sampler TargetSampler) *Controller {
	return &Controller{sampler: sampler}
}

// SwitchMode resets the view and the round, then enters mode.
func (c *Controller) SwitchMode(ctx context.Context, s domain.State, mode domain.Mode) (domain.State, []domain.Command, error) {
	if _, err := domain.ParseMode(string(mode)); err != nil {
		return s, nil, err
	}
	next := s
	next.Mode = mode
	cmds, err := c.enter(ctx, &next)
	if err != nil {
		return s, nil, err
	}
	return next, cmds, nil
}

// ChangeDifficulty stores the tier and, in a guessing mode, starts a new round
// against a fresh target.
func (c *Controller) ChangeDifficulty(ctx context.Context, s domain.State, difficulty domain.Difficulty) (domain.State, []domain.Command, error) {
	if _, err := domain.ParseDifficulty(string(difficulty)); err != nil {
		return s, nil, err
	}
	next := s
	next.Difficulty = difficulty
	if !next.Mode.Guessing() {
		return next, nil, nil
	}
	cmds, err := c.enter(ctx, &next)
	if err != nil {
		return s, nil, err
	}
	return next, cmds, nil
}

// NextRound draws a new target without leaving the current guessing mode.
func (c *Controller) NextRound(ctx context.Context, s domain.State) (domain.State, []domain.Command, error) {
	if !s.Mode.Guessing() {
		return s, nil, domain.ErrModeMismatch
	}
	next := s
	cmds, err := c.enter(ctx, &next)
	if err != nil {
		return s, nil, err
	}
	return next, cmds, nil
}

// Click handles a map click at p. Clicks are ignored in point-to-coordinates
// mode and once a round has been answered.
func (c *Controller) Click(s domain.State, p geo.Point) (domain.State, []domain.Command, error) {
	if err := p.Validate(); err != nil {
		return s, nil, err
	}
	next := s
	switch {
	case s.Mode == domain.ModeExplore:
		next.Guess = &p
		return next, []domain.Command{
			domain.ClearMarkers(),
			domain.PlaceMarker(domain.MarkerPin, p),
			domain.SetStatus("📍 " + p.String()),
		}, nil
	case s.Mode == domain.ModeCoordinatesToPoint && s.RoundOpen():
		next.Guess = &p
		return next, []domain.Command{
			domain.ClearMarkers(),
			domain.PlaceMarker(domain.MarkerPin, p),
		}, nil
	}
	return s, nil, nil
}

// SubmitGuess scores the DMS form against the pinned target.
func (c *Controller) SubmitGuess(s domain.State, form domain.GuessForm) (domain.State, []domain.Command, error) {
	if err := checkRound(s, domain.ModePointToCoordinates); err != nil {
		return s, nil, err
	}
	next := s
	resolve(&next, form.Point())
	return next, resultCommands(next), nil
}

// SubmitCoordinates scores the pin placed on the map against the shown coordinates.
func (c *Controller) SubmitCoordinates(s domain.State) (domain.State, []domain.Command, error) {
	if err := checkRound(s, domain.ModeCoordinatesToPoint); err != nil {
		return s, nil, err
	}
	if s.Guess == nil {
		return s, nil, domain.ErrNoGuess
	}
	next := s
	resolve(&next, *s.Guess)
	return next, resultCommands(next), nil
}

// Render rebuilds the whole view for s, used when a client (re)attaches.
func (c *Controller) Render(s domain.State) []domain.Command {
	cmds := resetCommands()
	if !s.Mode.Guessing() {
		cmds = append(cmds, domain.SetInstructions(exploreInstructions), domain.ShowDifficulty(false))
		if s.Guess != nil {
			cmds = append(cmds,
				domain.PlaceMarker(domain.MarkerPin, *s.Guess),
				domain.SetStatus("📍 "+s.Guess.String()),
			)
		}
		return cmds
	}
	if s.Target == nil {
		return append(cmds, domain.ShowDifficulty(true))
	}

	cmds = append(cmds, promptCommands(s)...)
	if s.Mode == domain.ModeCoordinatesToPoint && s.Guess != nil {
		cmds = append(cmds, domain.PlaceMarker(domain.MarkerPin, *s.Guess))
	}
	if s.Result != nil {
		cmds = append(cmds, resultCommands(s)...)
	}
	return cmds
}

func (c *Controller) enter(ctx context.Context, s *domain.State) ([]domain.Command, error) {
	s.Target, s.Guess, s.Result = nil, nil, nil
	cmds := resetCommands()

	if !s.Mode.Guessing() {
		return append(cmds, domain.SetInstructions(exploreInstructions), domain.ShowDifficulty(false)), nil
	}

	target, err := c.sampler.Sample(ctx, s.Difficulty)
	if err != nil {
		return nil, err
	}
	s.Target = &target
	return append(cmds, promptCommands(*s)...), nil
}

func checkRound(s domain.State, mode domain.Mode) error {
	if s.Mode != mode {
		return fmt.Errorf("%w: %s", domain.ErrModeMismatch, s.Mode)
	}
	if s.Target == nil {
		return domain.ErrNoTarget
	}
	if s.Result != nil {
		return domain.ErrRoundComplete
	}
	return nil
}

func resolve(s *domain.State, guess geo.Point) {
	distance := geo.DistanceMeters(s.Target.Point, guess)
	score := geo.Score(distance, geo.WorldMaxErrorDistance)
	s.Guess = &guess
	s.Result = &domain.RoundResult{
		Target:         *s.Target,
		Guess:          guess,
		DistanceMeters: distance,
		Score:          score,
	}
	s.Rounds++
	s.TotalScore += score
}

func resetCommands() []domain.Command {
	return []domain.Command{
		domain.ClearMarkers(),
		domain.ResetForm(),
		domain.SetStatus(""),
		domain.ShowForm(domain.FormNone),
	}
}

func promptCommands(s domain.State) []domain.Command {
	if s.Mode == domain.ModeCoordinatesToPoint {
		return []domain.Command{
			domain.SetStatus("🎯 Target: " + s.Target.Point.String()),
			domain.ShowForm(domain.FormSubmit),
			domain.SetInstructions(submitInstructions),
			domain.ShowDifficulty(true),
		}
	}
	return []domain.Command{
		domain.PlaceMarker(domain.MarkerPin, s.Target.Point),
		domain.ShowForm(domain.FormGuess),
		domain.SetInstructions(guessInstructions),
		domain.ShowDifficulty(true),
	}
}

func resultCommands(s domain.State) []domain.Command {
	r := s.Result
	var cmds []domain.Command
	if s.Mode == domain.ModeCoordinatesToPoint {
		cmds = append(cmds, domain.PlaceMarker(domain.MarkerTarget, r.Target.Point))
	} else {
		cmds = append(cmds, domain.PlaceMarker(domain.MarkerGuess, r.Guess))
	}
	return append(cmds,
		domain.DrawLine(r.Target.Point, r.Guess),
		domain.AppendStatus("🧭 Distance: "+geo.FormatDistance(r.DistanceMeters)),
		domain.AppendStatus(fmt.Sprintf("🏁 %s: %d points", r.Target.Label(), r.Score)),
		domain.ShowForm(domain.FormNone),
	)
}
