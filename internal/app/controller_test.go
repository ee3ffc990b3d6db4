package app_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"geoquiz-service/internal/app"
	"geoquiz-service/internal/domain"
	"geoquiz-service/internal/geo"
)

var (
	paris = domain.Target{Name: "Paris", Country: "France", Point: geo.Point{Lon: 2.3522, Lat: 48.8566}}
	tokyo = domain.Target{Name: "Tokyo", Country: "Japan", Point: geo.Point{Lon: 139.6917, Lat: 35.6895}}
)

type sequenceSampler struct {
	targets []domain.Target
	calls   int
	err     error
}

func (s *sequenceSampler) Sample(_ context.Context, _ domain.Difficulty) (domain.Target, error) {
	if s.err != nil {
		return domain.Target{}, s.err
	}
	t := s.targets[s.calls%len(s.targets)]
	s.calls++
	return t, nil
}

var timeZero = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newState() domain.State {
	return domain.NewState("s1", domain.DifficultyEasy, timeZero)
}

func TestPointToCoordinatesParisGuess(t *testing.T) {
	ctx := context.Background()
	c := app.NewController(&sequenceSampler{targets: []domain.Target{paris}})

	state, cmds, err := c.SwitchMode(ctx, newState(), domain.ModePointToCoordinates)
	if err != nil {
		t.Fatalf("switch mode: %v", err)
	}
	if state.Target == nil || *state.Target != paris {
		t.Fatalf("expected paris target, got %+v", state.Target)
	}
	if !hasCommand(cmds, domain.PlaceMarker(domain.MarkerPin, paris.Point)) {
		t.Fatalf("expected pin at target, got %+v", cmds)
	}
	if !hasCommand(cmds, domain.ShowForm(domain.FormGuess)) {
		t.Fatalf("expected guess form shown, got %+v", cmds)
	}

	form := domain.GuessForm{LonDeg: "2", LonMin: "21", LonSec: "8", LatDeg: "48", LatMin: "51", LatSec: "24"}
	if g := form.Point(); math.Abs(g.Lon-2.3522) > 1e-4 || math.Abs(g.Lat-48.8567) > 1e-4 {
		t.Fatalf("unexpected parsed guess %+v", g)
	}

	state, cmds, err = c.SubmitGuess(state, form)
	if err != nil {
		t.Fatalf("submit guess: %v", err)
	}
	if state.Result == nil {
		t.Fatalf("expected result")
	}
	if state.Result.DistanceMeters >= 100 {
		t.Fatalf("expected sub-100m distance, got %v", state.Result.DistanceMeters)
	}
	if state.Result.Score != geo.MaxScore || state.Rounds != 1 || state.TotalScore != geo.MaxScore {
		t.Fatalf("unexpected scoring %+v rounds=%d total=%d", state.Result, state.Rounds, state.TotalScore)
	}
	if !hasType(cmds, domain.CmdDrawLine) || !hasCommand(cmds, domain.AppendStatus("🧭 Distance: 0.01 km")) {
		t.Fatalf("expected line and distance, got %+v", cmds)
	}
	if !hasCommand(cmds, domain.ShowForm(domain.FormNone)) {
		t.Fatalf("expected forms hidden, got %+v", cmds)
	}

	if _, _, err := c.SubmitGuess(state, form); !errors.Is(err, domain.ErrRoundComplete) {
		t.Fatalf("expected round complete, got %v", err)
	}
}

func TestSwitchToExploreClearsEverything(t *testing.T) {
	ctx := context.Background()
	c := app.NewController(&sequenceSampler{targets: []domain.Target{paris}})

	state, _, err := c.SwitchMode(ctx, newState(), domain.ModeCoordinatesToPoint)
	if err != nil {
		t.Fatalf("switch: %v", err)
	}
	state, _, _ = c.Click(state, geo.Point{Lon: 3, Lat: 47})

	state, cmds, err := c.SwitchMode(ctx, state, domain.ModeExplore)
	if err != nil {
		t.Fatalf("switch to explore: %v", err)
	}
	if state.Target != nil || state.Guess != nil || state.Result != nil {
		t.Fatalf("expected round state cleared, got %+v", state)
	}
	for _, want := range []domain.Command{
		domain.ClearMarkers(),
		domain.ResetForm(),
		domain.SetStatus(""),
		domain.ShowForm(domain.FormNone),
		domain.SetInstructions("🗺️ Click the map to explore"),
		domain.ShowDifficulty(false),
	} {
		if !hasCommand(cmds, want) {
			t.Fatalf("missing %+v in %+v", want, cmds)
		}
	}
}

func TestDifficultyChangeResamplesWithoutModeChange(t *testing.T) {
	ctx := context.Background()
	sampler := &sequenceSampler{targets: []domain.Target{paris, tokyo}}
	c := app.NewController(sampler)

	state, _, err := c.SwitchMode(ctx, newState(), domain.ModePointToCoordinates)
	if err != nil {
		t.Fatalf("switch: %v", err)
	}

	state, cmds, err := c.ChangeDifficulty(ctx, state, domain.DifficultyNormal)
	if err != nil {
		t.Fatalf("change difficulty: %v", err)
	}
	if state.Mode != domain.ModePointToCoordinates || state.Difficulty != domain.DifficultyNormal {
		t.Fatalf("unexpected state %+v", state)
	}
	if *state.Target != tokyo {
		t.Fatalf("expected re-sampled target, got %+v", state.Target)
	}
	if !commandEqual(cmds[0], domain.ClearMarkers()) {
		t.Fatalf("expected markers cleared first, got %+v", cmds[0])
	}
	if !hasCommand(cmds, domain.PlaceMarker(domain.MarkerPin, tokyo.Point)) {
		t.Fatalf("expected marker at new target, got %+v", cmds)
	}
	if sampler.calls != 2 {
		t.Fatalf("expected two samples, got %d", sampler.calls)
	}
}

func TestDifficultyChangeInExploreOnlyStoresTier(t *testing.T) {
	sampler := &sequenceSampler{targets: []domain.Target{paris}}
	c := app.NewController(sampler)

	state, cmds, err := c.ChangeDifficulty(context.Background(), newState(), domain.DifficultyHard)
	if err != nil {
		t.Fatalf("change difficulty: %v", err)
	}
	if state.Difficulty != domain.DifficultyHard || len(cmds) != 0 || sampler.calls != 0 {
		t.Fatalf("expected silent tier change, got %+v %+v", state, cmds)
	}
	if _, _, err := c.ChangeDifficulty(context.Background(), state, "insane"); !errors.Is(err, domain.ErrUnknownDifficulty) {
		t.Fatalf("expected unknown difficulty, got %v", err)
	}
}

func TestCoordinatesToPointFlow(t *testing.T) {
	ctx := context.Background()
	c := app.NewController(&sequenceSampler{targets: []domain.Target{paris}})

	state, cmds, err := c.SwitchMode(ctx, newState(), domain.ModeCoordinatesToPoint)
	if err != nil {
		t.Fatalf("switch: %v", err)
	}
	if !hasCommand(cmds, domain.SetStatus("🎯 Target: Longitude: 2° 21′ 8″ | Latitude: 48° 51′ 24″")) {
		t.Fatalf("expected target prompt, got %+v", cmds)
	}

	if _, _, err := c.SubmitCoordinates(state); !errors.Is(err, domain.ErrNoGuess) {
		t.Fatalf("expected no guess error, got %v", err)
	}

	london := geo.Point{Lon: -0.1276, Lat: 51.5074}
	state, cmds, err = c.Click(state, london)
	if err != nil {
		t.Fatalf("click: %v", err)
	}
	if len(cmds) != 2 || !commandEqual(cmds[0], domain.ClearMarkers()) {
		t.Fatalf("expected marker replaced, got %+v", cmds)
	}

	state, cmds, err = c.SubmitCoordinates(state)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !hasCommand(cmds, domain.PlaceMarker(domain.MarkerTarget, paris.Point)) {
		t.Fatalf("expected target revealed, got %+v", cmds)
	}
	km := state.Result.DistanceMeters / 1000
	if km < 340 || km > 345 {
		t.Fatalf("expected ~343km, got %v", km)
	}

	after, cmds, _ := c.Click(state, geo.Point{Lon: 2, Lat: 48})
	if len(cmds) != 0 || *after.Guess != london {
		t.Fatalf("expected clicks ignored after answer, got %+v", cmds)
	}
}

func TestClickIgnoredInPointToCoordinates(t *testing.T) {
	c := app.NewController(&sequenceSampler{targets: []domain.Target{paris}})
	state, _, _ := c.SwitchMode(context.Background(), newState(), domain.ModePointToCoordinates)

	next, cmds, err := c.Click(state, geo.Point{Lon: 1, Lat: 1})
	if err != nil || len(cmds) != 0 || next.Guess != nil {
		t.Fatalf("expected click ignored, got %+v %+v %v", next, cmds, err)
	}
}

func TestExploreClickShowsCoordinates(t *testing.T) {
	c := app.NewController(&sequenceSampler{targets: []domain.Target{paris}})
	state, cmds, err := c.Click(newState(), paris.Point)
	if err != nil {
		t.Fatalf("click: %v", err)
	}
	if state.Guess == nil || *state.Guess != paris.Point {
		t.Fatalf("expected marker recorded, got %+v", state.Guess)
	}
	want := domain.SetStatus("📍 Longitude: 2° 21′ 8″ | Latitude: 48° 51′ 24″")
	if !hasCommand(cmds, want) {
		t.Fatalf("expected coordinates shown, got %+v", cmds)
	}
	if _, _, err := c.Click(state, geo.Point{Lon: 200}); !errors.Is(err, geo.ErrInvalidCoordinates) {
		t.Fatalf("expected invalid coordinates, got %v", err)
	}
}

func TestWrongModeSubmissionsLeaveStateAlone(t *testing.T) {
	c := app.NewController(&sequenceSampler{targets: []domain.Target{paris}})
	state := newState()

	next, cmds, err := c.SubmitGuess(state, domain.GuessForm{})
	if !errors.Is(err, domain.ErrModeMismatch) || cmds != nil || next.Rounds != 0 {
		t.Fatalf("expected mode mismatch, got %v", err)
	}
	if _, _, err := c.SubmitCoordinates(state); !errors.Is(err, domain.ErrModeMismatch) {
		t.Fatalf("expected mode mismatch, got %v", err)
	}
	if _, _, err := c.NextRound(context.Background(), state); !errors.Is(err, domain.ErrModeMismatch) {
		t.Fatalf("expected mode mismatch, got %v", err)
	}
}

func TestSamplerFailureKeepsPreviousState(t *testing.T) {
	boom := errors.New("boom")
	c := app.NewController(&sequenceSampler{err: boom})
	state := newState()

	next, cmds, err := c.SwitchMode(context.Background(), state, domain.ModeCoordinatesToPoint)
	if !errors.Is(err, boom) {
		t.Fatalf("expected sampler error, got %v", err)
	}
	if next.Mode != domain.ModeExplore || cmds != nil {
		t.Fatalf("expected untouched state, got %+v", next)
	}
	if _, _, err := c.SwitchMode(context.Background(), state, "sideways"); !errors.Is(err, domain.ErrUnknownMode) {
		t.Fatalf("expected unknown mode, got %v", err)
	}
}

func TestNextRoundStartsFreshRound(t *testing.T) {
	ctx := context.Background()
	c := app.NewController(&sequenceSampler{targets: []domain.Target{paris, tokyo}})
	state, _, _ := c.SwitchMode(ctx, newState(), domain.ModePointToCoordinates)
	state, _, _ = c.SubmitGuess(state, domain.GuessForm{LonDeg: "2", LatDeg: "48"})

	state, cmds, err := c.NextRound(ctx, state)
	if err != nil {
		t.Fatalf("next round: %v", err)
	}
	if state.Result != nil || state.Guess != nil || *state.Target != tokyo || state.Rounds != 1 {
		t.Fatalf("unexpected state %+v", state)
	}
	if !hasCommand(cmds, domain.ResetForm()) {
		t.Fatalf("expected form reset, got %+v", cmds)
	}
}

func TestRenderAnsweredRound(t *testing.T) {
	ctx := context.Background()
	c := app.NewController(&sequenceSampler{targets: []domain.Target{paris}})
	state, _, _ := c.SwitchMode(ctx, newState(), domain.ModeCoordinatesToPoint)
	guess := geo.Point{Lon: 2, Lat: 48}
	state, _, _ = c.Click(state, guess)
	state, _, _ = c.SubmitCoordinates(state)

	cmds := c.Render(state)
	for _, want := range []domain.Command{
		domain.ClearMarkers(),
		domain.PlaceMarker(domain.MarkerPin, guess),
		domain.PlaceMarker(domain.MarkerTarget, paris.Point),
		domain.ShowDifficulty(true),
	} {
		if !hasCommand(cmds, want) {
			t.Fatalf("missing %+v in %+v", want, cmds)
		}
	}
	if !commandEqual(cmds[len(cmds)-1], domain.ShowForm(domain.FormNone)) {
		t.Fatalf("expected forms hidden last, got %+v", cmds[len(cmds)-1])
	}
}

func hasType(cmds []domain.Command, typ domain.CommandType) bool {
	for _, c := range cmds {
		if c.Type == typ {
			return true
		}
	}
	return false
}

func hasCommand(cmds []domain.Command, want domain.Command) bool {
	for _, c := range cmds {
		if commandEqual(c, want) {
			return true
		}
	}
	return false
}

func commandEqual(a, b domain.Command) bool {
	if a.Type != b.Type || a.Tag != b.Tag || a.Text != b.Text || a.Form != b.Form || a.Visible != b.Visible {
		return false
	}
	if len(a.Points) != len(b.Points) {
		return false
	}
	for i := range a.Points {
		if a.Points[i] != b.Points[i] {
			return false
		}
	}
	return true
}
