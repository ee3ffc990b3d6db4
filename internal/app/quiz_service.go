package app

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
	"time"

	"geoquiz-service/internal/domain"
	"geoquiz-service/internal/geo"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SessionRepository abstracts how quiz sessions are stored (in-memory, Redis, etc).
type SessionRepository interface {
	// Load returns domain.ErrSessionNotFound for unknown or expired sessions.
	Load(ctx context.Context, sessionID string) (domain.State, error)
	Save(ctx context.Context, state domain.State) error
	Delete(ctx context.Context, sessionID string) error
}

// RoundRecorder keeps the history of answered rounds.
type RoundRecorder interface {
	RecordRound(ctx context.Context, record domain.RoundRecord) error
}

const lockStripes = 64

// QuizService runs controller transitions against stored sessions. Events for
// one session are applied one at a time.
type QuizService struct {
	sessions   SessionRepository
	controller *Controller
	rounds     RoundRecorder
	difficulty domain.Difficulty
	now        func() time.Time
	newID      func() string
	log        zerolog.Logger

	locks [lockStripes]sync.Mutex
}

// Option tweaks a QuizService.
type Option func(*QuizService)

func WithRoundRecorder(r RoundRecorder) Option {
	return func(s *QuizService) { s.rounds = r }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *QuizService) { s.log = l }
}

// WithClock is used by tests for deterministic timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *QuizService) { s.now = now }
}

func WithDefaultDifficulty(d domain.Difficulty) Option {
	return func(s *QuizService) { s.difficulty = d }
}

func WithIDGenerator(gen func() string) Option {
	return func(s *QuizService) { s.newID = gen }
}

func NewQuizService(store SessionRepository, controller *Controller, opts ...Option) *QuizService {
	s := &QuizService{
		sessions:   store,
		controller: controller,
		difficulty: domain.DifficultyEasy,
		now:        time.Now,
		newID:      uuid.NewString,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open resumes sessionID, or starts a new explore session when it is empty or
// unknown. The commands redraw the whole view.
func (s *QuizService) Open(ctx context.Context, sessionID string) (domain.State, []domain.Command, error) {
	if sessionID == "" {
		sessionID = s.newID()
	}
	unlock := s.lock(sessionID)
	defer unlock()

	state, err := s.sessions.Load(ctx, sessionID)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		state = domain.NewState(sessionID, s.difficulty, s.now())
		if err := s.sessions.Save(ctx, state); err != nil {
			return domain.State{}, nil, err
		}
		s.log.Debug().Str("session", sessionID).Msg("session created")
	case err != nil:
		return domain.State{}, nil, err
	}
	return state, s.controller.Render(state), nil
}

// Snapshot returns the stored state of a session.
func (s *QuizService) Snapshot(ctx context.Context, sessionID string) (domain.State, error) {
	return s.sessions.Load(ctx, sessionID)
}

func (s *QuizService) SwitchMode(ctx context.Context, sessionID string, mode domain.Mode) (domain.State, []domain.Command, error) {
	return s.apply(ctx, sessionID, func(st domain.State) (domain.State, []domain.Command, error) {
		return s.controller.SwitchMode(ctx, st, mode)
	})
}

func (s *QuizService) ChangeDifficulty(ctx context.Context, sessionID string, difficulty domain.Difficulty) (domain.State, []domain.Command, error) {
	return s.apply(ctx, sessionID, func(st domain.State) (domain.State, []domain.Command, error) {
		return s.controller.ChangeDifficulty(ctx, st, difficulty)
	})
}

func (s *QuizService) NextRound(ctx context.Context, sessionID string) (domain.State, []domain.Command, error) {
	return s.apply(ctx, sessionID, func(st domain.State) (domain.State, []domain.Command, error) {
		return s.controller.NextRound(ctx, st)
	})
}

func (s *QuizService) Click(ctx context.Context, sessionID string, p geo.Point) (domain.State, []domain.Command, error) {
	return s.apply(ctx, sessionID, func(st domain.State) (domain.State, []domain.Command, error) {
		return s.controller.Click(st, p)
	})
}

func (s *QuizService) SubmitGuess(ctx context.Context, sessionID string, form domain.GuessForm) (domain.State, []domain.Command, error) {
	return s.apply(ctx, sessionID, func(st domain.State) (domain.State, []domain.Command, error) {
		return s.controller.SubmitGuess(st, form)
	})
}

func (s *QuizService) SubmitCoordinates(ctx context.Context, sessionID string) (domain.State, []domain.Command, error) {
	return s.apply(ctx, sessionID, func(st domain.State) (domain.State, []domain.Command, error) {
		return s.controller.SubmitCoordinates(st)
	})
}

type transition func(domain.State) (domain.State, []domain.Command, error)

func (s *QuizService) apply(ctx context.Context, sessionID string, fn transition) (domain.State, []domain.Command, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	current, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return domain.State{}, nil, err
	}
	next, cmds, err := fn(current)
	if err != nil {
		return current, nil, err
	}

	now := s.now()
	next.UpdatedAt = now
	if err := s.sessions.Save(ctx, next); err != nil {
		return current, nil, err
	}

	if next.Rounds > current.Rounds && next.Result != nil {
		s.record(ctx, domain.RoundRecord{
			SessionID:  sessionID,
			Mode:       next.Mode,
			Difficulty: next.Difficulty,
			Result:     *next.Result,
			PlayedAt:   now,
		})
	}
	return next, cmds, nil
}

// record is best-effort: a lost history row never fails the round.
func (s *QuizService) record(ctx context.Context, rec domain.RoundRecord) {
	s.log.Info().
		Str("session", rec.SessionID).
		Str("mode", string(rec.Mode)).
		Str("difficulty", string(rec.Difficulty)).
		Float64("distance_m", rec.Result.DistanceMeters).
		Int("score", rec.Result.Score).
		Msg("round answered")
	if s.rounds == nil {
		return
	}
	if err := s.rounds.RecordRound(ctx, rec); err != nil {
		s.log.Warn().Err(err).Str("session", rec.SessionID).Msg("record round failed")
	}
}

func (s *QuizService) lock(sessionID string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	mu := &s.locks[h.Sum32()%lockStripes]
	mu.Lock()
	return mu.Unlock
}
