package app

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"geoquiz-service/internal/domain"
	"geoquiz-service/internal/geo"
)

// LandmarkRepository loads the ordered landmark list of a curated tier.
type LandmarkRepository interface {
	Landmarks(ctx context.Context, difficulty domain.Difficulty) ([]domain.Landmark, error)
}

// TargetSampler draws the target of a new round.
type TargetSampler interface {
	Sample(ctx context.Context, difficulty domain.Difficulty) (domain.Target, error)
}

// Sampler picks curated targets uniformly by index and hard targets uniformly
// in longitude and latitude. It is not area-uniform: the poles are oversampled.
type Sampler struct {
	landmarks LandmarkRepository

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSampler seeds the random source with seed, or with the clock when seed is zero.
func NewSampler(landmarks LandmarkRepository, seed int64) *Sampler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Sampler{
		landmarks: landmarks,
		rnd:       rand.New(rand.NewSource(seed)),
	}
}

func (s *Sampler) Sample(ctx context.Context, difficulty domain.Difficulty) (domain.Target, error) {
	if !difficulty.Curated() {
		if difficulty != domain.DifficultyHard {
			return domain.Target{}, fmt.Errorf("%w: %q", domain.ErrUnknownDifficulty, difficulty)
		}
		s.mu.Lock()
		lon := s.rnd.Float64()*360 - 180
		lat := s.rnd.Float64()*180 - 90
		s.mu.Unlock()
		return domain.Target{Point: geo.Point{Lon: lon, Lat: lat}}, nil
	}

	list, err := s.landmarks.Landmarks(ctx, difficulty)
	if err != nil {
		return domain.Target{}, fmt.Errorf("load %s landmarks: %w", difficulty, err)
	}
	if len(list) == 0 {
		return domain.Target{}, fmt.Errorf("%w: %s", domain.ErrEmptyTier, difficulty)
	}

	s.mu.Lock()
	idx := s.rnd.Intn(len(list))
	s.mu.Unlock()

	l := list[idx]
	return domain.Target{Name: l.Name, Country: l.Country, Point: l.Point}, nil
}
