package memory

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"geoquiz-service/internal/catalog"
	"geoquiz-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// LandmarkLoader fetches a tier's landmark list from a backing store.
type LandmarkLoader interface {
	LoadLandmarks(ctx context.Context, difficulty domain.Difficulty) ([]domain.Landmark, error)
}

// LandmarkRepository caches landmark lists with TTL to avoid repeated DB hits.
type LandmarkRepository struct {
	loader LandmarkLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex

	mu    sync.RWMutex
	cache map[domain.Difficulty]cachedLandmarks
}

type cachedLandmarks struct {
	landmarks []domain.Landmark
	expiresAt time.Time
}

func NewLandmarkRepository(loader LandmarkLoader, ttl time.Duration) *LandmarkRepository {
	return &LandmarkRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[domain.Difficulty]cachedLandmarks),
	}
}

func (r *LandmarkRepository) Landmarks(ctx context.Context, difficulty domain.Difficulty) ([]domain.Landmark, error) {
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[difficulty]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry.landmarks, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(string(difficulty), func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[difficulty]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.landmarks, nil
		}
		r.mu.RUnlock()

		landmarks, err := r.loader.LoadLandmarks(ctx, difficulty)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.cache[difficulty] = cachedLandmarks{
			landmarks: landmarks,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return landmarks, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Landmark), nil
}

func (r *LandmarkRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticLandmarkLoader is a loader backed by an in-memory map (useful for tests/demos).
type StaticLandmarkLoader struct {
	tiers map[domain.Difficulty][]domain.Landmark
}

func NewStaticLandmarkLoader(tiers map[domain.Difficulty][]domain.Landmark) *StaticLandmarkLoader {
	return &StaticLandmarkLoader{tiers: tiers}
}

// NewCatalogLoader serves the built-in curated lists.
func NewCatalogLoader() *StaticLandmarkLoader {
	return NewStaticLandmarkLoader(map[domain.Difficulty][]domain.Landmark{
		domain.DifficultyEasy:   catalog.Easy,
		domain.DifficultyNormal: catalog.Normal,
	})
}

func (l *StaticLandmarkLoader) LoadLandmarks(_ context.Context, difficulty domain.Difficulty) ([]domain.Landmark, error) {
	if list, ok := l.tiers[difficulty]; ok && len(list) > 0 {
		return list, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrEmptyTier, difficulty)
}
