package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"sync"
	"time"

	"geoquiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// LandmarkLoader fetches a tier's landmark list from a backing store (e.g., Postgres).
type LandmarkLoader interface {
	LoadLandmarks(ctx context.Context, difficulty domain.Difficulty) ([]domain.Landmark, error)
}

// LandmarkRepository caches landmark lists in Redis (hash per tier) and falls back to a loader on cache miss.
// Entries are stored as: HSET landmarks:{tier} {position} {landmark json}
type LandmarkRepository struct {
	client *redis.Client
	loader LandmarkLoader
	ttl    time.Duration
	log    zerolog.Logger
	sf     singleflight.Group
	rndMu  sync.Mutex
	rnd    *rand.Rand
}

// LandmarkOption tweaks a LandmarkRepository.
type LandmarkOption func(*LandmarkRepository)

func WithLandmarkLogger(l zerolog.Logger) LandmarkOption {
	return func(r *LandmarkRepository) { r.log = l }
}

func NewLandmarkRepository(client *redis.Client, loader LandmarkLoader, ttl time.Duration, opts ...LandmarkOption) *LandmarkRepository {
	r := &LandmarkRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		log:    zerolog.Nop(),
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *LandmarkRepository) Landmarks(ctx context.Context, difficulty domain.Difficulty) ([]domain.Landmark, error) {
	key := r.key(difficulty)

	if list, ok := r.cached(ctx, key); ok {
		return list, nil
	}

	result, err, _ := r.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if list, ok := r.cached(ctx, key); ok {
			return list, nil
		}

		list, err := r.loader.LoadLandmarks(ctx, difficulty)
		if err != nil {
			return nil, err
		}

		if err := r.fill(ctx, key, list); err != nil {
			// the loaded list is still served; the next call retries the fill
			r.log.Debug().Err(err).Str("key", key).Msg("landmark cache fill failed")
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Landmark), nil
}

// fill writes the whole tier in one MULTI/EXEC so readers never see a partial hash.
func (r *LandmarkRepository) fill(ctx context.Context, key string, list []domain.Landmark) error {
	if len(list) == 0 {
		return nil
	}
	fields := make([]interface{}, 0, len(list)*2)
	for i, l := range list {
		raw, err := json.Marshal(l)
		if err != nil {
			return fmt.Errorf("encode landmark %q: %w", l.Name, err)
		}
		fields = append(fields, strconv.Itoa(i), raw)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fields...)
	if ttl := r.ttlWithJitter(); ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("fill %s: %w", key, err)
	}
	return nil
}

func (r *LandmarkRepository) cached(ctx context.Context, key string) ([]domain.Landmark, bool) {
	entries, err := r.client.HGetAll(ctx, key).Result()
	if err != nil || len(entries) == 0 {
		return nil, false
	}
	list, err := buildLandmarksFromCache(entries)
	if err != nil {
		return nil, false
	}
	return list, true
}

func (r *LandmarkRepository) key(difficulty domain.Difficulty) string {
	return "landmarks:" + string(difficulty)
}

// buildLandmarksFromCache restores list order from the hash field positions.
func buildLandmarksFromCache(entries map[string]string) ([]domain.Landmark, error) {
	type positioned struct {
		pos int
		lm  domain.Landmark
	}
	items := make([]positioned, 0, len(entries))
	for field, raw := range entries {
		pos, err := strconv.Atoi(field)
		if err != nil {
			return nil, err
		}
		var lm domain.Landmark
		if err := json.Unmarshal([]byte(raw), &lm); err != nil {
			return nil, err
		}
		items = append(items, positioned{pos: pos, lm: lm})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].pos < items[j].pos })

	list := make([]domain.Landmark, len(items))
	for i, it := range items {
		list[i] = it.lm
	}
	return list, nil
}

func (r *LandmarkRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
