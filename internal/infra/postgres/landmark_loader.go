package postgres

import (
	"context"
	"fmt"

	"geoquiz-service/internal/domain"
	"geoquiz-service/internal/geo"
	"github.com/jackc/pgx/v4/pgxpool"
)

// LandmarkLoader loads curated tiers from the landmarks table.
type LandmarkLoader struct {
	pool *pgxpool.Pool
}

func NewLandmarkLoader(pool *pgxpool.Pool) *LandmarkLoader {
	return &LandmarkLoader{pool: pool}
}

func (l *LandmarkLoader) LoadLandmarks(ctx context.Context, difficulty domain.Difficulty) ([]domain.Landmark, error) {
	rows, err := l.pool.Query(ctx,
		`SELECT name, country, lon, lat FROM landmarks WHERE tier=$1 ORDER BY position`,
		string(difficulty))
	if err != nil {
		return nil, fmt.Errorf("load landmarks: %w", err)
	}
	defer rows.Close()

	var list []domain.Landmark
	for rows.Next() {
		var lm domain.Landmark
		var lon, lat float64
		if err := rows.Scan(&lm.Name, &lm.Country, &lon, &lat); err != nil {
			return nil, fmt.Errorf("scan landmark: %w", err)
		}
		lm.Point = geo.Point{Lon: lon, Lat: lat}
		list = append(list, lm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load landmarks: %w", err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptyTier, difficulty)
	}
	return list, nil
}
