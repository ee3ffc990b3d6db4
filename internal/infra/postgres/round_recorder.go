package postgres

import (
	"context"
	"fmt"

	"geoquiz-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// RoundRecorder appends answered rounds to the rounds table.
type RoundRecorder struct {
	pool *pgxpool.Pool
}

func NewRoundRecorder(pool *pgxpool.Pool) *RoundRecorder {
	return &RoundRecorder{pool: pool}
}

func (r *RoundRecorder) RecordRound(ctx context.Context, rec domain.RoundRecord) error {
	res := rec.Result
	_, err := r.pool.Exec(ctx, `
		INSERT INTO rounds (session_id, mode, difficulty, target_name, target_country, target_lon, target_lat,
		                    guess_lon, guess_lat, distance_m, score, played_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		rec.SessionID, string(rec.Mode), string(rec.Difficulty), res.Target.Name, res.Target.Country,
		res.Target.Point.Lon, res.Target.Point.Lat,
		res.Guess.Lon, res.Guess.Lat,
		res.DistanceMeters, res.Score, rec.PlayedAt,
	)
	if err != nil {
		return fmt.Errorf("record round: %w", err)
	}
	return nil
}

// RecentRounds returns the latest rounds of a session, newest first.
func (r *RoundRecorder) RecentRounds(ctx context.Context, sessionID string, limit int) ([]domain.RoundRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT mode, difficulty, target_name, target_country, target_lon, target_lat, guess_lon, guess_lat, distance_m, score, played_at
		FROM rounds WHERE session_id=$1 ORDER BY played_at DESC, id DESC LIMIT $2
	`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent rounds: %w", err)
	}
	defer rows.Close()

	var out []domain.RoundRecord
	for rows.Next() {
		rec := domain.RoundRecord{SessionID: sessionID}
		var mode, difficulty string
		res := &rec.Result
		if err := rows.Scan(&mode, &difficulty, &res.Target.Name, &res.Target.Country,
			&res.Target.Point.Lon, &res.Target.Point.Lat,
			&res.Guess.Lon, &res.Guess.Lat,
			&res.DistanceMeters, &res.Score, &rec.PlayedAt); err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}
		rec.Mode = domain.Mode(mode)
		rec.Difficulty = domain.Difficulty(difficulty)
		out = append(out, rec)
	}
	return out, rows.Err()
}
