package memory

import (
	"context"
	"sync"

	"geoquiz-service/internal/domain"
)

// RoundLog keeps answered rounds in process; used when Postgres is not configured.
type RoundLog struct {
	mu      sync.Mutex
	records []domain.RoundRecord
	limit   int
}

// NewRoundLog keeps the most recent 1000 rounds.
func NewRoundLog() *RoundLog {
	return &RoundLog{limit: 1000}
}

func (l *RoundLog) RecordRound(_ context.Context, record domain.RoundRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, record)
	if len(l.records) > l.limit {
		l.records = l.records[len(l.records)-l.limit:]
	}
	return nil
}

// Records returns a copy of the recorded rounds, oldest first.
func (l *RoundLog) Records() []domain.RoundRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.RoundRecord, len(l.records))
	copy(out, l.records)
	return out
}
