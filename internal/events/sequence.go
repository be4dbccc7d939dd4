package events

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

// SequenceStore hands out a monotonically increasing sequence per partition.
type SequenceStore interface {
	NextSequence(ctx context.Context, partitionKey string) (int64, error)
}

type MemorySequence struct {
	mu   sync.Mutex
	last map[string]int64
}

func NewMemorySequence() *MemorySequence {
	return &MemorySequence{last: make(map[string]int64)}
}

func (m *MemorySequence) NextSequence(_ context.Context, partitionKey string) (int64, error) {
	if partitionKey == "" {
		return 0, errors.New("partition key is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last[partitionKey]++
	return m.last[partitionKey], nil
}

type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const nextSequenceSQL = `
		INSERT INTO event_sequence (partition_key, last_sequence)
		VALUES ($1, 1)
		ON CONFLICT (partition_key)
		DO UPDATE SET last_sequence = event_sequence.last_sequence + 1, updated_at = now()
		RETURNING last_sequence
	`

// PostgresSequence keeps sequences in the event_sequence table so they
// survive restarts.
type PostgresSequence struct {
	db Querier
}

func NewPostgresSequence(db Querier) *PostgresSequence {
	return &PostgresSequence{db: db}
}

func (r *PostgresSequence) NextSequence(ctx context.Context, partitionKey string) (int64, error) {
	if partitionKey == "" {
		return 0, errors.New("partition key is required")
	}
	var seq int64
	if err := r.db.QueryRow(ctx, nextSequenceSQL, partitionKey).Scan(&seq); err != nil {
		return 0, errors.Wrap(err, "next sequence")
	}
	return seq, nil
}
