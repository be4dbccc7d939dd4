package persist

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

// DBPool matches the methods from *pgxpool.Pool that the adapter uses.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

const (
	loadSQL   = `SELECT payload FROM storefront_state WHERE key=$1`
	saveSQL   = `INSERT INTO storefront_state(key, payload, updated_at) VALUES($1, $2, now()) ON CONFLICT (key) DO UPDATE SET payload=EXCLUDED.payload, updated_at=now()`
	deleteSQL = `DELETE FROM storefront_state WHERE key=$1`
)

// PostgresAdapter keeps records in the storefront_state table as JSONB.
type PostgresAdapter struct {
	pool DBPool
}

func NewPostgresAdapter(pool DBPool) *PostgresAdapter {
	return &PostgresAdapter{pool: pool}
}

func (p *PostgresAdapter) Load(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	if err := p.pool.QueryRow(ctx, loadSQL, key).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "load %s", key)
	}
	return payload, nil
}

func (p *PostgresAdapter) Save(ctx context.Context, key string, data []byte) error {
	if _, err := p.pool.Exec(ctx, saveSQL, key, data); err != nil {
		return errors.Wrapf(err, "save %s", key)
	}
	return nil
}

func (p *PostgresAdapter) Delete(ctx context.Context, key string) error {
	if _, err := p.pool.Exec(ctx, deleteSQL, key); err != nil {
		return errors.Wrapf(err, "delete %s", key)
	}
	return nil
}
