// File: internal/infra/cache/postgres_store.go
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog"

	"myfatoorah-checkout/internal/domain"
	"myfatoorah-checkout/internal/domain/ports/adapter"
)

var _ adapter.CacheStore = (*PostgresStore)(nil)

// PostgresStore keeps each blob in a single-row-per-key table. Upserts give
// last-writer-wins semantics without explicit locking.
type PostgresStore struct {
	pool *pgxpool.Pool
	log  *zerolog.Logger
}

func NewPostgresStore(ctx context.Context, url string, logger *zerolog.Logger) (*PostgresStore, error) {
	pool, err := pgxpool.Connect(ctx, url)
	if err != nil {
		return nil, err
	}
	l := logger.With().Str("component", "pgcache").Logger()
	s := &PostgresStore{pool: pool, log: &l}
	if err := s.setup(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) setup(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS cache_blobs (
  key        text PRIMARY KEY,
  blob       bytea NOT NULL,
  updated_at timestamptz NOT NULL DEFAULT NOW()
);`
	_, err := s.pool.Exec(ctx, q)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			s.log.Error().Str("code", pgErr.Code).Str("detail", pgErr.Detail).Msg("cache table setup failed")
		}
	}
	return err
}

func (s *PostgresStore) Exists(ctx context.Context, key string) (bool, error) {
	var ok bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM cache_blobs WHERE key=$1);`, key).Scan(&ok)
	return ok, err
}

func (s *PostgresStore) ReadAll(ctx context.Context, key string) ([]byte, error) {
	var blob []byte
	err := s.pool.QueryRow(ctx, `SELECT blob FROM cache_blobs WHERE key=$1;`, key).Scan(&blob)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return blob, err
}

func (s *PostgresStore) WriteAll(ctx context.Context, key string, blob []byte) error {
	const q = `
INSERT INTO cache_blobs (key, blob, updated_at) VALUES ($1, $2, NOW())
ON CONFLICT (key) DO UPDATE SET blob=$2, updated_at=NOW();`
	_, err := s.pool.Exec(ctx, q, key, blob)
	return err
}

func (s *PostgresStore) LastModified(ctx context.Context, key string) (time.Time, error) {
	var t time.Time
	err := s.pool.QueryRow(ctx, `SELECT updated_at FROM cache_blobs WHERE key=$1;`, key).Scan(&t)
	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, domain.ErrNotFound
	}
	return t, err
}

func (s *PostgresStore) Close() { s.pool.Close() }
