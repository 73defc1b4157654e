package signups

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Its-donkey/BuddyBreak/internal/waitlist"
	"github.com/Its-donkey/BuddyBreak/logging"
)

// PostgresStore persists signups in a PostgreSQL database.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a Postgres-backed Store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the signups table when it does not already exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS waitlist_signups (
	id            UUID PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	source        TEXT NOT NULL DEFAULT '',
	registered_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`
	_, err := s.pool.Exec(ctx, schema)
	return err
}

// Register inserts the signup. An address already present is reported as a
// DuplicateError; driver failures come back as SubmissionError.
func (s *PostgresStore) Register(ctx context.Context, signup waitlist.Signup) error {
	if err := waitlist.ValidateEmail(signup.Email); err != nil {
		return err
	}
	id, err := uuid.Parse(signup.ID)
	if err != nil {
		id = uuid.New()
	}
	registeredAt := signup.RegisteredAt
	if registeredAt.IsZero() {
		registeredAt = time.Now().UTC()
	}

	const query = `
INSERT INTO waitlist_signups (id, email, source, registered_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (email) DO NOTHING`

	tag, err := s.pool.Exec(ctx, query, id, waitlist.NormalizeEmail(signup.Email), signup.Source, registeredAt)
	if err != nil {
		return &waitlist.SubmissionError{Err: fmt.Errorf("insert signup: %w", err)}
	}
	if tag.RowsAffected() == 0 {
		return &waitlist.DuplicateError{Email: signup.Email}
	}
	return nil
}

// Count returns the number of stored signups.
func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM waitlist_signups`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Connect opens a pool for dsn and pings it, retrying with exponential backoff
// until ctx is done.
func Connect(ctx context.Context, dsn string, logger *logging.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	attempt := 0
	pool, err := backoff.Retry(ctx, func() (*pgxpool.Pool, error) {
		attempt++
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return pool, nil
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(8),
		backoff.WithNotify(func(err error, next time.Duration) {
			logger.Warn("store", "database not reachable, retrying", map[string]any{
				"attempt": attempt,
				"retryIn": next.String(),
				"error":   err.Error(),
			})
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	logger.Info("store", "connected to database", map[string]any{"attempts": attempt})
	return pool, nil
}
