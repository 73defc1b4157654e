// Package signups persists waitlist signups.
package signups

import (
	"context"
	"fmt"

	"github.com/Its-donkey/BuddyBreak/internal/config"
	"github.com/Its-donkey/BuddyBreak/internal/waitlist"
	"github.com/Its-donkey/BuddyBreak/logging"
)

// Store is a waitlist sink that can also report how many signups it holds.
type Store interface {
	waitlist.Sink
	EnsureSchema(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}

// Open returns the sink selected by cfg and a function releasing its resources.
func Open(ctx context.Context, cfg config.Config, logger *logging.Logger) (waitlist.Sink, func(), error) {
	switch cfg.Sink {
	case config.SinkStub, "":
		return waitlist.StubSink{}, func() {}, nil
	case config.SinkMemory:
		return NewMemoryStore(), func() {}, nil
	case config.SinkPostgres:
		connectCtx, cancel := context.WithTimeout(ctx, cfg.DBConnectTimeout)
		defer cancel()
		pool, err := Connect(connectCtx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, nil, err
		}
		store := NewPostgresStore(pool)
		if err := store.EnsureSchema(connectCtx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ensure waitlist schema: %w", err)
		}
		return store, pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown sink %q", cfg.Sink)
	}
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*PostgresStore)(nil)
)
