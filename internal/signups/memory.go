package signups

import (
	"context"
	"sort"
	"sync"

	"github.com/Its-donkey/BuddyBreak/internal/waitlist"
)

// MemoryStore keeps signups in process memory. Useful for local runs and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	signups map[string]waitlist.Signup
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{signups: make(map[string]waitlist.Signup)}
}

// EnsureSchema satisfies Store. No-op for the memory store.
func (m *MemoryStore) EnsureSchema(context.Context) error {
	return nil
}

// Register validates and records signup, keyed by its normalized address.
func (m *MemoryStore) Register(ctx context.Context, signup waitlist.Signup) error {
	if err := ctx.Err(); err != nil {
		return &waitlist.SubmissionError{Err: err}
	}
	if err := waitlist.ValidateEmail(signup.Email); err != nil {
		return err
	}
	key := waitlist.NormalizeEmail(signup.Email)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.signups[key]; exists {
		return &waitlist.DuplicateError{Email: signup.Email}
	}
	signup.Email = key
	m.signups[key] = signup
	return nil
}

// Count returns the number of stored signups.
func (m *MemoryStore) Count(context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.signups), nil
}

// List returns the stored signups, oldest first.
func (m *MemoryStore) List() []waitlist.Signup {
	m.mu.RLock()
	out := make([]waitlist.Signup, 0, len(m.signups))
	for _, s := range m.signups {
		out = append(out, s)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].RegisteredAt.Equal(out[j].RegisteredAt) {
			return out[i].Email < out[j].Email
		}
		return out[i].RegisteredAt.Before(out[j].RegisteredAt)
	})
	return out
}
