// ABOUTME: Profile persistence interface plus the in-memory fallback store
// ABOUTME: The engine degrades to memory-only learning when durable storage is unavailable

package profile

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound reports a user with no stored profile yet.
var ErrNotFound = errors.New("profile not found")

// Store persists profiles keyed by user id. Implementations must be safe
// for concurrent use; the learning store already serializes writes
// per user, but different users flush concurrently.
type Store interface {
	Load(ctx context.Context, userID string) (*Profile, error)
	Save(ctx context.Context, p *Profile) error
	Close() error
}

// MemoryStore keeps profiles in process memory. It is the fallback when
// no durable store is configured and the workhorse for tests.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]*Profile)}
}

// Load returns a clone of the stored profile or ErrNotFound.
func (s *MemoryStore) Load(_ context.Context, userID string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return p.Clone(), nil
}

// Save stores a clone of the profile.
func (s *MemoryStore) Save(_ context.Context, p *Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.UserID] = p.Clone()
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }
