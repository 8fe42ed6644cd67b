package session

import (
	"context"
	"sync"
	"time"
)

// Store persists conversation sessions between turns. Load returns
// (nil, nil) when no live session exists; expired sessions count as
// absent, which is what resets abandoned conversations.
type Store interface {
	Load(ctx context.Context, conversationID string) (*State, error)
	Save(ctx context.Context, state *State) error
	Delete(ctx context.Context, conversationID string) error
}

// memorySweepThreshold bounds how large the memory store can grow before
// a save triggers a sweep of expired sessions.
const memorySweepThreshold = 1024

// MemoryStore is a Store backed by a process-local map. Expiry is checked
// on load and swept lazily on save.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*State
	now      func() time.Time
}

// NewMemoryStore creates a memory store with the given idle TTL. A zero
// TTL disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]*State),
		now:      time.Now,
	}
}

// Load returns a copy of the stored session, or nil if absent or expired.
func (s *MemoryStore) Load(_ context.Context, conversationID string) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[conversationID]
	if !ok {
		return nil, nil
	}
	if s.expired(state) {
		delete(s.sessions, conversationID)
		return nil, nil
	}
	copied := *state
	return &copied, nil
}

// Save stores a copy of the session.
func (s *MemoryStore) Save(_ context.Context, state *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) >= memorySweepThreshold {
		for id, st := range s.sessions {
			if s.expired(st) {
				delete(s.sessions, id)
			}
		}
	}

	copied := *state
	s.sessions[state.ConversationID] = &copied
	return nil
}

// Delete removes the session.
func (s *MemoryStore) Delete(_ context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, conversationID)
	return nil
}

func (s *MemoryStore) expired(state *State) bool {
	if s.ttl <= 0 || state.LastActivityAt.IsZero() {
		return false
	}
	return s.now().Sub(state.LastActivityAt) > s.ttl
}
