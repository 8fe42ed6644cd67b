package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:turn:"

// RedisStore is a Store backed by Redis. The idle-expiry window rides on
// the key TTL: every save refreshes it, so abandoned conversations simply
// age out.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore creates a Redis-backed session store with the given idle
// TTL.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func sessionKey(conversationID string) string {
	return sessionKeyPrefix + conversationID
}

// Load retrieves a session, or nil when absent or expired.
func (s *RedisStore) Load(ctx context.Context, conversationID string) (*State, error) {
	data, err := s.rdb.Get(ctx, sessionKey(conversationID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("session: load: %w", err)
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("session: unmarshal: %w", err)
	}
	return &state, nil
}

// Save persists the session and refreshes its TTL.
func (s *RedisStore) Save(ctx context.Context, state *State) error {
	if state == nil || state.ConversationID == "" {
		return fmt.Errorf("session: conversation_id required")
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}
	return s.rdb.Set(ctx, sessionKey(state.ConversationID), data, s.ttl).Err()
}

// Delete removes the session.
func (s *RedisStore) Delete(ctx context.Context, conversationID string) error {
	return s.rdb.Del(ctx, sessionKey(conversationID)).Err()
}
