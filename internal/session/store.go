// Package session is the Conversation Memory component (C10): Redis-backed
// persistence of coretypes.Context plus progressive-disclosure bookkeeping
// and reference resolution for turns like "cái thứ hai" or "chỗ đó".
// Grounded on fweilun-Ark's location.Store JSON-in-Redis pattern.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"travelcore/internal/coretypes"
)

const (
	keyPrefix     = "travelcore:session:"
	defaultTTL    = 24 * time.Hour
)

// Store persists and restores per-session Context in Redis.
type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewStore wraps an already-connected redis.Client.
func NewStore(client *redis.Client) *Store {
	return &Store{redis: client, ttl: defaultTTL}
}

// WithTTL overrides the default 24h expiry on saved sessions.
func (s *Store) WithTTL(ttl time.Duration) *Store {
	s.ttl = ttl
	return s
}

func sessionKey(sessionID string) string {
	return keyPrefix + sessionID
}

// Load fetches and restores the Context for sessionID, creating a fresh one
// if the key has expired or never existed (§3, §9 "dict → typed Context").
func (s *Store) Load(ctx context.Context, sessionID string) (*coretypes.Context, error) {
	raw, err := s.redis.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return coretypes.RestoreContext(sessionID, nil)
	}
	if err != nil {
		return nil, err
	}
	return coretypes.RestoreContext(sessionID, raw)
}

// Save serializes and persists c, refreshing its TTL.
func (s *Store) Save(ctx context.Context, c *coretypes.Context) error {
	data, err := c.Serialize()
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, sessionKey(c.SessionID), data, s.ttl).Err()
}

// Delete drops a session's stored Context.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	return s.redis.Del(ctx, sessionKey(sessionID)).Err()
}
