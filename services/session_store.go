package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CartLine is one entry in a visitor's cart, keyed by shoe+size+color.
// Price is snapshotted when the line is first added and never refreshed.
type CartLine struct {
	ShoeID   uint   `json:"shoe_id"`
	Quantity int    `json:"quantity"`
	Size     int    `json:"size"`
	Color    string `json:"color"`
	Price    int64  `json:"price"`
}

// CartSession is the JSON blob persisted per visitor session. Besides the
// cart lines it remembers the delivery city picked on the cart page.
type CartSession struct {
	Lines map[string]CartLine `json:"lines"`
	City  string              `json:"city,omitempty"`
}

// NewCartSession returns an empty session
func NewCartSession() *CartSession {
	return &CartSession{Lines: make(map[string]CartLine)}
}

// SessionStore abstracts the key-value store holding visitor cart sessions
type SessionStore interface {
	// Get loads the session for a visitor, returning an empty session if
	// none exists yet
	Get(ctx context.Context, sessionID string) (*CartSession, error)

	// Save persists the session blob
	Save(ctx context.Context, sessionID string, session *CartSession) error

	// Delete removes the session entirely
	Delete(ctx context.Context, sessionID string) error
}

// sessionTTL is how long an idle cart survives before Redis expires it
const sessionTTL = 14 * 24 * time.Hour

// RedisSessionStore implements SessionStore on top of Redis
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

var sessionStoreInstance SessionStore

// InitSessionStore initializes the session store with a Redis backend
func InitSessionStore(client *redis.Client) SessionStore {
	sessionStoreInstance = &RedisSessionStore{client: client, ttl: sessionTTL}
	return sessionStoreInstance
}

// GetSessionStore returns the initialized session store instance
func GetSessionStore() SessionStore {
	return sessionStoreInstance
}

// SetSessionStore sets the session store instance (primarily for testing)
func SetSessionStore(store SessionStore) {
	sessionStoreInstance = store
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

// Get loads and decodes the session blob from Redis
func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*CartSession, error) {
	raw, err := s.client.Get(ctx, cartKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return NewCartSession(), nil
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session CartSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	if session.Lines == nil {
		session.Lines = make(map[string]CartLine)
	}
	return &session, nil
}

// Save encodes and writes the session blob, refreshing its TTL
func (s *RedisSessionStore) Save(ctx context.Context, sessionID string, session *CartSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.client.Set(ctx, cartKey(sessionID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Delete removes the session key from Redis
func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
