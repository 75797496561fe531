package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MockSessionStore is an in-memory implementation of SessionStore for testing
type MockSessionStore struct {
	sessions map[string][]byte // session ID to encoded blob
	mu       sync.RWMutex
}

// NewMockSessionStore creates a new mock session store
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{
		sessions: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global session store instance for testing
func (m *MockSessionStore) SetAsMockForTesting() {
	SetSessionStore(m)
}

// Get loads a session from the in-memory map
func (m *MockSessionStore) Get(ctx context.Context, sessionID string) (*CartSession, error) {
	m.mu.RLock()
	raw, exists := m.sessions[sessionID]
	m.mu.RUnlock()

	if !exists {
		return NewCartSession(), nil
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

// Save stores a session in the in-memory map
func (m *MockSessionStore) Save(ctx context.Context, sessionID string, session *CartSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	m.mu.Lock()
	m.sessions[sessionID] = raw
	m.mu.Unlock()
	return nil
}

// Delete removes a session from the in-memory map
func (m *MockSessionStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
	return nil
}

// SessionExists checks if a session is present (for testing assertions)
func (m *MockSessionStore) SessionExists(sessionID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.sessions[sessionID]
	return exists
}

// SessionCount returns the number of stored sessions (for testing assertions)
func (m *MockSessionStore) SessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Clear removes all sessions from the mock store
func (m *MockSessionStore) Clear() {
	m.mu.Lock()
	m.sessions = make(map[string][]byte)
	m.mu.Unlock()
}
