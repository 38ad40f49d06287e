package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// MemoryStore implements Store using an in-memory map with optimistic
// locking. It is the default for single-instance deployments and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]byte)}
}

// Create implements Store.
func (m *MemoryStore) Create(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[s.ID]; exists {
		return ErrAlreadyExists
	}

	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now
	s.Version = 1
	return m.put(s)
}

// Get implements Store. Returns nil if the session is not found.
func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	raw, exists := m.sessions[id]
	if !exists {
		return nil, nil
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Update implements Store.
func (m *MemoryStore) Update(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, exists := m.sessions[s.ID]
	if !exists {
		return ErrNotFound
	}

	var stored Session
	if err := json.Unmarshal(raw, &stored); err != nil {
		return err
	}
	if stored.Version != s.Version {
		return ErrVersionConflict
	}

	s.Version++
	s.UpdatedAt = time.Now()
	return m.put(s)
}

// Delete implements Store.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions = nil
	return nil
}

// put serializes the session so stored state is isolated from caller
// mutations. Caller holds the lock.
func (m *MemoryStore) put(s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.sessions[s.ID] = raw
	return nil
}
