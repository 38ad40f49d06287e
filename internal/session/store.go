package session

import (
	"context"
	"errors"
)

// Store errors.
var (
	// ErrNotFound is returned by Update when the session does not exist.
	ErrNotFound = errors.New("session not found")
	// ErrVersionConflict is returned by Update when another action persisted
	// the session first. The execution model processes one action at a time
	// per session; a conflict means the caller raced itself.
	ErrVersionConflict = errors.New("session version conflict")
	// ErrAlreadyExists is returned by Create for a duplicate session ID.
	ErrAlreadyExists = errors.New("session already exists")
)

// Store persists sessions between actions.
type Store interface {
	// Create stores a new session with Version set to 1.
	Create(ctx context.Context, s *Session) error

	// Get retrieves a session by ID.
	// Returns nil if the session is not found (not an error).
	Get(ctx context.Context, id string) (*Session, error)

	// Update persists an existing session with optimistic locking: the stored
	// Version must match, and is incremented on success.
	Update(ctx context.Context, s *Session) error

	// Delete removes a session by ID.
	Delete(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}
