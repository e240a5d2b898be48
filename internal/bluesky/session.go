package bluesky

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrSessionNotFound reports that no cached session exists yet.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists Bluesky sessions as JSON files in a directory, so
// repeated runs reuse a session instead of creating a new one each time.
type SessionStore struct {
	dir string
}

// NewSessionStore creates a store rooted at dir.
func NewSessionStore(dir string) *SessionStore {
	return &SessionStore{dir: dir}
}

// Save writes the session for the given identifier, creating the directory
// if needed. The file is user-readable only.
func (s *SessionStore) Save(identifier string, session *Session) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	return os.WriteFile(s.path(identifier), data, 0600)
}

// Load reads the cached session for the given identifier, or
// ErrSessionNotFound when none exists.
func (s *SessionStore) Load(identifier string) (*Session, error) {
	data, err := os.ReadFile(s.path(identifier))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}
	return &session, nil
}

// Delete removes the cached session, if any.
func (s *SessionStore) Delete(identifier string) error {
	err := os.Remove(s.path(identifier))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) path(identifier string) string {
	// filepath.Base keeps identifiers like "alice.bsky.social" from escaping
	// the store directory.
	return filepath.Join(s.dir, filepath.Base(identifier)+"_session.json")
}
