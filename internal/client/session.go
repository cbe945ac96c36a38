// Package client is the command-line client of the resume API.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"resume_backend/internal/api"
)

// StoredSession is the persisted form of a session.
type StoredSession struct {
	Token string           `json:"token"`
	User  api.UserResponse `json:"user"`
}

// SessionStore persists the session between invocations.
type SessionStore interface {
	Load() (*StoredSession, error)
	Save(StoredSession) error
	Delete() error
}

// Session holds the bearer token and the signed-in user.
// It is created empty, filled by Load or Set, and emptied by Clear.
type Session struct {
	mu    sync.RWMutex
	store SessionStore
	cur   *StoredSession
}

// NewSession creates an empty session backed by store. A nil store keeps the session in memory.
func NewSession(store SessionStore) *Session {
	return &Session{store: store}
}

// Load initializes the session from the store. A missing entry leaves it empty.
func (s *Session) Load() error {
	if s.store == nil {
		return nil
	}
	st, err := s.store.Load()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cur = st
	s.mu.Unlock()
	return nil
}

// Set replaces the session and persists it.
func (s *Session) Set(token string, user api.UserResponse) error {
	st := StoredSession{Token: token, User: user}
	s.mu.Lock()
	s.cur = &st
	s.mu.Unlock()
	if s.store == nil {
		return nil
	}
	return s.store.Save(st)
}

// Clear drops the token and user and removes the persisted copy.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.cur = nil
	s.mu.Unlock()
	if s.store == nil {
		return nil
	}
	return s.store.Delete()
}

// Token returns the bearer token, or "" when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cur == nil {
		return ""
	}
	return s.cur.Token
}

// User returns the signed-in user.
func (s *Session) User() (api.UserResponse, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cur == nil {
		return api.UserResponse{}, false
	}
	return s.cur.User, true
}

// FileStore keeps the session as a JSON file readable only by its owner.
type FileStore struct {
	Path string
}

// Compile-time check that FileStore implements SessionStore.
var _ SessionStore = (*FileStore)(nil)

// Load returns nil without error when the file does not exist.
func (f *FileStore) Load() (*StoredSession, error) {
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var st StoredSession
	if err := json.Unmarshal(b, &st); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", f.Path, err)
	}
	return &st, nil
}

// Save writes the session with mode 0600.
func (f *FileStore) Save(st StoredSession) error {
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(f.Path, b, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Delete removes the file. A missing file is not an error.
func (f *FileStore) Delete() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
