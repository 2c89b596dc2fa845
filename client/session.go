package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	sessionAppName = "task-dashboard"
	sessionFile    = "session.json"
)

// SessionData is the persisted session state: who is signed in and the
// credentials to act on their behalf.
type SessionData struct {
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Session is an explicit session context with a defined lifecycle: Load
// on app start reads any persisted credential, Set on login/registration
// success persists the new one, Clear on logout removes it. It is passed
// to whatever needs it rather than accessed as ambient global state.
type Session struct {
	path string

	mu   sync.Mutex
	data *SessionData
}

// DefaultSessionPath returns the session file location under the user's
// config directory.
func DefaultSessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", sessionAppName, sessionFile), nil
}

// NewSession creates a Session backed by the given file path.
func NewSession(path string) *Session {
	return &Session{
		path: path,
	}
}

// Load reads the persisted session if present. A missing file simply
// means no one is signed in.
func (s *Session) Load() error {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open session file: %w", err)
	}
	defer f.Close()

	var data SessionData
	if err := json.NewDecoder(f).Decode(&data); err != nil {
		return fmt.Errorf("failed to decode session file: %w", err)
	}

	s.mu.Lock()
	s.data = &data
	s.mu.Unlock()
	return nil
}

// Set stores the session state and persists it with owner-only permissions.
func (s *Session) Set(data SessionData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open session file for writing: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(&data); err != nil {
		return fmt.Errorf("failed to encode session file: %w", err)
	}

	s.data = &data
	return nil
}

// Clear forgets the session and removes the persisted file.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// Current returns the session state and whether anyone is signed in.
func (s *Session) Current() (SessionData, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return SessionData{}, false
	}
	return *s.data, true
}

// Token returns the access token of the signed-in user, empty when no
// session is active.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return ""
	}
	return s.data.AccessToken
}
