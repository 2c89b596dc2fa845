package client

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSession_Lifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	session := NewSession(path)

	// Load with no persisted file means no one is signed in.
	if err := session.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, ok := session.Current(); ok {
		t.Fatal("Current() reported a session before Set")
	}
	if session.Token() != "" {
		t.Fatal("Token() should be empty before Set")
	}

	data := SessionData{
		UserID:       "user-1",
		Name:         "Ada",
		Email:        "ada@example.com",
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
	}
	if err := session.Set(data); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	current, ok := session.Current()
	if !ok {
		t.Fatal("Current() reported no session after Set")
	}
	if current != data {
		t.Errorf("Current() = %+v, want %+v", current, data)
	}
	if session.Token() != "access-token" {
		t.Errorf("Token() = %q, want access-token", session.Token())
	}

	// The credential survives a restart: a fresh Session picks it up.
	restarted := NewSession(path)
	if err := restarted.Load(); err != nil {
		t.Fatalf("Load() after restart error = %v", err)
	}
	loaded, ok := restarted.Current()
	if !ok || loaded != data {
		t.Errorf("restarted session = %+v (ok=%v), want %+v", loaded, ok, data)
	}

	// Clear forgets the session and removes the file.
	if err := session.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, ok := session.Current(); ok {
		t.Error("Current() reported a session after Clear")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("session file still exists after Clear: %v", err)
	}

	// Clearing twice is harmless.
	if err := session.Clear(); err != nil {
		t.Errorf("second Clear() error = %v", err)
	}
}

func TestSession_FilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	session := NewSession(path)

	if err := session.Set(SessionData{UserID: "user-1", AccessToken: "secret"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("session file permissions = %o, want 600", perm)
	}
}
