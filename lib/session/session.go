// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package session persists the logged-in user's authentication state
// between invocations. The session file holds the bearer token and
// enough identity to label the UI; it is the only place the token is
// stored. Code that needs the token receives a loaded Session
// explicitly — there is no package-level current session.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/casedesk/casedesk/lib/schema/support"
)

// Session holds the authentication state saved by "casedesk login".
// Analogous to SSH keys: set up once, then transparent to every
// command that needs it.
type Session struct {
	// ServerURL is the casedesk server the token belongs to.
	ServerURL string `json:"server_url"`

	// Token is the bearer credential proving the user's identity.
	// Verified by the server on every request; stale tokens surface
	// as 401s.
	Token string `json:"token"`

	// User is the account the token was issued to, as of login time.
	// Role gates admin-only UI before the first round trip; the
	// server re-checks on every call.
	User support.User `json:"user"`
}

// FilePath returns the path to the session file. Checks the
// CASEDESK_SESSION_FILE environment variable first, then falls back
// to ~/.config/casedesk/session.json.
func FilePath() string {
	if envPath := os.Getenv("CASEDESK_SESSION_FILE"); envPath != "" {
		return envPath
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			// Fallback — this should rarely happen.
			return filepath.Join("/tmp", "casedesk-session.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "casedesk", "session.json")
}

// Load reads the session from the well-known path. Returns a clear
// error directing the user to "casedesk login" if no session exists.
func Load() (*Session, error) {
	return LoadFrom(FilePath())
}

// LoadFrom reads a session from a specific file path.
func LoadFrom(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no casedesk session found at %s — run \"casedesk login\" first", path)
		}
		return nil, fmt.Errorf("reading session file %s: %w", path, err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("parsing session file %s: %w", path, err)
	}

	if session.ServerURL == "" {
		return nil, fmt.Errorf("session file %s has no server_url", path)
	}
	if session.Token == "" {
		return nil, fmt.Errorf("session file %s has no token", path)
	}
	if session.User.Username == "" {
		return nil, fmt.Errorf("session file %s has no user", path)
	}

	return &session, nil
}

// Save writes the session to the well-known path. Creates the parent
// directory with mode 0700 if it doesn't exist. The file is written
// with mode 0600 (owner-only read/write) since it contains the token.
func Save(session *Session) error {
	return SaveTo(session, FilePath())
}

// SaveTo writes a session to a specific file path.
func SaveTo(session *Session, path string) error {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	data = append(data, '\n')

	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("creating session directory %s: %w", directory, err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing session file %s: %w", path, err)
	}
	return nil
}

// Clear removes the session file. Removing an absent file is not an
// error, so logout is idempotent.
func Clear() error {
	return ClearAt(FilePath())
}

// ClearAt removes a session file at a specific path.
func ClearAt(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file %s: %w", path, err)
	}
	return nil
}
