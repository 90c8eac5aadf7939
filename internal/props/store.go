// Package props is the local property store: the user's bearer token, the
// automatic-sync flag and the cached category vocabularies. It stands in for
// the per-user and per-document properties the hosted version of Cent keeps.
package props

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotConnected is returned when an operation needs a bearer token and the
// user has not connected their accounts yet.
var ErrNotConnected = fmt.Errorf("no user token stored: not connected")

type state struct {
	UserToken        string   `json:"user_token,omitempty"`
	AutoSyncEnabled  *bool    `json:"auto_sync_enabled,omitempty"`
	NZFCCCategories  []string `json:"nzfcc_categories,omitempty"`
	PFMCategories    []string `json:"pfm_categories,omitempty"`
}

// Store is a file-backed property store. It is safe for concurrent use.
// Every mutation is written through to disk immediately.
type Store struct {
	mu   sync.RWMutex
	path string
	st   state
}

// Open loads the store at path, creating an empty one if the file is missing.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("props.Open: %w", err)
	}
	if err := json.Unmarshal(data, &s.st); err != nil {
		return nil, fmt.Errorf("props.Open: parsing %s: %w", path, err)
	}
	return s, nil
}

// flush writes the current state to disk. Caller must hold mu.
func (s *Store) flush() error {
	data, err := json.MarshalIndent(s.st, "", "  ")
	if err != nil {
		return fmt.Errorf("props.flush: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("props.flush: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("props.flush: %w", err)
	}
	return nil
}

// UserToken returns the stored bearer token, or ErrNotConnected if none is set.
func (s *Store) UserToken() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.st.UserToken == "" {
		return "", ErrNotConnected
	}
	return s.st.UserToken, nil
}

// SetUserToken stores the bearer token.
func (s *Store) SetUserToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st.UserToken = token
	return s.flush()
}

// ClearUserToken removes the stored bearer token. Clearing an already-empty
// token is not an error: local state always wins for logout.
func (s *Store) ClearUserToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st.UserToken = ""
	return s.flush()
}

// AutoSyncEnabled reports whether the daily scheduled sync should run.
// Defaults to true when the flag has never been set.
func (s *Store) AutoSyncEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.st.AutoSyncEnabled == nil {
		return true
	}
	return *s.st.AutoSyncEnabled
}

// SetAutoSyncEnabled sets the daily scheduled sync flag.
func (s *Store) SetAutoSyncEnabled(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st.AutoSyncEnabled = &enabled
	return s.flush()
}

// CategoryVocabularies returns the cached raw taxonomy names and the
// deduplicated parent-group names. Either may be empty if Refresh has
// never run.
func (s *Store) CategoryVocabularies() (nzfcc, pfm []string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nzfcc = append([]string(nil), s.st.NZFCCCategories...)
	pfm = append([]string(nil), s.st.PFMCategories...)
	return nzfcc, pfm
}

// SetCategoryVocabularies replaces both cached vocabularies.
func (s *Store) SetCategoryVocabularies(nzfcc, pfm []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st.NZFCCCategories = append([]string(nil), nzfcc...)
	s.st.PFMCategories = append([]string(nil), pfm...)
	return s.flush()
}
