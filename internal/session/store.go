// Package session holds the operator's authenticated identity. The session
// record (token + username) is persisted to a JSON file so it survives
// restarts; everything else about the session is in-memory.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/mera-food/adminpanel/internal/api"
)

// Session is the authenticated operator.
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`

	// CSRFToken protects dashboard form posts. Minted per login/restore,
	// never persisted.
	CSRFToken string `json:"-"`
}

// Store manages the current session and its on-disk record.
type Store struct {
	path string

	mu      sync.RWMutex
	current *Session
}

// NewStore creates a Store persisting to the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Restore loads a previously persisted session. An absent, unreadable or
// malformed file leaves the store unauthenticated; no error is surfaced.
// The token is not validated locally: an expired token is only discovered
// when a later API call fails.
func (s *Store) Restore(client *api.Client) bool {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("ERROR: read session file: %v", err)
		}
		return false
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil || sess.Token == "" {
		log.Printf("ERROR: malformed session file %s, ignoring", s.path)
		return false
	}

	sess.CSRFToken = uuid.NewString()
	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()
	client.SetToken(sess.Token)
	return true
}

// Login sends the credentials to the backend. On success the returned token
// and the submitted username become the current session, are persisted, and
// the token is pushed into the API client. On failure nothing is stored and
// the store stays unauthenticated.
func (s *Store) Login(ctx context.Context, client *api.Client, username, password string) error {
	result, err := client.Login(ctx, username, password)
	if err != nil {
		return err
	}

	sess := Session{
		Token:     result.Token,
		Username:  username,
		CSRFToken: uuid.NewString(),
	}
	if err := s.persist(sess); err != nil {
		// The session is still usable for this process; losing the file
		// only costs a re-login after restart.
		log.Printf("ERROR: persist session: %v", err)
	}

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()
	client.SetToken(sess.Token)
	return nil
}

// Logout clears the in-memory session, removes the persisted record and the
// client's token. It never fails the caller; the backend is not contacted.
func (s *Store) Logout(client *api.Client) {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	client.ClearToken()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("ERROR: remove session file: %v", err)
	}
}

// Current returns the active session, if any.
func (s *Store) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Session{}, false
	}
	return *s.current, true
}

func (s *Store) persist(sess Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
