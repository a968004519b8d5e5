package token

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore persists the single session credential as a JSON file under the
// user's config directory, the terminal analogue of origin-scoped browser
// storage. No expiry is enforced here; staleness is discovered reactively
// when the server rejects the credential.
//
// Presence changes (login, logout, rejection) are pushed to subscribers so
// screens can react without polling.
type FileStore struct {
	path string

	mu      sync.Mutex
	subs    map[int]func(present bool)
	nextSub int
}

type payload struct {
	Token   string    `json:"token"`
	SavedAt time.Time `json:"saved_at"`
}

// DefaultPath returns the conventional credential location,
// e.g. ~/.config/pairpro/session.json.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "pairpro", "session.json"), nil
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, subs: make(map[int]func(bool))}
}

// Set overwrites the stored credential. A new login always replaces the old
// session, never appends.
func (s *FileStore) Set(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create credential dir: %w", err)
	}
	data, err := json.Marshal(payload{Token: token, SavedAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write credential: %w", err)
	}
	s.notify(true)
	return nil
}

func (s *FileStore) Get() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil || p.Token == "" {
		return "", false
	}
	return p.Token, true
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear credential: %w", err)
	}
	s.notify(false)
	return nil
}

func (s *FileStore) Subscribe(fn func(present bool)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *FileStore) notify(present bool) {
	s.mu.Lock()
	fns := make([]func(bool), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(present)
	}
}
