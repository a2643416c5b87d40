package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/osmlabs/authkeeper/models"
)

// fileStorage keeps the whole credential cache in memory and persists it as
// one JSON document on every mutation. Write volume is low and
// human-triggered, so whole-state read-modify-write under a single lock is
// sufficient — no SQL engine, no partial updates.
type fileStorage struct {
	path     string
	inMemory bool

	mu      sync.RWMutex
	version string
	users   map[string]models.UserRecord
	session *models.Session
}

type persistedState struct {
	Version string                       `json:"version"`
	Users   map[string]models.UserRecord `json:"users"`
	Session *models.Session              `json:"session,omitempty"`
}

// NewFileStorage opens (or lazily creates) the JSON-file credential cache at
// path. The path ":memory:" keeps all state in process memory. An
// unreadable or corrupt file is treated as an empty store: the cache is a
// fallback tier, losing it must never take the application down.
func NewFileStorage(path string) (CredentialStore, error) {
	if path == "" {
		path = ":memory:"
	}

	inMemory := path == ":memory:" || path == "memory"
	s := &fileStorage{
		path:     path,
		inMemory: inMemory,
		users:    make(map[string]models.UserRecord),
	}
	s.load()
	return s, nil
}

func (s *fileStorage) load() {
	if s.inMemory {
		return
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return // absent or unreadable: start empty
	}

	var st persistedState
	if err = json.Unmarshal(data, &st); err != nil {
		return // corrupt: start empty
	}

	if st.Users == nil {
		st.Users = make(map[string]models.UserRecord)
	}

	s.version = st.Version
	s.users = st.Users
	s.session = st.Session
}

// persist writes the whole state back to disk. Callers must hold mu.
func (s *fileStorage) persist() error {
	if s.inMemory {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create storage dir: %w", err)
		}
	}

	state := persistedState{Version: s.version, Users: s.users, Session: s.session}
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode storage state: %w", err)
	}

	if err = os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write storage file: %w", err)
	}

	return nil
}

func (s *fileStorage) ListUsers(_ context.Context) ([]models.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]models.UserRecord, 0, len(s.users))
	for _, record := range s.users {
		records = append(records, record)
	}
	return records, nil
}

func (s *fileStorage) UpsertUser(_ context.Context, record models.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.Email = models.NormalizeEmail(record.Email)
	s.users[record.Email] = record
	return s.persist()
}

func (s *fileStorage) RemoveUser(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, models.NormalizeEmail(email))
	return s.persist()
}

func (s *fileStorage) FindUser(_ context.Context, email string) (models.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.users[models.NormalizeEmail(email)]
	if !ok {
		return models.UserRecord{}, ErrUserNotFound
	}
	return record, nil
}

func (s *fileStorage) SaveSession(_ context.Context, session models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session.Email = models.NormalizeEmail(session.Email)
	s.session = &session
	return s.persist()
}

func (s *fileStorage) Session(_ context.Context) (models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return models.Session{}, ErrLocalSessionNotFound
	}
	return *s.session, nil
}

func (s *fileStorage) ClearSession(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	return s.persist()
}

func (s *fileStorage) Migrate(_ context.Context, versionTag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.version == versionTag {
		return nil
	}

	// A tag change invalidates the session but preserves the registry.
	s.version = versionTag
	s.session = nil
	return s.persist()
}
