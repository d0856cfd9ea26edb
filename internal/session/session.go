// Package session keeps the logged in user in a single storage slot
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/syrilster/ems-console/internal/model"
)

const (
	filePerm = 0600

	// PlaceholderToken marks a saved session when the backend issued no token
	PlaceholderToken = "ems-console-session"
)

// Record is the cached profile of the authenticated user, token included
type Record struct {
	model.User
}

// LoggedIn reports whether the record represents an authenticated user
func (r *Record) LoggedIn() bool {
	return r != nil && r.Token != ""
}

func (r *Record) HasRole(role model.Role) bool {
	return r.LoggedIn() && r.Role == role
}

type Store interface {
	Save(ctx context.Context, user model.User, token string) (*Record, error)
	Read(ctx context.Context) (*Record, error)
	Clear(ctx context.Context) error
}

func newRecord(user model.User, token string) *Record {
	if token == "" {
		token = PlaceholderToken
	}
	user.Token = token
	return &Record{User: user}
}

type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore persists the session as a JSON document at path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Save(ctx context.Context, user model.User, token string) (*Record, error) {
	ctxLogger := log.WithContext(ctx)
	record := newRecord(user, token)

	file, err := json.MarshalIndent(record, "", " ")
	if err != nil {
		ctxLogger.WithError(err).Error("Error preparing the session json")
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.path, file, filePerm); err != nil {
		ctxLogger.WithError(err).Error("Error writing session to file")
		return nil, fmt.Errorf("save session: %w", err)
	}
	ctxLogger.WithField("userId", record.ID).Info("session saved")
	return record, nil
}

func (s *FileStore) Read(ctx context.Context) (*Record, error) {
	s.mu.Lock()
	data, err := os.ReadFile(s.path)
	s.mu.Unlock()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		log.WithContext(ctx).WithError(err).Error("error reading session file")
		return nil, fmt.Errorf("read session: %w", err)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		log.WithContext(ctx).WithError(err).Error("error un marshalling session file")
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &record, nil
}

func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.WithContext(ctx).WithError(err).Error("error removing session file")
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

type MemoryStore struct {
	mu     sync.Mutex
	record *Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, user model.User, token string) (*Record, error) {
	record := newRecord(user, token)
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *record
	s.record = &stored
	return record, nil
}

func (s *MemoryStore) Read(context.Context) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.record == nil {
		return nil, nil
	}
	r := *s.record
	return &r, nil
}

func (s *MemoryStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = nil
	return nil
}
