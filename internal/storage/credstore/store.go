// Package credstore implements CredentialStore using BadgerHold.
// It persists the token pair, the cached user snapshot, and small
// key-value CLI state under fixed keys so a session survives restarts.
package credstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/devnarayan/folio/internal/common"
	"github.com/devnarayan/folio/internal/interfaces"
	"github.com/devnarayan/folio/internal/models"
)

// Fixed storage keys. Absence of either token key means "no session".
const (
	KeyAccessToken  = "auth_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
)

// Record is a single persisted entry.
type Record struct {
	Key       string `badgerhold:"key"`
	Value     string
	UpdatedAt time.Time
}

// Store implements interfaces.CredentialStore using BadgerHold.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewStore opens (creating if needed) the credential store at path.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, fmt.Errorf("failed to create credstore path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open credstore at %s: %w", path, err)
	}
	logger.Debug().Str("path", path).Msg("Credential store opened")
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) get(key string) (string, error) {
	var rec Record
	if err := s.db.Get(key, &rec); err != nil {
		if err == badgerhold.ErrNotFound {
			return "", nil
		}
		return "", fmt.Errorf("failed to get %q: %w", key, err)
	}
	return rec.Value, nil
}

func (s *Store) put(key, value string) error {
	rec := Record{Key: key, Value: value, UpdatedAt: time.Now()}
	if err := s.db.Upsert(key, rec); err != nil {
		return fmt.Errorf("failed to put %q: %w", key, err)
	}
	return nil
}

func (s *Store) delete(key string) error {
	if err := s.db.Delete(key, Record{}); err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

func (s *Store) AccessToken(_ context.Context) (string, error) {
	return s.get(KeyAccessToken)
}

func (s *Store) RefreshToken(_ context.Context) (string, error) {
	return s.get(KeyRefreshToken)
}

func (s *Store) SaveTokens(_ context.Context, access, refresh string) error {
	if err := s.put(KeyAccessToken, access); err != nil {
		return err
	}
	return s.put(KeyRefreshToken, refresh)
}

func (s *Store) SaveAccessToken(_ context.Context, access string) error {
	return s.put(KeyAccessToken, access)
}

func (s *Store) User(_ context.Context) (*models.User, error) {
	raw, err := s.get(KeyUser)
	if err != nil || raw == "" {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("failed to decode cached user: %w", err)
	}
	return &user, nil
}

func (s *Store) SaveUser(_ context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	return s.put(KeyUser, string(data))
}

// Clear removes both tokens and the cached user in one sweep. Failures on
// individual keys do not stop the others; the first error is reported.
func (s *Store) Clear(_ context.Context) error {
	var firstErr error
	for _, key := range []string{KeyAccessToken, KeyRefreshToken, KeyUser} {
		if err := s.delete(key); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.logger.Debug().Msg("Credentials cleared")
	return firstErr
}

// kvPrefix namespaces CLI state away from the credential keys.
const kvPrefix = "kv\x00"

func (s *Store) GetKV(_ context.Context, key string) (string, error) {
	return s.get(kvPrefix + key)
}

func (s *Store) SetKV(_ context.Context, key, value string) error {
	return s.put(kvPrefix+key, value)
}

func (s *Store) DeleteKV(_ context.Context, key string) error {
	return s.delete(kvPrefix + key)
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Ensure Store implements CredentialStore
var _ interfaces.CredentialStore = (*Store)(nil)
