// ABOUTME: Persistent store adapter over a pluggable key-value backend.
// ABOUTME: Collections are JSON encoded and always written whole.

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/rs/zerolog"
)

// Keys under which the notebook collections are persisted.
const (
	KeyNotes          = "notes"
	KeyFolders        = "folders"
	KeyDeletedFolders = "deletedFolders"
	KeyRecentNotes    = "recentNotes"
	KeySelectedFolder = "selectedFolder"
)

var ErrNotFound = errors.New("key not found")

// Backend is a flat key-value store.
type Backend interface {
	// Get returns ErrNotFound when the key is absent.
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Close() error
}

// Store serializes collections into a Backend.
type Store struct {
	backend Backend
	log     zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load decodes the value under key into dst and reports whether it did.
// It never fails: a missing key, an unreadable backend or a value that does
// not parse all return false, and the caller substitutes its default. Only
// the last two are logged. dst is left untouched on failure.
func (s *Store) Load(key string, dst any) bool {
	data, err := s.backend.Get(key)
	if errors.Is(err, ErrNotFound) {
		return false
	}
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("read failed, using default")
		return false
	}

	// Decode into a scratch value so a partial decode never leaks into dst.
	target := reflect.ValueOf(dst)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		s.log.Error().Str("key", key).Msg("load target must be a non-nil pointer")
		return false
	}
	scratch := reflect.New(target.Elem().Type())
	if err := json.Unmarshal(data, scratch.Interface()); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("stored value does not parse, using default")
		return false
	}
	target.Elem().Set(scratch.Elem())
	return true
}

// Save overwrites key with the JSON encoding of v.
func (s *Store) Save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.backend.Set(key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Backend returns the underlying key-value backend.
func (s *Store) Backend() Backend {
	return s.backend
}

func (s *Store) Close() error {
	return s.backend.Close()
}
