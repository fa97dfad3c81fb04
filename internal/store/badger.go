// ABOUTME: Badger key-value backend using short-lived connections.
// ABOUTME: Each operation opens the directory and closes it, so processes can share it.

package store

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v3"
	"github.com/rs/zerolog"
)

// Badger stores values in a badger directory. Unlike a long-lived handle it
// does NOT keep the directory lock between operations, so the CLI can write
// while `nowted serve` is running.
type Badger struct {
	dir string
	log zerolog.Logger
}

func NewBadger(dir string, log zerolog.Logger) (*Badger, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Badger{dir: dir, log: log}, nil
}

// Dir returns the badger directory.
func (b *Badger) Dir() string {
	return b.dir
}

func (b *Badger) do(fn func(db *badger.DB) error) error {
	opts := badger.DefaultOptions(b.dir).
		WithLogger(badgerLogger{b.log}).
		WithLoggingLevel(badger.WARNING)
	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("open badger: %w", err)
	}
	if err := fn(db); err != nil {
		_ = db.Close()
		return err
	}
	return db.Close()
}

func (b *Badger) Get(key string) ([]byte, error) {
	var val []byte
	err := b.do(func(db *badger.DB) error {
		return db.View(func(txn *badger.Txn) error {
			item, err := txn.Get([]byte(key))
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			if err != nil {
				return err
			}
			val, err = item.ValueCopy(nil)
			return err
		})
	})
	return val, err
}

func (b *Badger) Set(key string, value []byte) error {
	return b.do(func(db *badger.DB) error {
		return db.Update(func(txn *badger.Txn) error {
			return txn.Set([]byte(key), value)
		})
	})
}

// Close is a no-op; connections are closed after each operation.
func (b *Badger) Close() error {
	return nil
}

// badgerLogger routes badger's internal logging into zerolog.
type badgerLogger struct {
	log zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Str("component", "badger").Msgf(format, args...)
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn().Str("component", "badger").Msgf(format, args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debug().Str("component", "badger").Msgf(format, args...)
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Trace().Str("component", "badger").Msgf(format, args...)
}
