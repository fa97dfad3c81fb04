// ABOUTME: Charm KV backend using the transactional Do API.
// ABOUTME: Optionally syncs with the charm server after every write.

package store

import (
	"errors"
	"os"
	"time"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	charmproto "github.com/charmbracelet/charm/proto"
	"github.com/dgraph-io/badger/v3"
)

const (
	// CharmDBName is the name of the charm kv database for nowted.
	CharmDBName = "nowted"
)

// Charm holds configuration for charm KV operations. It does not hold a
// connection; every operation opens the database and closes it again.
type Charm struct {
	dbName   string
	autoSync bool
}

// CharmOption configures a Charm backend.
type CharmOption func(*Charm)

func WithCharmDBName(name string) CharmOption {
	return func(c *Charm) {
		c.dbName = name
	}
}

func WithAutoSync(enabled bool) CharmOption {
	return func(c *Charm) {
		c.autoSync = enabled
	}
}

// NewCharm creates a charm backend talking to host (empty keeps CHARM_HOST).
func NewCharm(host string, opts ...CharmOption) (*Charm, error) {
	if host != "" {
		if err := os.Setenv("CHARM_HOST", host); err != nil {
			return nil, err
		}
	}
	c := &Charm{dbName: CharmDBName, autoSync: true}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Charm) Get(key string) ([]byte, error) {
	var val []byte
	err := kv.DoReadOnly(c.dbName, func(k *kv.KV) error {
		var err error
		val, err = k.Get([]byte(key))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	return val, err
}

func (c *Charm) Set(key string, value []byte) error {
	return kv.Do(c.dbName, func(k *kv.KV) error {
		if err := k.Set([]byte(key), value); err != nil {
			return err
		}
		if c.autoSync {
			return k.Sync()
		}
		return nil
	})
}

// Sync triggers a manual sync with the charm server.
func (c *Charm) Sync() error {
	return kv.Do(c.dbName, func(k *kv.KV) error {
		return k.Sync()
	})
}

// LastSyncTime returns the timestamp of the last sync operation.
func (c *Charm) LastSyncTime() time.Time {
	var lastSync time.Time
	_ = kv.DoReadOnly(c.dbName, func(k *kv.KV) error {
		lastSync = k.LastSyncTime()
		return nil
	})
	return lastSync
}

// User returns the current charm user information.
func (c *Charm) User() (*charmproto.User, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return nil, err
	}
	return cc.Bio()
}

// Link initiates the charm linking process for this device.
func (c *Charm) Link() error {
	_, err := c.User()
	return err
}

// Unlink clears the local charm data for this device.
func (c *Charm) Unlink() error {
	return kv.Do(c.dbName, func(k *kv.KV) error {
		return k.Reset()
	})
}

// Close is a no-op; connections are closed after each operation.
func (c *Charm) Close() error {
	return nil
}
