// Package cache stores rendered documents in a bbolt database keyed by
// blake3 digests of everything that influences the output.
package cache

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/blake3"
	bolt "go.etcd.io/bbolt"
)

// Sentinel errors for cache operations.
var (
	ErrEmptyPath = errors.New("cache path cannot be empty")
	ErrLocked    = errors.New("cache database is locked by another process")
	ErrClosed    = errors.New("cache is closed")
)

const (
	bucketRenders = "renders"
	fileName      = "render.db"
	openTimeout   = time.Second
)

// Cache is a persistent key/value store for rendered output.
// It is safe for concurrent use.
type Cache struct {
	db *bolt.DB
}

// DefaultPath returns the cache file under the user cache directory.
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locating user cache directory: %w", err)
	}
	return filepath.Join(dir, "go-mdenrich", fileName), nil
}

// Open opens or creates the cache database at path, creating parent
// directories. Returns ErrLocked when another process holds the file.
func Open(path string) (*Cache, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, fmt.Errorf("%w: %s", ErrLocked, path)
		}
		return nil, fmt.Errorf("opening cache %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketRenders))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing cache: %w", err)
	}

	return &Cache{db: db}, nil
}

// Key digests the parts into a hex key. Each part is length-prefixed, so
// ("ab", "c") and ("a", "bc") produce different keys.
func Key(parts ...[]byte) string {
	h := blake3.New()
	var size [8]byte
	for _, p := range parts {
		binary.BigEndian.PutUint64(size[:], uint64(len(p)))
		_, _ = h.Write(size[:])
		_, _ = h.Write(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns a copy of the value stored under key.
func (c *Cache) Get(key string) (value []byte, ok bool, err error) {
	if c.db == nil {
		return nil, false, ErrClosed
	}
	err = c.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(bucketRenders)).Get([]byte(key)); v != nil {
			value = append([]byte(nil), v...)
			ok = true
		}
		return nil
	})
	return value, ok, err
}

// Put stores value under key, replacing any previous value.
func (c *Cache) Put(key string, value []byte) error {
	if c.db == nil {
		return ErrClosed
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketRenders)).Put([]byte(key), value)
	})
}

// Delete removes key. Missing keys are not an error.
func (c *Cache) Delete(key string) error {
	if c.db == nil {
		return ErrClosed
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketRenders)).Delete([]byte(key))
	})
}

// Len returns the number of cached entries.
func (c *Cache) Len() (int, error) {
	if c.db == nil {
		return 0, ErrClosed
	}
	var n int
	err := c.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket([]byte(bucketRenders)).Stats().KeyN
		return nil
	})
	return n, err
}

// Clear removes every entry.
func (c *Cache) Clear() error {
	if c.db == nil {
		return ErrClosed
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketRenders)); err != nil {
			return err
		}
		_, err := tx.CreateBucket([]byte(bucketRenders))
		return err
	})
}

// Close releases the database file lock. Calling Close twice is a no-op.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}
