// Package templatecache keeps Drive-hosted invoice templates in a local
// bbolt file so a generation run does not re-download an unchanged
// template on every invocation.
package templatecache

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const bucketName = "templates"

// Store is a small persistent byte cache with per-entry expiry.
type Store struct {
	db  *bolt.DB
	ttl time.Duration
}

// Open creates (or opens) the cache file at path.
func Open(path string, ttl time.Duration) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, ttl: ttl}, nil
}

// Get returns the cached bytes for key, or ok=false when the entry is
// absent or expired.
func (s *Store) Get(key string) (data []byte, ok bool, err error) {
	err = s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket([]byte(bucketName)).Get([]byte(key))
		if raw == nil || len(raw) < 8 {
			return nil
		}
		storedAt := time.Unix(int64(binary.BigEndian.Uint64(raw[:8])), 0)
		if s.ttl > 0 && time.Since(storedAt) > s.ttl {
			return nil
		}
		data = append([]byte(nil), raw[8:]...)
		ok = true
		return nil
	})
	return data, ok, err
}

// Put stores bytes under key with the current time as its freshness mark.
func (s *Store) Put(key string, data []byte) error {
	entry := make([]byte, 8+len(data))
	binary.BigEndian.PutUint64(entry[:8], uint64(time.Now().Unix()))
	copy(entry[8:], data)

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(key), entry)
	})
}

// Close releases the underlying file.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) String() string {
	return fmt.Sprintf("templatecache(%s)", s.db.Path())
}
