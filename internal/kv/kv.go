package kv

import (
	"fmt"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"
)

// Slot is a durable key-value slot. Get reports whether the key was present
// so callers can distinguish "never saved" from an empty payload.
type Slot interface {
	Put(key string, value []byte) error
	Get(key string) ([]byte, bool, error)
}

var bucketName = []byte("taskdesk")

// Store is a bbolt-backed Slot. A single bucket holds every slot key.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if necessary) the database file at path
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database file
func (s *Store) Close() error {
	return s.db.Close()
}

// Put writes value under key, replacing any previous value
func (s *Store) Put(key string, value []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// Get reads the value under key. The second return is false when the key
// has never been written.
func (s *Store) Get(key string) ([]byte, bool, error) {
	var value []byte
	var found bool

	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketName).Get([]byte(key))
		if v == nil {
			return nil
		}
		found = true
		value = make([]byte, len(v))
		copy(value, v)
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %q: %w", key, err)
	}

	return value, found, nil
}

var _ Slot = (*Store)(nil)
