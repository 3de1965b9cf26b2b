package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketLocal = []byte("local")
)

// KVStore implements domain.KVStore using BoltDB.
type KVStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string]string
}

// NewKVStore opens (or creates) the local database at dir/cinelist.db.
// An empty dir yields a memory-only store.
func NewKVStore(dir string) (*KVStore, error) {
	if dir == "" {
		// Memory-only mode (no persistence)
		return &KVStore{cache: make(map[string]string)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "cinelist.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketLocal)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &KVStore{db: db, cache: make(map[string]string)}, nil
}

func (s *KVStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the value stored under key. Read errors are reported as absent.
func (s *KVStore) Get(key string) (string, bool) {
	// Check memory cache first
	s.mu.RLock()
	if v, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return v, true
	}
	s.mu.RUnlock()

	if s.db == nil {
		return "", false
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketLocal)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil || data == nil {
		return "", false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[key] = string(data)
	s.mu.Unlock()

	return string(data), true
}

// Set writes value under key, updating the memory cache only after the
// durable write succeeds.
func (s *KVStore) Set(key, value string) error {
	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucketLocal)
			if b == nil {
				return fmt.Errorf("bucket %s missing", bucketLocal)
			}
			return b.Put([]byte(key), []byte(value))
		})
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
	}

	s.mu.Lock()
	s.cache[key] = value
	s.mu.Unlock()
	return nil
}

// Delete removes key. Used by "reset local data".
func (s *KVStore) Delete(key string) error {
	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketLocal)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}
