package store

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// memoryItem holds the value and expiration timestamp for a key.
type memoryItem struct {
	value     []byte
	expiresAt int64 // Unix-nano timestamp. 0 for no expiry.
}

// MemoryStore is an in-memory key-value store that is safe for concurrent use.
// It is the single-node default; queue-number counters allocated through it are
// backed by the database unique index when the process restarts.
type MemoryStore struct {
	mu          sync.Mutex
	data        map[string]memoryItem
	stopCleanup chan struct{}
	closeOnce   sync.Once
}

// NewMemoryStore creates and returns a new MemoryStore instance.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		data:        make(map[string]memoryItem),
		stopCleanup: make(chan struct{}),
	}
	// Expired items that are never read again would otherwise leak
	go s.cleanupExpiredItems()
	return s
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (s *MemoryStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopCleanup)
	})
	return nil
}

// Set stores a key-value pair.
func (s *MemoryStore) Set(key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = memoryItem{
		value:     append([]byte(nil), value...),
		expiresAt: expiry(ttl),
	}
	return nil
}

// Get retrieves a value by its key.
func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.data[key]
	if !exists {
		return nil, ErrNotFound
	}
	if item.expiresAt > 0 && time.Now().UnixNano() > item.expiresAt {
		delete(s.data, key)
		return nil, ErrNotFound
	}

	return append([]byte(nil), item.value...), nil
}

// Delete removes a value by its key.
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Exists checks if a key exists.
func (s *MemoryStore) Exists(key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.data[key]
	if !exists {
		return false, nil
	}
	if item.expiresAt > 0 && time.Now().UnixNano() > item.expiresAt {
		delete(s.data, key)
		return false, nil
	}
	return true, nil
}

// SetNX sets a key-value pair if the key does not already exist.
func (s *MemoryStore) SetNX(key string, value []byte, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item, exists := s.data[key]; exists {
		if item.expiresAt == 0 || time.Now().UnixNano() < item.expiresAt {
			return false, nil
		}
	}

	s.data[key] = memoryItem{
		value:     append([]byte(nil), value...),
		expiresAt: expiry(ttl),
	}
	return true, nil
}

// Incr atomically increments the integer stored at key. The mutex is the
// serializing primitive here; concurrent callers always observe distinct values.
func (s *MemoryStore) Incr(key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current int64
	if item, exists := s.data[key]; exists {
		if item.expiresAt == 0 || time.Now().UnixNano() < item.expiresAt {
			parsed, err := strconv.ParseInt(string(item.value), 10, 64)
			if err != nil {
				return 0, fmt.Errorf("type mismatch: key '%s' does not hold an integer", key)
			}
			current = parsed
		}
	}

	next := current + 1
	s.data[key] = memoryItem{value: []byte(strconv.FormatInt(next, 10))}
	return next, nil
}

// Clear clears all data.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]memoryItem)
	return nil
}

func expiry(ttl time.Duration) int64 {
	if ttl > 0 {
		return time.Now().UnixNano() + ttl.Nanoseconds()
	}
	return 0
}

// cleanupExpiredItems periodically removes expired items from the store.
func (s *MemoryStore) cleanupExpiredItems() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.performCleanup()
		case <-s.stopCleanup:
			logrus.Debug("MemoryStore cleanup goroutine stopped")
			return
		}
	}
}

// performCleanup scans the store and removes expired items.
func (s *MemoryStore) performCleanup() {
	now := time.Now().UnixNano()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, item := range s.data {
		if item.expiresAt > 0 && now > item.expiresAt {
			delete(s.data, key)
			removed++
		}
	}

	if removed > 0 && logrus.IsLevelEnabled(logrus.DebugLevel) {
		logrus.Debugf("MemoryStore cleanup: removed %d expired items", removed)
	}
}
