// Package store provides a small key-value store abstraction with memory and
// redis backends. It backs onboarding draft sessions (TTL'd JSON blobs) and the
// per-restaurant queue-number counters that must be allocated atomically.
package store

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a key does not exist in the store.
var ErrNotFound = errors.New("store: key not found")

// Store is the interface for the key-value storage backends.
type Store interface {
	// Set stores a key-value pair with an optional TTL (0 means no expiry).
	Set(key string, value []byte, ttl time.Duration) error
	// Get retrieves a value by key, returning ErrNotFound when absent.
	Get(key string) ([]byte, error)
	// Delete removes a key. Deleting a missing key is not an error.
	Delete(key string) error
	// Exists reports whether a key is present and unexpired.
	Exists(key string) (bool, error)
	// SetNX sets a key only if it does not already exist. Returns true when set.
	SetNX(key string, value []byte, ttl time.Duration) (bool, error)
	// Incr atomically increments the integer value at key by one and returns
	// the new value. A missing key counts as zero.
	Incr(key string) (int64, error)
	// Clear removes all data.
	Clear() error
	// Close releases backend resources.
	Close() error
}
