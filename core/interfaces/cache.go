// Package interfaces defines the core interfaces used throughout the application.
// These interfaces allow for dependency injection and make the code testable.
package interfaces

import (
	"context"
	"time"
)

// Cache defines the interface for key-value operations.
// Implementations can be Redis, SQLite, in-memory, or any other backend.
//
// Example usage:
//
//	cache := someCache // implements Cache interface
//
//	// Store a value
//	err := cache.Set(ctx, "https://example.com", recordJSON, 0)
//
//	// Retrieve a value
//	data, err := cache.Get(ctx, "https://example.com")
//	if errors.IsKeyNotFound(err) {
//		// never written or cleared
//	}
//
//	// Delete a value
//	err = cache.Delete(ctx, "https://example.com")
type Cache interface {
	// Get retrieves a value by key.
	// Returns core/errors.ErrKeyNotFound (possibly wrapped) on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given key and TTL.
	// If ttl is 0, the value is stored indefinitely.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	// Returns nil if the key doesn't exist.
	Delete(ctx context.Context, key string) error
}

// KeyValueStore is a Cache that can enumerate and clear its own namespace.
// Clear must only affect the namespace the store was created for, so a page
// store and a settings store can share one backend.
type KeyValueStore interface {
	Cache

	// Keys lists every key in the namespace starting with prefix.
	// An empty prefix lists all keys.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Clear removes every key in the namespace.
	Clear(ctx context.Context) error
}
