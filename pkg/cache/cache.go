// Package cache stores derived results keyed by content hashes.
//
// The CLI uses a [FileCache] under the user cache directory so that repeated
// layout runs over unchanged documents are instant. The API server can share
// a [RedisCache] between instances instead. [NullCache] disables caching. Keys are built by a [Keyer] so that every input influencing a
// result is part of its key.
package cache

import (
	"context"
	"time"
)

// Cache entry lifetimes.
const (
	// TTLLayout is how long computed layouts are kept. Layout output depends
	// only on the keyed inputs, so entries never go stale on their own.
	TTLLayout = 30 * 24 * time.Hour

	// TTLIndex is how long duplicate-ID reports over a document set are kept.
	TTLIndex = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with optional expiration.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
