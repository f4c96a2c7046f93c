// Package cache provides a small byte cache used to skip repeated Graphviz
// renders.
//
// Rendering is a pure function of the generated DOT text, so artifacts are
// cached keyed by a hash of (DOT, format). Two implementations exist: a
// file-based cache for normal CLI use, and a null cache for --no-cache and
// tests.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with optional expiry.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
