// Package cache provides the pluggable byte cache used to skip
// re-probing and re-rendering unchanged inputs. Backends: a file cache
// for CLI usage, a Redis cache for the server, and a null cache for
// tests and --no-cache runs.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented cache with TTL support.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys from arbitrary components. Components are
// hashed, so keys stay bounded no matter how large the inputs are.
type Keyer interface {
	Key(parts ...any) string
}

// DefaultKeyer hashes components under a fixed prefix.
type DefaultKeyer struct {
	prefix string
}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{prefix: "pagebind"}
}

// Key builds a key of the form prefix:sha256(parts).
func (k *DefaultKeyer) Key(parts ...any) string {
	return hashKey(k.prefix, parts...)
}
