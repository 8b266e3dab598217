package cache

import (
	"context"
	"time"
)

// Cache is the key/value contract the session stores are built on.
// Values are JSON encoded.
type Cache interface {
	// Get unmarshals the value at key into dest.
	// found = false on a miss, in which case dest is untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value with a TTL (0 = no expiry).
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys; missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error

	// Expire refreshes the TTL of an existing key.
	Expire(ctx context.Context, key string, ttl time.Duration) error

	Ping(ctx context.Context) error
}
