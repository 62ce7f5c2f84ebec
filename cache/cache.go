package cache

import (
	"context"
	"errors"
	"strings"
	"time"
)

// MaxKeyLength is the maximum allowed length for a cache key.
const MaxKeyLength = 512

// Sentinel errors for cache operations.
var (
	ErrNilCache   = errors.New("cache: cache is nil")
	ErrInvalidKey = errors.New("cache: key is invalid")
	ErrKeyTooLong = errors.New("cache: key exceeds max length")
	ErrBadConfig  = errors.New("cache: invalid configuration")
)

// Cache stores provider responses keyed by request identity.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Expiry: Get must treat an expired entry as absent and may purge it.
// - Errors: Get never errors; it returns (nil, false) on miss.
type Cache interface {
	// Get retrieves a cached response. Returns (nil, false) on miss or expiry.
	// A hit refreshes the entry's recency for eviction purposes.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores a response with the given TTL. TTL<=0 means no caching.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a cached response, reporting whether it was present.
	Delete(ctx context.Context, key string) bool
}

// ValidateKey checks if a key is valid for caching.
func ValidateKey(key string) error {
	if key == "" || strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	// Reject keys with newlines or carriage returns
	if strings.ContainsAny(key, "\n\r") {
		return ErrInvalidKey
	}
	return nil
}
