// Package cache holds short-lived, derived data (such as per-exam prediction
// candidate lists) in front of the SQL stores.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get on a miss or an expired entry.
var ErrNotFound = errors.New("cache: not found")

// Cache is a byte-oriented key/value cache.
type Cache interface {
	Name() string
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key. A ttl <= 0 keeps the entry until deleted.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// DeletePrefix drops every entry whose key starts with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
	Close() error
}
