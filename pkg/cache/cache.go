// Package cache stores rendered artifacts between runs.
//
// Laying out a diagram with Graphviz and converting it with rsvg-convert
// dominates conversion time, while parsing and emitting are cheap. The
// pipeline therefore always parses and emits, then looks up the rendered
// bytes by a hash of the generated DOT document and the render options.
//
// Three implementations are provided:
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [MemoryCache]: a bounded in-process LRU, used by batch runs
//   - [NullCache]: never stores anything (--no-cache)
//
// [NewTiered] puts a fast cache in front of a slower one.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiration.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the data for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// TieredCache reads from front first and falls back to back, copying hits
// from back into front. Writes go to both.
type TieredCache struct {
	front Cache
	back  Cache
	ttl   time.Duration
}

// NewTiered combines two caches. ttl is used when promoting back hits.
func NewTiered(front, back Cache, ttl time.Duration) Cache {
	return &TieredCache{front: front, back: back, ttl: ttl}
}

// Get retrieves a value from front, then back.
func (c *TieredCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if data, ok, err := c.front.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}
	data, ok, err := c.back.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	_ = c.front.Set(ctx, key, data, c.ttl)
	return data, true, nil
}

// Set stores a value in both caches.
func (c *TieredCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.front.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	return c.back.Set(ctx, key, data, ttl)
}

// Delete removes a value from both caches.
func (c *TieredCache) Delete(ctx context.Context, key string) error {
	if err := c.front.Delete(ctx, key); err != nil {
		return err
	}
	return c.back.Delete(ctx, key)
}

// Close closes both caches.
func (c *TieredCache) Close() error {
	ferr := c.front.Close()
	if err := c.back.Close(); err != nil {
		return err
	}
	return ferr
}

var _ Cache = (*TieredCache)(nil)
