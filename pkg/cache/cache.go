// Package cache stores rendered cards so unchanged cards are not redrawn.
//
// A card key hashes everything that affects the output pixels: the
// illustration and template bytes, the layout profile, colors, resolved font
// files and the row text. Changing any of them produces a new key, so stale
// entries are never served; they simply age out.
//
//	c, _ := cache.NewFileCache(dir)
//	key := cache.NewDefaultKeyer().CardKey(parts)
//	if data, hit, _ := c.Get(ctx, key); hit {
//	    // reuse data
//	}
package cache

import (
	"context"
	"time"
)

// TTLCard is how long a rendered card stays cached.
const TTLCard = 30 * 24 * time.Hour

// Cache is a byte store keyed by string.
type Cache interface {
	// Get returns the data for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
