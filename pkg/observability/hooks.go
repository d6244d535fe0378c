// Package observability provides hooks for metrics, tracing, and logging.
//
// Instrumentation stays optional: consumers register hooks at startup and
// the batch runner emits events about each card and about render cache
// traffic. Nothing in the card packages depends on a metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCardHooks(&myCardHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Card().OnCardStart(ctx, "R001")
//	// ... layout and render ...
//	observability.Card().OnCardComplete(ctx, "R001", "rendered", duration, nil)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Card Hooks
// =============================================================================

// CardHooks receives events for each card of a batch.
type CardHooks interface {
	OnCardStart(ctx context.Context, id string)

	// OnLayoutComplete fires after the layout step. shrinks is the number of
	// image shrink steps taken; tight is true when any correction was needed.
	OnLayoutComplete(ctx context.Context, id string, shrinks int, tight bool, duration time.Duration, err error)

	// OnCardComplete fires once per card with its final outcome
	// ("rendered", "cached", "skipped", "overflow" or "failed").
	OnCardComplete(ctx context.Context, id, outcome string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCardHooks is a no-op implementation of CardHooks.
type NoopCardHooks struct{}

func (NoopCardHooks) OnCardStart(context.Context, string) {}
func (NoopCardHooks) OnLayoutComplete(context.Context, string, int, bool, time.Duration, error) {
}
func (NoopCardHooks) OnCardComplete(context.Context, string, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	cardHooks  CardHooks  = NoopCardHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	hooksMu    sync.RWMutex
)

// SetCardHooks registers custom card hooks.
// This should be called once at application startup before any batch runs.
func SetCardHooks(h CardHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cardHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Card returns the registered card hooks.
func Card() CardHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cardHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	cardHooks = NoopCardHooks{}
	cacheHooks = NoopCacheHooks{}
}
