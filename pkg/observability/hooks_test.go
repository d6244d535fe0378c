package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	c := NoopCardHooks{}
	c.OnCardStart(ctx, "R001")
	c.OnLayoutComplete(ctx, "R001", 2, true, time.Millisecond, nil)
	c.OnCardComplete(ctx, "R001", "rendered", time.Second, nil)

	k := NoopCacheHooks{}
	k.OnCacheHit(ctx, "card")
	k.OnCacheMiss(ctx, "card")
	k.OnCacheSet(ctx, "card", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Card().(NoopCardHooks); !ok {
		t.Error("Card() should return NoopCardHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customCard := &testCardHooks{}
	SetCardHooks(customCard)
	if Card() != customCard {
		t.Error("SetCardHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Card().(NoopCardHooks); !ok {
		t.Error("Reset() should restore NoopCardHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() should restore NoopCacheHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testCardHooks{}
	SetCardHooks(custom)
	SetCardHooks(nil)

	if Card() != custom {
		t.Error("SetCardHooks(nil) should be ignored")
	}

	Reset()
}

type testCardHooks struct{ NoopCardHooks }
type testCacheHooks struct{ NoopCacheHooks }
