package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type record struct {
	Name string `json:"name"`
}

func TestMemoryCacheSetGet(t *testing.T) {
	mc := NewMemoryCache()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", record{Name: "v"}, 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := GetTyped[record](ctx, mc, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "v" {
		t.Fatalf("value = %+v", got)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	mc := NewMemoryCache()

	var s string
	err := mc.Get(context.Background(), "absent", &s)
	if !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("error = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	mc := NewMemoryCache()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", "v", time.Nanosecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	var s string
	if err := mc.Get(ctx, "k", &s); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("error = %v, want ErrCacheMiss after expiry", err)
	}
}

func TestMemoryCacheKeysAndMGet(t *testing.T) {
	mc := NewMemoryCache()
	ctx := context.Background()

	for _, k := range []string{"company:AA", "company:AAPL", "company:MSFT", "other:AA"} {
		if err := mc.Set(ctx, k, "v", 0); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}

	keys, err := mc.Keys(ctx, "company:AA*")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("keys = %v, want 2", keys)
	}

	values, err := mc.MGet(ctx, keys...)
	if err != nil {
		t.Fatalf("mget: %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("values = %v", values)
	}
}
