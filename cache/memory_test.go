package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/verifykit/outbound/clock"
)

func newTestCache(t *testing.T, maxEntries int) (*MemoryCache, *clock.Fake) {
	t.Helper()

	fc := clock.NewFake(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	c, err := NewMemoryCache(MemoryCacheConfig{
		MaxEntries: maxEntries,
		Clock:      fc,
	})
	if err != nil {
		t.Fatalf("NewMemoryCache() error = %v", err)
	}
	return c, fc
}

func TestNewMemoryCache_InvalidConfig(t *testing.T) {
	_, err := NewMemoryCache(MemoryCacheConfig{MaxEntries: -1})
	if !errors.Is(err, ErrBadConfig) {
		t.Errorf("NewMemoryCache() error = %v, want ErrBadConfig", err)
	}
}

func TestMemoryCache_SetGet(t *testing.T) {
	c, _ := newTestCache(t, 10)
	ctx := context.Background()

	if err := c.Set(ctx, "key1", []byte("value1"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok := c.Get(ctx, "key1")
	if !ok {
		t.Fatal("Get() ok = false, want true")
	}
	if string(got) != "value1" {
		t.Errorf("Get() = %q, want %q", got, "value1")
	}
}

func TestMemoryCache_GetMiss(t *testing.T) {
	c, _ := newTestCache(t, 10)

	if _, ok := c.Get(context.Background(), "absent"); ok {
		t.Error("Get() on absent key returned ok = true")
	}
}

func TestMemoryCache_TTLExpiry(t *testing.T) {
	c, fc := newTestCache(t, 10)
	ctx := context.Background()

	c.Set(ctx, "key1", []byte("value1"), time.Second)

	if _, ok := c.Get(ctx, "key1"); !ok {
		t.Fatal("Get() before expiry ok = false, want true")
	}

	fc.Advance(time.Second)

	if _, ok := c.Get(ctx, "key1"); ok {
		t.Error("Get() at expiry ok = true, want false")
	}
	// Expired entry was purged on read.
	if c.Len() != 0 {
		t.Errorf("Len() = %d after expired read, want 0", c.Len())
	}
}

func TestMemoryCache_ZeroTTLNotStored(t *testing.T) {
	c, _ := newTestCache(t, 10)
	ctx := context.Background()

	if err := c.Set(ctx, "key1", []byte("value1"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok := c.Get(ctx, "key1"); ok {
		t.Error("Entry with TTL=0 was stored")
	}
}

func TestMemoryCache_LRUEviction(t *testing.T) {
	c, _ := newTestCache(t, 2)
	ctx := context.Background()

	c.Set(ctx, "a", []byte("1"), time.Hour)
	c.Set(ctx, "b", []byte("2"), time.Hour)

	// Touch "a" so "b" is the least recently accessed.
	c.Get(ctx, "a")

	c.Set(ctx, "c", []byte("3"), time.Hour)

	if _, ok := c.Get(ctx, "b"); ok {
		t.Error("LRU entry \"b\" survived eviction")
	}
	if _, ok := c.Get(ctx, "a"); !ok {
		t.Error("Recently accessed entry \"a\" was evicted")
	}
	if _, ok := c.Get(ctx, "c"); !ok {
		t.Error("Newly inserted entry \"c\" missing")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestMemoryCache_EvictionOrderIsInsertionOnTies(t *testing.T) {
	c, _ := newTestCache(t, 2)
	ctx := context.Background()

	// Neither entry is ever read, so recency falls back to insertion order.
	c.Set(ctx, "first", []byte("1"), time.Hour)
	c.Set(ctx, "second", []byte("2"), time.Hour)
	c.Set(ctx, "third", []byte("3"), time.Hour)

	if _, ok := c.Get(ctx, "first"); ok {
		t.Error("Oldest inserted entry survived eviction")
	}
	if _, ok := c.Get(ctx, "second"); !ok {
		t.Error("Newer entry was evicted instead of the oldest")
	}
}

func TestMemoryCache_OverwriteKeepsSize(t *testing.T) {
	c, _ := newTestCache(t, 2)
	ctx := context.Background()

	c.Set(ctx, "a", []byte("1"), time.Hour)
	c.Set(ctx, "a", []byte("2"), time.Hour)

	if c.Len() != 1 {
		t.Errorf("Len() = %d after overwrite, want 1", c.Len())
	}
	got, _ := c.Get(ctx, "a")
	if string(got) != "2" {
		t.Errorf("Get() = %q, want overwritten value %q", got, "2")
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	c, _ := newTestCache(t, 10)
	ctx := context.Background()

	c.Set(ctx, "key1", []byte("value1"), time.Hour)

	if !c.Delete(ctx, "key1") {
		t.Error("Delete() existing key = false, want true")
	}
	if c.Delete(ctx, "key1") {
		t.Error("Delete() absent key = true, want false")
	}
	if _, ok := c.Get(ctx, "key1"); ok {
		t.Error("Get() after delete ok = true")
	}
}

func TestMemoryCache_SetInvalidKey(t *testing.T) {
	c, _ := newTestCache(t, 10)

	if err := c.Set(context.Background(), "", []byte("v"), time.Hour); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Set() with empty key error = %v, want ErrInvalidKey", err)
	}
}

func TestMemoryCache_Stats(t *testing.T) {
	c, fc := newTestCache(t, 2)
	ctx := context.Background()

	c.Set(ctx, "a", []byte("1"), time.Second)
	c.Get(ctx, "a")     // hit
	c.Get(ctx, "nope")  // miss
	fc.Advance(time.Second)
	c.Get(ctx, "a") // expired: miss

	c.Set(ctx, "b", []byte("2"), time.Hour)
	c.Set(ctx, "c", []byte("3"), time.Hour)
	c.Set(ctx, "d", []byte("4"), time.Hour) // evicts

	stats := c.Stats()
	if stats.Hits != 1 {
		t.Errorf("Hits = %d, want 1", stats.Hits)
	}
	if stats.Misses != 2 {
		t.Errorf("Misses = %d, want 2", stats.Misses)
	}
	if stats.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", stats.Evictions)
	}
	if stats.Size != 2 {
		t.Errorf("Size = %d, want 2", stats.Size)
	}
	if got := stats.HitRate(); got < 0.33 || got > 0.34 {
		t.Errorf("HitRate() = %v, want ~1/3", got)
	}
}

func TestMemoryCache_Concurrent(t *testing.T) {
	c, _ := newTestCache(t, 64)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key-%d", j%32)
				switch j % 3 {
				case 0:
					c.Set(ctx, key, []byte("v"), time.Minute)
				case 1:
					c.Get(ctx, key)
				default:
					c.Delete(ctx, key)
				}
			}
		}(i)
	}
	wg.Wait()

	if c.Len() > 64 {
		t.Errorf("Len() = %d, want <= capacity 64", c.Len())
	}
}
