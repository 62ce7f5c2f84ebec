package cache

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func BenchmarkMemoryCache_Get(b *testing.B) {
	c, err := NewMemoryCache(MemoryCacheConfig{MaxEntries: 1024})
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	for i := 0; i < 1024; i++ {
		c.Set(ctx, fmt.Sprintf("key-%d", i), []byte("value"), time.Hour)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(ctx, fmt.Sprintf("key-%d", i%1024))
	}
}

func BenchmarkMemoryCache_Set(b *testing.B) {
	c, err := NewMemoryCache(MemoryCacheConfig{MaxEntries: 1024})
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()
	value := []byte("value")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Set(ctx, fmt.Sprintf("key-%d", i%2048), value, time.Hour)
	}
}

func BenchmarkRequestKeyer_Key(b *testing.B) {
	k := NewRequestKeyer()
	payload := map[string]any{
		"document_type": "passport",
		"country":       "US",
		"reference":     "ref-12345",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := k.Key("POST", "identity/verify", payload); err != nil {
			b.Fatal(err)
		}
	}
}
