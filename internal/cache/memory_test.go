package cache

import (
	"context"
	"testing"
	"time"

	"quantdesk/internal/config"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, found, err := s.Get(ctx, "missing"); err != nil || found {
		t.Fatalf("get missing: found=%v err=%v", found, err)
	}

	if err := s.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	b, found, err := s.Get(ctx, "k")
	if err != nil || !found || string(b) != "v" {
		t.Fatalf("get: %q found=%v err=%v", b, found, err)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found, _ := s.Get(ctx, "k"); found {
		t.Fatalf("deleted key still present")
	}
}

func TestMemoryStore_TTL(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Set(ctx, "k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, found, _ := s.Get(ctx, "k"); !found {
		t.Fatalf("fresh entry missing")
	}
	time.Sleep(20 * time.Millisecond)
	if _, found, _ := s.Get(ctx, "k"); found {
		t.Fatalf("expired entry still present")
	}
}

func TestMemoryStore_CopiesValue(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	v := []byte("abc")
	if err := s.Set(ctx, "k", v, 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	v[0] = 'x'
	b, _, _ := s.Get(ctx, "k")
	if string(b) != "abc" {
		t.Fatalf("stored value aliased caller buffer: %q", b)
	}
}

func TestNew_BackendSelection(t *testing.T) {
	if _, ok := New(config.CacheConfig{Backend: "memory"}, nil).(*MemoryStore); !ok {
		t.Fatalf("memory backend not selected")
	}
	// Redis without an address falls back to memory.
	if _, ok := New(config.CacheConfig{Backend: "redis"}, nil).(*MemoryStore); !ok {
		t.Fatalf("redis without addr should fall back to memory")
	}
	if _, ok := New(config.CacheConfig{Backend: "redis", RedisAddr: "127.0.0.1:6379"}, nil).(*RedisStore); !ok {
		t.Fatalf("redis backend not selected")
	}
	if _, ok := New(config.CacheConfig{Backend: "bogus"}, nil).(*MemoryStore); !ok {
		t.Fatalf("unknown backend should fall back to memory")
	}
}
