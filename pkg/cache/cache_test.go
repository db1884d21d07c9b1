package cache

import (
	"context"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func TestLRUCache(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		ttl      time.Duration
		actions  func(c *LRUCache, clock *fakeClock, t *testing.T)
	}{
		{
			name:     "set and get within TTL",
			capacity: 2,
			ttl:      time.Second,
			actions: func(c *LRUCache, _ *fakeClock, t *testing.T) {
				c.Set("a", []byte("1"))
				if v, ok := c.Get("a"); !ok || string(v) != "1" {
					t.Errorf("expected value=1, got=%v, ok=%v", v, ok)
				}
			},
		},
		{
			name:     "get after expiration",
			capacity: 2,
			ttl:      time.Millisecond * 50,
			actions: func(c *LRUCache, clock *fakeClock, t *testing.T) {
				c.Set("a", []byte("1"))
				clock.Advance(time.Millisecond * 60)
				if _, ok := c.Get("a"); ok {
					t.Errorf("expected key to be expired")
				}
			},
		},
		{
			name:     "evict oldest when over capacity",
			capacity: 2,
			ttl:      time.Second,
			actions: func(c *LRUCache, _ *fakeClock, t *testing.T) {
				c.Set("a", []byte("1"))
				c.Set("b", []byte("2"))
				c.Set("c", []byte("3"))
				if _, ok := c.Get("a"); ok {
					t.Errorf("expected key 'a' to be evicted")
				}
				if v, ok := c.Get("b"); !ok || string(v) != "2" {
					t.Errorf("expected b=2, got %v", v)
				}
				if v, ok := c.Get("c"); !ok || string(v) != "3" {
					t.Errorf("expected c=3, got %v", v)
				}
			},
		},
		{
			name:     "update value resets TTL",
			capacity: 2,
			ttl:      time.Millisecond * 50,
			actions: func(c *LRUCache, clock *fakeClock, t *testing.T) {
				c.Set("a", []byte("1"))
				clock.Advance(time.Millisecond * 30)
				c.Set("a", []byte("2"))
				clock.Advance(time.Millisecond * 30)
				if v, ok := c.Get("a"); !ok || string(v) != "2" {
					t.Errorf("expected updated value=2, got=%v", v)
				}
			},
		},
		{
			name:     "delete invalidates key",
			capacity: 2,
			ttl:      time.Second,
			actions: func(c *LRUCache, _ *fakeClock, t *testing.T) {
				c.Set("a", []byte("1"))
				c.Delete("a")
				c.Delete("missing")
				if _, ok := c.Get("a"); ok {
					t.Errorf("expected key 'a' to be deleted")
				}
				if c.Size() != 0 {
					t.Errorf("expected empty cache, got size %d", c.Size())
				}
			},
		},
		{
			name:     "fill skipped after invalidation",
			capacity: 2,
			ttl:      time.Second,
			actions: func(c *LRUCache, _ *fakeClock, t *testing.T) {
				gen := c.Generation()
				c.Delete("a")
				if c.SetIfGeneration("a", []byte("stale"), gen) {
					t.Errorf("expected fill to be rejected after delete")
				}
				if _, ok := c.Get("a"); ok {
					t.Errorf("expected no value for 'a'")
				}

				gen = c.Generation()
				if !c.SetIfGeneration("a", []byte("fresh"), gen) {
					t.Errorf("expected fill with current generation to succeed")
				}
				if v, ok := c.Get("a"); !ok || string(v) != "fresh" {
					t.Errorf("expected a=fresh, got %v", v)
				}
			},
		},
		{
			name:     "cleanup removes expired",
			capacity: 3,
			ttl:      time.Millisecond * 50,
			actions: func(c *LRUCache, clock *fakeClock, t *testing.T) {
				c.Set("a", []byte("1"))
				clock.Advance(time.Millisecond * 40)
				c.Set("b", []byte("2"))
				clock.Advance(time.Millisecond * 20)

				c.cleanup()

				if c.Size() != 1 {
					t.Errorf("expected only 'b' to survive cleanup, got size %d", c.Size())
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &fakeClock{now: time.Date(2025, 6, 8, 4, 4, 20, 0, time.UTC)}
			c := NewLRUCache(tt.capacity, tt.ttl)
			c.now = clock.Now
			tt.actions(c, clock, t)
		})
	}
}

func TestLRUCache_JanitorRemovesExpired(t *testing.T) {
	c := NewLRUCache(2, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := c.Start(ctx); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}

	c.Set("a", []byte("1"))

	deadline := time.Now().Add(time.Second)
	for c.Size() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("expected janitor to remove expired key")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
