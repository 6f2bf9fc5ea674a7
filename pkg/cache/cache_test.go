package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestLRUCache(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		capacity int
		ttl      time.Duration
		actions  func(t *testing.T, c *LRUCache, clk *clock)
	}{
		{
			name:     "set and get within TTL",
			capacity: 2,
			ttl:      time.Second,
			actions: func(t *testing.T, c *LRUCache, clk *clock) {
				c.Set(ctx, "a", []byte("1"))
				clk.Advance(time.Second)
				v, ok := c.Get(ctx, "a")
				require.True(t, ok)
				assert.Equal(t, "1", string(v))
			},
		},
		{
			name:     "get after expiration",
			capacity: 2,
			ttl:      50 * time.Millisecond,
			actions: func(t *testing.T, c *LRUCache, clk *clock) {
				c.Set(ctx, "a", []byte("1"))
				clk.Advance(60 * time.Millisecond)
				_, ok := c.Get(ctx, "a")
				assert.False(t, ok)
				assert.Zero(t, c.Len())
			},
		},
		{
			name:     "evict least recently used",
			capacity: 2,
			ttl:      time.Second,
			actions: func(t *testing.T, c *LRUCache, clk *clock) {
				c.Set(ctx, "a", []byte("1"))
				c.Set(ctx, "b", []byte("2"))
				_, _ = c.Get(ctx, "a")
				c.Set(ctx, "c", []byte("3"))

				_, ok := c.Get(ctx, "b")
				assert.False(t, ok, "b was least recently used")
				_, ok = c.Get(ctx, "a")
				assert.True(t, ok)
				_, ok = c.Get(ctx, "c")
				assert.True(t, ok)
				assert.Equal(t, 2, c.Len())
			},
		},
		{
			name:     "update value resets TTL",
			capacity: 2,
			ttl:      50 * time.Millisecond,
			actions: func(t *testing.T, c *LRUCache, clk *clock) {
				c.Set(ctx, "a", []byte("1"))
				clk.Advance(30 * time.Millisecond)
				c.Set(ctx, "a", []byte("2"))
				clk.Advance(30 * time.Millisecond)
				v, ok := c.Get(ctx, "a")
				require.True(t, ok)
				assert.Equal(t, "2", string(v))
			},
		},
		{
			name:     "delete removes key",
			capacity: 2,
			ttl:      time.Second,
			actions: func(t *testing.T, c *LRUCache, clk *clock) {
				c.Set(ctx, "a", []byte("1"))
				c.Delete(ctx, "a")
				c.Delete(ctx, "missing")
				_, ok := c.Get(ctx, "a")
				assert.False(t, ok)
				assert.Zero(t, c.Len())
			},
		},
		{
			name:     "purge removes only expired",
			capacity: 10,
			ttl:      50 * time.Millisecond,
			actions: func(t *testing.T, c *LRUCache, clk *clock) {
				for i := 0; i < 3; i++ {
					c.Set(ctx, fmt.Sprintf("old-%d", i), []byte("x"))
				}
				clk.Advance(60 * time.Millisecond)
				c.Set(ctx, "fresh", []byte("y"))

				assert.Equal(t, 3, c.Purge())
				assert.Equal(t, 1, c.Len())
				assert.Zero(t, c.Purge())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clk := &clock{now: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)}
			c := NewLRUCache(tt.capacity, tt.ttl, WithLRUClock(clk.Now))
			tt.actions(t, c, clk)
		})
	}
}

func TestLRUCache_JanitorStopsWithContext(t *testing.T) {
	c := NewLRUCache(4, time.Millisecond, WithJanitorInterval(5*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, c.Start(ctx))
	c.Set(ctx, "a", []byte("1"))

	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)
}
