package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

const defaultJanitorInterval = 2 * time.Minute

type entry struct {
	key       string
	value     []byte
	expiresAt time.Time
}

// LRUCache - in-process кэш с вытеснением по LRU и TTL на запись.
// Истекшая запись удаляется при чтении или фоновой чисткой.
type LRUCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	order    *list.List
	items    map[string]*list.Element

	now             func() time.Time
	janitorInterval time.Duration
}

type LRUOption func(*LRUCache)

// WithLRUClock подменяет часы, по которым считается TTL.
func WithLRUClock(now func() time.Time) LRUOption {
	return func(c *LRUCache) {
		c.now = now
	}
}

func WithJanitorInterval(d time.Duration) LRUOption {
	return func(c *LRUCache) {
		c.janitorInterval = d
	}
}

func NewLRUCache(capacity int, ttl time.Duration, opts ...LRUOption) *LRUCache {
	c := &LRUCache{
		capacity:        capacity,
		ttl:             ttl,
		order:           list.New(),
		items:           make(map[string]*list.Element, capacity),
		now:             time.Now,
		janitorInterval: defaultJanitorInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *LRUCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ele, ok := c.items[key]
	if !ok {
		cacheMisses.WithLabelValues(backendMemory).Inc()
		return nil, false
	}

	ent := ele.Value.(*entry)
	if c.expired(ent) {
		c.remove(ele)
		cacheEvictions.WithLabelValues(backendMemory, "ttl").Inc()
		cacheMisses.WithLabelValues(backendMemory).Inc()
		return nil, false
	}

	c.order.MoveToFront(ele)
	cacheHits.WithLabelValues(backendMemory).Inc()
	return ent.value, true
}

// Set перезаписывает значение и продлевает TTL.
func (c *LRUCache) Set(_ context.Context, key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)
	if ele, ok := c.items[key]; ok {
		ent := ele.Value.(*entry)
		ent.value = value
		ent.expiresAt = expiresAt
		c.order.MoveToFront(ele)
		return
	}

	c.items[key] = c.order.PushFront(&entry{key: key, value: value, expiresAt: expiresAt})
	for c.order.Len() > c.capacity {
		c.remove(c.order.Back())
		cacheEvictions.WithLabelValues(backendMemory, "capacity").Inc()
	}
}

func (c *LRUCache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ele, ok := c.items[key]; ok {
		c.remove(ele)
	}
}

func (c *LRUCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Start запускает фоновую чистку до отмены ctx.
func (c *LRUCache) Start(ctx context.Context) error {
	go func() {
		ticker := time.NewTicker(c.janitorInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.Purge()
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

// Purge удаляет все истекшие записи и возвращает их число.
func (c *LRUCache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for ele := c.order.Back(); ele != nil; {
		prev := ele.Prev()
		if c.expired(ele.Value.(*entry)) {
			c.remove(ele)
			removed++
		}
		ele = prev
	}
	if removed > 0 {
		cacheEvictions.WithLabelValues(backendMemory, "ttl").Add(float64(removed))
	}
	return removed
}

func (c *LRUCache) expired(ent *entry) bool {
	return c.now().After(ent.expiresAt)
}

func (c *LRUCache) remove(ele *list.Element) {
	c.order.Remove(ele)
	delete(c.items, ele.Value.(*entry).key)
}
