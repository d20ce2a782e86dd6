// Package cache provides a small TTL-bounded LRU used to memoize derived
// month overviews on the HTTP layer.
package cache

import (
	"container/list"
	"sync"
	"time"
)

type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
}

// LRU is a fixed-capacity cache with per-entry TTL. Safe for concurrent use.
type LRU[V any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	order   *list.List
}

func NewLRU[V any](maxSize int, ttl time.Duration) *LRU[V] {
	return &LRU[V]{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		order:   list.New(),
	}
}

func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	elem, ok := c.items[key]
	if !ok {
		return zero, false
	}
	e := elem.Value.(*entry[V])
	if time.Now().After(e.expiresAt) {
		c.evict(elem)
		return zero, false
	}
	c.order.MoveToFront(elem)
	return e.value, true
}

func (c *LRU[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := &entry[V]{key: key, value: value, expiresAt: time.Now().Add(c.ttl)}
	if elem, ok := c.items[key]; ok {
		elem.Value = e
		c.order.MoveToFront(elem)
		return
	}
	c.items[key] = c.order.PushFront(e)
	if c.order.Len() > c.maxSize {
		if oldest := c.order.Back(); oldest != nil {
			c.evict(oldest)
		}
	}
}

func (c *LRU[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.items[key]; ok {
		c.evict(elem)
	}
}

// Purge empties the cache. Mutating handlers call this so the next read
// re-derives from fresh data.
func (c *LRU[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*list.Element)
	c.order.Init()
}

func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// CleanExpired drops every expired entry and reports how many went.
func (c *LRU[V]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	var stale []*list.Element
	for elem := c.order.Front(); elem != nil; elem = elem.Next() {
		if now.After(elem.Value.(*entry[V]).expiresAt) {
			stale = append(stale, elem)
		}
	}
	for _, elem := range stale {
		c.evict(elem)
	}
	return len(stale)
}

func (c *LRU[V]) evict(elem *list.Element) {
	delete(c.items, elem.Value.(*entry[V]).key)
	c.order.Remove(elem)
}
