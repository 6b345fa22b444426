package ebird

import (
	"context"
	"fmt"
	"sync"

	"github.com/rookmere/bird-trend-etl/internal/domain"
)

// CachedFetcher wraps a PageFetcher with an in-memory LRU cache so repeated
// analyses of the same region within a run hit the site once.
type CachedFetcher struct {
	inner domain.PageFetcher
	cache *lruCache
}

// NewCachedFetcher creates a cache decorator around a page fetcher.
func NewCachedFetcher(inner domain.PageFetcher, maxEntries int) *CachedFetcher {
	return &CachedFetcher{
		inner: inner,
		cache: newLRUCache(maxEntries),
	}
}

func (c *CachedFetcher) FetchPage(ctx context.Context, q domain.RegionQuery) (string, error) {
	key := fmt.Sprintf("%s|%t|%s", q.Region, q.AllYears, q.Ranking)
	if markup, ok := c.cache.get(key); ok {
		return markup, nil
	}
	markup, err := c.inner.FetchPage(ctx, q)
	if err != nil {
		return "", err
	}
	// Only cache non-empty pages so a transient empty response can be retried.
	if markup != "" {
		c.cache.put(key, markup)
	}
	return markup, nil
}

// lruCache is a simple thread-safe LRU cache for page markup.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value string
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if c.maxEntries > 0 && len(c.entries) > c.maxEntries {
		c.evictOldest()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if c.head == e {
		return
	}
	c.unlink(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) unlink(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	}
	if c.head == e {
		c.head = e.next
	}
	if c.tail == e {
		c.tail = e.prev
	}
	e.prev = nil
	e.next = nil
}

func (c *lruCache) evictOldest() {
	oldest := c.tail
	if oldest == nil {
		return
	}
	c.unlink(oldest)
	delete(c.entries, oldest.key)
}
