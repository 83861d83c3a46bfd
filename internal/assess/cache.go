package assess

import (
	"context"
	"fmt"
	"sync"

	"github.com/couchcryptid/event-advisor/internal/domain"
	"github.com/couchcryptid/event-advisor/internal/observability"
)

// CachedAssessor wraps an Assessor with an in-memory LRU cache. The dataset
// never changes after load, so identical requests always score identically.
type CachedAssessor struct {
	inner   Assessor
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedAssessor creates a cache decorator around an assessor.
func NewCachedAssessor(inner Assessor, maxEntries int, metrics *observability.Metrics) *CachedAssessor {
	return &CachedAssessor{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedAssessor) Assess(ctx context.Context, req Request) (domain.Assessment, error) {
	key := cacheKey(req)
	if a, ok := c.cache.get(key); ok {
		c.metrics.AssessmentCache.WithLabelValues("hit").Inc()
		return a, nil
	}
	c.metrics.AssessmentCache.WithLabelValues("miss").Inc()

	a, err := c.inner.Assess(ctx, req)
	if err != nil {
		return a, err
	}
	c.cache.put(key, a)
	return a, nil
}

// cacheKey identifies a request. Days only matter for the averaging models.
func cacheKey(req Request) string {
	days := req.Days
	if !req.Model.UsesWindow() {
		days = 1
	}
	e := req.Event
	return fmt.Sprintf("%s|%d|%q|%t|%t|%d", req.Model, days, e.Name, e.Outdoors, e.CoverAvailable, e.Hour)
}

// lruCache is a simple thread-safe LRU cache for assessments.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value domain.Assessment
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (domain.Assessment, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.Assessment{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value domain.Assessment) {
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

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
