// Package cache provides a small TTL-bounded LRU used by the HTTP layer to
// memoize computed chart payloads between renders of the same dataset
// snapshot.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// Cache is the read/write surface handlers depend on.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
	Flush()
	Size() int
}

// Cleaner is implemented by caches that can drop expired entries.
type Cleaner interface {
	CleanExpired() int
}

// TTLCache is an LRU cache where every entry also carries an absolute
// expiry. Reads past the expiry behave as misses and drop the entry.
type TTLCache[T any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	order    *list.List // front = most recently used
	index    map[string]*list.Element
}

type entry[T any] struct {
	key      string
	value    T
	deadline time.Time
}

// New builds a TTLCache holding at most capacity entries for at most ttl.
func New[T any](capacity int, ttl time.Duration) *TTLCache[T] {
	return &TTLCache[T]{
		capacity: capacity,
		ttl:      ttl,
		order:    list.New(),
		index:    make(map[string]*list.Element),
	}
}

func (c *TTLCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	el, ok := c.index[key]
	if !ok {
		return zero, false
	}
	e := el.Value.(*entry[T])
	if time.Now().After(e.deadline) {
		c.drop(el)
		return zero, false
	}
	c.order.MoveToFront(el)
	return e.value, true
}

func (c *TTLCache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.index[key]; ok {
		el.Value = &entry[T]{key: key, value: value, deadline: time.Now().Add(c.ttl)}
		c.order.MoveToFront(el)
		return
	}
	c.index[key] = c.order.PushFront(&entry[T]{key: key, value: value, deadline: time.Now().Add(c.ttl)})
	if c.order.Len() > c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			c.drop(oldest)
		}
	}
}

func (c *TTLCache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.index[key]; ok {
		c.drop(el)
	}
}

// Flush empties the cache. Called when a dataset refresh replaces the
// snapshot and every memoized payload goes stale at once.
func (c *TTLCache[T]) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.index = make(map[string]*list.Element)
}

// CleanExpired drops every expired entry and reports how many went.
func (c *TTLCache[T]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		if now.After(el.Value.(*entry[T]).deadline) {
			c.drop(el)
			removed++
		}
		el = next
	}
	return removed
}

func (c *TTLCache[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.index)
}

// drop removes an element; callers hold the lock.
func (c *TTLCache[T]) drop(el *list.Element) {
	delete(c.index, el.Value.(*entry[T]).key)
	c.order.Remove(el)
}

// Manager owns the periodic cleanup of registered caches.
type Manager struct {
	caches  []Cleaner
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
	started bool
}

func NewManager() *Manager {
	return &Manager{stop: make(chan struct{}), done: make(chan struct{})}
}

// Register adds a cache before StartCleanup; not safe to call afterwards.
func (m *Manager) Register(c Cleaner) {
	m.caches = append(m.caches, c)
}

// StartCleanup sweeps all registered caches every interval until Stop.
func (m *Manager) StartCleanup(interval time.Duration) {
	m.started = true
	go func() {
		defer close(m.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				for _, c := range m.caches {
					c.CleanExpired()
				}
			case <-m.stop:
				return
			}
		}
	}()
}

// Stop halts the sweeper and waits for it to exit. Safe to call twice.
func (m *Manager) Stop() {
	m.once.Do(func() {
		close(m.stop)
		if m.started {
			<-m.done
		}
	})
}
