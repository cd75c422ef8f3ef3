package cache

import "sync"

// Cache is a thread-safe LRU cache holding at most capacity entries.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]*entry[K, V]
	pending  map[K]*call[V]
	order    lruList[K, V]
	capacity int

	hits, misses, evictions uint64
}

type entry[K comparable, V any] struct {
	node  *lruNode[K, V]
	value V
}

// call is a create in flight. done is closed once value and err are set.
type call[V any] struct {
	done  chan struct{}
	value V
	err   error
}

// New creates a cache holding at most capacity entries.
// A capacity of 0 or less means unlimited.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	return &Cache[K, V]{
		entries:  make(map[K]*entry[K, V]),
		pending:  make(map[K]*call[V]),
		capacity: capacity,
	}
}

// GetOrCreate returns the cached value for key, or calls create and caches
// its result. Errors are returned and not cached.
//
// create runs without the cache lock held, so creates for different keys
// proceed in parallel. Concurrent callers asking for the same missing key
// wait for a single create and share its result.
func (c *Cache[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.hits++
		c.order.MoveToFront(e.node)
		v := e.value
		c.mu.Unlock()
		return v, nil
	}
	if p, ok := c.pending[key]; ok {
		c.hits++
		c.mu.Unlock()
		<-p.done
		return p.value, p.err
	}
	c.misses++
	p := &call[V]{done: make(chan struct{})}
	c.pending[key] = p
	c.mu.Unlock()

	p.value, p.err = create()

	c.mu.Lock()
	delete(c.pending, key)
	if p.err == nil {
		c.set(key, p.value)
	}
	c.mu.Unlock()
	close(p.done)

	return p.value, p.err
}

// Stats returns a snapshot of the cache counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Len:       len(c.entries),
		Capacity:  c.capacity,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}

// set stores value. Caller must hold c.mu.
func (c *Cache[K, V]) set(key K, value V) {
	if e, ok := c.entries[key]; ok {
		e.value = value
		c.order.MoveToFront(e.node)
		return
	}

	c.entries[key] = &entry[K, V]{node: c.order.PushFront(key), value: value}
	for c.capacity > 0 && len(c.entries) > c.capacity {
		oldest, ok := c.order.RemoveOldest()
		if !ok {
			break
		}
		delete(c.entries, oldest)
		c.evictions++
	}
}

// Stats contains cache counters. A caller that waited on another caller's
// create counts as a hit.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}
