package ladder

import (
	"sync"
	"sync/atomic"
)

type pathKey struct{ from, to string }

// PathCache stores one shortest path per (from, to) pair. It belongs to a
// single graph; build a new cache when the graph changes.
//
// Concurrent Get calls share a read lock. Put is last-writer-wins, which is
// fine because every stored path for a key has the same length.
type PathCache struct {
	mu    sync.RWMutex
	paths map[pathKey][]string

	hits   atomic.Int64
	misses atomic.Int64
}

// NewPathCache returns an empty cache.
func NewPathCache() *PathCache {
	return &PathCache{paths: make(map[pathKey][]string)}
}

// Get returns the cached path from→to. The slice is shared; do not modify.
func (c *PathCache) Get(from, to string) ([]string, bool) {
	c.mu.RLock()
	p, ok := c.paths[pathKey{from, to}]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return p, ok
}

// Put stores path under (first, last) and its reverse under (last, first).
func (c *PathCache) Put(path []string) {
	if len(path) == 0 {
		return
	}
	fwd := append([]string(nil), path...)
	rev := make([]string, len(path))
	for i, w := range path {
		rev[len(path)-1-i] = w
	}
	from, to := fwd[0], fwd[len(fwd)-1]

	c.mu.Lock()
	c.paths[pathKey{from, to}] = fwd
	c.paths[pathKey{to, from}] = rev
	c.mu.Unlock()
}

// Len is the number of cached directed entries.
func (c *PathCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.paths)
}

// Stats reports lookup hits and misses since creation.
func (c *PathCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
