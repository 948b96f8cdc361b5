// Package querycache provides a small LRU-evicted cache from query text
// to already-materialized results, backed by a patricia trie the way
// the teacher's HotCache backs its hot-word set. Queries here are
// substring, not prefix, so the trie is used purely as a keyed store
// rather than for prefix traversal; VisitSubtree still earns its keep
// in Keys, used by Model.CachedQueries to report what's currently cached.
package querycache

import (
	"sync"

	"github.com/tchap/go-patricia/v2/patricia"
)

// Cache maps a raw lowercase query string to its materialized result
// of type V, evicting the least-recently-used entry once maxSize entries
// are held. A Cache with maxSize <= 0 is permanently empty and cheap: a
// disabled cache is just one that never stores anything.
type Cache[V any] struct {
	mu      sync.Mutex
	trie    *patricia.Trie
	access  map[string]int64
	counter int64
	maxSize int
	size    int
}

// New returns a Cache holding at most maxSize entries.
func New[V any](maxSize int) *Cache[V] {
	return &Cache[V]{
		trie:    patricia.NewTrie(),
		access:  make(map[string]int64),
		maxSize: maxSize,
	}
}

// Get returns the cached value for query and whether it was present.
func (c *Cache[V]) Get(query string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item := c.trie.Get(patricia.Prefix(query))
	if item == nil {
		var zero V
		return zero, false
	}
	c.counter++
	c.access[query] = c.counter
	return item.(V), true
}

// Put stores value under query, evicting the least-recently-used entry
// first if the cache is full.
func (c *Cache[V]) Put(query string, value V) {
	if c.maxSize <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.trie.Get(patricia.Prefix(query)) == nil {
		if c.size >= c.maxSize {
			c.evictLRU()
		}
		c.size++
	}
	c.trie.Insert(patricia.Prefix(query), value)
	c.counter++
	c.access[query] = c.counter
}

func (c *Cache[V]) evictLRU() {
	oldestKey := ""
	oldestTime := int64(-1)
	for k, t := range c.access {
		if oldestTime == -1 || t < oldestTime {
			oldestTime, oldestKey = t, k
		}
	}
	if oldestTime != -1 {
		c.trie.Delete(patricia.Prefix(oldestKey))
		delete(c.access, oldestKey)
		c.size--
	}
}

// Len reports the number of cached entries.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Keys returns every cached query string, via the trie's own subtree
// walk rather than a parallel key slice.
func (c *Cache[V]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, c.size)
	c.trie.VisitSubtree(patricia.Prefix(""), func(p patricia.Prefix, _ patricia.Item) error {
		keys = append(keys, string(p))
		return nil
	})
	return keys
}

// Stats reports cache occupancy for Model.Stats.
func (c *Cache[V]) Stats() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return map[string]int{"cacheEntries": c.size, "cacheMaxSize": c.maxSize}
}
