package tfidf

import (
	"container/list"
	"sync"
)

// VectorCache is an LRU cache of transformed query vectors keyed by normalized text.
// Cached vectors are shared between callers and must not be modified.
type VectorCache struct {
	capacity int
	cache    map[string]*list.Element
	lru      *list.List
	mu       sync.Mutex
}

type cacheEntry struct {
	key   string
	value SparseVector
}

// NewVectorCache creates a cache holding at most capacity vectors.
func NewVectorCache(capacity int) *VectorCache {
	if capacity < 1 {
		capacity = 1
	}
	return &VectorCache{
		capacity: capacity,
		cache:    make(map[string]*list.Element),
		lru:      list.New(),
	}
}

// Get returns the cached vector for key if present.
func (c *VectorCache) Get(key string) (SparseVector, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[key]; ok {
		c.lru.MoveToFront(elem)
		return elem.Value.(*cacheEntry).value, true
	}
	return SparseVector{}, false
}

// Set stores the vector for key, evicting the least recently used entry if at capacity.
func (c *VectorCache) Set(key string, value SparseVector) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[key]; ok {
		c.lru.MoveToFront(elem)
		elem.Value.(*cacheEntry).value = value
		return
	}

	elem := c.lru.PushFront(&cacheEntry{key: key, value: value})
	c.cache[key] = elem

	if c.lru.Len() > c.capacity {
		oldest := c.lru.Back()
		if oldest != nil {
			c.lru.Remove(oldest)
			delete(c.cache, oldest.Value.(*cacheEntry).key)
		}
	}
}

// Len returns the number of cached vectors.
func (c *VectorCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// TransformCached returns the vector for text from cache, transforming and storing it on a
// miss. A nil cache always transforms.
func (m *Model) TransformCached(cache *VectorCache, text string) SparseVector {
	if cache == nil {
		return m.Transform(text)
	}
	if v, ok := cache.Get(text); ok {
		return v
	}
	v := m.Transform(text)
	cache.Set(text, v)
	return v
}
