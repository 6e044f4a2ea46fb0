// File: cache.go
// Title: Lookup Cache
// Description: Bounded LRU cache of resolved dynamic entries. Entries are
//              tagged with the dynamic registry generation they were read
//              under; a generation change empties the cache.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-07
// Modified: 2025-11-07
//
// Change History:
// - 2025-11-07 v0.1.0: Initial implementation

package registry

import (
	"container/list"
	"sync"
)

type cacheItem struct {
	key   string
	entry *entry
}

type lookupCache struct {
	capacity   int
	generation uint64
	items      map[string]*list.Element
	order      *list.List // front is most recently used
	mutex      sync.Mutex
}

func newLookupCache(capacity int) *lookupCache {
	return &lookupCache{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		order:    list.New(),
	}
}

func (c *lookupCache) get(key string, generation uint64) (*entry, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.sync(generation)
	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheItem).entry, true
}

func (c *lookupCache) put(key string, e *entry, generation uint64) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.sync(generation)
	if el, ok := c.items[key]; ok {
		el.Value.(*cacheItem).entry = e
		c.order.MoveToFront(el)
		return
	}
	c.items[key] = c.order.PushFront(&cacheItem{key: key, entry: e})
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*cacheItem).key)
	}
}

func (c *lookupCache) clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.reset()
}

func (c *lookupCache) len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.order.Len()
}

// sync drops all entries when the registry changed; callers hold the mutex
func (c *lookupCache) sync(generation uint64) {
	if generation != c.generation {
		c.reset()
		c.generation = generation
	}
}

func (c *lookupCache) reset() {
	c.items = make(map[string]*list.Element)
	c.order.Init()
}
