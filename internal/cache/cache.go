// Package cache provides an in-memory store of fetched service details.
//
// The cache is an unbounded map with no eviction; entries live until Purge is
// called or the process exits.
package cache

import (
	"sync"

	"github.com/dannyfullextent/explorer/internal/portal"
)

// DetailCache maps service URLs to their fetched detail documents.
type DetailCache struct {
	mu      sync.RWMutex
	details map[string]portal.ServiceDetail
}

// New constructs an empty DetailCache.
func New() *DetailCache {
	return &DetailCache{
		details: make(map[string]portal.ServiceDetail),
	}
}

// Get returns the cached detail for url, if present.
func (c *DetailCache) Get(url string) (portal.ServiceDetail, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	detail, ok := c.details[url]
	return detail, ok
}

// Put stores the detail for url, replacing any previous entry.
func (c *DetailCache) Put(url string, detail portal.ServiceDetail) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.details[url] = detail
}

// Len returns the number of cached entries.
func (c *DetailCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.details)
}

// Purge empties the cache and returns how many entries were dropped.
func (c *DetailCache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.details)
	c.details = make(map[string]portal.ServiceDetail)
	return n
}
