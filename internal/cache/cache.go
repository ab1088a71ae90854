// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache provides the in-memory TTL cache for web search results.
//
// Implements: prd002-websearch (R2.1-R2.5);
//
//	docs/ARCHITECTURE.md § Search gateway.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/prospect-engine/pkg/types"
)

// now is stubbed in tests to control entry expiry.
var now = time.Now

const (
	// DefaultCapacity bounds the number of cached queries.
	DefaultCapacity = 100

	// DefaultTTL is how long an entry stays fresh after insertion.
	DefaultTTL = time.Hour
)

// Key derives the cache key for a query. The query is trimmed and
// lowercased before hashing, so trivially different spellings of the
// same query share one entry (R2.1). The result count is part of the
// key: the same query at a different count is a different entry.
func Key(query string, maxResults int) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	sum := md5.Sum([]byte(fmt.Sprintf("%s:%d", normalized, maxResults)))
	return hex.EncodeToString(sum[:])
}

// entry pairs cached results with their insertion time.
type entry struct {
	results []types.SearchResult
	at      time.Time
}

// Cache is a fixed-capacity store of search results with per-entry TTL
// expiry. It is not safe for concurrent use on its own; the search
// gateway serializes access during fan-out (R2.5).
type Cache struct {
	capacity int
	ttl      time.Duration
	entries  map[string]entry
}

// New returns a cache holding at most capacity entries, each fresh for
// ttl after insertion. Non-positive arguments fall back to the defaults.
func New(capacity int, ttl time.Duration) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[string]entry),
	}
}

// Get returns the results cached under key. An entry older than the TTL
// is deleted and reported as a miss (R2.2, R2.3). An entry aged exactly
// the TTL is still a hit.
func (c *Cache) Get(key string) ([]types.SearchResult, bool) {
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if now().Sub(e.at) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.results, true
}

// Put stores results under key. When a new key would push the cache
// over capacity the entry with the oldest insertion time is evicted
// first (R2.4); overwriting an existing key never evicts.
func (c *Cache) Put(key string, results []types.SearchResult) {
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		c.evictOldest()
	}
	c.entries[key] = entry{results: results, at: now()}
}

func (c *Cache) evictOldest() {
	first := true
	var oldestKey string
	var oldestAt time.Time
	for k, e := range c.entries {
		if first || e.at.Before(oldestAt) {
			oldestKey, oldestAt = k, e.at
			first = false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
	}
}

// Len reports the number of stored entries, including any that have
// expired but not yet been read.
func (c *Cache) Len() int {
	return len(c.entries)
}
