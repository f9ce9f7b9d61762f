package extractor

import "sync"

// cacheKey identifies a file's parse result. Any change to the file's
// modification time or size produces a new key, invalidating the old
// entry implicitly; entries are never explicitly evicted within a
// process lifetime.
type cacheKey struct {
	path  string
	mtime int64 // UnixNano
	size  int64
}

// resultCache memoizes extraction results for the lifetime of an
// Extractor. Reads take the shared lock so concurrent parser workers
// never block each other.
type resultCache struct {
	mu      sync.RWMutex
	entries map[cacheKey]Result
}

func newResultCache() *resultCache {
	return &resultCache{entries: make(map[cacheKey]Result)}
}

func (c *resultCache) get(key cacheKey) (Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res, ok := c.entries[key]
	return res, ok
}

func (c *resultCache) put(key cacheKey, res Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = res
}

// Len returns the number of cached entries.
func (c *resultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
