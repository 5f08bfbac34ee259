package testlogging

import (
	"slices"
	"sync"
)

// entryCache is the append-only history of a CacheLogger.
type entryCache struct {
	mu      sync.RWMutex
	entries []*LogEntry
}

func (c *entryCache) add(e *LogEntry) {
	c.mu.Lock()
	c.entries = append(c.entries, e)
	c.mu.Unlock()
}

func (c *entryCache) count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *entryCache) all() []*LogEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.entries)
}

func (c *entryCache) last() *LogEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.entries) == 0 {
		return nil
	}
	return c.entries[len(c.entries)-1]
}

func (c *entryCache) clear() {
	c.mu.Lock()
	c.entries = nil
	c.mu.Unlock()
}
