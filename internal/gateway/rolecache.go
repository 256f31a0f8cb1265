package gateway

import (
	"sync"
	"time"
)

// roleCache remembers collaborator role lookups for a bounded time. Entries
// expire after the configured TTL; a TTL of zero disables caching entirely,
// so the cache never degenerates into a process-lifetime map.
type roleCache struct {
	ttl time.Duration
	mu  sync.Mutex
	m   map[string]roleEntry
	now func() time.Time
}

type roleEntry struct {
	role    string
	expires time.Time
}

func newRoleCache(ttl time.Duration) *roleCache {
	return &roleCache{ttl: ttl, m: make(map[string]roleEntry), now: time.Now}
}

func (c *roleCache) get(userID string) (string, bool) {
	if c.ttl <= 0 {
		return "", false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.m[userID]
	if !ok {
		return "", false
	}
	if c.now().After(e.expires) {
		delete(c.m, userID)
		return "", false
	}
	return e.role, true
}

func (c *roleCache) put(userID, role string) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[userID] = roleEntry{role: role, expires: c.now().Add(c.ttl)}
}
