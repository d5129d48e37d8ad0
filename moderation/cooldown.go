package moderation

import (
	"sync"
	"time"
)

// CooldownCache tracks one countdown window per trigger id. A known key
// whose window has elapsed counts as "armed": the trigger may fire and
// seed a fresh window. A key inside a live window is suppressed. Unknown
// keys never fire, so the cache doubles as the arm flag.
type CooldownCache struct {
	sync.RWMutex

	deadlines map[string]time.Time
}

func NewCooldownCache() *CooldownCache {
	return &CooldownCache{
		deadlines: make(map[string]time.Time),
	}
}

// Set seeds or refreshes a live window of $duration for $key
func (c *CooldownCache) Set(key string, duration time.Duration) {
	c.Lock()
	c.deadlines[key] = time.Now().Add(duration)
	c.Unlock()
}

// Arm registers $key with an already elapsed window
func (c *CooldownCache) Arm(key string) {
	c.Lock()
	c.deadlines[key] = time.Now()
	c.Unlock()
}

// Live reports whether $key is inside a live window
func (c *CooldownCache) Live(key string) bool {
	c.RLock()
	deadline, ok := c.deadlines[key]
	c.RUnlock()

	return ok && time.Now().Before(deadline)
}

// Armed reports whether $key is known and its window has elapsed
func (c *CooldownCache) Armed(key string) bool {
	c.RLock()
	deadline, ok := c.deadlines[key]
	c.RUnlock()

	return ok && !time.Now().Before(deadline)
}

// Remove forgets $key entirely, disarming the trigger
func (c *CooldownCache) Remove(key string) {
	c.Lock()
	delete(c.deadlines, key)
	c.Unlock()
}
