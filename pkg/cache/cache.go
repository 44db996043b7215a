package cache

import (
	"sync"
	"time"
)

// Timed maps keys to values that expire a fixed time after they are set. It
// may be shared between handlers.
type Timed[V any] struct {
	ttl time.Duration

	mu    sync.Mutex
	cache map[string]element[V]
}

// element is a value and the time it was stored.
type element[V any] struct {
	value    V
	creation time.Time
}

// NewTimed returns an empty cache whose values live for ttl. With a ttl of
// zero or less nothing is ever stored.
func NewTimed[V any](ttl time.Duration) *Timed[V] {
	return &Timed[V]{
		ttl:   ttl,
		cache: make(map[string]element[V]),
	}
}

// Set stores val under key, restarting its clock.
func (c *Timed[V]) Set(key string, val V) {
	c.set(key, val, time.Now())
}

// set is Set at a given time.
func (c *Timed[V]) set(key string, val V, t time.Time) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = element[V]{
		value:    val,
		creation: t,
	}
}

// Get returns the value under key. ok is false when there is none or it has
// expired; expired values are dropped.
func (c *Timed[V]) Get(key string) (value V, ok bool) {
	return c.get(key, time.Now())
}

// get is Get at a given time.
func (c *Timed[V]) get(key string, t time.Time) (value V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.cache[key]
	if !ok {
		return value, false
	}

	if elapsed := t.Sub(el.creation); elapsed > c.ttl {
		delete(c.cache, key)
		return value, false
	}

	return el.value, true
}

// Len counts the elements held, expired or not.
func (c *Timed[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

// Purge drops every expired element.
func (c *Timed[V]) Purge() int {
	return c.purge(time.Now())
}

func (c *Timed[V]) purge(t time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, el := range c.cache {
		if t.Sub(el.creation) > c.ttl {
			delete(c.cache, k)
			n++
		}
	}
	return n
}
