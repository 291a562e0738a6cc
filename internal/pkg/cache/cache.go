package cache

import (
	"sync"
	"time"
)

// Key names a cached value. Call sites declare their keys as typed constants
// instead of ad-hoc strings.
type Key string

// Cache is an advisory read-through cache with per-entry TTL. Stale reads are
// an accepted trade-off: writes to the underlying data do not invalidate
// entries early.
type Cache interface {
	Get(key Key) (any, bool)
	Set(key Key, value any, ttl time.Duration)
	Delete(key Key)
}

type entry struct {
	value    any
	deadline time.Time
}

// Memory is an in-process Cache implementation guarded by a RWMutex.
type Memory struct {
	mu      sync.RWMutex
	entries map[Key]entry
	now     func() time.Time
}

// NewMemory constructs an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[Key]entry),
		now:     time.Now,
	}
}

// Get returns a live entry, evicting it lazily when expired.
func (m *Memory) Get(key Key) (any, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if m.now().After(e.deadline) {
		m.mu.Lock()
		if stored, still := m.entries[key]; still && m.now().After(stored.deadline) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Set stores value under key for ttl. Non-positive ttl stores nothing.
func (m *Memory) Set(key Key, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	m.mu.Lock()
	m.entries[key] = entry{value: value, deadline: m.now().Add(ttl)}
	m.mu.Unlock()
}

// Delete removes the entry for key if present.
func (m *Memory) Delete(key Key) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}
