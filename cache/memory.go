package cache

import (
	"container/list"
	"sync"
	"time"
)

const (
	defaultMaxEntries = 128
	defaultMaxAge     = 10 * time.Minute
)

// Memory is a count- and age-bounded in-memory cache.
//
// Memory is safe for concurrent use. Eviction is amortized: age and
// count bounds are enforced on every Put, not by a background timer.
type Memory struct {
	mu         sync.Mutex
	maxEntries int
	maxAge     time.Duration
	entries    map[string]*list.Element
	order      *list.List // front = most recently accessed
	now        func() time.Time
}

type memoryEntry struct {
	key        string
	content    []byte
	lastAccess time.Time
}

// MemoryOption configures a Memory cache.
type MemoryOption func(*Memory)

// WithMaxEntries sets the maximum entry count. Values <= 0 keep the default.
func WithMaxEntries(n int) MemoryOption {
	return func(m *Memory) {
		if n > 0 {
			m.maxEntries = n
		}
	}
}

// WithMaxAge sets the maximum entry age since last access.
// A zero value disables the age bound.
func WithMaxAge(d time.Duration) MemoryOption {
	return func(m *Memory) {
		if d >= 0 {
			m.maxAge = d
		}
	}
}

// withClock overrides the time source, for tests.
func withClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		m.now = now
	}
}

// NewMemory creates an in-memory cache.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		maxEntries: defaultMaxEntries,
		maxAge:     defaultMaxAge,
		entries:    make(map[string]*list.Element),
		order:      list.New(),
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(m)
	}
	return m
}

// Get retrieves content by key and bumps its last-access time.
func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	entry := el.Value.(*memoryEntry)
	entry.lastAccess = m.now()
	m.order.MoveToFront(el)
	return entry.content, true
}

// Put stores content under key, replacing any existing entry, then
// sweeps aged entries and evicts least-recently-used entries until the
// count bound holds.
func (m *Memory) Put(key string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if el, ok := m.entries[key]; ok {
		entry := el.Value.(*memoryEntry)
		entry.content = content
		entry.lastAccess = now
		m.order.MoveToFront(el)
	} else {
		el := m.order.PushFront(&memoryEntry{key: key, content: content, lastAccess: now})
		m.entries[key] = el
	}

	m.purgeAged(now)
	for m.order.Len() > m.maxEntries {
		m.evictOldest()
	}
}

// Len returns the current entry count.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}

// Purge removes entries whose last access is older than the age bound.
func (m *Memory) Purge() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purgeAged(m.now())
}

// Clear removes all entries.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]*list.Element)
	m.order.Init()
}

// purgeAged removes stale entries from the back of the recency order.
// Callers must hold m.mu.
func (m *Memory) purgeAged(now time.Time) {
	if m.maxAge <= 0 {
		return
	}
	for {
		el := m.order.Back()
		if el == nil {
			return
		}
		entry := el.Value.(*memoryEntry)
		if now.Sub(entry.lastAccess) <= m.maxAge {
			return
		}
		m.order.Remove(el)
		delete(m.entries, entry.key)
	}
}

// evictOldest removes the least-recently-accessed entry.
// Callers must hold m.mu.
func (m *Memory) evictOldest() {
	el := m.order.Back()
	if el == nil {
		return
	}
	entry := el.Value.(*memoryEntry)
	m.order.Remove(el)
	delete(m.entries, entry.key)
}
