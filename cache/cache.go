// Package cache provides the storage tiers of the content cache: the
// tier contracts, and the in-memory tier implementation. The persistent
// tier lives in the disk subpackage.
//
// Keys are hex digests of content identifiers. Implementations must be
// safe for concurrent use.
package cache

import "time"

// MemoryTier is the contract of the process-local tier.
//
// The tier is bounded by entry count and entry age; bounds are enforced
// on every Put rather than by a background timer.
type MemoryTier interface {
	// Get retrieves content by key and bumps its last-access time.
	Get(key string) ([]byte, bool)

	// Put stores content under key, replacing any existing entry, and
	// enforces the tier's bounds.
	Put(key string, content []byte)

	// Len returns the current entry count.
	Len() int

	// Purge removes entries older than the age bound.
	Purge()

	// Clear removes all entries.
	Clear()
}

// DiskTier is the contract of the persistent tier.
//
// Entries survive process restarts. Reads apply a freshness gate;
// writes are atomic; eviction prunes oldest-accessed entries first.
type DiskTier interface {
	// Get retrieves fresh content by key, bumping its access time.
	// Stale and unreadable entries report a miss.
	Get(key string) ([]byte, bool)

	// Put stores content under key, replacing any existing entry.
	Put(key string, content []byte) error

	// Delete removes a single entry. Missing entries are not an error.
	Delete(key string) error

	// Prune removes entries, oldest accessed first, until the tier is at
	// or below targetBytes. Returns the number of bytes freed.
	Prune(targetBytes int64) (int64, error)

	// Sweep prunes the tier to its configured byte budget.
	Sweep() (int64, error)

	// MaxBytes returns the configured byte budget (0 = unlimited).
	MaxBytes() int64

	// Stats reports the tier's current contents.
	Stats() (Stats, error)

	// Clear removes every entry, attempting all deletions even after a
	// failure and aggregating the failures.
	Clear() error
}

// Stats describes the current contents of a persistent tier.
type Stats struct {
	// FileCount is the number of cache entries.
	FileCount int
	// SizeBytes is the total payload size.
	SizeBytes int64
	// OldestAge is the age since write of the oldest entry.
	OldestAge time.Duration
	// NewestAge is the age since write of the newest entry.
	NewestAge time.Duration
}

// Interface compliance.
var _ MemoryTier = (*Memory)(nil)
