package contentcache

import (
	"fmt"
	"time"
)

// Stats describes the current state of both cache tiers.
type Stats struct {
	// FileCount is the number of disk tier entries.
	FileCount int
	// TotalSizeBytes is the total disk tier payload size.
	TotalSizeBytes int64
	// OldestItemAge is the age since write of the oldest disk entry.
	OldestItemAge time.Duration
	// NewestItemAge is the age since write of the newest disk entry.
	NewestItemAge time.Duration
	// MemoryEntries is the in-memory tier entry count.
	MemoryEntries int
}

// Stats reports cache statistics, best-effort. If the disk tier is
// unreadable its fields stay zero rather than surfacing an error.
func (s *Store) Stats() Stats {
	stats := Stats{MemoryEntries: s.mem.Len()}
	ds, err := s.disk.Stats()
	if err != nil {
		s.log().Debug("disk stats unavailable", "error", err)
		return stats
	}
	stats.FileCount = ds.FileCount
	stats.TotalSizeBytes = ds.SizeBytes
	stats.OldestItemAge = ds.OldestAge
	stats.NewestItemAge = ds.NewestAge
	return stats
}

// Clear removes all disk tier entries and empties the memory tier.
//
// Deletion is attempted for every entry even after a failure; failures
// are aggregated into a single ErrClearFailed. A partial clear leaves
// the surviving entries in place.
func (s *Store) Clear() error {
	s.mem.Clear()
	if err := s.disk.Clear(); err != nil {
		return fmt.Errorf("%w: %w", ErrClearFailed, err)
	}
	return nil
}
