// Package disk provides the persistent tier of the content cache.
//
// Entries live in one flat directory, each a single file named by the
// hex digest of its content identifier, holding the raw payload with no
// wrapping format. The file's modification time is the freshness
// signal; its access time orders eviction candidates. The directory
// listing is the index.
package disk

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/forgefs/contentcache/cache"
)

const (
	defaultDirPerm  = 0o700
	defaultFilePerm = 0o600
)

// Cache is a byte-budgeted disk cache rooted at a single directory.
//
// Cache assumes exclusive ownership of its directory: no file locking
// defends against external writers. Methods are safe for concurrent
// use within one process.
type Cache struct {
	dir      string
	maxBytes int64
	maxAge   time.Duration
	dirPerm  os.FileMode
	filePerm os.FileMode
	pruneMu  sync.Mutex
}

// Interface compliance.
var _ cache.DiskTier = (*Cache)(nil)

// Option configures a disk cache.
type Option func(*Cache)

// WithMaxBytes sets the total byte budget. Use 0 to disable the limit.
func WithMaxBytes(n int64) Option {
	return func(c *Cache) {
		c.maxBytes = n
	}
}

// WithMaxAge sets the freshness window. Entries whose modification time
// is older than this are treated as misses on read. Use 0 to disable.
func WithMaxAge(d time.Duration) Option {
	return func(c *Cache) {
		c.maxAge = d
	}
}

// WithDirPerm sets the permissions used when creating the cache directory.
func WithDirPerm(mode os.FileMode) Option {
	return func(c *Cache) {
		c.dirPerm = mode
	}
}

// New creates a disk cache rooted at dir, creating it if needed.
func New(dir string, opts ...Option) (*Cache, error) {
	if dir == "" {
		return nil, errors.New("cache dir is empty")
	}
	c := &Cache{
		dir:      dir,
		dirPerm:  defaultDirPerm,
		filePerm: defaultFilePerm,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.maxBytes < 0 {
		return nil, errors.New("max bytes must be >= 0")
	}
	if err := os.MkdirAll(dir, c.dirPerm); err != nil {
		return nil, err
	}
	return c, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// MaxBytes returns the configured byte budget (0 = unlimited).
func (c *Cache) MaxBytes() int64 {
	return c.maxBytes
}

// Get retrieves the payload stored under key.
//
// Stale entries (older than the freshness window) and unreadable
// entries report a miss. A hit bumps the entry's access time, leaving
// the modification time untouched.
func (c *Cache) Get(key string) ([]byte, bool) {
	path, err := c.path(key)
	if err != nil {
		return nil, false
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, false
	}
	if c.maxAge > 0 && time.Since(info.ModTime()) > c.maxAge {
		return nil, false
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from a hex digest
	if err != nil {
		return nil, false
	}
	// Recency signal for eviction ordering.
	_ = os.Chtimes(path, time.Now(), info.ModTime())
	return data, true
}

// Put stores the payload under key, replacing any existing entry.
//
// The payload is written to a temporary file and renamed into place, so
// readers never observe a partial entry. A replaced entry's
// modification time resets, restarting its freshness window.
func (c *Cache) Put(key string, content []byte) error {
	path, err := c.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(c.dir, "put-*")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close cache file: %w", err)
	}
	if err := os.Chmod(tmpPath, c.filePerm); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("chmod cache file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename cache file: %w", err)
	}
	return nil
}

// Delete removes the entry stored under key. Missing entries are not an error.
func (c *Cache) Delete(key string) error {
	path, err := c.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Prune removes entries, oldest accessed first, until the cache is at
// or below targetBytes. It returns the number of bytes freed.
func (c *Cache) Prune(targetBytes int64) (int64, error) {
	if targetBytes < 0 {
		targetBytes = 0
	}
	c.pruneMu.Lock()
	defer c.pruneMu.Unlock()

	entries, total, err := scanDir(c.dir)
	if err != nil {
		return 0, err
	}
	if total <= targetBytes {
		return 0, nil
	}

	sortByAccessTime(entries)

	var freed int64
	remaining := total
	for _, entry := range entries {
		if remaining <= targetBytes {
			break
		}
		if err := os.Remove(entry.path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return freed, err
		}
		remaining -= entry.size
		freed += entry.size
	}
	return freed, nil
}

// Sweep prunes the cache to its configured byte budget.
func (c *Cache) Sweep() (int64, error) {
	if c.maxBytes <= 0 {
		return 0, nil
	}
	return c.Prune(c.maxBytes)
}

// Stats reports the current file count, total size, and entry age range.
func (c *Cache) Stats() (cache.Stats, error) {
	entries, total, err := scanDir(c.dir)
	if err != nil {
		return cache.Stats{}, err
	}
	stats := cache.Stats{
		FileCount: len(entries),
		SizeBytes: total,
	}
	if len(entries) == 0 {
		return stats, nil
	}
	now := time.Now()
	oldest := entries[0].modTime
	newest := entries[0].modTime
	for _, entry := range entries[1:] {
		if entry.modTime.Before(oldest) {
			oldest = entry.modTime
		}
		if entry.modTime.After(newest) {
			newest = entry.modTime
		}
	}
	stats.OldestAge = now.Sub(oldest)
	stats.NewestAge = now.Sub(newest)
	return stats, nil
}

// Clear removes everything in the cache directory, leftover temporary
// files included. Deletion is attempted for every name even after a
// failure; failures are aggregated into one error.
func (c *Cache) Clear() error {
	c.pruneMu.Lock()
	defer c.pruneMu.Unlock()

	dirents, err := os.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	var errs []error
	for _, d := range dirents {
		if err := os.Remove(filepath.Join(c.dir, d.Name())); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// path validates key as a hex digest and returns its file path.
// Validation keeps arbitrary names from escaping the cache directory.
func (c *Cache) path(key string) (string, error) {
	if key == "" {
		return "", errors.New("cache key is empty")
	}
	for i := 0; i < len(key); i++ {
		ch := key[i]
		switch {
		case ch >= '0' && ch <= '9':
		case ch >= 'a' && ch <= 'f':
		case ch >= 'A' && ch <= 'F':
		default:
			return "", fmt.Errorf("invalid cache key %q", key)
		}
	}
	return filepath.Join(c.dir, key), nil
}
