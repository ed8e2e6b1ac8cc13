package contentcache

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/forgefs/contentcache/cache"
	"github.com/forgefs/contentcache/cache/disk"
	"github.com/forgefs/contentcache/fetch"
)

const defaultFanout = 8

// Store resolves content identifiers to verified bytes through an
// in-memory tier, a disk tier, and a remote fetch fallback.
//
// Concurrent Resolve calls for the same identifier share a single
// remote fetch. Background eviction sweeps and prefetches are tracked;
// Close waits for them to finish.
type Store struct {
	mem     cache.MemoryTier
	disk    cache.DiskTier
	fetcher fetch.Fetcher
	logger  *slog.Logger
	fanout  int

	flight singleflight.Group
	bg     sync.WaitGroup
}

// New creates a Store.
//
// Tiers and the fetcher not supplied via options are built from
// environment configuration (see [FromEnv]). A store without an
// endpoint or injected fetcher still serves cached content; misses fail
// with [ErrFetchFailed].
func New(opts ...Option) (*Store, error) {
	var so storeOptions
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&so); err != nil {
			return nil, err
		}
	}

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}
	if so.endpoint != "" {
		cfg.Endpoint = so.endpoint
	}
	if so.dir != "" {
		cfg.Dir = so.dir
	}

	s := &Store{
		mem:     so.mem,
		disk:    so.disk,
		fetcher: so.fetcher,
		logger:  so.logger,
		fanout:  so.fanout,
	}
	if s.fanout <= 0 {
		s.fanout = defaultFanout
	}
	if s.mem == nil {
		s.mem = cache.NewMemory(
			cache.WithMaxEntries(cfg.MemoryMaxEntries),
			cache.WithMaxAge(cfg.MemoryMaxAge),
		)
	}
	if s.disk == nil {
		if cfg.Dir == "" {
			return nil, errors.New("contentcache: no cache directory configured")
		}
		dc, err := disk.New(cfg.Dir,
			disk.WithMaxBytes(cfg.DiskMaxBytes),
			disk.WithMaxAge(cfg.DiskMaxAge),
		)
		if err != nil {
			return nil, err
		}
		s.disk = dc
	}
	if s.fetcher == nil && cfg.Endpoint != "" {
		f, err := fetch.NewHTTP(cfg.Endpoint)
		if err != nil {
			return nil, err
		}
		s.fetcher = f
	}
	return s, nil
}

// Close waits for background sweeps and prefetches to finish.
func (s *Store) Close() error {
	s.bg.Wait()
	return nil
}

// log returns the logger, falling back to a discard logger if nil.
func (s *Store) log() *slog.Logger {
	if s.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s.logger
}

// background runs fn on a tracked goroutine so Close can wait for it.
func (s *Store) background(fn func()) {
	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		fn()
	}()
}
