package contentcache

import (
	"context"
	"fmt"

	digest "github.com/opencontainers/go-digest"
)

// Key derives the cache key for a content identifier: the hex SHA256
// digest of the identifier, which is filesystem-safe and fixed-length.
func Key(id string) string {
	return digest.SHA256.FromString(id).Encoded()
}

// Resolve returns the verified byte payload for a content identifier.
//
// The in-memory tier is consulted first, then the disk tier, then the
// remote fetcher; the first verified hit wins. Cached content that
// fails digest verification demotes to a miss. A disk hit is promoted
// into the memory tier. After a remote fetch, both tiers are populated
// best-effort and an eviction sweep runs in the background.
//
// Concurrent calls for the same identifier share one remote fetch.
func (s *Store) Resolve(ctx context.Context, id string, opts ...ResolveOption) ([]byte, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty content id", ErrInvalidArgument)
	}
	cfg := resolveConfig{useCache: true}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	key := Key(id)

	if cfg.useCache && !cfg.forceRefresh {
		if data, ok := s.mem.Get(key); ok {
			if verified(data, cfg.expected) {
				s.log().Debug("memory cache hit", "id", id)
				return data, nil
			}
			s.log().Debug("memory cache entry failed verification", "id", id)
		}
		if data, ok := s.disk.Get(key); ok {
			if verified(data, cfg.expected) {
				s.log().Debug("disk cache hit", "id", id)
				s.mem.Put(key, data)
				return data, nil
			}
			s.log().Debug("disk cache entry failed verification", "id", id)
		}
	}

	fetcher := cfg.fetcher
	if fetcher == nil {
		fetcher = s.fetcher
	}
	if fetcher == nil {
		return nil, fmt.Errorf("%w: no fetcher configured", ErrFetchFailed)
	}

	fetched, err, shared := s.flight.Do(key, func() (any, error) {
		// An earlier flight may have landed the content in the memory
		// tier between the tier reads above and this call.
		if cfg.useCache && !cfg.forceRefresh {
			if data, ok := s.mem.Get(key); ok && verified(data, cfg.expected) {
				return data, nil
			}
		}
		return fetcher.Fetch(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetchFailed, id, err)
	}
	data, _ := fetched.([]byte)
	if shared {
		s.log().Debug("fetch shared with concurrent caller", "id", id)
	}

	if !verified(data, cfg.expected) {
		return nil, fmt.Errorf("%w: %s: fetched content does not match %s", ErrDigestMismatch, id, cfg.expected)
	}

	if cfg.useCache {
		s.mem.Put(key, data)
		if err := s.disk.Put(key, data); err != nil {
			s.log().Warn("disk cache write failed", "id", id, "error", err)
		}
		s.background(s.sweep)
	}
	return data, nil
}

// Sweep enforces both tiers' bounds synchronously: aged entries leave
// the memory tier and the disk tier prunes to its byte budget.
func (s *Store) Sweep() {
	s.sweep()
}

func (s *Store) sweep() {
	s.mem.Purge()
	freed, err := s.disk.Sweep()
	if err != nil {
		s.log().Warn("disk sweep failed", "error", err)
		return
	}
	if freed > 0 {
		s.log().Debug("disk sweep evicted entries", "freed_bytes", freed)
	}
}

// verified reports whether content matches the expected digest.
// An empty digest always verifies; an unusable digest never does.
func verified(content []byte, expected digest.Digest) bool {
	if expected == "" {
		return true
	}
	if err := expected.Validate(); err != nil {
		return false
	}
	algo := expected.Algorithm()
	if !algo.Available() {
		return false
	}
	return algo.FromBytes(content) == expected
}
