package contentcache

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ResolveMany resolves a batch of content identifiers concurrently.
//
// Each entry resolves independently: one entry's failure does not abort
// the others. The result maps every input identifier to its payload, or
// to nil if that resolution failed. The call itself fails only on
// structurally invalid input (an empty batch). All lookups share the
// store's fetcher for connection reuse; fan-out is bounded by the
// store's concurrency limit.
func (s *Store) ResolveMany(ctx context.Context, ids []string, opts ...ResolveOption) (map[string][]byte, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: empty id list", ErrInvalidArgument)
	}

	results := make(map[string][]byte, len(ids))
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(s.fanout)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			data, err := s.Resolve(ctx, id, opts...)
			if err != nil {
				s.log().Debug("batch entry failed", "id", id, "error", err)
				data = nil
			}
			mu.Lock()
			results[id] = data
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	return results, nil
}

// Prefetch warms the cache for the given identifiers without blocking.
//
// Resolutions run on a tracked background goroutine with caching
// enabled; failures are logged and otherwise ignored. There is no
// completion signal, but Close waits for in-flight prefetches.
func (s *Store) Prefetch(ctx context.Context, ids ...string) {
	if len(ids) == 0 {
		return
	}
	s.background(func() {
		var g errgroup.Group
		g.SetLimit(s.fanout)
		for _, id := range ids {
			id := id
			g.Go(func() error {
				if _, err := s.Resolve(ctx, id); err != nil {
					s.log().Debug("prefetch failed", "id", id, "error", err)
				}
				return nil
			})
		}
		_ = g.Wait()
	})
}
