package contentcache

import (
	"log/slog"

	digest "github.com/opencontainers/go-digest"

	"github.com/forgefs/contentcache/cache"
	"github.com/forgefs/contentcache/fetch"
)

// Option configures a Store.
type Option func(*storeOptions) error

type storeOptions struct {
	logger   *slog.Logger
	fetcher  fetch.Fetcher
	mem      cache.MemoryTier
	disk     cache.DiskTier
	endpoint string
	dir      string
	fanout   int
}

// WithLogger sets the logger. The store logs cache traffic at debug
// level and swallowed errors at warn level. Defaults to discarding.
func WithLogger(logger *slog.Logger) Option {
	return func(o *storeOptions) error {
		o.logger = logger
		return nil
	}
}

// WithEndpoint sets the remote endpoint, overriding the environment.
func WithEndpoint(endpoint string) Option {
	return func(o *storeOptions) error {
		o.endpoint = endpoint
		return nil
	}
}

// WithCacheDir sets the disk tier directory, overriding the environment.
func WithCacheDir(dir string) Option {
	return func(o *storeOptions) error {
		o.dir = dir
		return nil
	}
}

// WithRemote injects the remote fetch collaborator, replacing the
// default HTTP fetcher.
func WithRemote(f fetch.Fetcher) Option {
	return func(o *storeOptions) error {
		o.fetcher = f
		return nil
	}
}

// WithMemoryTier injects a pre-built in-memory tier.
func WithMemoryTier(m cache.MemoryTier) Option {
	return func(o *storeOptions) error {
		o.mem = m
		return nil
	}
}

// WithDiskTier injects a pre-built disk tier.
func WithDiskTier(d cache.DiskTier) Option {
	return func(o *storeOptions) error {
		o.disk = d
		return nil
	}
}

// WithFanout sets the concurrency limit used by ResolveMany and
// Prefetch. Values <= 0 keep the default.
func WithFanout(n int) Option {
	return func(o *storeOptions) error {
		o.fanout = n
		return nil
	}
}

// ResolveOption configures a single resolution.
type ResolveOption func(*resolveConfig)

type resolveConfig struct {
	useCache     bool
	forceRefresh bool
	expected     digest.Digest
	fetcher      fetch.Fetcher
}

// WithoutCache skips both cache tiers for reads and writes.
func WithoutCache() ResolveOption {
	return func(c *resolveConfig) {
		c.useCache = false
	}
}

// WithForceRefresh skips cache reads but still repopulates the tiers
// after a successful fetch.
func WithForceRefresh() ResolveOption {
	return func(c *resolveConfig) {
		c.forceRefresh = true
	}
}

// WithExpectedDigest requires any candidate content to hash to the
// given digest. Cached content failing verification is treated as a
// miss; freshly fetched content failing verification is an error and is
// never cached.
func WithExpectedDigest(d digest.Digest) ResolveOption {
	return func(c *resolveConfig) {
		c.expected = d
	}
}

// WithFetcher overrides the remote collaborator for this call.
func WithFetcher(f fetch.Fetcher) ResolveOption {
	return func(c *resolveConfig) {
		c.fetcher = f
	}
}
