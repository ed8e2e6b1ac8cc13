package contentcache

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds environment-level configuration for a Store.
//
// All fields are optional. Endpoint selects the remote fetch target;
// when empty, cache misses fail unless a fetcher is injected explicitly.
type Config struct {
	// Endpoint is the base URL of the remote content service.
	Endpoint string `env:"CONTENTCACHE_ENDPOINT"`

	// Dir is the cache directory. Defaults to a per-user cache location.
	Dir string `env:"CONTENTCACHE_DIR"`

	// DiskMaxBytes bounds the disk tier. 0 disables the limit.
	DiskMaxBytes int64 `env:"CONTENTCACHE_DISK_MAX_BYTES" envDefault:"268435456"`

	// DiskMaxAge is the freshness window for disk entries. Entries older
	// than this are treated as misses on read. 0 disables the gate.
	DiskMaxAge time.Duration `env:"CONTENTCACHE_DISK_MAX_AGE" envDefault:"24h"`

	// MemoryMaxEntries bounds the in-memory tier entry count.
	MemoryMaxEntries int `env:"CONTENTCACHE_MEMORY_MAX_ENTRIES" envDefault:"128"`

	// MemoryMaxAge bounds the age of in-memory entries.
	MemoryMaxAge time.Duration `env:"CONTENTCACHE_MEMORY_MAX_AGE" envDefault:"10m"`
}

// FromEnv reads configuration from CONTENTCACHE_* environment variables.
//
// When CONTENTCACHE_DIR is unset, the directory defaults to
// "contentcache" under os.UserCacheDir. If no per-user cache location
// exists either, Dir stays empty.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.Dir == "" {
		if base, err := os.UserCacheDir(); err == nil {
			cfg.Dir = filepath.Join(base, "contentcache")
		}
	}
	return cfg, nil
}
