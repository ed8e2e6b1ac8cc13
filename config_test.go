package contentcache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgefs/contentcache/cache/disk"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("CONTENTCACHE_ENDPOINT", "")
	t.Setenv("CONTENTCACHE_DIR", "")
	t.Setenv("CONTENTCACHE_DISK_MAX_BYTES", "")
	t.Setenv("CONTENTCACHE_DISK_MAX_AGE", "")
	t.Setenv("CONTENTCACHE_MEMORY_MAX_ENTRIES", "")
	t.Setenv("CONTENTCACHE_MEMORY_MAX_AGE", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Empty(t, cfg.Endpoint)
	assert.Equal(t, int64(268435456), cfg.DiskMaxBytes)
	assert.Equal(t, 24*time.Hour, cfg.DiskMaxAge)
	assert.Equal(t, 128, cfg.MemoryMaxEntries)
	assert.Equal(t, 10*time.Minute, cfg.MemoryMaxAge)
	assert.Equal(t, "contentcache", filepath.Base(cfg.Dir))
}

func TestFromEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONTENTCACHE_ENDPOINT", "https://blobs.example.net")
	t.Setenv("CONTENTCACHE_DIR", dir)
	t.Setenv("CONTENTCACHE_DISK_MAX_BYTES", "1048576")
	t.Setenv("CONTENTCACHE_DISK_MAX_AGE", "1h")
	t.Setenv("CONTENTCACHE_MEMORY_MAX_ENTRIES", "16")
	t.Setenv("CONTENTCACHE_MEMORY_MAX_AGE", "30s")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://blobs.example.net", cfg.Endpoint)
	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, int64(1048576), cfg.DiskMaxBytes)
	assert.Equal(t, time.Hour, cfg.DiskMaxAge)
	assert.Equal(t, 16, cfg.MemoryMaxEntries)
	assert.Equal(t, 30*time.Second, cfg.MemoryMaxAge)
}

func TestFromEnvInvalidValue(t *testing.T) {
	t.Setenv("CONTENTCACHE_DISK_MAX_BYTES", "not-a-number")

	_, err := FromEnv()
	require.Error(t, err)
}

func TestNewFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONTENTCACHE_ENDPOINT", "https://blobs.example.net")
	t.Setenv("CONTENTCACHE_DIR", dir)

	s, err := New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NotNil(t, s.fetcher)
	dc, ok := s.disk.(*disk.Cache)
	require.True(t, ok)
	assert.Equal(t, dir, dc.Dir())
}
