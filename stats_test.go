package contentcache

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgefs/contentcache/cache"
	"github.com/forgefs/contentcache/cache/disk"
)

func TestStatsReflectTiers(t *testing.T) {
	t.Parallel()

	f := newFakeFetcher(map[string][]byte{
		"blob-a": []byte("12345"),
		"blob-b": []byte("123"),
	})
	s := newTestStore(t, t.TempDir(), f)

	_, err := s.Resolve(context.Background(), "blob-a")
	require.NoError(t, err)
	_, err = s.Resolve(context.Background(), "blob-b")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	stats := s.Stats()
	assert.Equal(t, 2, stats.FileCount)
	assert.Equal(t, int64(8), stats.TotalSizeBytes)
	assert.Equal(t, 2, stats.MemoryEntries)
	assert.GreaterOrEqual(t, stats.OldestItemAge, stats.NewestItemAge)
}

func TestClearEmptiesBothTiers(t *testing.T) {
	t.Parallel()

	f := newFakeFetcher(map[string][]byte{
		"blob-a": []byte("aaa"),
		"blob-b": []byte("bbb"),
	})
	s := newTestStore(t, t.TempDir(), f)

	_, err := s.Resolve(context.Background(), "blob-a")
	require.NoError(t, err)
	_, err = s.Resolve(context.Background(), "blob-b")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	require.NoError(t, s.Clear())

	stats := s.Stats()
	assert.Zero(t, stats.FileCount)
	assert.Zero(t, stats.TotalSizeBytes)
	assert.Zero(t, stats.MemoryEntries)

	// Cleared content refetches on demand.
	data, err := s.Resolve(context.Background(), "blob-a")
	require.NoError(t, err)
	assert.Equal(t, []byte("aaa"), data)
	assert.Equal(t, int64(3), f.calls.Load())
}

func TestClearReportsDiskFailure(t *testing.T) {
	t.Parallel()

	f := newFakeFetcher(map[string][]byte{"blob-a": []byte("aaa")})
	dir := t.TempDir()
	s := newTestStore(t, dir, f)

	_, err := s.Resolve(context.Background(), "blob-a")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// A non-empty foreign subdirectory cannot be removed in one step, so
	// the disk tier's clear partially fails.
	sub := filepath.Join(dir, "intruder")
	require.NoError(t, os.Mkdir(sub, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "pin"), []byte("x"), 0o600))

	err = s.Clear()
	require.ErrorIs(t, err, ErrClearFailed)

	// The failure did not stop the other deletions: the memory tier and
	// every regular entry are gone.
	stats := s.Stats()
	assert.Zero(t, stats.MemoryEntries)
	assert.Zero(t, stats.FileCount)
}

func TestSweepBoundsDiskTier(t *testing.T) {
	t.Parallel()

	content := make(map[string][]byte)
	for _, id := range []string{"blob-a", "blob-b", "blob-c"} {
		content[id] = make([]byte, 400)
	}
	f := newFakeFetcher(content)

	dc, err := disk.New(t.TempDir(), disk.WithMaxBytes(1000))
	require.NoError(t, err)
	s, err := New(WithRemote(f), WithDiskTier(dc), WithMemoryTier(cache.NewMemory()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	for id := range content {
		_, err := s.Resolve(context.Background(), id)
		require.NoError(t, err)
	}
	require.NoError(t, s.Close())

	stats := s.Stats()
	assert.LessOrEqual(t, stats.TotalSizeBytes, int64(1000),
		"post-write sweeps keep the disk tier under its byte budget")
	assert.Less(t, stats.FileCount, 3)
}
