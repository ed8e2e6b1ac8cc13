package disk

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"time"
)

type cacheEntry struct {
	path       string
	size       int64
	modTime    time.Time
	accessTime time.Time
}

// scanDir lists the regular files in the flat cache directory along
// with their total size. Temporary files from in-flight writes are
// skipped; entries that vanish mid-scan are ignored.
func scanDir(dir string) ([]cacheEntry, int64, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, 0, err
	}

	entries := make([]cacheEntry, 0, len(dirents))
	var total int64
	for _, d := range dirents {
		if !d.Type().IsRegular() {
			continue
		}
		if isTempName(d.Name()) {
			continue
		}
		info, err := d.Info()
		if err != nil {
			continue
		}
		size := info.Size()
		total += size
		entries = append(entries, cacheEntry{
			path:       filepath.Join(dir, d.Name()),
			size:       size,
			modTime:    info.ModTime(),
			accessTime: accessTime(info),
		})
	}
	return entries, total, nil
}

// sortByAccessTime orders eviction candidates oldest accessed first.
func sortByAccessTime(entries []cacheEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].accessTime.Equal(entries[j].accessTime) {
			return entries[i].path < entries[j].path
		}
		return entries[i].accessTime.Before(entries[j].accessTime)
	})
}

func isTempName(name string) bool {
	return len(name) > 4 && name[:4] == "put-"
}
