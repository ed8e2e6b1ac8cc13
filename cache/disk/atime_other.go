//go:build !linux

package disk

import (
	"io/fs"
	"time"
)

// accessTime falls back to the modification time on platforms without a
// portable access-time field. Eviction then orders by write recency,
// which is strictly more conservative.
func accessTime(info fs.FileInfo) time.Time {
	return info.ModTime()
}
