//go:build linux

package disk

import (
	"io/fs"
	"syscall"
	"time"
)

// accessTime reads the access time from the underlying stat data.
func accessTime(info fs.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Atim.Sec, st.Atim.Nsec)
	}
	return info.ModTime()
}
