//go:build linux

package metadata

import (
	"os"
	"syscall"
	"time"
)

// Linux exposes no birth time through os.FileInfo; the inode change time is
// the closest stand-in, matching what ctime-based tooling reports here.
func creationTime(info os.FileInfo) (time.Time, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}, false
	}
	sec, nsec := st.Ctim.Unix()
	return time.Unix(sec, nsec), true
}
