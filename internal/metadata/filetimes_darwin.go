//go:build darwin

package metadata

import (
	"os"
	"syscall"
	"time"
)

func creationTime(info os.FileInfo) (time.Time, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}, false
	}
	sec, nsec := st.Birthtimespec.Unix()
	return time.Unix(sec, nsec), true
}
