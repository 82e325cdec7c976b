//go:build !linux && !darwin && !windows

package metadata

import (
	"os"
	"time"
)

func creationTime(info os.FileInfo) (time.Time, bool) {
	return time.Time{}, false
}
