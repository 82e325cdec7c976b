package metadata

import (
	"os"
	"time"
)

// FileTimes holds the filesystem timestamps of a source file. Either field
// is nil only when the OS could not supply it.
type FileTimes struct {
	Created  *time.Time
	Modified *time.Time
}

// Earliest returns the earlier of the two timestamps, or nil unless both are
// known. The earlier bound is the best approximation of original capture
// when metadata was stripped and a later sync re-touched mtime.
func (ft FileTimes) Earliest() *time.Time {
	if ft.Created == nil || ft.Modified == nil {
		return nil
	}
	if ft.Created.Before(*ft.Modified) {
		return ft.Created
	}
	return ft.Modified
}

// StatTimes reads the platform-native creation and modification times of
// path. Both fields come back nil on a stat failure.
func StatTimes(path string) FileTimes {
	info, err := os.Stat(path)
	if err != nil {
		return FileTimes{}
	}

	mod := info.ModTime()
	ft := FileTimes{Modified: &mod}
	if created, ok := creationTime(info); ok {
		ft.Created = &created
	}
	return ft
}
