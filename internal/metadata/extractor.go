// Package metadata pulls raw capture metadata out of media files. Each
// extractor degrades to an empty result with an Error message instead of
// failing; the single exception is the missing ffprobe executable, which is
// fatal to the whole run.
package metadata

import (
	"context"

	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/pkg/types"
)

// Extractor dispatches a file to the extractor responsible for its format.
type Extractor struct {
	probe *FFProbeExtractor
	exif  *EXIFExtractor
}

// New builds the dispatching extractor. ffprobePath is the configured
// location of the ffprobe binary (a bare name is looked up on PATH by the
// OS, but the process environment is never modified).
func New(ffprobePath string) *Extractor {
	return &Extractor{
		probe: NewFFProbeExtractor(ffprobePath),
		exif:  NewEXIFExtractor(),
	}
}

// Extract returns the raw metadata for entry. Videos, GIFs and HEIC go
// through the container probe; the remaining image formats through the EXIF
// reader. The returned error is non-nil only for ErrProbeNotFound.
func (e *Extractor) Extract(ctx context.Context, entry types.FileEntry) (types.MediaMetadata, error) {
	if types.UsesProbe(types.NormalizeExt(entry.Name)) {
		return e.probe.Extract(ctx, entry)
	}
	return e.exif.Extract(entry), nil
}
