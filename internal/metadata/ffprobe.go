package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"

	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/internal/parse"
	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/pkg/types"
)

// ErrProbeNotFound aborts the entire run: without the container probe every
// video would silently lose its metadata.
var ErrProbeNotFound = errors.New("ffprobe executable not found")

// FFProbeExtractor shells out to ffprobe for container-level metadata.
type FFProbeExtractor struct {
	binPath string
}

// NewFFProbeExtractor returns an extractor using the ffprobe binary at
// binPath ("ffprobe" resolves via PATH).
func NewFFProbeExtractor(binPath string) *FFProbeExtractor {
	if binPath == "" {
		binPath = "ffprobe"
	}
	return &FFProbeExtractor{binPath: binPath}
}

// CheckBinary verifies the configured ffprobe executable exists.
func (e *FFProbeExtractor) CheckBinary() error {
	if _, err := exec.LookPath(e.binPath); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrProbeNotFound, e.binPath, err)
	}
	return nil
}

type probeOutput struct {
	Format struct {
		Tags map[string]string `json:"tags"`
	} `json:"format"`
}

// Extract probes the container and returns its creation_time and location
// tags. A probe run that succeeds but carries no creation_time is a normal
// result with the field absent, not an error.
func (e *FFProbeExtractor) Extract(ctx context.Context, entry types.FileEntry) (types.MediaMetadata, error) {
	cmd := exec.CommandContext(ctx, e.binPath,
		"-v", "error",
		"-show_format", "-show_streams",
		"-print_format", "json",
		entry.Path)

	out, err := cmd.Output()
	if err != nil {
		var execErr *exec.Error
		if (errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound)) || errors.Is(err, fs.ErrNotExist) {
			return types.MediaMetadata{}, fmt.Errorf("%w: %q", ErrProbeNotFound, e.binPath)
		}
		return types.MediaMetadata{Error: "ffprobe failed: " + err.Error()}, nil
	}

	var probed probeOutput
	if err := json.Unmarshal(out, &probed); err != nil {
		return types.MediaMetadata{Error: "failed to parse ffprobe output: " + err.Error()}, nil
	}

	meta := types.MediaMetadata{
		RawLocation: probed.Format.Tags["location"],
	}

	raw := probed.Format.Tags["creation_time"]
	if raw == "" {
		meta.Error = "no creation_time tag in container"
		return meta, nil
	}

	t, err := parse.ContainerTime(raw)
	if err != nil {
		meta.Error = err.Error()
		return meta, nil
	}

	meta.CaptureTime = &t
	meta.Source = "ffprobe:creation_time"
	return meta, nil
}
