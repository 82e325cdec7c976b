// Package resolve orchestrates the per-file metadata cascade: capture-time
// precedence across extractors, then location resolution, producing the
// final Resolution consumed by the planner.
package resolve

import (
	"context"
	"fmt"

	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/internal/geocode"
	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/internal/metadata"
	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/internal/parse"
	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/pkg/types"
)

// MetadataExtractor is what the resolver needs from internal/metadata.
type MetadataExtractor interface {
	Extract(ctx context.Context, entry types.FileEntry) (types.MediaMetadata, error)
}

// Logger receives non-fatal resolution notes (extraction shortfalls, geocode
// degradations). May be nil.
type Logger interface {
	Warn(msg string)
}

// Resolver runs the precedence cascade for one file at a time.
type Resolver struct {
	extractor MetadataExtractor
	container geocode.Geocoder
	exifGPS   geocode.Geocoder
	logger    Logger

	// statTimes is swapped out in tests.
	statTimes func(path string) metadata.FileTimes
}

// New wires the resolver. container handles packed container location tags
// (no retry); exifGPS handles EXIF GPS positions (retry with backoff). The
// two are never interchangeable.
func New(extractor MetadataExtractor, container, exifGPS geocode.Geocoder, logger Logger) *Resolver {
	return &Resolver{
		extractor: extractor,
		container: container,
		exifGPS:   exifGPS,
		logger:    logger,
		statTimes: metadata.StatTimes,
	}
}

// Resolve produces the (timestamp, place) pair for entry.
//
// Timestamp precedence: container creation_time, then EXIF DateTimeOriginal
// (both already applied by the extractor), then the earlier of the file's
// creation and modification times. No source at all means noMetadata
// routing: Timestamp stays nil and no geocoding is attempted.
//
// The returned error is non-nil only for the fatal missing-probe condition.
func (r *Resolver) Resolve(ctx context.Context, entry types.FileEntry) (types.Resolution, error) {
	meta, err := r.extractor.Extract(ctx, entry)
	if err != nil {
		return types.Resolution{}, err
	}
	if meta.Error != "" {
		r.warn(fmt.Sprintf("%s: %s", entry.Name, meta.Error))
	}

	res := types.Resolution{
		Timestamp:  meta.CaptureTime,
		TimeSource: meta.Source,
	}

	if res.Timestamp == nil {
		if earliest := r.statTimes(entry.Path).Earliest(); earliest != nil {
			res.Timestamp = earliest
			res.TimeSource = "filesystem:earliest"
		}
	}

	if res.Timestamp == nil {
		return res, nil
	}

	// Location is only resolved once a timestamp exists; without one the
	// file is routed to noMetadata under its original name and a place
	// label would never be used.
	switch {
	case meta.RawLocation != "":
		coord, err := parse.PackedLocation(meta.RawLocation)
		if err != nil {
			r.warn(fmt.Sprintf("%s: %v", entry.Name, err))
			break
		}
		place, err := r.container.Resolve(ctx, coord)
		if err != nil {
			r.warn(fmt.Sprintf("%s: %v", entry.Name, err))
		}
		res.Place = &place

	case meta.Coord != nil:
		place, err := r.exifGPS.Resolve(ctx, *meta.Coord)
		if err != nil {
			r.warn(fmt.Sprintf("%s: %v", entry.Name, err))
		}
		res.Place = &place
	}

	return res, nil
}

func (r *Resolver) warn(msg string) {
	if r.logger != nil {
		r.logger.Warn(msg)
	}
}
