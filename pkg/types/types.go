// Package types defines core data structures used across mediasort modules.
package types

import (
	"path/filepath"
	"strings"
	"time"
)

// MediaKind classifies a file by its extension. The string value doubles as
// the destination subfolder name ("images", "videos").
type MediaKind string

const (
	MediaImage MediaKind = "images"
	MediaVideo MediaKind = "videos"
	// MediaOther is any unrecognized extension; routed to the noMetadata root.
	MediaOther MediaKind = "other"
)

// Video containers handled by the ffprobe extractor. GIF rides along with the
// videos because its metadata lives in the container, not in an EXIF segment.
var videoExtensions = map[string]bool{
	"mp4": true, "mov": true, "avi": true, "mkv": true, "flv": true, "gif": true,
}

// Still-image formats read through the EXIF tag table.
var exifImageExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "bmp": true, "tiff": true,
}

// NormalizeExt returns the lowercase extension of name without the leading dot.
func NormalizeExt(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}

// KindForExt maps a normalized extension to a MediaKind.
func KindForExt(ext string) MediaKind {
	switch {
	case videoExtensions[ext]:
		return MediaVideo
	case exifImageExtensions[ext], ext == "heic":
		return MediaImage
	default:
		return MediaOther
	}
}

// UsesProbe reports whether metadata for this extension comes from the
// container probe. HEIC is an image but carries its creation time in the
// container, so it is probed rather than EXIF-decoded.
func UsesProbe(ext string) bool {
	return videoExtensions[ext] || ext == "heic"
}

// FileEntry represents a scanned file.
type FileEntry struct {
	// Path is the absolute path to the source file.
	Path string
	// Name is the base filename.
	Name string
	// Ext is the original extension including the dot, case preserved.
	// It is appended verbatim to renamed files.
	Ext string
	// Size is the file size in bytes.
	Size int64
	// ModTime is the file modification time.
	ModTime time.Time
	// Kind is the media classification derived from the extension.
	Kind MediaKind
}

// GeoCoordinate is a position in signed decimal degrees.
type GeoCoordinate struct {
	Lat float64
	Lon float64
}

// PlaceLabel is the display form of a resolved location. The Unknown
// placeholders are valid values, not errors.
type PlaceLabel struct {
	Region  string
	Country string
}

// MediaMetadata contains raw metadata pulled from a media file by exactly one
// extractor. Absent fields are normal; Error records why extraction came up
// short without aborting anything.
type MediaMetadata struct {
	// CaptureTime is the shooting/creation time, nil if none was found.
	CaptureTime *time.Time
	// Source indicates where the capture time came from
	// (e.g. "ffprobe:creation_time", "EXIF:DateTimeOriginal").
	Source string
	// Coord is the decoded EXIF GPS position, nil if absent.
	Coord *GeoCoordinate
	// RawLocation is the packed container location tag, empty if absent.
	RawLocation string
	// Error contains the extraction failure message if any.
	Error string
}

// Resolution is the outcome of the capture-time and location cascade for one
// file. A nil Timestamp means noMetadata routing; a nil Place means no
// location segment is appended to the filename at all.
type Resolution struct {
	Timestamp  *time.Time
	TimeSource string
	Place      *PlaceLabel
}

// CopyTask represents a planned file copy operation.
type CopyTask struct {
	Source     FileEntry
	Resolution Resolution
	// DestDir is the destination directory.
	DestDir string
	// DestPath is the full destination file path.
	DestPath string
	// Renamed is true when the file got a timestamp-derived name.
	Renamed bool
	// Action indicates what the copier did (or would do).
	Action CopyAction
	// Error contains the failure message if the task failed.
	Error string
}

// CopyAction represents the action taken for a file.
type CopyAction string

const (
	CopyActionCopied      CopyAction = "copied"
	CopyActionSkipped     CopyAction = "skipped"
	CopyActionRenamed     CopyAction = "renamed"
	CopyActionOverwritten CopyAction = "overwritten"
	CopyActionQuarantined CopyAction = "quarantined"
	CopyActionFailed      CopyAction = "failed"
)

// ConflictPolicy defines how to handle destination filename collisions.
type ConflictPolicy string

const (
	ConflictPolicySkip       ConflictPolicy = "skip"
	ConflictPolicyRename     ConflictPolicy = "rename"
	ConflictPolicyOverwrite  ConflictPolicy = "overwrite"
	ConflictPolicyQuarantine ConflictPolicy = "quarantine"
)

// RunSummary contains statistics for a completed run.
type RunSummary struct {
	ScannedFiles int
	Organized    int
	NoMetadata   int
	Unrecognized int
	Skipped      int
	Quarantined  int
	Failed       int
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	BytesCopied  int64
}
