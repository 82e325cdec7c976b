package metadata

import (
	"os"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/internal/parse"
	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/pkg/types"
)

// EXIFExtractor reads the embedded EXIF tag table of still images.
type EXIFExtractor struct{}

func NewEXIFExtractor() *EXIFExtractor {
	return &EXIFExtractor{}
}

// Extract returns DateTimeOriginal and the GPS position when present. Any
// read failure (corrupt file, no EXIF segment) yields an empty result with
// the Error field set; the cascade falls back from there.
func (e *EXIFExtractor) Extract(entry types.FileEntry) types.MediaMetadata {
	f, err := os.Open(entry.Path)
	if err != nil {
		return types.MediaMetadata{Error: err.Error()}
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return types.MediaMetadata{Error: "no EXIF data: " + err.Error()}
	}

	var meta types.MediaMetadata

	if tag, err := x.Get(exif.DateTimeOriginal); err == nil {
		if s, err := tag.StringVal(); err == nil {
			if t, err := parse.EXIFTime(s); err == nil {
				meta.CaptureTime = &t
				meta.Source = "EXIF:DateTimeOriginal"
			}
		}
	}

	// LatLong decodes the degrees/minutes/seconds rationals and applies the
	// hemisphere signs from GPSLatitudeRef/GPSLongitudeRef.
	if lat, lon, err := x.LatLong(); err == nil {
		meta.Coord = &types.GeoCoordinate{Lat: lat, Lon: lon}
	}

	if meta.CaptureTime == nil && meta.Coord == nil {
		meta.Error = "no capture time or GPS info in EXIF"
	}
	return meta
}
