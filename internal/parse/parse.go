// Package parse converts raw metadata fragments into typed values. Pure
// functions, no I/O.
package parse

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/pkg/types"
)

// Container creation_time tags show up in two shapes: subsecond ISO-8601 with
// a trailing Z ("2021-06-15T14:30:00.000000Z") and the locale day-name form
// some recorders write ("Tue Jun 15 14:30:00 2021", i.e. time.ANSIC).
var containerTimeLayouts = []string{
	time.RFC3339Nano,
	time.ANSIC,
}

// ContainerTime parses a container creation_time tag value.
func ContainerTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty creation_time")
	}
	for _, layout := range containerTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format: %q", s)
}

// EXIFTime parses the EXIF DateTimeOriginal format.
func EXIFTime(s string) (time.Time, error) {
	return time.Parse("2006:01:02 15:04:05", strings.TrimSpace(s))
}

// PackedLocation parses the ISO6709-style location tag written by phone
// cameras: a sign-prefixed fixed-width payload, first 8 characters latitude,
// next 9 longitude, optionally wrapped in '/' (e.g. "+37.7749-122.4194/").
// Coordinates outside the valid ranges are rejected rather than passed
// through to the geocoder.
func PackedLocation(s string) (types.GeoCoordinate, error) {
	cleaned := strings.Trim(strings.TrimSpace(s), "/")
	if len(cleaned) < 17 {
		return types.GeoCoordinate{}, fmt.Errorf("location tag too short: %q", s)
	}

	lat, err := strconv.ParseFloat(cleaned[:8], 64)
	if err != nil {
		return types.GeoCoordinate{}, fmt.Errorf("bad latitude in location tag %q: %w", s, err)
	}
	lon, err := strconv.ParseFloat(cleaned[8:17], 64)
	if err != nil {
		return types.GeoCoordinate{}, fmt.Errorf("bad longitude in location tag %q: %w", s, err)
	}

	if lat < -90 || lat > 90 {
		return types.GeoCoordinate{}, fmt.Errorf("latitude out of range: %v", lat)
	}
	if lon < -180 || lon > 180 {
		return types.GeoCoordinate{}, fmt.Errorf("longitude out of range: %v", lon)
	}

	return types.GeoCoordinate{Lat: lat, Lon: lon}, nil
}
