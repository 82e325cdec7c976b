package resolve

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/internal/geocode"
	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/internal/metadata"
	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/pkg/types"
)

type stubExtractor struct {
	meta types.MediaMetadata
	err  error
}

func (s stubExtractor) Extract(ctx context.Context, entry types.FileEntry) (types.MediaMetadata, error) {
	return s.meta, s.err
}

type stubGeocoder struct {
	place  types.PlaceLabel
	err    error
	called int
}

func (s *stubGeocoder) Resolve(ctx context.Context, coord types.GeoCoordinate) (types.PlaceLabel, error) {
	s.called++
	return s.place, s.err
}

func fixedTimes(created, modified time.Time) func(string) metadata.FileTimes {
	return func(string) metadata.FileTimes {
		return metadata.FileTimes{Created: &created, Modified: &modified}
	}
}

func noTimes() func(string) metadata.FileTimes {
	return func(string) metadata.FileTimes { return metadata.FileTimes{} }
}

func TestResolve_ContainerTimeWinsOverFileTimes(t *testing.T) {
	captured := time.Date(2021, 6, 15, 14, 30, 0, 0, time.UTC)
	container := &stubGeocoder{place: geocode.UnknownPlace()}
	exifGPS := &stubGeocoder{}

	r := New(stubExtractor{meta: types.MediaMetadata{
		CaptureTime: &captured,
		Source:      "ffprobe:creation_time",
	}}, container, exifGPS, nil)
	r.statTimes = fixedTimes(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC))

	res, err := r.Resolve(context.Background(), types.FileEntry{Name: "clip.mp4"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if res.Timestamp == nil || !res.Timestamp.Equal(captured) {
		t.Errorf("expected container time to win, got %v", res.Timestamp)
	}
	if res.Place != nil {
		t.Error("no location data: place should be omitted entirely")
	}
}

func TestResolve_FallsBackToEarliestFileTime(t *testing.T) {
	created := time.Date(2020, 5, 1, 8, 0, 0, 0, time.UTC)
	modified := time.Date(2020, 7, 1, 8, 0, 0, 0, time.UTC)

	r := New(stubExtractor{meta: types.MediaMetadata{Error: "no EXIF data"}}, &stubGeocoder{}, &stubGeocoder{}, nil)
	r.statTimes = fixedTimes(created, modified)

	res, err := r.Resolve(context.Background(), types.FileEntry{Name: "photo.jpg"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if res.Timestamp == nil || !res.Timestamp.Equal(created) {
		t.Errorf("expected earlier file time, got %v", res.Timestamp)
	}
	if res.TimeSource != "filesystem:earliest" {
		t.Errorf("unexpected source: %s", res.TimeSource)
	}
}

func TestResolve_NoTimestampMeansNoGeocoding(t *testing.T) {
	container := &stubGeocoder{}
	exifGPS := &stubGeocoder{}

	// GPS data present, but no timestamp from any source.
	r := New(stubExtractor{meta: types.MediaMetadata{
		Coord: &types.GeoCoordinate{Lat: 48.8566, Lon: 2.3522},
	}}, container, exifGPS, nil)
	r.statTimes = noTimes()

	res, err := r.Resolve(context.Background(), types.FileEntry{Name: "photo.jpg"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if res.Timestamp != nil {
		t.Errorf("expected no timestamp, got %v", res.Timestamp)
	}
	if res.Place != nil {
		t.Error("expected no place without a timestamp")
	}
	if container.called != 0 || exifGPS.called != 0 {
		t.Error("geocoders must not be called without a timestamp")
	}
}

func TestResolve_ContainerLocationUsesContainerGeocoder(t *testing.T) {
	captured := time.Date(2022, 3, 10, 9, 0, 0, 0, time.UTC)
	container := &stubGeocoder{place: types.PlaceLabel{Region: "California", Country: "United States"}}
	exifGPS := &stubGeocoder{}

	r := New(stubExtractor{meta: types.MediaMetadata{
		CaptureTime: &captured,
		Source:      "ffprobe:creation_time",
		RawLocation: "+37.7749-122.4194/",
	}}, container, exifGPS, nil)
	r.statTimes = noTimes()

	res, err := r.Resolve(context.Background(), types.FileEntry{Name: "clip.mov"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if res.Place == nil || res.Place.Region != "California" {
		t.Errorf("unexpected place: %+v", res.Place)
	}
	if container.called != 1 || exifGPS.called != 0 {
		t.Errorf("wrong geocoder called: container=%d exif=%d", container.called, exifGPS.called)
	}
}

func TestResolve_EXIFGPSUsesRetryingGeocoder(t *testing.T) {
	captured := time.Date(2021, 6, 15, 14, 30, 0, 0, time.UTC)
	container := &stubGeocoder{}
	exifGPS := &stubGeocoder{place: types.PlaceLabel{Region: "Île-de-France", Country: "France"}}

	r := New(stubExtractor{meta: types.MediaMetadata{
		CaptureTime: &captured,
		Source:      "EXIF:DateTimeOriginal",
		Coord:       &types.GeoCoordinate{Lat: 48.8566, Lon: 2.3522},
	}}, container, exifGPS, nil)
	r.statTimes = noTimes()

	res, err := r.Resolve(context.Background(), types.FileEntry{Name: "paris.jpg"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if res.Place == nil || res.Place.Region != "Île-de-France" || res.Place.Country != "France" {
		t.Errorf("unexpected place: %+v", res.Place)
	}
	if container.called != 0 || exifGPS.called != 1 {
		t.Errorf("wrong geocoder called: container=%d exif=%d", container.called, exifGPS.called)
	}
}

func TestResolve_MalformedPackedLocationDropsPlace(t *testing.T) {
	captured := time.Date(2022, 3, 10, 9, 0, 0, 0, time.UTC)
	container := &stubGeocoder{}

	r := New(stubExtractor{meta: types.MediaMetadata{
		CaptureTime: &captured,
		Source:      "ffprobe:creation_time",
		RawLocation: "garbage",
	}}, container, &stubGeocoder{}, nil)
	r.statTimes = noTimes()

	res, err := r.Resolve(context.Background(), types.FileEntry{Name: "clip.mp4"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if res.Place != nil {
		t.Errorf("expected no place for malformed location tag, got %+v", res.Place)
	}
	if container.called != 0 {
		t.Error("geocoder must not see an unvalidated coordinate")
	}
	if res.Timestamp == nil {
		t.Error("timestamp resolution should be unaffected")
	}
}

func TestResolve_GeocodeFailureKeepsPlaceholders(t *testing.T) {
	captured := time.Date(2021, 6, 15, 14, 30, 0, 0, time.UTC)
	exifGPS := &stubGeocoder{place: geocode.UnknownPlace(), err: errors.New("gave up after 3 attempts")}

	r := New(stubExtractor{meta: types.MediaMetadata{
		CaptureTime: &captured,
		Coord:       &types.GeoCoordinate{Lat: 1, Lon: 2},
	}}, &stubGeocoder{}, exifGPS, nil)
	r.statTimes = noTimes()

	res, err := r.Resolve(context.Background(), types.FileEntry{Name: "photo.jpg"})
	if err != nil {
		t.Fatalf("geocode failure must not fail the file: %v", err)
	}

	if res.Place == nil || res.Place.Region != geocode.UnknownRegion || res.Place.Country != geocode.UnknownCountry {
		t.Errorf("expected unknown placeholders, got %+v", res.Place)
	}
}

func TestResolve_ProbeNotFoundPropagates(t *testing.T) {
	r := New(stubExtractor{err: metadata.ErrProbeNotFound}, &stubGeocoder{}, &stubGeocoder{}, nil)

	_, err := r.Resolve(context.Background(), types.FileEntry{Name: "clip.mp4"})
	if !errors.Is(err, metadata.ErrProbeNotFound) {
		t.Fatalf("expected fatal probe error to propagate, got %v", err)
	}
}
