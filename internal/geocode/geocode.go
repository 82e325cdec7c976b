// Package geocode resolves decimal-degree coordinates to a (region, country)
// pair via remote reverse-geocoding services.
//
// Two independent clients exist for the two location-source shapes: the
// packed container location tag goes through OpenCage (keyed, single
// attempt), EXIF GPS positions go through Nominatim (email-identified,
// retried with backoff). The two share nothing but the Geocoder interface.
package geocode

import (
	"context"
	"net/http"
	"time"

	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/pkg/types"
)

// Placeholder values used whenever resolution fails or a field is missing.
// They are first-class outputs, not errors.
const (
	UnknownRegion  = "UnknownState"
	UnknownCountry = "UnknownCountry"
)

// UnknownPlace returns the placeholder label.
func UnknownPlace() types.PlaceLabel {
	return types.PlaceLabel{Region: UnknownRegion, Country: UnknownCountry}
}

// Geocoder resolves a coordinate to a place label. Implementations always
// return a usable label; the error, when non-nil, exists only for logging
// and never aborts the batch.
type Geocoder interface {
	Resolve(ctx context.Context, coord types.GeoCoordinate) (types.PlaceLabel, error)
}

func defaultClient() *http.Client {
	return &http.Client{Timeout: 15 * time.Second}
}

func orUnknown(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}
