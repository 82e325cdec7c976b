package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/pkg/types"
)

const opencageBaseURL = "https://api.opencagedata.com/geocode/v1/json"

// OpenCage resolves coordinates through the OpenCage geocoding API. One GET,
// no retry; any failure degrades to the Unknown placeholders.
type OpenCage struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

// NewOpenCage returns a client keyed with apiKey.
func NewOpenCage(apiKey string) *OpenCage {
	return &OpenCage{
		APIKey:  apiKey,
		BaseURL: opencageBaseURL,
		Client:  defaultClient(),
	}
}

type opencageResponse struct {
	Results []struct {
		Components struct {
			State   string `json:"state"`
			Country string `json:"country"`
		} `json:"components"`
	} `json:"results"`
}

// Resolve performs a single reverse-geocoding lookup.
func (g *OpenCage) Resolve(ctx context.Context, coord types.GeoCoordinate) (types.PlaceLabel, error) {
	q := url.Values{}
	q.Set("q", formatCoord(coord.Lat)+" "+formatCoord(coord.Lon))
	q.Set("key", g.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return UnknownPlace(), err
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return UnknownPlace(), fmt.Errorf("opencage request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return UnknownPlace(), fmt.Errorf("opencage returned status %d", resp.StatusCode)
	}

	var body opencageResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return UnknownPlace(), fmt.Errorf("opencage response decode failed: %w", err)
	}

	if len(body.Results) == 0 {
		return UnknownPlace(), nil
	}

	components := body.Results[0].Components
	return types.PlaceLabel{
		Region:  orUnknown(components.State, UnknownRegion),
		Country: orUnknown(components.Country, UnknownCountry),
	}, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
