package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/pkg/types"
)

const nominatimBaseURL = "https://nominatim.openstreetmap.org/search"

// Nominatim's usage policy requires an identifying email parameter and a
// browser-like User-Agent; rate-limited callers get 403s, which we back off
// from and retry.
const nominatimUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3"

// Nominatim resolves coordinates through the OpenStreetMap Nominatim API
// with up to Retries attempts and exponential backoff starting at BaseDelay.
type Nominatim struct {
	Email     string
	BaseURL   string
	Client    *http.Client
	Retries   int
	BaseDelay time.Duration

	// sleep is swapped out in tests.
	sleep func(time.Duration)
}

// NewNominatim returns a client identified by email.
func NewNominatim(email string) *Nominatim {
	return &Nominatim{
		Email:     email,
		BaseURL:   nominatimBaseURL,
		Client:    defaultClient(),
		Retries:   3,
		BaseDelay: time.Second,
		sleep:     time.Sleep,
	}
}

type nominatimResult struct {
	Address struct {
		State   string `json:"state"`
		Country string `json:"country"`
	} `json:"address"`
}

// Resolve performs a reverse-geocoding lookup, retrying on 403 and on
// generic network/parse failures. After exhausting retries it returns the
// Unknown placeholders together with the last error.
func (g *Nominatim) Resolve(ctx context.Context, coord types.GeoCoordinate) (types.PlaceLabel, error) {
	delay := g.BaseDelay
	var lastErr error

	for attempt := 0; attempt < g.Retries; attempt++ {
		place, err := g.lookup(ctx, coord)
		if err == nil {
			return place, nil
		}
		lastErr = err

		if attempt == g.Retries-1 {
			break
		}
		// A 403 means we are being throttled; other HTTP errors are retried
		// immediately, everything else backs off too.
		var statusErr *statusError
		if errors.As(err, &statusErr) && statusErr.code != http.StatusForbidden {
			continue
		}
		g.doSleep(delay)
		delay *= 2
	}

	return UnknownPlace(), fmt.Errorf("nominatim gave up after %d attempts: %w", g.Retries, lastErr)
}

func (g *Nominatim) lookup(ctx context.Context, coord types.GeoCoordinate) (types.PlaceLabel, error) {
	q := url.Values{}
	q.Set("q", fmt.Sprintf("%s, %s", formatCoord(coord.Lat), formatCoord(coord.Lon)))
	q.Set("format", "jsonv2")
	q.Set("addressdetails", "1")
	q.Set("limit", "1")
	q.Set("email", g.Email)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return UnknownPlace(), err
	}
	req.Header.Set("User-Agent", nominatimUserAgent)

	resp, err := g.Client.Do(req)
	if err != nil {
		return UnknownPlace(), fmt.Errorf("nominatim request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return UnknownPlace(), &statusError{code: resp.StatusCode}
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return UnknownPlace(), fmt.Errorf("nominatim response decode failed: %w", err)
	}

	// An empty result set is a terminal answer, not a failure to retry.
	if len(results) == 0 {
		return UnknownPlace(), nil
	}

	addr := results[0].Address
	return types.PlaceLabel{
		Region:  orUnknown(addr.State, UnknownRegion),
		Country: orUnknown(addr.Country, UnknownCountry),
	}, nil
}

func (g *Nominatim) doSleep(d time.Duration) {
	if g.sleep != nil {
		g.sleep(d)
		return
	}
	time.Sleep(d)
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("nominatim returned status %d", e.code)
}
