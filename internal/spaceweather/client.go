// Package spaceweather gathers the live data shown alongside the capture
// archive: NOAA geomagnetic conditions and forecast, DSCOVR solar wind,
// OpenWeatherMap atmospheric forecast and the Clear Sky chart. Every fetch
// degrades to a placeholder on failure; callers never receive an error.
package spaceweather

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"go-skywatch-archive/internal/models"
)

// Fetcher holds the shared HTTP client and configuration for a run.
type Fetcher struct {
	cfg     *models.Config
	client  *http.Client
	offline bool
	loc     *time.Location

	// Overridable in tests.
	owmForecastURL string
	owmCurrentURL  string
	now            func() time.Time
}

// NewFetcher builds a Fetcher from the loaded config. A non-nil transport
// (the API logging transport, or a test stub) replaces the default one.
// With offline set, every network call is skipped and placeholder data is
// returned instead.
func NewFetcher(cfg *models.Config, transport http.RoundTripper, offline bool) *Fetcher {
	timeout := time.Duration(cfg.Advanced.RequestTimeoutSec) * time.Second
	client := &http.Client{Timeout: timeout}
	if transport != nil {
		client.Transport = transport
	}

	loc, err := time.LoadLocation(cfg.Location.Timezone)
	if err != nil {
		log.WithError(err).Warnf("Unknown timezone %q, using UTC", cfg.Location.Timezone)
		loc = time.UTC
	}

	return &Fetcher{
		cfg:            cfg,
		client:         client,
		offline:        offline,
		loc:            loc,
		owmForecastURL: owmForecastURL,
		owmCurrentURL:  owmCurrentURL,
		now:            time.Now,
	}
}

// get performs one GET with the configured User-Agent and returns the body.
func (f *Fetcher) get(url string) ([]byte, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.cfg.Advanced.UserAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// fetchJSON fetches url and unmarshals the body into v. Returns false on any
// failure, including offline mode.
func (f *Fetcher) fetchJSON(url string, v interface{}) bool {
	if f.offline {
		log.Debug("Skipping network request (offline mode)")
		return false
	}

	body, err := f.get(url)
	if err != nil {
		log.WithError(err).Errorf("Failed to fetch JSON from %s", url)
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		log.WithError(err).Errorf("Failed to parse JSON from %s", url)
		return false
	}
	return true
}

// fetchText fetches url and returns the body as a string, or "" on failure.
func (f *Fetcher) fetchText(url string) string {
	if f.offline {
		log.Debug("Skipping network request (offline mode)")
		return ""
	}

	body, err := f.get(url)
	if err != nil {
		log.WithError(err).Errorf("Failed to fetch text from %s", url)
		return ""
	}
	return string(body)
}
