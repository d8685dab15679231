package spaceweather

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-skywatch-archive/internal/config"
	"go-skywatch-archive/internal/models"
)

// newTestFetcher returns an online fetcher pinned to 2025-11-11 12:00 local
// time in the default config's timezone.
func newTestFetcher(t *testing.T) *Fetcher {
	t.Helper()

	cfg := config.DefaultConfig()
	f := NewFetcher(&cfg, nil, false)
	f.now = func() time.Time {
		return time.Date(2025, time.November, 11, 18, 0, 0, 0, time.UTC)
	}
	return f
}

func TestForecastFromJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			["time_tag","kp","observed","noaa_scale"],
			["2025-11-11 21:00:00","4.33","observed",null],
			["2025-11-12 00:00:00","5.00","predicted","G1"],
			["2025-11-12 03:00:00","7.33","predicted","G3"],
			["2025-11-13 00:00:00","6.67","estimated","G2"],
			["2025-11-13 03:00:00","6.33","predicted","G2"]
		]`))
	}))
	defer srv.Close()

	f := newTestFetcher(t)
	f.cfg.DataSources.NOAA.KpForecastURL = srv.URL

	days := f.Forecast()
	if len(days) != 3 {
		t.Fatalf("expected 3 forecast days, got %d", len(days))
	}

	if days[0].Day != "Wednesday" || days[0].KpForecast != "Kp 7.3" {
		t.Errorf("day 1: expected Wednesday peak Kp 7.3, got %s %s", days[0].Day, days[0].KpForecast)
	}
	if days[0].Status != models.StatusForecast {
		t.Errorf("day 1: expected forecast status, got %s", days[0].Status)
	}
	if days[1].Day != "Thursday" || days[1].KpForecast != "Kp 6.7" {
		t.Errorf("day 2: expected Thursday peak Kp 6.7, got %s %s", days[1].Day, days[1].KpForecast)
	}

	// Only two dates in the feed; the third day is a placeholder.
	if days[2].Status != models.StatusUnavailable {
		t.Errorf("day 3: expected unavailable placeholder, got %+v", days[2])
	}
	if days[2].KpForecast != "" {
		t.Errorf("day 3: expected no Kp forecast, got %s", days[2].KpForecast)
	}
}

func TestForecastObservedRowsExcluded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			["time_tag","kp","observed","noaa_scale"],
			["2025-11-12 00:00:00","9.00","observed",null]
		]`))
	}))
	defer srv.Close()

	f := newTestFetcher(t)
	f.cfg.DataSources.NOAA.KpForecastURL = srv.URL
	f.cfg.DataSources.NOAA.ForecastURL = srv.URL + "/missing"

	days := f.Forecast()
	if len(days) != 3 {
		t.Fatalf("expected 3 forecast days, got %d", len(days))
	}
	for _, d := range days {
		if d.Status == models.StatusForecast {
			t.Errorf("observed-only feed should not produce forecast rows: %+v", d)
		}
	}
}

func TestParse3DayForecastText(t *testing.T) {
	sample := `:Product: 3-Day Forecast
:Issued: 2025 Nov 11 1230 UTC

NOAA Kp index breakdown Nov 12-Nov 14 2025

             Nov 12       Nov 13       Nov 14
00-03UT       5.00 (G1)    6.67 (G3)    4.67 (G1)
03-06UT       7.33 (G3)    6.33 (G2)    4.00
18-21UT       8.00         8.33         8.67
Rationale: G3 conditions are likely on 12 Nov.
`

	f := newTestFetcher(t)
	days := f.parse3DayForecast(sample)
	if len(days) != 3 {
		t.Fatalf("expected 3 forecast days, got %d", len(days))
	}

	// 00-06UT falls in November night at this longitude; 18-21UT is
	// daylight and must not win even with higher values.
	if days[0].KpForecast != "Kp 7.3" {
		t.Errorf("day 1: expected nighttime peak Kp 7.3, got %s", days[0].KpForecast)
	}
	if days[1].KpForecast != "Kp 6.7" {
		t.Errorf("day 2: expected nighttime peak Kp 6.7, got %s", days[1].KpForecast)
	}
	if days[2].KpForecast != "Kp 4.7" {
		t.Errorf("day 3: expected nighttime peak Kp 4.7, got %s", days[2].KpForecast)
	}

	if days[0].Day != "Wednesday" {
		t.Errorf("day 1: expected Wednesday, got %s", days[0].Day)
	}
}

func TestParse3DayForecastNoTable(t *testing.T) {
	f := newTestFetcher(t)
	if days := f.parse3DayForecast("no forecast table here"); days != nil {
		t.Errorf("expected nil for text without a Kp table, got %+v", days)
	}
}

func TestForecastOffline(t *testing.T) {
	cfg := config.DefaultConfig()
	f := NewFetcher(&cfg, nil, true)
	f.now = func() time.Time {
		return time.Date(2025, time.November, 11, 18, 0, 0, 0, time.UTC)
	}

	days := f.Forecast()
	if len(days) != 3 {
		t.Fatalf("expected 3 placeholder days, got %d", len(days))
	}
	for i, d := range days {
		if d.Status != models.StatusOffline {
			t.Errorf("day %d: expected offline status, got %s", i+1, d.Status)
		}
		if d.AuroraChance != "Data unavailable" {
			t.Errorf("day %d: expected placeholder chance, got %s", i+1, d.AuroraChance)
		}
	}
	if days[0].Day != "Wednesday" {
		t.Errorf("expected placeholder days to start tomorrow, got %s", days[0].Day)
	}
}

func TestCurrentConditionsOffline(t *testing.T) {
	cfg := config.DefaultConfig()
	f := NewFetcher(&cfg, nil, true)

	current := f.CurrentConditions()
	if current.Status != models.StatusOffline {
		t.Errorf("expected offline status, got %s", current.Status)
	}
	if current.KpIndex != nil {
		t.Errorf("expected no Kp index, got %v", *current.KpIndex)
	}
	if current.GScale.Level != "G0" {
		t.Errorf("expected G0 placeholder, got %s", current.GScale.Level)
	}
}

func TestCurrentConditionsTextFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/geomag.txt":
			w.Write([]byte("2025 11 12    -1  7-1-1-1-1-1-1-1    -1  7-1-1-1-1-1-1-1    44   5.67 -1.00\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := newTestFetcher(t)
	f.cfg.DataSources.NOAA.KpForecastURL = srv.URL + "/missing1"
	f.cfg.DataSources.NOAA.CurrentKpURL = srv.URL + "/missing2"
	f.cfg.DataSources.NOAA.GeomagTextURL = srv.URL + "/geomag.txt"
	f.cfg.DataSources.NOAA.SolarWindURL = srv.URL + "/missing3"

	current := f.CurrentConditions()
	if current.Status != models.StatusActive {
		t.Fatalf("expected active status from text fallback, got %s", current.Status)
	}
	if current.KpIndex == nil || *current.KpIndex != 5.67 {
		t.Errorf("expected Kp 5.67, got %v", current.KpIndex)
	}
	if current.GScale.Level != "G1" {
		t.Errorf("expected G1, got %s", current.GScale.Level)
	}
	if current.SolarWind.Status != models.StatusUnavailable {
		t.Errorf("expected unavailable solar wind, got %s", current.SolarWind.Status)
	}
}
