package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-skywatch-archive/internal/config"
	"go-skywatch-archive/internal/media"
	"go-skywatch-archive/internal/models"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()

	cfg := config.DefaultConfig()
	r, err := NewRenderer(&cfg)
	require.NoError(t, err, "embedded template must parse")

	r.now = func() time.Time {
		return time.Date(2024, time.June, 12, 18, 0, 0, 0, time.UTC)
	}
	return r
}

func sampleDays() []media.DayGroup {
	wednesday := time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)
	return []media.DayGroup{
		{
			Date:    wednesday,
			DayName: "Wednesday",
			AuroraVideo: &media.MediaFile{
				Name:      "AuroraCam_Wednesday.mp4",
				Kind:      media.KindAurora,
				SizeBytes: 2 << 20,
				Thumbnail: media.Thumbnail{Source: media.ThumbnailPlaceholder, Path: "images/placeholder-night.jpg"},
			},
			CloudVideo: &media.MediaFile{
				Name:      "CloudCam_Wednesday.mp4",
				Kind:      media.KindCloud,
				SizeBytes: 1 << 20,
				Thumbnail: media.Thumbnail{Source: media.ThumbnailSibling, Path: "CloudCam_Wednesday.thumbnail.jpg"},
			},
			SpaceweatherImage: &media.MediaFile{
				Name:      "SpaceWeather_Wednesday.gif",
				Kind:      media.KindSpaceWeather,
				Day:       "Wednesday",
				SizeBytes: 512 << 10,
			},
		},
	}
}

func sampleWeather() *models.WeatherData {
	kp := 5.33
	bt := 8.2
	return &models.WeatherData{
		Current: models.CurrentConditions{
			Timestamp:      "2024-06-12T15:00:00Z",
			KpIndex:        &kp,
			GScale:         models.GScale{Level: "G1", Description: "Minor Geomagnetic Storm"},
			AuroraActivity: "Minor Storm - Possible aurora visibility",
			SolarWind:      models.SolarWind{Bt: &bt, Status: models.StatusActive},
			Status:         models.StatusActive,
		},
		Forecast: []models.ForecastDay{
			{Day: "Thursday", Date: "June 13", KpForecast: "Kp 4.3", AuroraChance: "Active - Aurora likely visible at high latitudes", Status: models.StatusForecast},
		},
		SunTimes: models.SunTimes{
			Sunrise:     "5:10 AM",
			Sunset:      "8:45 PM",
			DayDuration: "15h 35m",
			CivilDawn:   "4:35 AM",
			CivilDusk:   "9:20 PM",
		},
		Moon: models.MoonData{PhaseName: "Waxing Crescent", PhasePercentage: 21.3},
		ClearSky: models.ClearSkyChart{
			LocalFilename: "clearsky_chart.gif",
			Link:          "clearsky_chart.gif?v=1718210000",
			Title:         "Clear Sky Chart",
			Alt:           "48-hour astronomical observing forecast",
		},
		LastUpdated: "2024-06-12T18:00:00Z",
		Source:      "NOAA Space Weather Prediction Center",
	}
}

func renderToString(t *testing.T, r *Renderer, data PageData) string {
	t.Helper()

	out := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, r.WriteIndex(out, data))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	return string(raw)
}

func TestWriteIndexFullPage(t *testing.T) {
	r := newTestRenderer(t)
	snapshot := &media.MediaFile{
		Name:       "snapshot.jpg",
		Kind:       media.KindSnapshot,
		CapturedAt: time.Date(2024, time.June, 12, 17, 55, 0, 0, time.UTC),
	}

	html := renderToString(t, r, r.PrepareData(sampleDays(), snapshot, sampleWeather()))

	assert.Contains(t, html, "<title>Aurora Skywatch Archive</title>")
	assert.Contains(t, html, "Gilman, Wisconsin")

	// Media section references files by bare name.
	assert.Contains(t, html, `src="AuroraCam_Wednesday.mp4"`)
	assert.Contains(t, html, `src="CloudCam_Wednesday.mp4"`)
	assert.Contains(t, html, `src="SpaceWeather_Wednesday.gif"`)
	assert.Contains(t, html, `src="snapshot.jpg"`)
	assert.Contains(t, html, "Wednesday, June 12, 2024")

	// Sibling thumbnails stay relative to the page, placeholders go
	// through the static tree.
	assert.Contains(t, html, `poster="CloudCam_Wednesday.thumbnail.jpg"`)
	assert.Contains(t, html, `poster="static/images/placeholder-night.jpg"`)

	// Weather block.
	assert.Contains(t, html, "Kp 5.33")
	assert.Contains(t, html, "G1 &mdash; Minor Geomagnetic Storm")
	assert.Contains(t, html, "Bt 8.2 nT")
	assert.Contains(t, html, "kp-storm")
	assert.Contains(t, html, "15h 35m")
	assert.Contains(t, html, "Waxing Crescent")
	assert.Contains(t, html, `src="clearsky_chart.gif?v=1718210000"`)

	assert.Contains(t, html, "2.00MB")
}

func TestWriteIndexWithoutWeather(t *testing.T) {
	r := newTestRenderer(t)

	html := renderToString(t, r, r.PrepareData(sampleDays(), nil, nil))

	assert.Contains(t, html, "Weekly Archive")
	assert.Contains(t, html, `src="AuroraCam_Wednesday.mp4"`)
	assert.NotContains(t, html, "Space Weather</h2>")
	assert.NotContains(t, html, "Current View")
}

func TestWriteIndexEmptyArchive(t *testing.T) {
	r := newTestRenderer(t)

	html := renderToString(t, r, r.PrepareData(nil, nil, nil))
	assert.Contains(t, html, "No captures available yet.")
}

func TestWriteIndexLeavesNoTempFiles(t *testing.T) {
	r := newTestRenderer(t)

	dir := t.TempDir()
	out := filepath.Join(dir, "index.html")
	require.NoError(t, r.WriteIndex(out, r.PrepareData(nil, nil, nil)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "only index.html should remain")
}

func TestKpClass(t *testing.T) {
	cases := []struct {
		kp   float64
		want string
	}{
		{1.0, "kp-quiet"},
		{4.0, "kp-active"},
		{5.0, "kp-storm"},
		{7.5, "kp-severe"},
	}
	for _, c := range cases {
		kp := c.kp
		assert.Equal(t, c.want, kpClass(&kp), "Kp %.1f", c.kp)
	}
	assert.Equal(t, "kp-unknown", kpClass(nil))
}

func TestThumbURL(t *testing.T) {
	assert.Equal(t, "", thumbURL(media.Thumbnail{}))
	assert.Equal(t, "AuroraCam_Monday.thumbnail.jpg",
		thumbURL(media.Thumbnail{Source: media.ThumbnailSibling, Path: "AuroraCam_Monday.thumbnail.jpg"}))
	assert.Equal(t, "static/images/placeholder-day.jpg",
		thumbURL(media.Thumbnail{Source: media.ThumbnailPlaceholder, Path: "images/placeholder-day.jpg"}))
}

func TestCopyStaticTree(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(src, "css"), 0700))
	require.NoError(t, os.WriteFile(filepath.Join(src, "css", "style.css"), []byte("body{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "favicon.ico"), []byte("icon"), 0644))

	copied, skipped, err := CopyStaticTree(src, out)
	require.NoError(t, err)
	assert.Equal(t, 2, copied)
	assert.Equal(t, 0, skipped)

	raw, err := os.ReadFile(filepath.Join(out, "static", "css", "style.css"))
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(raw))

	// Second run skips unchanged files.
	copied, skipped, err = CopyStaticTree(src, out)
	require.NoError(t, err)
	assert.Equal(t, 0, copied)
	assert.Equal(t, 2, skipped)

	// A changed source is copied again.
	require.NoError(t, os.WriteFile(filepath.Join(src, "css", "style.css"), []byte("body{margin:0}"), 0644))
	copied, skipped, err = CopyStaticTree(src, out)
	require.NoError(t, err)
	assert.Equal(t, 1, copied)
	assert.Equal(t, 1, skipped)
}

func TestCopyStaticTreeMissingSource(t *testing.T) {
	copied, skipped, err := CopyStaticTree(filepath.Join(t.TempDir(), "nope"), t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, copied)
	assert.Zero(t, skipped)
}

func TestWriteIndexEscapesSiteFields(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Site.Name = `Sky <script>alert("x")</script>`
	r, err := NewRenderer(&cfg)
	require.NoError(t, err)
	r.now = func() time.Time { return time.Date(2024, time.June, 12, 18, 0, 0, 0, time.UTC) }

	html := renderToString(t, r, r.PrepareData(nil, nil, nil))
	assert.NotContains(t, html, "<script>alert")
	assert.True(t, strings.Contains(html, "&lt;script&gt;") || strings.Contains(html, "&amp;lt;"))
}
