// Package render turns the processed media groups and fetched weather data
// into the published index.html, and syncs the static asset tree alongside
// it.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"go-skywatch-archive/internal/helpers"
	"go-skywatch-archive/internal/media"
	"go-skywatch-archive/internal/models"
)

//go:embed templates/index.html.tmpl
var templateFS embed.FS

// PageData is everything the index template sees for one run.
type PageData struct {
	Site     models.SiteConfig
	Location models.LocationConfig
	Days     []media.DayGroup
	Snapshot *media.MediaFile
	Weather  *models.WeatherData

	ShowTwilight bool
	GeneratedAt  string
	Year         int
}

type Renderer struct {
	cfg  *models.Config
	tmpl *template.Template
	loc  *time.Location

	now func() time.Time
}

// NewRenderer parses the embedded template against the display settings in
// cfg.
func NewRenderer(cfg *models.Config) (*Renderer, error) {
	loc, err := time.LoadLocation(cfg.Location.Timezone)
	if err != nil {
		log.WithError(err).Warnf("Unknown timezone %q, using UTC", cfg.Location.Timezone)
		loc = time.UTC
	}

	r := &Renderer{cfg: cfg, loc: loc, now: time.Now}

	funcs := template.FuncMap{
		"formatSize": func(size int64) string {
			if size < 0 {
				return ""
			}
			return helpers.BytesToSize(uint64(size))
		},
		"formatDate": func(t time.Time) string {
			return t.Format(cfg.Display.DateFormat)
		},
		"formatTime": func(t time.Time) string {
			return t.In(loc).Format(cfg.Display.TimeFormat)
		},
		"kpClass":  kpClass,
		"thumbURL": thumbURL,
		// Optional readings arrive as pointers; format or vanish.
		"fmtFloat": func(v *float64, precision int) string {
			if v == nil {
				return ""
			}
			return fmt.Sprintf("%.*f", precision, *v)
		},
	}

	tmpl, err := template.New("index.html.tmpl").Funcs(funcs).ParseFS(templateFS, "templates/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	r.tmpl = tmpl

	return r, nil
}

// kpClass picks the CSS class for a Kp reading so the page can color-code
// activity at a glance.
func kpClass(kp *float64) string {
	switch {
	case kp == nil:
		return "kp-unknown"
	case *kp >= 7:
		return "kp-severe"
	case *kp >= 5:
		return "kp-storm"
	case *kp >= 4:
		return "kp-active"
	default:
		return "kp-quiet"
	}
}

// thumbURL resolves a thumbnail to the URL the page should use. Sibling
// thumbnails live next to the media files, placeholders under the copied
// static tree.
func thumbURL(t media.Thumbnail) string {
	switch t.Source {
	case media.ThumbnailSibling:
		return t.Path
	case media.ThumbnailPlaceholder:
		return "static/" + t.Path
	}
	return ""
}

// PrepareData assembles PageData from the run's inputs.
func (r *Renderer) PrepareData(days []media.DayGroup, snapshot *media.MediaFile, weather *models.WeatherData) PageData {
	now := r.now().In(r.loc)
	return PageData{
		Site:         r.cfg.Site,
		Location:     r.cfg.Location,
		Days:         days,
		Snapshot:     snapshot,
		Weather:      weather,
		ShowTwilight: r.cfg.Display.ShowTwilightBreakdown,
		GeneratedAt:  now.Format(r.cfg.Display.TimeFormat),
		Year:         now.Year(),
	}
}

// WriteIndex renders the page and writes it to outputPath via a temp file in
// the same directory, so the web server never serves a half-written page.
func (r *Renderer) WriteIndex(outputPath string, data PageData) error {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if !helpers.CheckAndMakeDir(dir) {
		return fmt.Errorf("cannot create output directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(outputPath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write page: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), outputPath); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to move page into place: %w", err)
	}

	log.Infof("Wrote %s (%s)", outputPath, helpers.BytesToSize(uint64(buf.Len())))
	return nil
}
