package spaceweather

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"go-skywatch-archive/internal/helpers"
	"go-skywatch-archive/internal/models"
)

// clearSkyFilename is fixed so rsync to the web host overwrites in place.
const clearSkyFilename = "clearsky_chart.gif"

// DownloadClearSkyChart fetches the station's Clear Sky chart into outputDir
// and returns the page link with a cache-busting query. On any failure the
// zero chart is returned and the page omits the section.
func (f *Fetcher) DownloadClearSkyChart(outputDir string) models.ClearSkyChart {
	if f.offline {
		log.Debug("Skipping Clear Sky chart download (offline mode)")
		return models.ClearSkyChart{}
	}

	cs := f.cfg.DataSources.ClearSky
	chartURL := fmt.Sprintf("%s%s?c=1036836", cs.BaseURL, cs.Station)

	body, err := f.get(chartURL)
	if err != nil {
		log.WithError(err).Error("Failed to download Clear Sky chart")
		return models.ClearSkyChart{}
	}

	localPath := filepath.Join(outputDir, clearSkyFilename)
	if err := writeFileAtomic(localPath, body); err != nil {
		log.WithError(err).Errorf("Failed to write Clear Sky chart to %s", localPath)
		return models.ClearSkyChart{}
	}

	log.Infof("Downloaded Clear Sky chart to %s (%s)", localPath, helpers.BytesToSize(uint64(len(body))))

	title := cs.Title
	if title == "" {
		title = fmt.Sprintf("Clear Sky Chart for %s", f.cfg.Location.Name)
	}

	return models.ClearSkyChart{
		LocalFilename: clearSkyFilename,
		Link:          fmt.Sprintf("%s?v=%d", clearSkyFilename, f.now().UTC().Unix()),
		Title:         title,
		Alt:           "48-hour astronomical observing forecast",
	}
}

// writeFileAtomic writes via a temp file in the same directory, then
// renames. A crashed run never leaves a truncated chart for the web server.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
