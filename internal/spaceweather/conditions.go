package spaceweather

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"go-skywatch-archive/internal/models"
)

// NOAA's products endpoints return a table: the first row is the column
// headers, every following row is [time_tag, kp, status, noaa_scale].
type kpTable [][]interface{}

// latestObserved scans rows for the most recent entry marked "observed".
func (t kpTable) latestObserved() (timeTag string, kp float64, ok bool) {
	for _, row := range t[1:] {
		if len(row) < 3 {
			continue
		}
		status, _ := row[2].(string)
		if status != "observed" {
			continue
		}
		tag, _ := row[0].(string)
		if ok && tag <= timeTag {
			continue
		}
		value, err := cellFloat(row[1])
		if err != nil {
			log.WithError(err).Errorf("Could not parse Kp value: %v", row[1])
			continue
		}
		timeTag, kp, ok = tag, value, true
	}
	return timeTag, kp, ok
}

// cellFloat handles NOAA cells that arrive as either a JSON number or a
// numeric string depending on endpoint.
func cellFloat(cell interface{}) (float64, error) {
	switch v := cell.(type) {
	case float64:
		return v, nil
	case string:
		return strconv.ParseFloat(v, 64)
	}
	return strconv.ParseFloat("", 64)
}

// CurrentConditions fetches the present Kp index, trying the forecast JSON
// feed, then the K-index archive feed, then the daily geomagnetic indices
// text file. Any success is reported as active; total failure yields an
// offline placeholder.
func (f *Fetcher) CurrentConditions() models.CurrentConditions {
	noaa := f.cfg.DataSources.NOAA

	var table kpTable
	if f.fetchJSON(noaa.KpForecastURL, &table) && len(table) > 1 {
		if tag, kp, ok := table.latestObserved(); ok {
			log.Infof("Fetched Kp index %.2f from NOAA forecast feed", kp)
			return f.activeConditions(tag, kp)
		}
	}

	table = nil
	if f.fetchJSON(noaa.CurrentKpURL, &table) && len(table) > 1 {
		if tag, kp, ok := table.latestObserved(); ok {
			log.Infof("Fetched Kp index %.2f from NOAA archive feed", kp)
			return f.activeConditions(tag, kp)
		}
	}

	if text := f.fetchText(noaa.GeomagTextURL); text != "" {
		if kp := parseKpFromText(text); kp != nil {
			log.Infof("Parsed Kp index %.2f from NOAA text feed", *kp)
			return f.activeConditions(f.now().UTC().Format(time.RFC3339), *kp)
		}
	}

	log.Warn("No Kp data available from any NOAA source")
	return models.CurrentConditions{
		Timestamp:      f.now().UTC().Format(time.RFC3339),
		GScale:         GScaleFor(nil),
		AuroraActivity: "Data unavailable",
		SolarWind:      models.SolarWind{Status: models.StatusUnavailable},
		Status:         models.StatusOffline,
	}
}

func (f *Fetcher) activeConditions(timestamp string, kp float64) models.CurrentConditions {
	return models.CurrentConditions{
		Timestamp:      timestamp,
		KpIndex:        &kp,
		GScale:         GScaleFor(&kp),
		AuroraActivity: AuroraActivity(&kp),
		SolarWind:      f.solarWind(),
		Status:         models.StatusActive,
	}
}

var (
	// The daily geomagnetic indices file ends each row with the planetary
	// sum followed by the eight 3-hourly planetary Kp values; the first
	// decimal after the sum is the one we want.
	kpLinePattern = regexp.MustCompile(`\s+\d+\s+(\d+\.\d+)\s+-?\d+\.?\d*`)

	kpAltPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+\.\d+)\s*$`),
		regexp.MustCompile(`\s+(\d+\.\d+)\s+-?\d+`),
	}
)

// parseKpFromText extracts the most recent planetary Kp value from the NOAA
// daily geomagnetic indices text file. Values outside 0..9 are rejected.
func parseKpFromText(text string) *float64 {
	lines := strings.Split(text, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ":") {
			continue
		}

		patterns := append([]*regexp.Regexp{kpLinePattern}, kpAltPatterns...)
		for _, p := range patterns {
			m := p.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			value, err := strconv.ParseFloat(m[1], 64)
			if err != nil || value < 0 || value > 9 {
				continue
			}
			return &value
		}
	}
	return nil
}

// GScaleFor maps a Kp index onto the NOAA G-scale.
func GScaleFor(kp *float64) models.GScale {
	bracket := func(level string, min, max float64, desc string) models.GScale {
		return models.GScale{Level: level, KpMin: &min, KpMax: &max, Description: desc}
	}

	switch {
	case kp == nil:
		return models.GScale{Level: "G0", Description: "No storm activity"}
	case *kp >= 9:
		return bracket("G5", 9.0, 9.0, "Extreme Geomagnetic Storm")
	case *kp >= 8:
		return bracket("G4", 8.0, 8.99, "Severe Geomagnetic Storm")
	case *kp >= 7:
		return bracket("G3", 7.0, 7.99, "Strong Geomagnetic Storm")
	case *kp >= 6:
		return bracket("G2", 6.0, 6.99, "Moderate Geomagnetic Storm")
	case *kp >= 5:
		return bracket("G1", 5.0, 5.99, "Minor Geomagnetic Storm")
	default:
		return bracket("G0", 0.0, 4.99, "No storm activity")
	}
}

// AuroraActivity describes aurora visibility for a Kp index.
func AuroraActivity(kp *float64) string {
	switch {
	case kp == nil:
		return "Unknown"
	case *kp >= 7:
		return "Major Storm - Excellent aurora visibility"
	case *kp >= 6:
		return "Moderate Storm - Good aurora visibility"
	case *kp >= 5:
		return "Minor Storm - Possible aurora visibility"
	case *kp >= 4:
		return "Active - Aurora likely visible at high latitudes"
	case *kp >= 3:
		return "Quiet - Aurora may be visible overhead at high latitudes"
	default:
		return "Very Quiet - Unlikely aurora activity"
	}
}

// solarWind fetches the latest DSCOVR magnetometer reading.
func (f *Fetcher) solarWind() models.SolarWind {
	var rows []struct {
		TimeTag string   `json:"time_tag"`
		Bt      *float64 `json:"bt"`
		BzGsm   *float64 `json:"bz_gsm"`
	}

	if !f.fetchJSON(f.cfg.DataSources.NOAA.SolarWindURL, &rows) || len(rows) == 0 {
		return models.SolarWind{Status: models.StatusUnavailable}
	}

	latest := rows[0]
	return models.SolarWind{
		Bt:      latest.Bt,
		BzGsm:   latest.BzGsm,
		TimeTag: latest.TimeTag,
		Status:  models.StatusActive,
	}
}
