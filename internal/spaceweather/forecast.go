package spaceweather

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"go-skywatch-archive/internal/astro"
	"go-skywatch-archive/internal/models"
)

const forecastDateFormat = "January 02"

// Forecast builds the 3-day aurora outlook. The JSON forecast feed is
// preferred; the 3-day text forecast is the fallback, and an offline
// placeholder covers total failure. The result always has exactly three
// entries.
func (f *Fetcher) Forecast() []models.ForecastDay {
	if days := f.forecastFromJSON(); days != nil {
		return f.padForecast(days)
	}

	log.Info("JSON forecast unavailable, trying text endpoint")
	if text := f.fetchText(f.cfg.DataSources.NOAA.ForecastURL); text != "" {
		if days := f.parse3DayForecast(text); days != nil {
			log.Infof("Parsed %d day forecast from NOAA text", len(days))
			return f.padForecast(days)
		}
	}

	log.Warn("No forecast data available from NOAA")
	return f.fallbackForecast(models.StatusOffline)
}

// forecastFromJSON reduces the 3-hourly forecast feed to a peak predicted Kp
// per future date. Observed rows and today's rows are excluded.
func (f *Fetcher) forecastFromJSON() []models.ForecastDay {
	var table kpTable
	if !f.fetchJSON(f.cfg.DataSources.NOAA.KpForecastURL, &table) || len(table) < 2 {
		return nil
	}

	today := f.now().In(f.loc).Format("2006-01-02")
	peaks := map[string]float64{}

	for _, row := range table[1:] {
		if len(row) < 3 {
			continue
		}
		status, _ := row[2].(string)
		if status != "predicted" && status != "estimated" {
			continue
		}
		tag, _ := row[0].(string)
		ts, err := time.Parse("2006-01-02 15:04:05", tag)
		if err != nil {
			log.WithError(err).Debugf("Could not parse forecast timestamp %q", tag)
			continue
		}
		dateKey := ts.Format("2006-01-02")
		if dateKey <= today {
			continue
		}
		kp, err := cellFloat(row[1])
		if err != nil {
			continue
		}
		if kp > peaks[dateKey] {
			peaks[dateKey] = kp
		}
	}

	if len(peaks) == 0 {
		return nil
	}

	dates := make([]string, 0, len(peaks))
	for d := range peaks {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	if len(dates) > 3 {
		dates = dates[:3]
	}

	result := make([]models.ForecastDay, 0, 3)
	for _, d := range dates {
		kp := peaks[d]
		date, _ := time.Parse("2006-01-02", d)
		result = append(result, models.ForecastDay{
			Day:          date.Weekday().String(),
			Date:         date.Format(forecastDateFormat),
			KpForecast:   fmt.Sprintf("Kp %.1f", kp),
			AuroraChance: AuroraActivity(&kp),
			Status:       models.StatusForecast,
		})
	}

	log.Infof("Generated %d day forecast from NOAA JSON", len(result))
	return result
}

var (
	forecastSlotPattern = regexp.MustCompile(`(\d{2})-\d{2}UT`)
	forecastKpPattern   = regexp.MustCompile(`\b\d+\.\d+\b`)
)

// parse3DayForecast reads the Kp breakdown table out of the NOAA 3-day text
// forecast. Each line covers one 3-hour UT slot across three days; the
// forecast for a day is the peak Kp during local nighttime, falling back to
// the day's maximum when no slot is dark.
func (f *Fetcher) parse3DayForecast(text string) []models.ForecastDay {
	lines := strings.Split(text, "\n")

	var slotLines []string
	inTable := false
	for _, line := range lines {
		if strings.Contains(line, "NOAA Kp index breakdown") {
			inTable = true
			continue
		}
		if !inTable {
			continue
		}
		if strings.Contains(line, "Rationale") {
			break
		}
		if forecastSlotPattern.MatchString(line) {
			slotLines = append(slotLines, line)
		}
	}

	if len(slotLines) == 0 {
		log.Warn("Could not find forecast data table")
		return nil
	}

	// slots[dayIdx] collects (utcHour, kp) pairs for that forecast day.
	type slot struct {
		hour int
		kp   float64
	}
	slots := map[int][]slot{}

	for _, line := range slotLines {
		m := forecastSlotPattern.FindStringSubmatch(line)
		hour, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		for dayIdx, kpStr := range forecastKpPattern.FindAllString(line, 3) {
			kp, err := strconv.ParseFloat(kpStr, 64)
			if err != nil {
				continue
			}
			slots[dayIdx] = append(slots[dayIdx], slot{hour: hour, kp: kp})
		}
	}

	now := f.now().In(f.loc)
	var result []models.ForecastDay

	for dayIdx := 0; dayIdx < 3; dayIdx++ {
		daySlots := slots[dayIdx]
		if len(daySlots) == 0 {
			continue
		}

		forecastDate := now.AddDate(0, 0, dayIdx+1)
		sun := astro.Sun(f.cfg.Location.Latitude, f.cfg.Location.Longitude, forecastDate)

		peak, found := 0.0, false
		for _, s := range daySlots {
			at := time.Date(forecastDate.Year(), forecastDate.Month(), forecastDate.Day(), s.hour, 0, 0, 0, time.UTC)
			if astro.IsNight(at, sun) && s.kp > peak {
				peak, found = s.kp, true
			}
		}
		if !found {
			log.Warnf("No nighttime Kp slots for %s, using daytime maximum", forecastDate.Format("2006-01-02"))
			for _, s := range daySlots {
				if s.kp > peak {
					peak = s.kp
				}
			}
		}

		result = append(result, models.ForecastDay{
			Day:          forecastDate.Weekday().String(),
			Date:         forecastDate.Format(forecastDateFormat),
			KpForecast:   fmt.Sprintf("Kp %.1f", peak),
			AuroraChance: AuroraActivity(&peak),
			Status:       models.StatusForecast,
		})
	}

	return result
}

// padForecast fills trailing placeholder days so the outlook is always three
// entries long.
func (f *Fetcher) padForecast(days []models.ForecastDay) []models.ForecastDay {
	now := f.now().In(f.loc)
	for len(days) < 3 {
		future := now.AddDate(0, 0, len(days)+1)
		days = append(days, models.ForecastDay{
			Day:          future.Weekday().String(),
			Date:         future.Format(forecastDateFormat),
			AuroraChance: "Data unavailable",
			Status:       models.StatusUnavailable,
		})
	}
	return days[:3]
}

func (f *Fetcher) fallbackForecast(status string) []models.ForecastDay {
	now := f.now().In(f.loc)
	result := make([]models.ForecastDay, 0, 3)
	for i := 1; i <= 3; i++ {
		future := now.AddDate(0, 0, i)
		result = append(result, models.ForecastDay{
			Day:          future.Weekday().String(),
			Date:         future.Format(forecastDateFormat),
			AuroraChance: "Data unavailable",
			Status:       status,
		})
	}
	return result
}
