package spaceweather

import (
	"time"

	"go-skywatch-archive/internal/astro"
	"go-skywatch-archive/internal/helpers"
	"go-skywatch-archive/internal/models"
)

// Sun event times are shown as local clock times on the page.
const sunTimeFormat = "3:04 PM"

// GetWeatherData runs every collaborator and assembles the full weather
// block for the renderer. outputDir receives the Clear Sky chart image when
// that section is enabled.
func (f *Fetcher) GetWeatherData(outputDir string) *models.WeatherData {
	now := f.now().UTC()

	data := &models.WeatherData{
		Current:     f.CurrentConditions(),
		Forecast:    f.Forecast(),
		SunTimes:    f.sunTimes(now),
		Moon:        f.moonData(now),
		LastUpdated: now.Format(time.RFC3339),
		Source:      "NOAA Space Weather Prediction Center",
	}

	if f.cfg.Display.ShowAtmosphericWx {
		data.Atmospheric = f.Atmospheric()
	}
	if f.cfg.Display.ShowClearSkyChart && outputDir != "" {
		data.ClearSky = f.DownloadClearSkyChart(outputDir)
	}

	return data
}

// sunTimes computes today's sun events and formats them for display in the
// configured location's timezone.
func (f *Fetcher) sunTimes(now time.Time) models.SunTimes {
	sun := astro.Sun(f.cfg.Location.Latitude, f.cfg.Location.Longitude, now)

	format := func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.In(f.loc).Format(sunTimeFormat)
	}

	st := models.SunTimes{
		Sunrise:          format(sun.Sunrise),
		Sunset:           format(sun.Sunset),
		CivilDawn:        format(sun.CivilDawn),
		CivilDusk:        format(sun.CivilDusk),
		NauticalDawn:     format(sun.NauticalDawn),
		NauticalDusk:     format(sun.NauticalDusk),
		AstronomicalDawn: format(sun.AstronomicalDawn),
		AstronomicalDusk: format(sun.AstronomicalDusk),
		Method:           "computed",
		Location:         f.cfg.Location.Name,
	}

	if day, night, ok := astro.DayNightDurations(sun); ok {
		st.DayDuration = helpers.FormatDuration(int(day.Seconds()))
		st.NightDuration = helpers.FormatDuration(int(night.Seconds()))
	} else {
		st.Method = "unavailable"
	}

	return st
}

func (f *Fetcher) moonData(now time.Time) models.MoonData {
	phase := astro.Moon(now)
	return models.MoonData{
		PhaseName:       phase.Name,
		PhasePercentage: phase.Percentage,
		PhaseDecimal:    phase.Decimal,
		Method:          "computed",
	}
}
