package spaceweather

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"go-skywatch-archive/internal/models"
)

const (
	owmForecastURL = "https://api.openweathermap.org/data/2.5/forecast"
	owmCurrentURL  = "https://api.openweathermap.org/data/2.5/weather"
)

// owmEntry is one 3-hour slot in the OpenWeatherMap forecast response.
type owmEntry struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Atmospheric fetches the ground-level weather outlook from OpenWeatherMap.
// Without an API key, or offline, the result is a labelled placeholder so
// the page section still renders.
func (f *Fetcher) Atmospheric() models.AtmosphericForecast {
	if f.offline {
		log.Debug("Skipping atmospheric weather request (offline mode)")
		return f.placeholderAtmospheric()
	}

	apiKey := f.cfg.APIKeys.OpenWeatherMap
	if apiKey == "" {
		log.Info("Atmospheric weather requires an OpenWeatherMap API key")
		return f.placeholderAtmospheric()
	}

	return f.fetchOpenWeatherForecast(apiKey)
}

func (f *Fetcher) fetchOpenWeatherForecast(apiKey string) models.AtmosphericForecast {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%.4f", f.cfg.Location.Latitude))
	params.Set("lon", fmt.Sprintf("%.4f", f.cfg.Location.Longitude))
	params.Set("appid", apiKey)
	params.Set("units", "imperial")
	params.Set("cnt", "40")

	var data struct {
		List []owmEntry `json:"list"`
	}
	if !f.fetchJSON(f.owmForecastURL+"?"+params.Encode(), &data) || len(data.List) == 0 {
		return f.placeholderAtmospheric()
	}

	// Bucket the 3-hour slots by calendar date.
	type bucket struct {
		temps      []float64
		conditions []string
		humidity   []int
		windSpeeds []float64
		descs      []string
	}
	daily := map[string]*bucket{}
	for _, item := range data.List {
		key := time.Unix(item.Dt, 0).UTC().Format("2006-01-02")
		b := daily[key]
		if b == nil {
			b = &bucket{}
			daily[key] = b
		}
		b.temps = append(b.temps, item.Main.Temp)
		b.humidity = append(b.humidity, item.Main.Humidity)
		b.windSpeeds = append(b.windSpeeds, item.Wind.Speed)
		if len(item.Weather) > 0 {
			b.conditions = append(b.conditions, item.Weather[0].Main)
			b.descs = append(b.descs, item.Weather[0].Description)
		}
	}

	now := f.now().In(f.loc)
	today := now.Format("2006-01-02")
	var days []models.AtmosphericDay

	if b, ok := daily[today]; ok {
		day := summarizeDay(b.temps, b.conditions, b.descs, b.humidity, b.windSpeeds)
		day.Day = "Today"
		day.Date = now.Format(forecastDateFormat)
		days = append(days, day)
	} else if current := f.fetchCurrentWeather(apiKey); current != nil {
		days = append(days, *current)
	}

	var keys []string
	for k := range daily {
		if k > today {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		if len(days) >= 4 {
			break
		}
		b := daily[key]
		date, _ := time.Parse("2006-01-02", key)
		day := summarizeDay(b.temps, b.conditions, b.descs, b.humidity, b.windSpeeds)
		day.Day = date.Weekday().String()
		day.Date = date.Format(forecastDateFormat)
		days = append(days, day)
	}

	return models.AtmosphericForecast{
		Forecast:    days,
		Location:    f.cfg.Location.Name,
		LastUpdated: f.now().UTC().Format(time.RFC3339),
		Source:      "OpenWeatherMap API",
	}
}

// summarizeDay reduces a day's 3-hour slots to high/low temps, the most
// common condition, and humidity/wind averages.
func summarizeDay(temps []float64, conditions, descs []string, humidity []int, winds []float64) models.AtmosphericDay {
	var day models.AtmosphericDay

	if len(temps) > 0 {
		high, low := temps[0], temps[0]
		for _, t := range temps[1:] {
			if t > high {
				high = t
			}
			if t < low {
				low = t
			}
		}
		hi, lo := int(math.Round(high)), int(math.Round(low))
		day.HighTemp, day.LowTemp = &hi, &lo
	}

	if cond := mostCommon(conditions); cond != "" {
		day.Condition = cond
		day.Icon = ConditionIcon(cond)
	}
	if len(descs) > 0 {
		day.Description = capitalize(mostCommon(descs))
	}

	if len(humidity) > 0 {
		sum := 0
		for _, h := range humidity {
			sum += h
		}
		avg := int(math.Round(float64(sum) / float64(len(humidity))))
		day.Humidity = &avg
	}
	if len(winds) > 0 {
		sum := 0.0
		for _, w := range winds {
			sum += w
		}
		avg := math.Round(sum/float64(len(winds))*10) / 10
		day.WindSpeed = &avg
	}

	return day
}

// fetchCurrentWeather fills the "Today" row from the current conditions
// endpoint when the forecast feed has no slots left for today.
func (f *Fetcher) fetchCurrentWeather(apiKey string) *models.AtmosphericDay {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%.4f", f.cfg.Location.Latitude))
	params.Set("lon", fmt.Sprintf("%.4f", f.cfg.Location.Longitude))
	params.Set("appid", apiKey)
	params.Set("units", "imperial")

	var data owmEntry
	if !f.fetchJSON(f.owmCurrentURL+"?"+params.Encode(), &data) || len(data.Weather) == 0 {
		return nil
	}

	temp := int(math.Round(data.Main.Temp))
	return &models.AtmosphericDay{
		Day:       "Today",
		Date:      f.now().In(f.loc).Format(forecastDateFormat),
		HighTemp:  &temp,
		LowTemp:   &temp,
		Condition: capitalize(data.Weather[0].Description),
		Icon:      ConditionIcon(data.Weather[0].Main),
	}
}

func (f *Fetcher) placeholderAtmospheric() models.AtmosphericForecast {
	now := f.now().In(f.loc)
	days := make([]models.AtmosphericDay, 0, 3)
	for i := 1; i <= 3; i++ {
		future := now.AddDate(0, 0, i)
		days = append(days, models.AtmosphericDay{
			Day:         future.Weekday().String(),
			Date:        future.Format(forecastDateFormat),
			Condition:   "Weather data unavailable",
			Description: "Configure OpenWeatherMap API key for real data",
		})
	}

	return models.AtmosphericForecast{
		Forecast:    days,
		Location:    f.cfg.Location.Name,
		LastUpdated: now.Format(time.RFC3339),
		Source:      "Fallback data - API key required",
		ApiRequired: true,
	}
}

var conditionIcons = map[string]string{
	"Clear":        "☀️",
	"Clouds":       "☁️",
	"Rain":         "🌧️",
	"Drizzle":      "🌦️",
	"Thunderstorm": "⛈️",
	"Snow":         "❄️",
	"Mist":         "🌫️",
	"Fog":          "🌫️",
	"Haze":         "🌫️",
	"Dust":         "🌫️",
	"Sand":         "🌫️",
	"Ash":          "🌋",
	"Squall":       "💨",
	"Tornado":      "🌪️",
}

// ConditionIcon maps an OpenWeatherMap condition group to a display icon.
// Unknown conditions get no icon.
func ConditionIcon(condition string) string {
	return conditionIcons[condition]
}

func mostCommon(values []string) string {
	counts := map[string]int{}
	best, bestCount := "", 0
	for _, v := range values {
		counts[v]++
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[:1])) + string(r[1:])
}
