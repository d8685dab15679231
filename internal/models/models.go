package models

type (
	Config struct {
		Site        SiteConfig     `toml:"site"`
		Location    LocationConfig `toml:"location"`
		APIKeys     APIKeysConfig  `toml:"api_keys"`
		DataSources DataSources    `toml:"data_sources"`
		Display     DisplayConfig  `toml:"display"`
		Advanced    AdvancedConfig `toml:"advanced"`
	}

	SiteConfig struct {
		Name        string `toml:"name"`
		Subtitle    string `toml:"subtitle"`
		Description string `toml:"description"`
		Author      string `toml:"author"`
		Email       string `toml:"email"`
	}

	LocationConfig struct {
		Name      string  `toml:"name"`
		Latitude  float64 `toml:"latitude"`
		Longitude float64 `toml:"longitude"`
		Timezone  string  `toml:"timezone"`
	}

	APIKeysConfig struct {
		OpenWeatherMap string `toml:"openweathermap"`
	}

	DataSources struct {
		NOAA     NOAAConfig     `toml:"noaa"`
		ClearSky ClearSkyConfig `toml:"clearsky"`
	}

	NOAAConfig struct {
		KpForecastURL string `toml:"kp_forecast_url"`
		CurrentKpURL  string `toml:"current_kp_url"`
		GeomagTextURL string `toml:"geomag_text_url"`
		ForecastURL   string `toml:"forecast_url"`
		SolarWindURL  string `toml:"solar_wind_url"`
	}

	ClearSkyConfig struct {
		BaseURL string `toml:"base_url"`
		Station string `toml:"station"`
		Title   string `toml:"title"`
	}

	DisplayConfig struct {
		ForecastDays          int    `toml:"forecast_days"`
		TimeFormat            string `toml:"time_format"`
		DateFormat            string `toml:"date_format"`
		ShowAtmosphericWx     bool   `toml:"show_atmospheric_weather"`
		ShowClearSkyChart     bool   `toml:"show_clearsky_chart"`
		ShowTwilightBreakdown bool   `toml:"show_twilight_breakdown"`
	}

	AdvancedConfig struct {
		RequestTimeoutSec int    `toml:"request_timeout_sec"`
		UserAgent         string `toml:"user_agent"`
		LogApiRequests    bool   `toml:"log_api_requests"`
	}
)

// Data source status values carried alongside fetched weather data so the
// renderer can distinguish live readings from placeholders.
const (
	StatusActive      = "active"
	StatusForecast    = "forecast"
	StatusOffline     = "offline"
	StatusUnavailable = "unavailable"
)

type (
	// WeatherData aggregates everything the weather collaborator produces for
	// a single run. Every field degrades to a placeholder on failure; the
	// renderer never needs to nil-check the top-level struct.
	WeatherData struct {
		Current     CurrentConditions
		Forecast    []ForecastDay
		SunTimes    SunTimes
		Moon        MoonData
		Atmospheric AtmosphericForecast
		ClearSky    ClearSkyChart
		LastUpdated string
		Source      string
	}

	CurrentConditions struct {
		Timestamp      string
		KpIndex        *float64
		GScale         GScale
		AuroraActivity string
		SolarWind      SolarWind
		Status         string
	}

	// GScale is the NOAA geomagnetic storm scale bracket for a Kp value.
	GScale struct {
		Level       string
		KpMin       *float64
		KpMax       *float64
		Description string
	}

	SolarWind struct {
		Bt      *float64
		BzGsm   *float64
		TimeTag string
		Status  string
	}

	ForecastDay struct {
		Day          string
		Date         string
		KpForecast   string
		AuroraChance string
		Status       string
	}

	SunTimes struct {
		Sunrise          string
		Sunset           string
		CivilDawn        string
		CivilDusk        string
		NauticalDawn     string
		NauticalDusk     string
		AstronomicalDawn string
		AstronomicalDusk string
		DayDuration      string
		NightDuration    string
		Method           string
		Location         string
	}

	MoonData struct {
		PhaseName       string
		PhasePercentage float64
		PhaseDecimal    float64
		Method          string
	}

	AtmosphericForecast struct {
		Forecast    []AtmosphericDay
		Location    string
		LastUpdated string
		Source      string
		ApiRequired bool
	}

	AtmosphericDay struct {
		Day         string
		Date        string
		HighTemp    *int
		LowTemp     *int
		Condition   string
		Description string
		Humidity    *int
		WindSpeed   *float64
		Icon        string
	}

	ClearSkyChart struct {
		LocalFilename string
		Link          string
		Title         string
		Alt           string
	}
)
