package config

import (
	"fmt"
	"os"

	"go-skywatch-archive/internal/models"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"
)

// DefaultConfig returns the built-in configuration used when no config file
// is present. Every field the rest of the program reads has a value here.
func DefaultConfig() models.Config {
	return models.Config{
		Site: models.SiteConfig{
			Name:        "Aurora Skywatch Archive",
			Subtitle:    "Northern Lights & Sky Timelapse Observatory",
			Description: "Static HTML archive of aurora and sky camera captures",
			Author:      "Aurora Skywatch",
			Email:       "admin@aurora-skywatch.local",
		},
		Location: models.LocationConfig{
			Name:      "Gilman, Wisconsin",
			Latitude:  45.17,
			Longitude: -90.82,
			Timezone:  "America/Chicago",
		},
		DataSources: models.DataSources{
			NOAA: models.NOAAConfig{
				KpForecastURL: "https://services.swpc.noaa.gov/products/noaa-planetary-k-index-forecast.json",
				CurrentKpURL:  "https://services.swpc.noaa.gov/products/noaa-planetary-k-index.json",
				GeomagTextURL: "https://services.swpc.noaa.gov/text/daily-geomagnetic-indices.txt",
				ForecastURL:   "https://services.swpc.noaa.gov/text/3-day-forecast.txt",
				SolarWindURL:  "https://services.swpc.noaa.gov/json/dscovr/dscovr_mag_1s.json",
			},
			ClearSky: models.ClearSkyConfig{
				BaseURL: "https://www.cleardarksky.com/c/",
				Station: "LtBlrTsWIcsk.gif",
				Title:   "Clear Sky Chart",
			},
		},
		Display: models.DisplayConfig{
			ForecastDays:          3,
			TimeFormat:            "2006-01-02 3:04 PM",
			DateFormat:            "January 02, 2006",
			ShowAtmosphericWx:     true,
			ShowClearSkyChart:     true,
			ShowTwilightBreakdown: true,
		},
		Advanced: models.AdvancedConfig{
			RequestTimeoutSec: 15,
			UserAgent:         "Aurora Skywatch Archive (Educational/Non-commercial)",
		},
	}
}

// LoadConfig reads the TOML configuration from the given path, falling back
// to the built-in defaults when the file does not exist. Values missing from
// the file keep their defaults.
func LoadConfig(configFilePath string) (models.Config, error) {
	if configFilePath == "" {
		configFilePath = "config.toml"
	}

	cfg := DefaultConfig()

	if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
		log.Warnf("Configuration file %s not found, using defaults", configFilePath)
		return cfg, nil
	}

	if _, err := toml.DecodeFile(configFilePath, &cfg); err != nil {
		return models.Config{}, fmt.Errorf("error loading config file %s: %w", configFilePath, err)
	}

	if cfg.Location.Timezone == "" {
		log.Warn("Warning: location.timezone is not set, falling back to UTC")
		cfg.Location.Timezone = "UTC"
	}
	if cfg.Advanced.RequestTimeoutSec <= 0 {
		cfg.Advanced.RequestTimeoutSec = 15
	}

	log.Infof("Configuration loaded from %s", configFilePath)
	return cfg, nil
}
