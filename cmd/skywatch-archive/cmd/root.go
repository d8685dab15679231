package cmd

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"go-skywatch-archive/internal/api"
	"go-skywatch-archive/internal/config"
	"go-skywatch-archive/internal/models"
)

// cfgFile holds the path to the config file specified by the user
var cfgFile string

var (
	logLevel  string
	logFormat string

	// logApiFlag holds the value of the --log-api flag
	logApiFlag bool

	// timezoneFlag overrides the configured location timezone
	timezoneFlag string

	// apiTimeoutFlag holds the value of the --api-timeout flag
	apiTimeoutFlag int
)

// globalConfig holds the loaded configuration
var globalConfig models.Config

// globalHttpTransport holds the globally configured HTTP transport (base or logging-wrapped)
var globalHttpTransport http.RoundTripper

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "skywatch-archive",
	Short: "Static site generator for an aurora camera archive",
	Long: `Skywatch Archive scans a directory of weekday-tagged timelapse captures
and publishes a static HTML page combining the weekly archive with live
NOAA space weather data.`,
	PersistentPreRunE: loadGlobalConfig, // Load config before any command runs
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.toml", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Logging format (text, json)")
	rootCmd.PersistentFlags().BoolVar(&logApiFlag, "log-api", false, "Log API requests/responses to api.log (overrides config)")
	rootCmd.PersistentFlags().StringVar(&timezoneFlag, "timezone", "", "IANA timezone for weekday dating (overrides config)")
	rootCmd.PersistentFlags().IntVar(&apiTimeoutFlag, "api-timeout", -1, "Timeout for API HTTP client in seconds (overrides config, -1 uses config default)")

	// Hook to configure logging before any command runs
	cobra.OnInitialize(initLogging)
}

// initLogging configures logrus based on persistent flags
func initLogging() {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		log.WithError(err).Warnf("Invalid log level '%s', using default 'info'", logLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	switch logFormat {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		log.Warnf("Invalid log format '%s', using default 'text'", logFormat)
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

// loadGlobalConfig loads the configuration, applies flag and environment
// overrides, and sets up the global HTTP transport.
func loadGlobalConfig(cmd *cobra.Command, args []string) error {
	// A .env file may carry the OpenWeatherMap key so it stays out of
	// config.toml. Missing file is fine.
	if err := godotenv.Load(); err == nil {
		log.Debug("Loaded environment from .env file")
	}

	var err error
	globalConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if key := os.Getenv("OPENWEATHERMAP_API_KEY"); key != "" && globalConfig.APIKeys.OpenWeatherMap == "" {
		globalConfig.APIKeys.OpenWeatherMap = key
		log.Debug("Using OpenWeatherMap API key from environment")
	}

	if cmd.Flags().Changed("log-api") {
		globalConfig.Advanced.LogApiRequests = logApiFlag
		log.Debugf("Overriding LogApiRequests based on --log-api flag: %t", logApiFlag)
	}

	if cmd.Flags().Changed("timezone") {
		if timezoneFlag != "" {
			globalConfig.Location.Timezone = timezoneFlag
			log.Debugf("Overriding timezone based on --timezone flag: %s", timezoneFlag)
		} else {
			log.Warn("--timezone flag provided but value is empty, ignoring.")
		}
	}

	if cmd.Flags().Changed("api-timeout") {
		if apiTimeoutFlag > 0 {
			globalConfig.Advanced.RequestTimeoutSec = apiTimeoutFlag
			log.Debugf("Overriding RequestTimeoutSec based on --api-timeout flag: %d sec", apiTimeoutFlag)
		} else {
			log.Warnf("--api-timeout flag provided with invalid value %d, using config value: %d sec", apiTimeoutFlag, globalConfig.Advanced.RequestTimeoutSec)
		}
	}
	if globalConfig.Advanced.RequestTimeoutSec <= 0 {
		globalConfig.Advanced.RequestTimeoutSec = 15
	}

	// --- Setup Global HTTP Transport ---
	globalHttpTransport = http.DefaultTransport
	if globalConfig.Advanced.LogApiRequests {
		logFilePath := "api.log"
		if target := targetDirFromArgs(args); target != "" {
			if _, statErr := os.Stat(target); statErr == nil {
				logFilePath = filepath.Join(target, logFilePath)
			}
		}
		log.Infof("API logging to file: %s", logFilePath)

		loggingTransport, err := api.NewLoggingTransport(http.DefaultTransport, logFilePath)
		if err != nil {
			log.WithError(err).Error("Failed to initialize API logging transport, logging disabled.")
		} else {
			globalHttpTransport = loggingTransport
		}
	}

	return nil
}

// targetDirFromArgs returns the first positional argument that is an
// existing directory, or "".
func targetDirFromArgs(args []string) string {
	if len(args) == 0 {
		return ""
	}
	if info, err := os.Stat(args[0]); err == nil && info.IsDir() {
		return args[0]
	}
	return ""
}
