package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gosuri/uilive"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go-skywatch-archive/internal/media"
	"go-skywatch-archive/internal/render"
	"go-skywatch-archive/internal/spaceweather"
)

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("output", "o", "index.html", "Output HTML filename inside the target directory")
	generateCmd.Flags().String("static-dir", "static", "Directory holding the static assets to publish")
	generateCmd.Flags().Bool("no-weather", false, "Skip all network fetches and publish placeholder weather")
	generateCmd.Flags().Bool("no-clearsky", false, "Skip the Clear Sky chart download")
	generateCmd.Flags().Bool("no-atmospheric", false, "Skip the atmospheric weather forecast")

	viper.BindPFlag("generate.output", generateCmd.Flags().Lookup("output"))
	viper.BindPFlag("generate.static_dir", generateCmd.Flags().Lookup("static-dir"))
	viper.BindPFlag("generate.no_weather", generateCmd.Flags().Lookup("no-weather"))
	viper.BindPFlag("generate.no_clearsky", generateCmd.Flags().Lookup("no-clearsky"))
	viper.BindPFlag("generate.no_atmospheric", generateCmd.Flags().Lookup("no-atmospheric"))
}

var generateCmd = &cobra.Command{
	Use:   "generate [target directory]",
	Short: "Scan a capture directory and publish the archive page",
	Long: `Scans the target directory for AuroraCam_*, CloudCam_*, SpaceWeather_*
files and snapshot.jpg, fetches space weather data, and writes the archive
page plus its static assets into the target directory.`,
	Args: cobra.ExactArgs(1),
	Run:  runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) {
	start := time.Now()

	targetDir, err := filepath.Abs(args[0])
	if err != nil {
		log.WithError(err).Errorf("Cannot resolve target directory %q", args[0])
		os.Exit(1)
	}
	info, err := os.Stat(targetDir)
	if err != nil {
		log.WithError(err).Errorf("Cannot access target directory %s", targetDir)
		os.Exit(1)
	}
	if !info.IsDir() {
		log.Errorf("Target path is not a directory: %s", targetDir)
		os.Exit(1)
	}

	outputName := viper.GetString("generate.output")
	staticDir := viper.GetString("generate.static_dir")
	noWeather := viper.GetBool("generate.no_weather")

	if viper.GetBool("generate.no_clearsky") {
		globalConfig.Display.ShowClearSkyChart = false
	}
	if viper.GetBool("generate.no_atmospheric") {
		globalConfig.Display.ShowAtmosphericWx = false
	}

	log.Infof("Processing media directory: %s", targetDir)

	// Use uilive writer for progress updates
	writer := uilive.New()
	writer.Start()
	defer writer.Stop()

	fmt.Fprintln(writer, "Scanning capture directory...")
	processor := media.NewProcessor(targetDir, staticDir, globalConfig.Location.Timezone)
	days, snapshot := processor.Process()

	if len(days) == 0 && snapshot == nil {
		writer.Stop()
		log.Warn("No media files found in target directory")
		os.Exit(1)
	}
	fmt.Fprintf(writer, "Found %d days of media content\n", len(days))

	if noWeather {
		fmt.Fprintln(writer, "Skipping space weather fetch (offline)...")
	} else {
		fmt.Fprintln(writer, "Fetching space weather data...")
	}
	fetcher := spaceweather.NewFetcher(&globalConfig, globalHttpTransport, noWeather)
	weather := fetcher.GetWeatherData(targetDir)

	fmt.Fprintln(writer, "Rendering page...")
	renderer, err := render.NewRenderer(&globalConfig)
	if err != nil {
		writer.Stop()
		log.WithError(err).Error("Failed to set up renderer")
		os.Exit(1)
	}

	outputPath := filepath.Join(targetDir, outputName)
	data := renderer.PrepareData(days, snapshot, weather)
	if err := renderer.WriteIndex(outputPath, data); err != nil {
		writer.Stop()
		log.WithError(err).Errorf("Failed to write %s", outputPath)
		os.Exit(1)
	}

	copied, skipped, err := render.CopyStaticTree(staticDir, targetDir)
	if err != nil {
		log.WithError(err).Warn("Static asset sync did not complete")
	}

	fmt.Fprintf(writer, "Published %s: %d days, %d assets copied (%d unchanged) in %s\n",
		outputPath, len(days), copied, skipped, time.Since(start).Round(time.Millisecond))

	log.Infof("Website generated successfully: %s", outputPath)
}
