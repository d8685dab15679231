package cmd

import (
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(cleanCmd)

	cleanCmd.Flags().Bool("generated", false, "Also remove generated outputs (index.html, static/, clearsky_chart.gif, api.log)")
}

var cleanCmd = &cobra.Command{
	Use:   "clean [target directory]",
	Short: "Remove temporary (.tmp) files from a capture directory",
	Long: `Scans the target directory and removes leftover .tmp files from
interrupted runs. With --generated it also removes the published page,
the copied static tree, the Clear Sky chart and the API log.`,
	Args: cobra.ExactArgs(1),
	Run:  runClean,
}

// generatedNames are the files a generate run places into the target
// directory besides the output HTML.
var generatedNames = map[string]bool{
	"clearsky_chart.gif": true,
	"api.log":            true,
}

func runClean(cmd *cobra.Command, args []string) {
	targetDir, err := filepath.Abs(args[0])
	if err != nil {
		log.WithError(err).Errorf("Cannot resolve target directory %q", args[0])
		os.Exit(1)
	}
	info, err := os.Stat(targetDir)
	if os.IsNotExist(err) {
		log.Errorf("Target directory does not exist: %s", targetDir)
		os.Exit(1)
	}
	if err != nil {
		log.Errorf("Error accessing target directory %q: %v", targetDir, err)
		os.Exit(1)
	}
	if !info.IsDir() {
		log.Errorf("Target path is not a directory: %s", targetDir)
		os.Exit(1)
	}

	cleanGenerated, _ := cmd.Flags().GetBool("generated")

	logLine := "Scanning for .tmp files in " + targetDir
	if cleanGenerated {
		logLine += " (and generated outputs)"
	}
	log.Info(logLine + "...")

	var removed, failed int

	remove := func(path, fileType string) {
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				log.Warnf("Attempted to remove %s file %q, but it was already gone.", fileType, path)
			} else {
				log.Errorf("Failed to remove %s file %q: %v", fileType, path, err)
				failed++
			}
			return
		}
		log.Infof("Removed %s file: %s", fileType, path)
		removed++
	}

	entries, err := os.ReadDir(targetDir)
	if err != nil {
		log.WithError(err).Errorf("Cannot read target directory %s", targetDir)
		os.Exit(1)
	}

	const outputName = "index.html"

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(targetDir, name)

		if !entry.IsDir() && strings.HasSuffix(strings.ToLower(name), ".tmp") {
			remove(path, ".tmp")
			continue
		}
		if !cleanGenerated {
			continue
		}
		if entry.IsDir() && name == "static" {
			if err := os.RemoveAll(path); err != nil {
				log.Errorf("Failed to remove static tree %q: %v", path, err)
				failed++
			} else {
				log.Infof("Removed static tree: %s", path)
				removed++
			}
			continue
		}
		if !entry.IsDir() && (generatedNames[name] || name == outputName) {
			remove(path, "generated")
		}
	}

	if failed > 0 {
		log.Warnf("Clean finished with %d removals and %d failures", removed, failed)
		os.Exit(1)
	}
	log.Infof("Clean finished: %d files removed", removed)
}
