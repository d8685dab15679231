package render

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"go-skywatch-archive/internal/helpers"
)

// CopyStaticTree mirrors srcDir into outputDir/static. Files whose content
// already matches the destination are skipped, keeping repeat runs cheap and
// rsync-friendly. Returns the copied and skipped counts.
func CopyStaticTree(srcDir, outputDir string) (copied, skipped int, err error) {
	if _, statErr := os.Stat(srcDir); os.IsNotExist(statErr) {
		log.Warnf("Static directory does not exist: %s", srcDir)
		return 0, 0, nil
	}

	destRoot := filepath.Join(outputDir, "static")

	err = filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, relErr := filepath.Rel(srcDir, path)
		if relErr != nil {
			return relErr
		}
		dest := filepath.Join(destRoot, rel)

		if d.IsDir() {
			if !helpers.CheckAndMakeDir(dest) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		if helpers.SameContent(path, dest) {
			skipped++
			return nil
		}
		if copyErr := copyFile(path, dest); copyErr != nil {
			log.WithError(copyErr).Errorf("Failed to copy static file %s", rel)
			return copyErr
		}
		copied++
		return nil
	})

	if err == nil {
		log.Debugf("Static assets synced to %s (%d copied, %d unchanged)", destRoot, copied, skipped)
	}
	return copied, skipped, err
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
