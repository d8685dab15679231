package media

import (
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Placeholder asset locations relative to the static asset root.
const (
	placeholderNight = "images/placeholder-night.jpg"
	placeholderDay   = "images/placeholder-day.jpg"
)

// resolveThumbnail finds the thumbnail for an aurora or cloud video. A
// sibling <stem>.thumbnail.jpg in the capture directory wins; otherwise the
// shared placeholder for the kind is used if it exists on disk. Other kinds
// never receive a thumbnail.
func (p *Processor) resolveThumbnail(name string, kind Kind) Thumbnail {
	if kind != KindAurora && kind != KindCloud {
		return Thumbnail{}
	}

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	sibling := stem + ".thumbnail.jpg"
	if info, err := os.Stat(filepath.Join(p.dir, sibling)); err == nil && info.Mode().IsRegular() {
		log.Debugf("Found thumbnail for %s: %s", name, sibling)
		return Thumbnail{Source: ThumbnailSibling, Path: sibling}
	}

	placeholder := placeholderDay
	if kind == KindAurora {
		// Aurora captures are night scenes.
		placeholder = placeholderNight
	}
	if _, err := os.Stat(filepath.Join(p.assetRoot, placeholder)); err == nil {
		log.Debugf("Using placeholder for %s file: %s", kind, name)
		return Thumbnail{Source: ThumbnailPlaceholder, Path: placeholder}
	}

	return Thumbnail{}
}
