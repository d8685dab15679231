package media

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
)

// Processor scans one capture directory and builds the weekly view. It is
// rebuilt from scratch each run and holds no state between invocations.
type Processor struct {
	dir       string
	assetRoot string
	loc       *time.Location
	now       func() time.Time
}

// NewProcessor creates a processor for the given capture directory. tz is an
// IANA timezone name used to anchor "now" for semantic date resolution;
// invalid or empty names fall back to UTC with a warning. assetRoot is the
// static asset tree holding the shared placeholder images.
func NewProcessor(dir, assetRoot, tz string) *Processor {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.WithError(err).Warnf("Invalid timezone %q, using UTC for date resolution", tz)
		loc = time.UTC
	}
	return &Processor{
		dir:       dir,
		assetRoot: assetRoot,
		loc:       loc,
		now:       time.Now,
	}
}

// Process performs the single-pass scan, grouping and ordering. It returns
// the day groups sorted most recent first and the current snapshot if one
// exists. All failure paths resolve to a (possibly empty) valid result: an
// unreadable directory is logged and yields (nil, nil), and a zero-match
// scan is the "nothing to publish" condition, not an error.
func (p *Processor) Process() ([]DayGroup, *MediaFile) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		log.WithError(err).Errorf("Error scanning directory %s", p.dir)
		return nil, nil
	}

	groups := make(map[string]*DayGroup)
	var snapshot *MediaFile

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()

		kind, ok := ClassifyFilename(name)
		if !ok {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			log.WithError(err).Warnf("Could not stat %s, skipping", name)
			continue
		}

		file := MediaFile{
			Path:       filepath.Join(p.dir, name),
			Name:       name,
			Kind:       kind,
			CapturedAt: info.ModTime().UTC(),
			SizeBytes:  info.Size(),
		}

		if kind == KindSnapshot {
			// Last one wins; directory iteration order is not meaningful.
			f := file
			snapshot = &f
			log.Debugf("Found snapshot: %s", name)
			continue
		}

		day, ok := ParseWeekday(name)
		if !ok {
			log.Debugf("No weekday in filename %s, excluding from grouping", name)
			continue
		}
		file.Day = day
		file.Thumbnail = p.resolveThumbnail(name, kind)

		group, ok := groups[day]
		if !ok {
			group = &DayGroup{
				// Semantic date, computed once per weekday. Never the
				// file's mtime.
				Date:    p.ResolveDate(day),
				DayName: day,
			}
			groups[day] = group
		}

		f := file
		switch kind {
		case KindAurora:
			group.AuroraVideo = &f
		case KindCloud:
			group.CloudVideo = &f
		case KindSpaceWeather:
			group.SpaceweatherImage = &f
		}
		log.Debugf("Found %s file: %s (thumbnail: %t)", kind, name, f.Thumbnail.Present())
	}

	if len(groups) == 0 && snapshot == nil {
		log.Warn("No media files found")
		return nil, nil
	}

	days := make([]DayGroup, 0, len(groups))
	for _, group := range groups {
		days = append(days, *group)
	}
	// Most recent weekday first. Dates are unique within the trailing
	// 7-day window, so there are no ties to break.
	sort.Slice(days, func(i, j int) bool { return days[i].Date.After(days[j].Date) })

	log.Infof("Processed %d days of content from %s", len(days), p.dir)
	return days, snapshot
}
