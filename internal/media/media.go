// Package media is the classification and weekly-grouping engine for the
// skywatch archive. It scans a single capture directory, classifies files by
// naming convention, maps weekday-tagged files onto concrete calendar dates,
// resolves thumbnails, and produces the ordered weekly view consumed by the
// renderer.
package media

import "time"

// Kind identifies what a capture file holds, derived solely from its filename.
type Kind string

const (
	KindAurora       Kind = "aurora"
	KindCloud        Kind = "cloud"
	KindSpaceWeather Kind = "spaceweather"
	KindSnapshot     Kind = "snapshot"
)

// ThumbnailSource says which root a thumbnail path resolves against, so the
// renderer never has to re-derive it.
type ThumbnailSource int

const (
	// ThumbnailNone means no thumbnail; Path is empty.
	ThumbnailNone ThumbnailSource = iota
	// ThumbnailSibling is a <stem>.thumbnail.jpg discovered next to the
	// video; Path is relative to the capture directory.
	ThumbnailSibling
	// ThumbnailPlaceholder is a shared day/night placeholder; Path is
	// relative to the static asset root.
	ThumbnailPlaceholder
)

// Thumbnail is the resolved thumbnail reference for a media file.
type Thumbnail struct {
	Source ThumbnailSource
	Path   string
}

// Present reports whether any thumbnail was resolved.
func (t Thumbnail) Present() bool {
	return t.Source != ThumbnailNone
}

// MediaFile is one classified capture file.
type MediaFile struct {
	// Path is the file's location inside the capture directory.
	Path string
	// Name is the bare filename, usable as a relative link target.
	Name string
	Kind Kind
	// Day is the weekday name carried in the filename. Empty for snapshots.
	Day string
	// CapturedAt is the file's modification time in UTC. Display and weak
	// ordering only; it never drives weekday-to-date mapping.
	CapturedAt time.Time
	SizeBytes  int64
	Thumbnail  Thumbnail
}

// DayGroup aggregates at most one aurora video, one cloud video and one
// space-weather image for a single resolved weekday.
type DayGroup struct {
	// Date is the semantic calendar date the weekday name resolves to,
	// relative to "now" in the configured timezone.
	Date    time.Time
	DayName string

	AuroraVideo       *MediaFile
	CloudVideo        *MediaFile
	SpaceweatherImage *MediaFile
}
