package media

import (
	"path/filepath"
	"regexp"
	"strings"
)

// WeekdayNames is the canonical Monday-first weekday ordering used for
// filename tags and date resolution.
var WeekdayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Filename patterns for weekday extraction. The primary pattern matches the
// camera naming convention (AuroraCam_Monday.mp4 and friends); the fallback
// accepts any trailing alphabetic run of the stem.
var (
	weekdayTagPattern  = regexp.MustCompile(`(?i)(?:AuroraCam|CloudCam|SpaceWeather)_([A-Za-z]+)\.(?:mp4|gif)`)
	trailingRunPattern = regexp.MustCompile(`([A-Za-z]+)$`)
)

// ClassifyFilename determines the media kind from a filename alone, using
// exact case-insensitive rules. Unrecognized names return ok=false and are
// excluded from all further processing; the capture directory is allowed to
// contain arbitrary unrelated files.
func ClassifyFilename(name string) (Kind, bool) {
	lower := strings.ToLower(name)

	switch {
	case strings.HasPrefix(lower, "auroracam") && strings.HasSuffix(lower, ".mp4"):
		return KindAurora, true
	case strings.HasPrefix(lower, "cloudcam") && strings.HasSuffix(lower, ".mp4"):
		return KindCloud, true
	case strings.HasPrefix(lower, "spaceweather") && strings.HasSuffix(lower, ".gif"):
		return KindSpaceWeather, true
	case lower == "snapshot.jpg":
		return KindSnapshot, true
	}

	return "", false
}

// ParseWeekday extracts a canonical weekday name from a classified filename.
// It first tries the <Prefix>_<Weekday>.<ext> tag, then falls back to the
// trailing alphabetic run of the stem. Candidates that are not one of the
// seven canonical names are rejected.
func ParseWeekday(name string) (string, bool) {
	if m := weekdayTagPattern.FindStringSubmatch(name); m != nil {
		if day, ok := canonicalWeekday(m[1]); ok {
			return day, true
		}
	}

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if m := trailingRunPattern.FindStringSubmatch(stem); m != nil {
		if day, ok := canonicalWeekday(m[1]); ok {
			return day, true
		}
	}

	return "", false
}

func canonicalWeekday(candidate string) (string, bool) {
	for _, day := range WeekdayNames {
		if strings.EqualFold(candidate, day) {
			return day, true
		}
	}
	return "", false
}
