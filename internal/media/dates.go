package media

import "time"

// weekdayIndex maps a canonical weekday name onto the Monday=0 .. Sunday=6
// ordering. Returns -1 for anything that is not one of the seven names.
func weekdayIndex(dayName string) int {
	for i, day := range WeekdayNames {
		if day == dayName {
			return i
		}
	}
	return -1
}

// mondayFirst converts time.Weekday (Sunday=0) to the Monday=0 convention.
func mondayFirst(w time.Weekday) int {
	return (int(w) + 6) % 7
}

// MostRecentWeekday resolves a weekday name to its most recent calendar
// occurrence on or before the reference time, truncated to midnight in the
// reference's location. If the reference falls on the named weekday the
// reference date itself is returned. File timestamps play no part here:
// weekday tags must map to the same dates no matter how stale or skewed the
// capture files' mtimes are.
func MostRecentWeekday(reference time.Time, dayName string) time.Time {
	target := weekdayIndex(dayName)
	if target < 0 {
		return time.Time{}
	}

	midnight := time.Date(reference.Year(), reference.Month(), reference.Day(), 0, 0, 0, 0, reference.Location())
	daysBack := (mondayFirst(reference.Weekday()) - target + 7) % 7
	return midnight.AddDate(0, 0, -daysBack)
}

// ResolveDate maps a weekday name onto its semantic date relative to "now"
// in the processor's configured timezone.
func (p *Processor) ResolveDate(dayName string) time.Time {
	return MostRecentWeekday(p.now().In(p.loc), dayName)
}
