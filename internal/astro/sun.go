// Package astro computes the sun and moon figures shown in the page's
// sky-view panel. All times are UTC; the renderer localizes for display.
package astro

import (
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// Solar depression angles (degrees below the horizon) for the three
// twilight definitions.
const (
	civilDepression        = -6.0
	nauticalDepression     = -12.0
	astronomicalDepression = -18.0
)

// SunTimes holds one day's sun events. Any event that does not occur at the
// given latitude and date (midnight sun, polar night, no astronomical
// darkness in summer) is the zero time.
type SunTimes struct {
	Sunrise          time.Time
	Sunset           time.Time
	CivilDawn        time.Time
	CivilDusk        time.Time
	NauticalDawn     time.Time
	NauticalDusk     time.Time
	AstronomicalDawn time.Time
	AstronomicalDusk time.Time
}

// Sun computes sunrise, sunset and the twilight boundaries for the calendar
// day of date at the given coordinates.
func Sun(latitude, longitude float64, date time.Time) SunTimes {
	y, m, d := date.Date()

	var st SunTimes
	st.Sunrise, st.Sunset = sunrise.SunriseSunset(latitude, longitude, y, m, d)
	st.CivilDawn, st.CivilDusk = sunrise.TimeOfElevation(latitude, longitude, civilDepression, y, m, d)
	st.NauticalDawn, st.NauticalDusk = sunrise.TimeOfElevation(latitude, longitude, nauticalDepression, y, m, d)
	st.AstronomicalDawn, st.AstronomicalDusk = sunrise.TimeOfElevation(latitude, longitude, astronomicalDepression, y, m, d)
	return st
}

// DayNightDurations returns the daylight span and its 24h complement.
// ok is false when the sun does not rise or set on the day.
func DayNightDurations(st SunTimes) (day, night time.Duration, ok bool) {
	if st.Sunrise.IsZero() || st.Sunset.IsZero() {
		return 0, 0, false
	}
	day = st.Sunset.Sub(st.Sunrise)
	if day < 0 {
		return 0, 0, false
	}
	return day, 24*time.Hour - day, true
}

// IsNight reports whether t falls outside the sunrise..sunset window,
// comparing clock times only. Used to pick nighttime Kp peaks out of a
// forecast whose slots are known by hour, not full timestamps.
func IsNight(t time.Time, st SunTimes) bool {
	if st.Sunrise.IsZero() || st.Sunset.IsZero() {
		return false
	}
	minutes := func(x time.Time) int { return x.Hour()*60 + x.Minute() }
	tm, riseM, setM := minutes(t.UTC()), minutes(st.Sunrise), minutes(st.Sunset)
	if setM > riseM {
		return tm >= setM || tm < riseM
	}
	// Sunset's UTC clock time wraps past midnight (western longitudes).
	return tm >= setM && tm < riseM
}
