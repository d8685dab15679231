package astro

import (
	"math"
	"time"
)

// Mean synodic month in days and a reference new moon (2000-01-06 18:14 UTC).
// A mean-cycle computation is accurate to a few hours, which is plenty for a
// phase label and an illumination percentage on a daily page.
const synodicMonthDays = 29.530588853

var newMoonEpoch = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)

// MoonPhase describes the lunar phase at an instant. Decimal runs 0..1 with
// 0 at new moon and 0.5 at full moon.
type MoonPhase struct {
	Decimal    float64
	Percentage float64
	Name       string
}

// Moon computes the lunar phase at the given time.
func Moon(at time.Time) MoonPhase {
	days := at.Sub(newMoonEpoch).Hours() / 24
	cycles := days / synodicMonthDays
	frac := cycles - math.Floor(cycles)

	return MoonPhase{
		Decimal:    round3(frac),
		Percentage: round1(frac * 100),
		Name:       phaseName(frac),
	}
}

// Phase name thresholds match the bands used by the site since its first
// version; the quarter bands are deliberately narrow.
func phaseName(frac float64) string {
	switch {
	case frac < 0.03 || frac > 0.97:
		return "New Moon"
	case frac < 0.22:
		return "Waxing Crescent"
	case frac < 0.28:
		return "First Quarter"
	case frac < 0.47:
		return "Waxing Gibbous"
	case frac < 0.53:
		return "Full Moon"
	case frac < 0.72:
		return "Waning Gibbous"
	case frac < 0.78:
		return "Last Quarter"
	default:
		return "Waning Crescent"
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
