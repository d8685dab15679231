package spaceweather

import (
	"testing"
)

func TestParseKpFromText(t *testing.T) {
	sample := `:Product: Daily Geomagnetic Data
:Issued: 1800 UT 12 Nov 2025
#
#  Prepared by the U.S. Dept. of Commerce, NOAA, Space Weather Prediction Center
#
2025 11 11     4  3 3 2 2 3 4 4 3     4  3 3 2 2 3 4 4 3    22   3.33  2.67  2.33  2.00  2.67  3.67  4.00  3.00
2025 11 12    -1  7-1-1-1-1-1-1-1    -1  7-1-1-1-1-1-1-1    44   8.67 -1.00 -1.00 -1.00 -1.00 -1.00 -1.00 -1.00
`

	kp := parseKpFromText(sample)
	if kp == nil {
		t.Fatal("expected a Kp value, got nil")
	}
	if *kp != 8.67 {
		t.Errorf("expected Kp 8.67, got %v", *kp)
	}
}

func TestParseKpFromTextNoData(t *testing.T) {
	for name, sample := range map[string]string{
		"empty":        "",
		"headers only": ":Product: Daily Geomagnetic Data\n# comment line\n",
		"out of range": "2025 11 12  something 42.50 17\n",
	} {
		if kp := parseKpFromText(sample); kp != nil {
			t.Errorf("%s: expected nil, got %v", name, *kp)
		}
	}
}

func TestLatestObserved(t *testing.T) {
	table := kpTable{
		{"time_tag", "kp", "observed", "noaa_scale"},
		{"2025-11-12 00:00:00", "3.67", "observed", nil},
		{"2025-11-12 03:00:00", "5.33", "observed", "G1"},
		{"2025-11-12 06:00:00", "7.00", "predicted", "G3"},
		{"2025-11-11 21:00:00", "4.00", "observed", nil},
	}

	tag, kp, ok := table.latestObserved()
	if !ok {
		t.Fatal("expected an observed row")
	}
	if tag != "2025-11-12 03:00:00" {
		t.Errorf("expected most recent observed row, got %s", tag)
	}
	if kp != 5.33 {
		t.Errorf("expected Kp 5.33, got %v", kp)
	}
}

func TestLatestObservedNoneObserved(t *testing.T) {
	table := kpTable{
		{"time_tag", "kp", "observed", "noaa_scale"},
		{"2025-11-12 06:00:00", "7.00", "predicted", "G3"},
	}
	if _, _, ok := table.latestObserved(); ok {
		t.Error("expected no observed row")
	}
}

func TestGScaleBrackets(t *testing.T) {
	cases := []struct {
		kp    float64
		level string
	}{
		{0.0, "G0"},
		{4.99, "G0"},
		{5.0, "G1"},
		{5.99, "G1"},
		{6.0, "G2"},
		{7.0, "G3"},
		{8.0, "G4"},
		{9.0, "G5"},
		{9.5, "G5"},
	}

	for _, c := range cases {
		kp := c.kp
		got := GScaleFor(&kp)
		if got.Level != c.level {
			t.Errorf("Kp %.2f: expected %s, got %s", c.kp, c.level, got.Level)
		}
		if got.KpMin == nil || got.KpMax == nil {
			t.Errorf("Kp %.2f: expected bracket bounds", c.kp)
		}
	}

	missing := GScaleFor(nil)
	if missing.Level != "G0" || missing.KpMin != nil {
		t.Errorf("nil Kp should map to unbounded G0, got %+v", missing)
	}
}

func TestAuroraActivityLevels(t *testing.T) {
	cases := []struct {
		kp   float64
		want string
	}{
		{1.0, "Very Quiet - Unlikely aurora activity"},
		{3.0, "Quiet - Aurora may be visible overhead at high latitudes"},
		{4.5, "Active - Aurora likely visible at high latitudes"},
		{5.0, "Minor Storm - Possible aurora visibility"},
		{6.2, "Moderate Storm - Good aurora visibility"},
		{8.0, "Major Storm - Excellent aurora visibility"},
	}

	for _, c := range cases {
		kp := c.kp
		if got := AuroraActivity(&kp); got != c.want {
			t.Errorf("Kp %.1f: expected %q, got %q", c.kp, c.want, got)
		}
	}

	if got := AuroraActivity(nil); got != "Unknown" {
		t.Errorf("nil Kp: expected Unknown, got %q", got)
	}
}
