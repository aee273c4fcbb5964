package astro

import (
	"testing"
	"time"
)

func TestMoonPosition_Eclipse(t *testing.T) {
	// Total solar eclipse of 2024-04-08 ~18:20 UTC: the Moon sits on top of
	// the Sun, so the Moon-Sun separation must be tiny.
	eclipse := time.Date(2024, 4, 8, 18, 20, 0, 0, time.UTC)

	moonRA, moonDec := MoonPosition(eclipse)
	sunRA, sunDec := SunPosition(eclipse)

	sep := AngularSeparation(moonRA, moonDec, sunRA, sunDec)
	if sep > 2 {
		t.Errorf("Moon-Sun separation at solar eclipse = %.2f°, want < 2°", sep)
	}
}

func TestMoonPosition_FullMoon(t *testing.T) {
	// Full moon of 2024-04-23 ~23:49 UTC: the Moon is opposite the Sun.
	// The Moon can be up to ~5° off the ecliptic, so allow a wide band.
	full := time.Date(2024, 4, 23, 23, 49, 0, 0, time.UTC)

	moonRA, moonDec := MoonPosition(full)
	sunRA, sunDec := SunPosition(full)

	sep := AngularSeparation(moonRA, moonDec, sunRA, sunDec)
	if sep < 170 {
		t.Errorf("Moon-Sun separation at full moon = %.2f°, want > 170°", sep)
	}
}

func TestMoonSeparation_Range(t *testing.T) {
	// Separation is a metric: always within [0, 180] for any target.
	targets := []struct{ ra, dec float64 }{
		{0, 0}, {90, 45}, {180, -45}, {296.48, 49.94},
	}
	when := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	for _, tgt := range targets {
		sep := MoonSeparation(tgt.ra, tgt.dec, when)
		if sep < 0 || sep > 180 {
			t.Errorf("MoonSeparation(%v, %v) = %v, out of [0, 180]", tgt.ra, tgt.dec, sep)
		}
	}
}
