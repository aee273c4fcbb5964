package transit

import (
	"math"
	"testing"
	"time"

	"github.com/litescript/ls-transits/internal/astro"
)

var kepler51b = Ephemeris{
	PeriodDays:    45.155,
	MidTransitBJD: 2455712.11,
	DurationHours: 5.7,
}

func TestNextAfter_StrictlyAfterAndInPhase(t *testing.T) {
	ephs := []Ephemeris{
		kepler51b,
		{PeriodDays: 0.7365, MidTransitBJD: 2458000.25},
		{PeriodDays: 365.25, MidTransitBJD: 2451545.0},
	}
	refs := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 15, 13, 37, 42, 0, time.UTC),
		time.Date(2030, 12, 31, 23, 59, 59, 0, time.UTC),
	}

	for _, eph := range ephs {
		for _, ref := range refs {
			cand := NextAfter(eph, ref)

			if !cand.Center.After(ref) {
				t.Errorf("P=%v ref=%v: center %v not strictly after ref", eph.PeriodDays, ref, cand.Center)
			}

			// The center must sit a whole number of periods from the epoch.
			phase := (cand.CenterBJD - eph.MidTransitBJD) / eph.PeriodDays
			if math.Abs(phase-math.Round(phase)) > 1e-6 {
				t.Errorf("P=%v ref=%v: center off-phase by %v periods", eph.PeriodDays, ref, phase-math.Round(phase))
			}

			// And no earlier in-phase instant may still be after ref.
			prevBJD := cand.CenterBJD - eph.PeriodDays
			if astro.BJDToTime(prevBJD).After(ref) {
				t.Errorf("P=%v ref=%v: candidate is not the first transit after ref", eph.PeriodDays, ref)
			}
		}
	}
}

func TestNextAfter_Idempotent(t *testing.T) {
	ref := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	a := NextAfter(kepler51b, ref)
	b := NextAfter(kepler51b, ref)

	if a != b {
		t.Errorf("NextAfter not idempotent: %+v vs %+v", a, b)
	}
}

func TestNextAfter_TwelveDaysIntoFiveDayPeriod(t *testing.T) {
	// Reference epoch plus 12 days with a 5-day period: the next transit is
	// cycle 3 at epoch + 15 days.
	eph := Ephemeris{PeriodDays: 5, MidTransitBJD: 2460000.0}

	cand := nextAfterBJD(eph, 2460012.0)

	if cand.Cycle != 3 {
		t.Errorf("cycle = %d, want 3", cand.Cycle)
	}
	if cand.CenterBJD != 2460015.0 {
		t.Errorf("center = BJD %v, want 2460015.0", cand.CenterBJD)
	}
}

func TestNextAfter_ExactBoundaryBumps(t *testing.T) {
	// A reference instant landing exactly on a transit center yields the
	// following cycle, never the same one.
	eph := Ephemeris{PeriodDays: 2, MidTransitBJD: 2460000.0}

	cand := nextAfterBJD(eph, 2460006.0) // exactly cycle 3

	if cand.Cycle != 4 {
		t.Errorf("cycle = %d, want 4 (boundary must bump)", cand.Cycle)
	}
	if cand.CenterBJD != 2460008.0 {
		t.Errorf("center = BJD %v, want 2460008.0", cand.CenterBJD)
	}
}

func TestNextAfter_BeforeEpoch(t *testing.T) {
	// A reference instant before the epoch still yields the first transit
	// strictly after it.
	eph := Ephemeris{PeriodDays: 10, MidTransitBJD: 2460100.0}

	cand := nextAfterBJD(eph, 2460075.0)

	if cand.CenterBJD != 2460080.0 {
		t.Errorf("center = BJD %v, want 2460080.0", cand.CenterBJD)
	}
	if cand.Cycle != -2 {
		t.Errorf("cycle = %d, want -2", cand.Cycle)
	}
}

func TestAdvance_Monotonic(t *testing.T) {
	ref := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cand := NextAfter(kepler51b, ref)

	for i := 0; i < 10; i++ {
		next := Advance(kepler51b, cand)

		if next.Cycle != cand.Cycle+1 {
			t.Fatalf("advance cycle = %d, want %d", next.Cycle, cand.Cycle+1)
		}

		got := next.CenterBJD - cand.CenterBJD
		if math.Abs(got-kepler51b.PeriodDays) > 1e-8 {
			t.Fatalf("advance step = %v days, want %v", got, kepler51b.PeriodDays)
		}

		if !next.Center.After(cand.Center) {
			t.Fatalf("advance did not move forward in time")
		}

		cand = next
	}
}

func TestNextAfter_Kepler51bDocumentedExample(t *testing.T) {
	// Documented example: Kepler-51 b from 2024-01-01 UTC lands on cycle 102,
	// mid-transit 2024-01-08T10:03:38Z.
	ref := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	cand := NextAfter(kepler51b, ref)

	if cand.Cycle != 102 {
		t.Errorf("cycle = %d, want 102", cand.Cycle)
	}
	got := cand.Center.UTC().Format(time.RFC3339)
	if got != "2024-01-08T10:03:38Z" {
		t.Errorf("center = %s, want 2024-01-08T10:03:38Z", got)
	}
}
