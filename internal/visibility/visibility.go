// Package visibility decides whether a transit candidate is observable from a
// site on Earth and walks the candidate sequence forward to the next
// observable one, under a bounded search.
package visibility

import (
	"fmt"
	"time"

	"github.com/litescript/ls-transits/internal/astro"
	"github.com/litescript/ls-transits/internal/transit"
)

// Night selects how far below the horizon the Sun must be for the sky to
// count as dark.
type Night int

const (
	NightSunset       Night = iota // Sun below 0°
	NightCivil                     // Sun below -6°
	NightNautical                  // Sun below -12°
	NightAstronomical              // Sun below -18°
)

// MaxSunAltitudeDeg returns the highest Sun altitude still counted as dark.
func (n Night) MaxSunAltitudeDeg() float64 {
	switch n {
	case NightSunset:
		return 0
	case NightCivil:
		return -6
	case NightNautical:
		return -12
	case NightAstronomical:
		return -18
	default:
		return -12
	}
}

// String returns the night definition name.
func (n Night) String() string {
	switch n {
	case NightSunset:
		return "sunset"
	case NightCivil:
		return "civil"
	case NightNautical:
		return "nautical"
	case NightAstronomical:
		return "astronomical"
	default:
		return "unknown"
	}
}

// ParseNight parses a night definition name.
func ParseNight(s string) (Night, error) {
	switch s {
	case "sunset":
		return NightSunset, nil
	case "civil":
		return NightCivil, nil
	case "nautical":
		return NightNautical, nil
	case "astronomical":
		return NightAstronomical, nil
	default:
		return NightNautical, fmt.Errorf("unknown night definition %q", s)
	}
}

// Constraints configures the observability check and the candidate walk.
type Constraints struct {
	MinAltitudeDeg float64 // Target must be above this altitude
	Night          Night   // Sun must be below the night threshold
	MinMoonSepDeg  float64 // Target must be this far from the Moon; 0 disables
	MaxCycles      int     // Candidate evaluations before giving up
}

// DefaultConstraints mirrors the historical defaults of the tracker:
// 15° minimum altitude, nautical darkness, 30° lunar separation, and a
// 200-cycle search bound.
func DefaultConstraints() Constraints {
	return Constraints{
		MinAltitudeDeg: 15,
		Night:          NightNautical,
		MinMoonSepDeg:  30,
		MaxCycles:      200,
	}
}

// Report is the full observability evaluation at one instant.
type Report struct {
	AltitudeDeg    float64
	AzimuthDeg     float64
	SunAltitudeDeg float64
	MoonSepDeg     float64
	AboveHorizon   bool
	DarkEnough     bool
	MoonClear      bool
}

// Observable reports whether every constraint holds.
func (r Report) Observable() bool {
	return r.AboveHorizon && r.DarkEnough && r.MoonClear
}

// Evaluate computes the observability of a target from a site at an instant.
func Evaluate(target transit.Target, obs astro.Observer, t time.Time, c Constraints) Report {
	alt, az := astro.AltAz(target.RADeg, target.DecDeg, obs, t)
	sunAlt := astro.SunAltitude(obs, t)
	moonSep := astro.MoonSeparation(target.RADeg, target.DecDeg, t)

	return Report{
		AltitudeDeg:    alt,
		AzimuthDeg:     az,
		SunAltitudeDeg: sunAlt,
		MoonSepDeg:     moonSep,
		AboveHorizon:   alt > c.MinAltitudeDeg,
		DarkEnough:     sunAlt < c.Night.MaxSunAltitudeDeg(),
		MoonClear:      c.MinMoonSepDeg <= 0 || moonSep > c.MinMoonSepDeg,
	}
}

// Observable reports whether a single instant satisfies the constraints.
func Observable(target transit.Target, obs astro.Observer, t time.Time, c Constraints) bool {
	return Evaluate(target, obs, t, c).Observable()
}

// NextVisible walks transit candidates starting after `from` and returns the
// first one observable from the site. At most c.MaxCycles candidates are
// evaluated; with MaxCycles of zero the search fails immediately without
// evaluating any candidate. Exhaustion returns transit.ErrNoVisibleTransit,
// which bounds the search for targets that never rise or skies that never
// darken.
func NextVisible(eph transit.Ephemeris, target transit.Target, obs astro.Observer, from time.Time, c Constraints) (transit.Candidate, error) {
	cand := transit.NextAfter(eph, from)
	for i := 0; i < c.MaxCycles; i++ {
		if Observable(target, obs, cand.Center, c) {
			return cand, nil
		}
		cand = transit.Advance(eph, cand)
	}
	return transit.Candidate{}, fmt.Errorf("no observable transit of %s from %s in %d cycles: %w",
		target.Name, siteName(obs), c.MaxCycles, transit.ErrNoVisibleTransit)
}

func siteName(obs astro.Observer) string {
	if obs.Name != "" {
		return obs.Name
	}
	return fmt.Sprintf("(%.3f, %.3f)", obs.LonDeg, obs.LatDeg)
}
