// Package transit implements exoplanet transit ephemeris resolution and
// next-transit prediction. It defines the core data shapes, the crossmatch
// between a position lookup and a catalog cone search, and the periodic-event
// arithmetic that walks transit candidates forward in time.
package transit

import (
	"context"
	"strings"
	"time"
)

// Target is a resolved celestial position for a host star.
type Target struct {
	Name   string  // Canonical name as resolved
	RADeg  float64 // Right ascension in degrees (ICRS)
	DecDeg float64 // Declination in degrees (ICRS)
}

// Ephemeris holds the parameters needed to predict transits.
type Ephemeris struct {
	PeriodDays    float64 // Orbital period in days; must be > 0
	MidTransitBJD float64 // Reference mid-transit epoch, BJD (TDB)
	DurationHours float64 // Transit duration in hours; 0 when unknown
}

// Valid reports whether the ephemeris is complete enough to predict transits.
func (e Ephemeris) Valid() bool {
	return e.PeriodDays > 0 && e.MidTransitBJD > 0
}

// Candidate is the n-th transit after the reference epoch.
type Candidate struct {
	Cycle     int64     // Elapsed whole periods since the reference epoch
	CenterBJD float64   // Mid-transit time, BJD (TDB)
	Center    time.Time // Mid-transit time, UTC
}

// CatalogRow is one catalog entry for a planet, as returned by a cone search.
// Period, epoch and duration are zero when the catalog row omits them.
type CatalogRow struct {
	PlanetName    string  // Full planet name, e.g. "Kepler-51 b"
	Letter        string  // Planet letter designator, e.g. "b"
	Default       bool    // Catalog-preferred parameter set for this planet
	Transits      bool    // Whether the planet is known to transit
	PeriodDays    float64 // Orbital period in days; 0 when missing
	MidTransitBJD float64 // Mid-transit epoch, BJD (TDB); 0 when missing
	DurationHours float64 // Transit duration in hours; 0 when missing
	RADeg         float64 // Catalog right ascension in degrees
	DecDeg        float64 // Catalog declination in degrees
}

// HostName returns the row's planet name with the letter designator stripped.
func (r CatalogRow) HostName() string {
	if r.Letter != "" {
		return strings.TrimSpace(strings.TrimSuffix(r.PlanetName, " "+r.Letter))
	}
	return r.PlanetName
}

// Resolver maps a host star name to a sky position.
// Implemented by the simbad client; stubbed in tests.
type Resolver interface {
	Resolve(ctx context.Context, name string) (Target, error)
}

// Catalog returns planet records near a sky position.
// Implemented by the exoarchive client; stubbed in tests.
type Catalog interface {
	ConeSearch(ctx context.Context, raDeg, decDeg, radiusDeg float64) ([]CatalogRow, error)
}

// SplitName splits a user-supplied planet name into host star name and planet
// letter. A trailing single letter in b..z is treated as the designator:
// "Kepler-51 b" becomes ("Kepler-51", "b"). Names without a designator are
// returned unchanged with an empty letter.
func SplitName(name string) (host, letter string) {
	fields := strings.Fields(name)
	if len(fields) >= 2 {
		last := fields[len(fields)-1]
		if len(last) == 1 && last[0] >= 'b' && last[0] <= 'z' {
			return strings.Join(fields[:len(fields)-1], " "), last
		}
	}
	return strings.Join(fields, " "), ""
}
