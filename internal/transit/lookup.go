package transit

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/litescript/ls-transits/internal/astro"
)

// LookupOptions configures the positional crossmatch.
type LookupOptions struct {
	// CrossmatchRadiusDeg is the maximum angular distance between the
	// resolved position and a catalog entry for the two to be considered
	// the same system.
	CrossmatchRadiusDeg float64
}

// DefaultCrossmatchRadiusDeg is 30 arcseconds, wide enough to absorb
// position differences between the name resolver and the planet catalog.
const DefaultCrossmatchRadiusDeg = 30.0 / 3600.0

// DefaultLookupOptions returns the standard crossmatch configuration.
func DefaultLookupOptions() LookupOptions {
	return LookupOptions{CrossmatchRadiusDeg: DefaultCrossmatchRadiusDeg}
}

// Match describes the catalog entry selected by the crossmatch.
type Match struct {
	PlanetName    string  // Catalog planet name, e.g. "Kepler-51 b"
	HostName      string  // Catalog host name, e.g. "Kepler-51"
	Letter        string  // Selected planet letter
	SeparationDeg float64 // Angular distance from the resolved position
}

// LookupEphemeris crossmatches a resolved target against the planet catalog
// and assembles a transit ephemeris.
//
// The nearest catalog system within the crossmatch radius wins. When a letter
// is given, only that planet's rows are considered; when it is not and the
// system has several planets, the lookup fails with ErrAmbiguousName rather
// than guessing. Rows flagged as non-transiting cannot produce an ephemeris.
func LookupEphemeris(ctx context.Context, cat Catalog, target Target, letter string, opts LookupOptions) (Ephemeris, Match, error) {
	if opts.CrossmatchRadiusDeg <= 0 {
		opts.CrossmatchRadiusDeg = DefaultCrossmatchRadiusDeg
	}

	rows, err := cat.ConeSearch(ctx, target.RADeg, target.DecDeg, opts.CrossmatchRadiusDeg)
	if err != nil {
		return Ephemeris{}, Match{}, fmt.Errorf("catalog cone search at (%.4f, %.4f): %w",
			target.RADeg, target.DecDeg, err)
	}

	// Keep rows inside the radius and find the nearest system. The catalog
	// applies the cone server-side; re-checking locally guards against
	// services that over-return.
	type scored struct {
		row CatalogRow
		sep float64
	}
	var inRadius []scored
	for _, r := range rows {
		sep := astro.AngularSeparation(target.RADeg, target.DecDeg, r.RADeg, r.DecDeg)
		if sep <= opts.CrossmatchRadiusDeg {
			inRadius = append(inRadius, scored{row: r, sep: sep})
		}
	}
	if len(inRadius) == 0 {
		return Ephemeris{}, Match{}, fmt.Errorf("no catalog entry within %.1f\" of %s: %w",
			opts.CrossmatchRadiusDeg*3600, target.Name, ErrNotFound)
	}

	sort.Slice(inRadius, func(i, j int) bool { return inRadius[i].sep < inRadius[j].sep })
	host := inRadius[0].row.HostName()
	hostSep := inRadius[0].sep

	var system []CatalogRow
	for _, s := range inRadius {
		if s.row.HostName() == host {
			system = append(system, s.row)
		}
	}

	// Letter disambiguation.
	selected := system
	if letter != "" {
		selected = nil
		for _, r := range system {
			if strings.EqualFold(r.Letter, letter) {
				selected = append(selected, r)
			}
		}
		if len(selected) == 0 {
			return Ephemeris{}, Match{}, fmt.Errorf("no planet %s %s in catalog: %w",
				host, letter, ErrNotFound)
		}
	} else {
		letters := distinctLetters(system)
		if len(letters) > 1 {
			return Ephemeris{}, Match{}, fmt.Errorf("%s has planets %s, specify one: %w",
				host, strings.Join(letters, ", "), ErrAmbiguousName)
		}
		if len(letters) == 1 {
			letter = letters[0]
		}
	}

	transits := false
	for _, r := range selected {
		if r.Transits {
			transits = true
			break
		}
	}
	if !transits {
		return Ephemeris{}, Match{}, fmt.Errorf("%s %s is not known to transit: %w",
			host, letter, ErrNotFound)
	}

	eph, err := assembleEphemeris(selected)
	if err != nil {
		return Ephemeris{}, Match{}, fmt.Errorf("%s %s: %w", host, letter, err)
	}

	m := Match{
		PlanetName:    strings.TrimSpace(host + " " + letter),
		HostName:      host,
		Letter:        letter,
		SeparationDeg: hostSep,
	}
	return eph, m, nil
}

// assembleEphemeris picks period, epoch and duration from a planet's rows.
// Preference order, following the catalog's own semantics: the default row
// when complete, then the first complete non-default row, and as a last
// resort period and epoch stitched together from separate rows.
func assembleEphemeris(rows []CatalogRow) (Ephemeris, error) {
	duration := 0.0
	for _, r := range rows {
		if r.DurationHours > 0 && (duration == 0 || r.Default) {
			duration = r.DurationHours
		}
	}

	for _, r := range rows {
		if r.Default && r.PeriodDays > 0 && r.MidTransitBJD > 0 {
			return Ephemeris{PeriodDays: r.PeriodDays, MidTransitBJD: r.MidTransitBJD, DurationHours: duration}, nil
		}
	}
	for _, r := range rows {
		if !r.Default && r.PeriodDays > 0 && r.MidTransitBJD > 0 {
			return Ephemeris{PeriodDays: r.PeriodDays, MidTransitBJD: r.MidTransitBJD, DurationHours: duration}, nil
		}
	}

	// Stitch from separate rows.
	var period, epoch float64
	for _, r := range rows {
		if period == 0 && r.PeriodDays > 0 {
			period = r.PeriodDays
		}
		if epoch == 0 && r.MidTransitBJD > 0 {
			epoch = r.MidTransitBJD
		}
	}
	if period == 0 || epoch == 0 {
		return Ephemeris{}, fmt.Errorf("catalog rows lack a period or mid-transit epoch: %w", ErrIncompleteData)
	}
	return Ephemeris{PeriodDays: period, MidTransitBJD: epoch, DurationHours: duration}, nil
}

func distinctLetters(rows []CatalogRow) []string {
	seen := make(map[string]bool)
	var letters []string
	for _, r := range rows {
		l := strings.ToLower(r.Letter)
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		letters = append(letters, l)
	}
	sort.Strings(letters)
	return letters
}
