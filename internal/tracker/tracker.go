// Package tracker composes name resolution, catalog crossmatch, transit
// prediction and visibility filtering into the single next-transit entry
// point.
package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/litescript/ls-transits/internal/astro"
	"github.com/litescript/ls-transits/internal/logging"
	"github.com/litescript/ls-transits/internal/transit"
	"github.com/litescript/ls-transits/internal/visibility"
)

// Tracker wires the external collaborators to the core pipeline.
type Tracker struct {
	Resolver    transit.Resolver
	Catalog     transit.Catalog
	Lookup      transit.LookupOptions
	Constraints visibility.Constraints
	Log         *logging.Logger
}

// New creates a tracker with default lookup and visibility settings and a
// discarding logger.
func New(resolver transit.Resolver, catalog transit.Catalog) *Tracker {
	return &Tracker{
		Resolver:    resolver,
		Catalog:     catalog,
		Lookup:      transit.DefaultLookupOptions(),
		Constraints: visibility.DefaultConstraints(),
		Log:         logging.Discard(),
	}
}

// Result is the outcome of a next-transit query.
type Result struct {
	Target    transit.Target    // Resolved sky position (zero when skipped)
	Match     transit.Match     // Catalog entry selected by the crossmatch
	Ephemeris transit.Ephemeris // Ephemeris used for prediction
	Next      transit.Candidate // The next (possibly filtered) transit
	Filtered  bool              // Whether visibility filtering was applied
}

// NextTransit resolves a planet name, crossmatches it against the catalog,
// and returns the next transit after ref. With a site, the result is the next
// transit observable from that site instead. A zero ref means now, resolved
// here and nowhere deeper, so the stages below stay pure.
//
// The name may carry the planet letter ("Kepler-51 b"); an explicit letter
// argument wins over one parsed from the name. Component errors propagate
// unchanged: the first failing stage determines the error.
func (tr *Tracker) NextTransit(ctx context.Context, name, letter string, site *astro.Observer, ref time.Time) (Result, error) {
	if ref.IsZero() {
		ref = time.Now()
	}

	host, inferred := transit.SplitName(name)
	if letter == "" {
		letter = inferred
	}

	target, err := tr.Resolver.Resolve(ctx, host)
	if err != nil {
		return Result{}, err
	}
	tr.Log.Debug("resolved %q to %s at (%.4f, %.4f)", host, target.Name, target.RADeg, target.DecDeg)

	eph, match, err := transit.LookupEphemeris(ctx, tr.Catalog, target, letter, tr.Lookup)
	if err != nil {
		return Result{}, err
	}
	if !strings.Contains(strings.ToLower(match.HostName), strings.ToLower(host)) {
		tr.Log.Warn("matched %q to catalog entry %q, assuming alias", host, match.PlanetName)
	}
	tr.Log.Debug("ephemeris for %s: P=%.6f d, T0=BJD %.5f", match.PlanetName, eph.PeriodDays, eph.MidTransitBJD)

	res := Result{Target: target, Match: match, Ephemeris: eph}
	return tr.finish(res, site, ref)
}

// NextTransitWithEphemeris predicts with a caller-supplied ephemeris instead
// of a catalog lookup. Without a site no resolution is needed at all; with a
// site the name is still resolved, since visibility needs coordinates.
func (tr *Tracker) NextTransitWithEphemeris(ctx context.Context, name string, eph transit.Ephemeris, site *astro.Observer, ref time.Time) (Result, error) {
	if !eph.Valid() {
		return Result{}, fmt.Errorf("supplied ephemeris needs a positive period and epoch: %w", transit.ErrIncompleteData)
	}
	if ref.IsZero() {
		ref = time.Now()
	}

	host, _ := transit.SplitName(name)
	res := Result{Target: transit.Target{Name: host}, Ephemeris: eph}

	if site != nil {
		target, err := tr.Resolver.Resolve(ctx, host)
		if err != nil {
			return Result{}, err
		}
		res.Target = target
	}

	return tr.finish(res, site, ref)
}

func (tr *Tracker) finish(res Result, site *astro.Observer, ref time.Time) (Result, error) {
	if site == nil {
		res.Next = transit.NextAfter(res.Ephemeris, ref)
		return res, nil
	}

	cand, err := visibility.NextVisible(res.Ephemeris, res.Target, *site, ref, tr.Constraints)
	if err != nil {
		return Result{}, err
	}
	res.Next = cand
	res.Filtered = true
	return res, nil
}

// Upcoming is one entry of an upcoming-transit listing.
type Upcoming struct {
	Candidate transit.Candidate
	Report    visibility.Report // Zero when no site was given
	HasReport bool
}

// UpcomingTransits lists the next n transit candidates after ref, annotated
// with observability when a site is given. Unlike NextTransit it does not
// filter: every candidate appears, observable or not.
func (tr *Tracker) UpcomingTransits(eph transit.Ephemeris, target transit.Target, site *astro.Observer, ref time.Time, n int) []Upcoming {
	if ref.IsZero() {
		ref = time.Now()
	}

	out := make([]Upcoming, 0, n)
	cand := transit.NextAfter(eph, ref)
	for i := 0; i < n; i++ {
		u := Upcoming{Candidate: cand}
		if site != nil {
			u.Report = visibility.Evaluate(target, *site, cand.Center, tr.Constraints)
			u.HasReport = true
		}
		out = append(out, u)
		cand = transit.Advance(eph, cand)
	}
	return out
}
