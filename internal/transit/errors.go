package transit

import "errors"

// Sentinel errors for the tracker pipeline. Callers test with errors.Is;
// each stage wraps these with the failing name or coordinates, so the stage
// that failed stays identifiable at the top.
var (
	// ErrNotFound: the name resolver or the catalog has no matching record.
	ErrNotFound = errors.New("target not found")

	// ErrAmbiguousName: multiple planets match and no letter disambiguates.
	ErrAmbiguousName = errors.New("ambiguous planet name")

	// ErrIncompleteData: a catalog match exists but lacks a period or a
	// mid-transit epoch, so no transit can be predicted.
	ErrIncompleteData = errors.New("incomplete ephemeris")

	// ErrNoVisibleTransit: the bounded visibility search was exhausted.
	ErrNoVisibleTransit = errors.New("no visible transit within search bound")
)
