package transit

import (
	"math"
	"time"

	"github.com/litescript/ls-transits/internal/astro"
)

// NextAfter computes the first transit candidate strictly after the given
// instant. All arithmetic happens on the BJD (TDB) axis: the instant is
// converted once, then the cycle count is
//
//	cycle = ceil((t_ref - T0) / P)
//
// bumped by one when the resulting center is not strictly after the instant
// (the instant landing exactly on a transit center yields the following one).
// Pure function: no clock access, identical inputs give identical output.
func NextAfter(eph Ephemeris, instant time.Time) Candidate {
	return nextAfterBJD(eph, astro.TimeToBJD(instant))
}

func nextAfterBJD(eph Ephemeris, refBJD float64) Candidate {
	cycle := int64(math.Ceil((refBJD - eph.MidTransitBJD) / eph.PeriodDays))
	if centerBJD(eph, cycle) <= refBJD {
		cycle++
	}
	return candidateAt(eph, cycle)
}

// Advance returns the candidate one cycle after c. The center is recomputed
// from the reference epoch rather than accumulated, so repeated advancing
// cannot drift.
func Advance(eph Ephemeris, c Candidate) Candidate {
	return candidateAt(eph, c.Cycle+1)
}

func candidateAt(eph Ephemeris, cycle int64) Candidate {
	bjd := centerBJD(eph, cycle)
	return Candidate{
		Cycle:     cycle,
		CenterBJD: bjd,
		Center:    astro.BJDToTime(bjd),
	}
}

func centerBJD(eph Ephemeris, cycle int64) float64 {
	return eph.MidTransitBJD + float64(cycle)*eph.PeriodDays
}
