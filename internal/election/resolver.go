package election

import (
	"fmt"

	"github.com/kingrea/tally/internal/ballot"
)

// Outcome is the result of resolving one single-seat position.
type Outcome struct {
	Position string `yaml:"position"`
	// Standings lists every candidate, excluded ones included and flagged.
	Standings []Standing `yaml:"standings"`
	Winner    string     `yaml:"winner"`
	// Tied holds the eligible candidates that shared the top total when a
	// manual decision was needed.
	Tied []Standing `yaml:"tied,omitempty"`
}

// ManuallyResolved reports whether the winner came from a TieBreaker.
func (o Outcome) ManuallyResolved() bool {
	return len(o.Tied) > 0
}

// SeatOptions tune single-seat resolution.
type SeatOptions struct {
	// LegacyTieCheck drops only the excluded candidates at the head of the
	// ranking before the tie comparison, so the runner-up slot may still hold
	// an excluded candidate. By default every excluded candidate is removed
	// first.
	LegacyTieCheck bool
}

// ResolveSeat picks the winner of a single-seat position. A top tie is handed
// to tb exactly once; with a nil tb the tie is returned as an
// *UnresolvedTieError.
func ResolveSeat(t *ballot.Table, excluded ExclusionSet, tb TieBreaker, opts SeatOptions) (Outcome, error) {
	standings := Standings(t, excluded)
	outcome := Outcome{Position: t.Position, Standings: standings}

	contenders := eligible(standings, opts.LegacyTieCheck)
	switch {
	case len(contenders) == 0:
		return outcome, fmt.Errorf("%w for %s", ErrNoEligibleCandidates, t.Position)
	case len(contenders) == 1 || contenders[0].Total != contenders[1].Total:
		outcome.Winner = contenders[0].Candidate
		return outcome, nil
	}

	outcome.Tied = topTie(contenders)
	if tb == nil {
		return outcome, &UnresolvedTieError{Position: t.Position, Tied: outcome.Tied}
	}
	winner, err := tb.ResolveTie(TieRequest{Position: t.Position, Tied: append([]Standing(nil), outcome.Tied...)})
	if err != nil {
		return outcome, fmt.Errorf("election: resolve %s tie: %w", t.Position, err)
	}
	outcome.Winner = winner
	return outcome, nil
}

func eligible(standings []Standing, legacy bool) []Standing {
	if legacy {
		i := 0
		for i < len(standings) && standings[i].Excluded {
			i++
		}
		return standings[i:]
	}
	out := make([]Standing, 0, len(standings))
	for _, s := range standings {
		if !s.Excluded {
			out = append(out, s)
		}
	}
	return out
}

// topTie returns the leading run of equal totals. In legacy mode the run may
// include excluded candidates; they stay flagged.
func topTie(contenders []Standing) []Standing {
	top := contenders[0].Total
	var tied []Standing
	for _, s := range contenders {
		if s.Total != top {
			break
		}
		tied = append(tied, s)
	}
	return tied
}
