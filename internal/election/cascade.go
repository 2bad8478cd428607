package election

import (
	"fmt"

	"github.com/kingrea/tally/internal/ballot"
)

// CascadeResult is the outcome of every single-seat position plus the
// exclusions they produced.
type CascadeResult struct {
	Outcomes []Outcome
	Excluded ExclusionSet
}

// Winners lists the declared winners in priority order.
func (r CascadeResult) Winners() []string {
	out := make([]string, len(r.Outcomes))
	for i, o := range r.Outcomes {
		out[i] = o.Winner
	}
	return out
}

// Cascade resolves the single-seat tables in the order given. Each position
// sees the exclusions accumulated from the positions before it, and its
// winner is added before the next one runs.
func Cascade(tables []*ballot.Table, start ExclusionSet, tb TieBreaker, opts SeatOptions, journal Journal) (CascadeResult, error) {
	journal = orNopJournal(journal)
	result := CascadeResult{Excluded: start}
	for _, table := range tables {
		if result.Excluded.Len() > 0 {
			journal.Info("%s: excluding %v", table.Position, result.Excluded.Names())
		}
		outcome, err := ResolveSeat(table, result.Excluded, tb, opts)
		if err != nil {
			return result, fmt.Errorf("election: cascade at %s: %w", table.Position, err)
		}
		for _, s := range outcome.Standings {
			if s.Excluded {
				journal.Info("%s: %s already holds a higher-priority seat", table.Position, s.Candidate)
			}
		}
		if outcome.ManuallyResolved() {
			journal.Warn("%s: tie at %d resolved manually as %s", table.Position, outcome.Tied[0].Total, outcome.Winner)
		} else {
			journal.Info("%s: winner %s", table.Position, outcome.Winner)
		}
		result.Outcomes = append(result.Outcomes, outcome)
		result.Excluded = result.Excluded.With(outcome.Winner)
	}
	return result, nil
}
