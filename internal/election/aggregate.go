package election

import "github.com/kingrea/tally/internal/ballot"

// Ranking is a general council result ordered by adjusted total.
type Ranking []Standing

// Aggregate sums adjusted rows per candidate and sorts descending. Missing
// values contribute nothing; equal totals keep column order.
func Aggregate(candidates []string, rows [][]ballot.Score, excluded ExclusionSet) Ranking {
	totals := make([]int, len(candidates))
	for _, row := range rows {
		for c, s := range row {
			if v, ok := s.Get(); ok && c < len(totals) {
				totals[c] += v
			}
		}
	}
	return Ranking(rank(candidates, totals, excluded))
}

// Top returns the first n candidates not already holding a seat. n <= 0
// returns every such candidate.
func (r Ranking) Top(n int) []Standing {
	var out []Standing
	for _, s := range r {
		if s.Excluded {
			continue
		}
		if n > 0 && len(out) == n {
			break
		}
		out = append(out, s)
	}
	return out
}
