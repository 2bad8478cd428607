package election

import "github.com/kingrea/tally/internal/ballot"

// Renormalize recomputes a general council row as if the excluded columns
// were never on the ballot, then keeps only the top retained preferences on
// a 1..retained scale (retained = most preferred).
//
// Every candidate ranked below an excluded one moves up a slot per such
// exclusion. Increments are counted against the original score and all
// exclusions are applied before the cut-off, so adjacent exclusions each
// count. The input row is not modified.
func Renormalize(row []ballot.Score, excluded []int, retained, mx int) []ballot.Score {
	isExcluded := make(map[int]bool, len(excluded))
	for _, j := range excluded {
		isExcluded[j] = true
	}
	cut := mx - retained
	out := make([]ballot.Score, len(row))
	for i, s := range row {
		if isExcluded[i] || !s.Valid {
			continue
		}
		v := s.Value
		for j := range isExcluded {
			if j < len(row) && row[j].Valid && s.Value < row[j].Value {
				v++
			}
		}
		if v <= cut {
			continue
		}
		out[i] = ballot.Some(v - cut)
	}
	return out
}
