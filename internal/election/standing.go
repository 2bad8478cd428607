package election

import (
	"sort"

	"github.com/kingrea/tally/internal/ballot"
)

// Standing is a candidate's summed score.
type Standing struct {
	Candidate string `yaml:"candidate"`
	Total     int    `yaml:"total"`
	// Excluded is set when the candidate already holds a higher-priority seat.
	Excluded bool `yaml:"excluded,omitempty"`
}

// Standings sums the table per candidate and sorts descending. Equal totals
// keep column order; callers detect ties themselves.
func Standings(t *ballot.Table, excluded ExclusionSet) []Standing {
	return rank(t.Candidates, t.Totals(), excluded)
}

func rank(candidates []string, totals []int, excluded ExclusionSet) []Standing {
	out := make([]Standing, len(candidates))
	for i, name := range candidates {
		out[i] = Standing{Candidate: name, Total: totals[i], Excluded: excluded.Contains(name)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})
	return out
}
