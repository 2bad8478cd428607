package election

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kingrea/tally/internal/ballot"
)

// Rejection records a general council ballot dropped by the validity filter.
type Rejection struct {
	Ballot string `yaml:"ballot"`
	Reason string `yaml:"reason"`
}

// ValidityReport splits a general council table into counted and dropped
// ballots.
type ValidityReport struct {
	Valid    *ballot.Table
	Rejected []Rejection
}

// FilterValid keeps the rows that use every value in [mx-required+1, mx]
// exactly once and no other value. Filtering its own output changes nothing.
func FilterValid(t *ballot.Table, required, mx int) ValidityReport {
	var keep []int
	var rejected []Rejection
	for i := 0; i < t.Len(); i++ {
		if err := ValidRow(t.Row(i), required, mx); err != nil {
			rejected = append(rejected, Rejection{Ballot: t.Ballots[i], Reason: err.Error()})
			continue
		}
		keep = append(keep, i)
	}
	return ValidityReport{Valid: t.Select(keep), Rejected: rejected}
}

// ValidRow checks one row against the required distribution. The returned
// error wraps ErrMalformedBallot.
func ValidRow(row []ballot.Score, required, mx int) error {
	low := mx - required + 1
	counts := make(map[int]int, required)
	for _, s := range row {
		if s.Valid {
			counts[s.Value]++
		}
	}
	var problems []string
	for v := mx; v >= low; v-- {
		switch n := counts[v]; {
		case n == 0:
			problems = append(problems, fmt.Sprintf("missing %d", v))
		case n > 1:
			problems = append(problems, fmt.Sprintf("%d used %d times", v, n))
		}
	}
	var stray []int
	for v := range counts {
		if v < low || v > mx {
			stray = append(stray, v)
		}
	}
	if len(stray) > 0 {
		sort.Sort(sort.Reverse(sort.IntSlice(stray)))
		problems = append(problems, fmt.Sprintf("out of range %v", stray))
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrMalformedBallot, strings.Join(problems, "; "))
}
