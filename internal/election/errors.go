package election

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedBallot marks a general council row whose values do not
	// follow the required distribution. Such rows are dropped, not fatal.
	ErrMalformedBallot = errors.New("election: malformed ballot")

	// ErrUnresolvedTie is returned when a top tie needs a manual decision
	// and no TieBreaker is configured.
	ErrUnresolvedTie = errors.New("election: unresolved tie")

	// ErrNoEligibleCandidates is returned when every candidate for a seat is
	// already excluded.
	ErrNoEligibleCandidates = errors.New("election: no eligible candidates")
)

// UnresolvedTieError carries the tied standings for a position.
type UnresolvedTieError struct {
	Position string
	Tied     []Standing
}

func (e *UnresolvedTieError) Error() string {
	names := make([]string, len(e.Tied))
	for i, s := range e.Tied {
		names[i] = s.Candidate
	}
	total := 0
	if len(e.Tied) > 0 {
		total = e.Tied[0].Total
	}
	return fmt.Sprintf("election: %s tied at %d between %s", e.Position, total, strings.Join(names, ", "))
}

func (e *UnresolvedTieError) Unwrap() error {
	return ErrUnresolvedTie
}
