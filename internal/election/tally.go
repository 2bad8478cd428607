package election

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/kingrea/tally/internal/ballot"
)

// Params are the general council counting parameters.
type Params struct {
	// Required is how many candidates every council ballot must rank.
	Required int
	// Retained is how many top preferences count once elected candidates
	// are removed.
	Retained int
	// Workers bounds concurrent row renormalization. Values <= 0 use
	// runtime.NumCPU().
	Workers int
	// LegacyTieCheck, see SeatOptions.
	LegacyTieCheck bool
}

func (p Params) validate() error {
	if p.Required < 1 {
		return fmt.Errorf("election: required preferences must be positive, got %d", p.Required)
	}
	if p.Retained < 1 {
		return fmt.Errorf("election: retained preferences must be positive, got %d", p.Retained)
	}
	if p.Retained > p.Required {
		return fmt.Errorf("election: retained preferences (%d) exceed required preferences (%d)", p.Retained, p.Required)
	}
	return nil
}

// Ballots are the parsed tables for one election. Single holds the
// single-seat positions in priority order.
type Ballots struct {
	Single  []*ballot.Table
	Council *ballot.Table
}

// CouncilResult is the general council half of a count.
type CouncilResult struct {
	Position   string
	Candidates int
	Required   int
	Retained   int
	Considered int
	Rejected   []Rejection
	// ExcludedColumns are the elected candidates found on the council table.
	ExcludedColumns []string
	// Absent are elected candidates the council table does not carry.
	Absent   []string
	Adjusted *ballot.Table
	Ranking  Ranking
}

// Result is a full count.
type Result struct {
	Seats    []Outcome
	Excluded ExclusionSet
	Council  CouncilResult
}

// Option customizes a Tallier.
type Option func(*Tallier)

// WithTieBreaker sets the collaborator asked to settle top ties.
func WithTieBreaker(tb TieBreaker) Option {
	return func(t *Tallier) {
		t.tieBreaker = tb
	}
}

// WithJournal routes audit entries to j.
func WithJournal(j Journal) Option {
	return func(t *Tallier) {
		if j != nil {
			t.journal = j
		}
	}
}

// Tallier runs the whole count.
type Tallier struct {
	params     Params
	tieBreaker TieBreaker
	journal    Journal
}

// New validates params and builds a Tallier.
func New(params Params, opts ...Option) (*Tallier, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if params.Workers <= 0 {
		params.Workers = runtime.NumCPU()
	}
	t := &Tallier{params: params, journal: nopJournal{}}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Run resolves the single-seat positions, then counts the general council.
func (t *Tallier) Run(ctx context.Context, b Ballots) (*Result, error) {
	if b.Council == nil {
		return nil, errors.New("election: general council table is required")
	}
	mx := b.Council.Width()
	if t.params.Required > mx {
		return nil, fmt.Errorf("election: %d required preferences but only %d council candidates", t.params.Required, mx)
	}

	cascade, err := Cascade(b.Single, ExclusionSet{}, t.tieBreaker, SeatOptions{LegacyTieCheck: t.params.LegacyTieCheck}, t.journal)
	if err != nil {
		return nil, err
	}

	t.journal.Info("elected in priority order: %s", strings.Join(cascade.Winners(), ", "))

	council, err := t.countCouncil(ctx, b.Council, cascade.Excluded)
	if err != nil {
		return nil, err
	}
	return &Result{
		Seats:    cascade.Outcomes,
		Excluded: cascade.Excluded,
		Council:  council,
	}, nil
}

func (t *Tallier) countCouncil(ctx context.Context, table *ballot.Table, excluded ExclusionSet) (CouncilResult, error) {
	mx := table.Width()
	t.journal.Info("%s: %d candidates, %d ballots", table.Position, mx, table.Len())

	report := FilterValid(table, t.params.Required, mx)
	for _, r := range report.Rejected {
		t.journal.Warn("%s: dropping ballot %s: %s", table.Position, r.Ballot, r.Reason)
	}

	indices, absent := excluded.Indices(table)
	for _, name := range absent {
		t.journal.Info("%s: %s is not on this table, nothing to exclude", table.Position, name)
	}
	columns := make([]string, len(indices))
	for i, idx := range indices {
		columns[i] = table.Candidates[idx]
	}

	adjusted, err := RenormalizeTable(ctx, report.Valid, indices, t.params.Retained, mx, t.params.Workers)
	if err != nil {
		return CouncilResult{}, err
	}
	return CouncilResult{
		Position:        table.Position,
		Candidates:      mx,
		Required:        t.params.Required,
		Retained:        t.params.Retained,
		Considered:      table.Len(),
		Rejected:        report.Rejected,
		ExcludedColumns: columns,
		Absent:          absent,
		Adjusted:        adjusted,
		Ranking:         Aggregate(adjusted.Candidates, adjusted.Rows(), excluded),
	}, nil
}

// RenormalizeTable renormalizes every row of a validated council table,
// spreading rows over at most workers goroutines. Row order is preserved.
func RenormalizeTable(ctx context.Context, valid *ballot.Table, excluded []int, retained, mx, workers int) (*ballot.Table, error) {
	if workers <= 0 {
		workers = 1
	}
	rows := make([][]ballot.Score, valid.Len())
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < valid.Len(); i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rows[i] = Renormalize(valid.Row(i), excluded, retained, mx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("election: renormalize %s: %w", valid.Position, err)
	}
	return valid.WithRows(rows)
}
