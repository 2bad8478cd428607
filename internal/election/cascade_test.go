package election

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kingrea/tally/internal/ballot"
)

type recordingJournal struct {
	infos []string
	warns []string
}

func (r *recordingJournal) Info(format string, args ...any) {
	r.infos = append(r.infos, format)
}

func (r *recordingJournal) Warn(format string, args ...any) {
	r.warns = append(r.warns, format)
}

func TestCascadeExcludesInPriorityOrder(t *testing.T) {
	pres := seatTable("president", []string{"Ann", "Ben"}, []int{2, 1}, []int{2, 1})
	tres := seatTable("treasurer", []string{"Ann", "Dev"}, []int{5, 1}, []int{5, 2})
	intl := seatTable("international representative", []string{"Dev", "Eve", "Ann"}, []int{3, 2, 9})

	journal := &recordingJournal{}
	result, err := Cascade([]*ballot.Table{pres, tres, intl}, ExclusionSet{}, nil, SeatOptions{}, journal)
	if err != nil {
		t.Fatalf("cascade: %v", err)
	}
	if diff := cmp.Diff([]string{"Ann", "Dev", "Eve"}, result.Winners()); diff != "" {
		t.Fatalf("winners mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Ann", "Dev", "Eve"}, result.Excluded.Names()); diff != "" {
		t.Fatalf("exclusions mismatch (-want +got):\n%s", diff)
	}
	if result.Excluded.Len() != 3 {
		t.Fatalf("exclusion set size = %d, want 3", result.Excluded.Len())
	}
	if len(journal.infos) == 0 {
		t.Fatalf("expected journal entries")
	}
}

func TestCascadeStopsOnUnresolvedTie(t *testing.T) {
	pres := seatTable("president", []string{"Ann", "Ben"}, []int{1, 1})
	tres := seatTable("treasurer", []string{"Cat"}, []int{1})
	result, err := Cascade([]*ballot.Table{pres, tres}, ExclusionSet{}, nil, SeatOptions{}, nil)
	if err == nil {
		t.Fatalf("expected tie error")
	}
	if len(result.Outcomes) != 0 {
		t.Fatalf("no outcome should be recorded past the tie: %+v", result.Outcomes)
	}
}

func TestCascadeManualTieIsJournaled(t *testing.T) {
	pres := seatTable("president", []string{"Ann", "Ben"}, []int{1, 1})
	tb := &countingTieBreaker{answer: "Ben"}
	journal := &recordingJournal{}
	result, err := Cascade([]*ballot.Table{pres}, ExclusionSet{}, tb, SeatOptions{}, journal)
	if err != nil {
		t.Fatalf("cascade: %v", err)
	}
	if len(tb.requests) != 1 || result.Winners()[0] != "Ben" {
		t.Fatalf("unexpected cascade %+v", result)
	}
	if len(journal.warns) != 1 {
		t.Fatalf("expected a warning for the manual decision, got %v", journal.warns)
	}
}

func TestExclusionSetIsImmutable(t *testing.T) {
	base := NewExclusionSet("Ann")
	next := base.With("Ben")
	if base.Len() != 1 || next.Len() != 2 {
		t.Fatalf("With must not mutate the receiver: base=%v next=%v", base.Names(), next.Names())
	}
	if again := next.With("Ann"); again.Len() != 2 {
		t.Fatalf("duplicates must be ignored: %v", again.Names())
	}
	names := next.Names()
	names[0] = "Zed"
	if next.Names()[0] != "Ann" {
		t.Fatalf("Names must return a copy")
	}
}

func TestExclusionSetIndicesSkipsAbsentNames(t *testing.T) {
	table := seatTable("gc", []string{"Cat", "Ann"}, []int{1, 2})
	indices, missing := NewExclusionSet("Ann", "Dev").Indices(table)
	if diff := cmp.Diff([]int{1}, indices); diff != "" {
		t.Fatalf("indices mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Dev"}, missing); diff != "" {
		t.Fatalf("missing mismatch (-want +got):\n%s", diff)
	}
}
