package report

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/kingrea/tally/internal/ballot"
	"github.com/kingrea/tally/internal/election"
)

func sampleResult() *election.Result {
	adjusted := ballot.MustTable("gc", []string{"Ann", "Ben"}, []string{"b1"}, [][]ballot.Score{{ballot.None(), ballot.Some(2)}})
	return &election.Result{
		Seats: []election.Outcome{
			{
				Position:  "president",
				Standings: []election.Standing{{Candidate: "Ann", Total: 5}, {Candidate: "Ben", Total: 3}},
				Winner:    "Ann",
			},
			{
				Position: "treasurer",
				Standings: []election.Standing{
					{Candidate: "Ann", Total: 6, Excluded: true},
					{Candidate: "Cat", Total: 4},
					{Candidate: "Dan", Total: 4},
				},
				Winner: "Dan",
				Tied:   []election.Standing{{Candidate: "Cat", Total: 4}, {Candidate: "Dan", Total: 4}},
			},
		},
		Excluded: election.NewExclusionSet("Ann", "Dan"),
		Council: election.CouncilResult{
			Position:        "gc",
			Candidates:      2,
			Required:        2,
			Retained:        1,
			Considered:      2,
			Rejected:        []election.Rejection{{Ballot: "b2", Reason: "missing preferences"}},
			ExcludedColumns: []string{"Ann"},
			Absent:          []string{"Dan"},
			Adjusted:        adjusted,
			Ranking: election.Ranking{
				{Candidate: "Ben", Total: 2},
				{Candidate: "Ann", Total: 0, Excluded: true},
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "TEXT": FormatText, " yaml ": FormatYAML} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("json"); err == nil {
		t.Fatalf("expected error for json")
	}
}

func TestTextReport(t *testing.T) {
	out := Text(sampleResult(), Options{Seats: 1})
	for _, want := range []string{
		"PRESIDENT", "president: Ann",
		"Tie at 4 between Cat, Dan", "treasurer: Dan",
		"2 ballots considered, 1 valid", "b2", "missing preferences",
		"Removed elected candidates: Ann", "Not on this ballot: Dan",
		"GC RANKING", "elected", excludedMark,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "ADJUSTED") || strings.Contains(out, "JOURNAL") {
		t.Fatalf("adjusted table should only show when verbose")
	}
}

func TestTextReportVerbose(t *testing.T) {
	raw := ballot.MustTable("president", []string{"Ann", "Ben"}, []string{"p1"}, [][]ballot.Score{ballot.Scores(2, 1)})
	out := Text(sampleResult(), Options{
		Verbose: true,
		Raw:     []*ballot.Table{raw},
		Journal: []string{"2024-05-01T10:00:00Z INFO  run-1 president: winner Ann"},
	})
	for _, want := range []string{"PRESIDENT BALLOTS", "p1", "GC ADJUSTED BALLOTS", "b1", "JOURNAL", "president: winner Ann"} {
		if !strings.Contains(out, want) {
			t.Fatalf("verbose report missing %q:\n%s", want, out)
		}
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleResult(), FormatYAML, Options{Seats: 1}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var doc resultDoc
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not yaml: %v\n%s", err, buf.String())
	}
	if len(doc.Seats) != 2 || doc.Seats[1].Winner != "Dan" || !doc.Seats[1].Manual {
		t.Fatalf("unexpected seats: %+v", doc.Seats)
	}
	if got := doc.Council.Elected; len(got) != 1 || got[0] != "Ben" {
		t.Fatalf("elected = %v, want [Ben]", got)
	}
	if len(doc.Council.Rejected) != 1 || doc.Council.Rejected[0].Ballot != "b2" {
		t.Fatalf("rejections = %+v", doc.Council.Rejected)
	}
	if !doc.Council.Ranking[1].Excluded {
		t.Fatalf("excluded flag lost: %+v", doc.Council.Ranking)
	}
}

func TestWriteNilResult(t *testing.T) {
	if err := Write(&bytes.Buffer{}, nil, FormatText, Options{}); err == nil {
		t.Fatalf("expected error for nil result")
	}
}
