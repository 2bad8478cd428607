package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/kingrea/tally/internal/election"
)

type seatDoc struct {
	Position  string              `yaml:"position"`
	Winner    string              `yaml:"winner"`
	Manual    bool                `yaml:"decided_by_hand,omitempty"`
	Tied      []election.Standing `yaml:"tied,omitempty"`
	Standings []election.Standing `yaml:"standings"`
}

type councilDoc struct {
	Position   string               `yaml:"position"`
	Candidates int                  `yaml:"candidates"`
	Required   int                  `yaml:"num_with_safety"`
	Retained   int                  `yaml:"num_without_safety"`
	Considered int                  `yaml:"ballots_considered"`
	Rejected   []election.Rejection `yaml:"rejected,omitempty"`
	Excluded   []string             `yaml:"excluded,omitempty"`
	Absent     []string             `yaml:"absent,omitempty"`
	Elected    []string             `yaml:"elected,omitempty"`
	Ranking    []election.Standing  `yaml:"ranking"`
}

type resultDoc struct {
	Seats   []seatDoc  `yaml:"seats"`
	Council councilDoc `yaml:"general_council"`
}

// WriteYAML encodes res as a YAML document. seats > 0 lists the elected
// council members.
func WriteYAML(w io.Writer, res *election.Result, seats int) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toDoc(res, seats)); err != nil {
		return fmt.Errorf("report: encode yaml: %w", err)
	}
	return enc.Close()
}

func toDoc(res *election.Result, seats int) resultDoc {
	doc := resultDoc{Seats: make([]seatDoc, len(res.Seats))}
	for i, o := range res.Seats {
		doc.Seats[i] = seatDoc{
			Position:  o.Position,
			Winner:    o.Winner,
			Manual:    o.ManuallyResolved(),
			Tied:      o.Tied,
			Standings: o.Standings,
		}
	}
	c := res.Council
	doc.Council = councilDoc{
		Position:   c.Position,
		Candidates: c.Candidates,
		Required:   c.Required,
		Retained:   c.Retained,
		Considered: c.Considered,
		Rejected:   c.Rejected,
		Excluded:   c.ExcludedColumns,
		Absent:     c.Absent,
		Ranking:    c.Ranking,
	}
	if seats > 0 {
		for _, s := range c.Ranking.Top(seats) {
			doc.Council.Elected = append(doc.Council.Elected, s.Candidate)
		}
	}
	return doc
}
