package ballot

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLayout() Layout {
	return Layout{
		BallotColumn: "Ballot",
		Sections: []Section{
			{Position: "president", Offset: 1},
			{Position: "treasurer", Offset: 2},
		},
	}
}

func TestParseReadsHeaderAfterOffset(t *testing.T) {
	votes := "title\n\nBallot,Alice,Bob, Carol\n1,3,2,1\n2,1,3,x\n\nBallot,\tDan,Erin\n1,1,\n2,2.0,1\n\n"
	tables, err := Parse(strings.NewReader(votes), sampleLayout())
	require.NoError(t, err)
	require.Len(t, tables, 2)

	pres := tables[0]
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, pres.Candidates)
	assert.Equal(t, []string{"1", "2"}, pres.Ballots)
	assert.Equal(t, Scores(3, 2, 1), pres.Row(0))
	assert.Equal(t, []Score{Some(1), Some(3), None()}, pres.Row(1))

	tres := tables[1]
	assert.Equal(t, []string{"Dan", "Erin"}, tres.Candidates)
	assert.Equal(t, []Score{Some(1), None()}, tres.Row(0))
	assert.Equal(t, []Score{Some(2), Some(1)}, tres.Row(1))
}

func TestParseMissingSection(t *testing.T) {
	layout := Layout{Sections: []Section{{Position: "gc", Offset: 5}}}
	_, err := Parse(strings.NewReader("a\n\nBallot,X\n1,1\n\n"), layout)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSectionMissing))
}

func TestParseRejectsMissingBallotColumn(t *testing.T) {
	layout := Layout{Sections: []Section{{Position: "gc", Offset: 1}}}
	_, err := Parse(strings.NewReader("a\n\nId,X\n1,1\n\n"), layout)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `column "Ballot" not found`)
}

func TestParseRejectsDuplicateBallotIDs(t *testing.T) {
	layout := Layout{Sections: []Section{{Position: "gc", Offset: 1}}}
	_, err := Parse(strings.NewReader("a\n\nBallot,X\n1,1\n1,2\n\n"), layout)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate ballot id")
}

func TestParseRejectsWideRows(t *testing.T) {
	layout := Layout{Sections: []Section{{Position: "gc", Offset: 1}}}
	_, err := Parse(strings.NewReader("a\n\nBallot,X\n1,1,9\n\n"), layout)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1 has 3 fields")
}

func TestParseCleansHeaderCells(t *testing.T) {
	layout := Layout{Sections: []Section{{Position: "gc", Offset: 1}}}
	tables, err := Parse(strings.NewReader("a\n\n\ufeffBallot, \uff21lice \n1,1\n\n"), layout)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice"}, tables[0].Candidates)
}

func TestParseWhitespaceLineIsNotASeparator(t *testing.T) {
	layout := Layout{Sections: []Section{{Position: "gc", Offset: 1}}}
	tables, err := Parse(strings.NewReader("a\n\nBallot,X\n1,1\n  \n2,2\n\n"), layout)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, tables[0].Ballots)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "votes.csv")
	require.NoError(t, os.WriteFile(path, []byte("a\r\n\r\nBallot,X\r\n1,4\r\n\r\n"), 0o644))
	tables, err := ParseFile(path, Layout{Sections: []Section{{Position: "gc", Offset: 1}}})
	require.NoError(t, err)
	assert.Equal(t, Scores(4), tables[0].Row(0))

	_, err = ParseFile(filepath.Join(t.TempDir(), "nope.csv"), sampleLayout())
	require.Error(t, err)
}

func TestParseScore(t *testing.T) {
	cases := map[string]Score{
		"7":    Some(7),
		" -2 ": Some(-2),
		"3.0":  Some(3),
		"3.5":  None(),
		"":     None(),
		"NaN":  None(),
		"abc":  None(),
		"inf":  None(),

		"2147483647":   Some(2147483647),
		"-2147483648":  Some(-2147483648),
		"3000000000":   None(),
		"3000000000.0": None(),
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseScore(in), "cell %q", in)
	}
}
