package ballot

import "fmt"

// Table is the parsed preference matrix for one position. Rows are indexed
// in ballot order, columns in candidate order.
type Table struct {
	Position   string
	Candidates []string
	Ballots    []string
	rows       [][]Score
}

// NewTable validates the shape of the matrix and returns an immutable table.
// Candidate names and ballot ids must be unique.
func NewTable(position string, candidates, ballots []string, rows [][]Score) (*Table, error) {
	if len(ballots) != len(rows) {
		return nil, fmt.Errorf("ballot: %s: %d ballot ids for %d rows", position, len(ballots), len(rows))
	}
	if dup := firstDuplicate(candidates); dup != "" {
		return nil, fmt.Errorf("ballot: %s: duplicate candidate %q", position, dup)
	}
	if dup := firstDuplicate(ballots); dup != "" {
		return nil, fmt.Errorf("ballot: %s: duplicate ballot id %q", position, dup)
	}
	copied := make([][]Score, len(rows))
	for i, row := range rows {
		if len(row) > len(candidates) {
			return nil, fmt.Errorf("ballot: %s: ballot %s has %d scores for %d candidates", position, ballots[i], len(row), len(candidates))
		}
		// Short rows are padded with no value.
		padded := make([]Score, len(candidates))
		copy(padded, row)
		copied[i] = padded
	}
	return &Table{
		Position:   position,
		Candidates: append([]string(nil), candidates...),
		Ballots:    append([]string(nil), ballots...),
		rows:       copied,
	}, nil
}

// MustTable is NewTable for fixtures; it panics on a malformed matrix.
func MustTable(position string, candidates, ballots []string, rows [][]Score) *Table {
	t, err := NewTable(position, candidates, ballots, rows)
	if err != nil {
		panic(err)
	}
	return t
}

// Width is the number of candidates on the table.
func (t *Table) Width() int {
	return len(t.Candidates)
}

// Len is the number of ballots on the table.
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns a copy of the i-th ballot's scores.
func (t *Table) Row(i int) []Score {
	return CloneRow(t.rows[i])
}

// Rows returns a copy of every row.
func (t *Table) Rows() [][]Score {
	out := make([][]Score, len(t.rows))
	for i := range t.rows {
		out[i] = t.Row(i)
	}
	return out
}

// Index reports the column of the named candidate.
func (t *Table) Index(candidate string) (int, bool) {
	for i, name := range t.Candidates {
		if name == candidate {
			return i, true
		}
	}
	return -1, false
}

// Totals sums every candidate's present values. Candidates with no values
// total zero.
func (t *Table) Totals() []int {
	totals := make([]int, len(t.Candidates))
	for _, row := range t.rows {
		for c, s := range row {
			if s.Valid {
				totals[c] += s.Value
			}
		}
	}
	return totals
}

// Select returns a new table holding only the listed rows, in the given order.
func (t *Table) Select(rowIdx []int) *Table {
	ballots := make([]string, len(rowIdx))
	rows := make([][]Score, len(rowIdx))
	for i, r := range rowIdx {
		ballots[i] = t.Ballots[r]
		rows[i] = t.Row(r)
	}
	return &Table{
		Position:   t.Position,
		Candidates: append([]string(nil), t.Candidates...),
		Ballots:    ballots,
		rows:       rows,
	}
}

// WithRows returns a table with the same candidates and ballots but new
// scores. The row count must match.
func (t *Table) WithRows(rows [][]Score) (*Table, error) {
	return NewTable(t.Position, t.Candidates, t.Ballots, rows)
}

func firstDuplicate(values []string) string {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			return v
		}
		seen[v] = struct{}{}
	}
	return ""
}

func (t *Table) String() string {
	return fmt.Sprintf("%s: %d candidates, %d ballots", t.Position, t.Width(), t.Len())
}
