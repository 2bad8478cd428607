package ballot

import "strconv"

// Score is a preference value that may be absent.
type Score struct {
	Value int
	Valid bool
}

// Some wraps a present value.
func Some(v int) Score {
	return Score{Value: v, Valid: true}
}

// None returns the "no value" score.
func None() Score {
	return Score{}
}

// Get returns the value and whether it is present.
func (s Score) Get() (int, bool) {
	return s.Value, s.Valid
}

// String renders the value, or an empty string for no value.
func (s Score) String() string {
	if !s.Valid {
		return ""
	}
	return strconv.Itoa(s.Value)
}

// Scores builds a row from plain integers. Handy in tests and fixtures.
func Scores(values ...int) []Score {
	out := make([]Score, len(values))
	for i, v := range values {
		out[i] = Some(v)
	}
	return out
}

// CloneRow copies a row so callers can derive values without touching the
// table it came from.
func CloneRow(row []Score) []Score {
	if row == nil {
		return nil
	}
	out := make([]Score, len(row))
	copy(out, row)
	return out
}
