package election

import "github.com/kingrea/tally/internal/ballot"

// ExclusionSet lists candidates already elected to a higher-priority seat,
// in the order they were elected. The zero value is empty. Values are never
// mutated; With returns a new set.
type ExclusionSet struct {
	names []string
}

// NewExclusionSet builds a set from names, dropping repeats.
func NewExclusionSet(names ...string) ExclusionSet {
	var s ExclusionSet
	for _, name := range names {
		s = s.With(name)
	}
	return s
}

// With returns a set that also holds name. Adding a present name is a no-op.
func (s ExclusionSet) With(name string) ExclusionSet {
	if s.Contains(name) {
		return s
	}
	names := make([]string, len(s.names), len(s.names)+1)
	copy(names, s.names)
	return ExclusionSet{names: append(names, name)}
}

// Contains reports whether name is excluded.
func (s ExclusionSet) Contains(name string) bool {
	for _, n := range s.names {
		if n == name {
			return true
		}
	}
	return false
}

// Len is the number of excluded candidates.
func (s ExclusionSet) Len() int {
	return len(s.names)
}

// Names returns the excluded candidates in election order.
func (s ExclusionSet) Names() []string {
	return append([]string(nil), s.names...)
}

// Indices maps the set onto a table's columns. Names the table does not
// carry are returned separately; a position's pool need not overlap another's.
func (s ExclusionSet) Indices(t *ballot.Table) (indices []int, missing []string) {
	for _, name := range s.names {
		if idx, ok := t.Index(name); ok {
			indices = append(indices, idx)
			continue
		}
		missing = append(missing, name)
	}
	return indices, missing
}
