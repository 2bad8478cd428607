// Package ballot holds the per-position preference tables produced from a
// vote file. A table is a matrix of optional integer scores indexed by ballot
// id and candidate name; a missing or non-numeric cell is "no value" and is
// never treated as zero.
package ballot
