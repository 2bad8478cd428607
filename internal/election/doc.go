// Package election counts preferential ballots. Single-seat positions are
// resolved in priority order, each winner barred from every later seat; the
// general council ballots are then filtered for validity, renormalized to
// close the gaps left by already-elected candidates, and summed.
package election
