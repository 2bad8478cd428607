package election

import "strings"

// TieRequest asks for a manual decision on a single-seat position.
type TieRequest struct {
	Position string
	Tied     []Standing
}

// TieBreaker resolves a tie. The returned name is accepted as the winner
// without checking it against the tied candidates. Implementations may block
// for as long as a human needs.
type TieBreaker interface {
	ResolveTie(req TieRequest) (string, error)
}

// TieBreakerFunc adapts a function to TieBreaker.
type TieBreakerFunc func(req TieRequest) (string, error)

// ResolveTie calls f.
func (f TieBreakerFunc) ResolveTie(req TieRequest) (string, error) {
	return f(req)
}

// PresetTieBreaker answers from decisions made ahead of time, keyed by
// position, and defers to Fallback for anything else.
type PresetTieBreaker struct {
	Choices  map[string]string
	Fallback TieBreaker
}

// ResolveTie returns the preset choice for the position if there is one.
func (p PresetTieBreaker) ResolveTie(req TieRequest) (string, error) {
	if choice, ok := p.Choices[req.Position]; ok && strings.TrimSpace(choice) != "" {
		return strings.TrimSpace(choice), nil
	}
	if p.Fallback == nil {
		return "", &UnresolvedTieError{Position: req.Position, Tied: req.Tied}
	}
	return p.Fallback.ResolveTie(req)
}
