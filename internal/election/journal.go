package election

// Journal receives audit entries while a count runs.
type Journal interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
}

type nopJournal struct{}

func (nopJournal) Info(string, ...any) {}
func (nopJournal) Warn(string, ...any) {}

func orNopJournal(j Journal) Journal {
	if j == nil {
		return nopJournal{}
	}
	return j
}
