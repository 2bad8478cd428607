// Package report renders a finished count for the terminal or as YAML.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/kingrea/tally/internal/ballot"
	"github.com/kingrea/tally/internal/election"
)

// Format selects the renderer.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "text" or "yaml", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatYAML:
		return FormatYAML, nil
	}
	return "", fmt.Errorf("report: unknown output format %q (want text or yaml)", s)
}

// Options control what the text report shows.
type Options struct {
	// Verbose adds the raw position tables and the adjusted council table.
	Verbose bool
	// Seats marks the top n council candidates as elected. Zero marks none.
	Seats int
	// Raw are the parsed tables, shown when Verbose is set.
	Raw []*ballot.Table
	// Journal holds this run's audit entries, shown when Verbose is set.
	Journal []string
}

var (
	headingStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F7B801")).MarginTop(1)
	headerCell    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	excludedCell  = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#888888"))
	winnerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ADE80"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	tableBorder   = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))
	excludedMark  = "(seated)"
	electedMarker = "elected"
)

// Write renders res to w in the given format.
func Write(w io.Writer, res *election.Result, format Format, opts Options) error {
	if res == nil {
		return fmt.Errorf("report: nil result")
	}
	switch format {
	case FormatYAML:
		return WriteYAML(w, res, opts.Seats)
	default:
		_, err := io.WriteString(w, Text(res, opts))
		return err
	}
}

// Text renders the whole count as styled terminal output.
func Text(res *election.Result, opts Options) string {
	var b strings.Builder

	if opts.Verbose {
		for _, t := range opts.Raw {
			b.WriteString(heading(fmt.Sprintf("%s ballots", t.Position)))
			b.WriteString(scoreTable(t))
		}
	}

	for _, o := range res.Seats {
		b.WriteString(heading(o.Position))
		b.WriteString(standingsTable(o.Standings, nil))
		b.WriteString("\n")
		b.WriteString(seatLine(o))
		b.WriteString("\n")
	}

	c := res.Council
	b.WriteString(heading(c.Position))
	b.WriteString(validitySummary(c))
	if len(c.ExcludedColumns) > 0 {
		b.WriteString(fmt.Sprintf("Removed elected candidates: %s\n", strings.Join(c.ExcludedColumns, ", ")))
	}
	if len(c.Absent) > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Not on this ballot: %s", strings.Join(c.Absent, ", "))))
		b.WriteString("\n")
	}
	if opts.Verbose && c.Adjusted != nil {
		b.WriteString(heading(fmt.Sprintf("%s adjusted ballots", c.Position)))
		b.WriteString(scoreTable(c.Adjusted))
	}
	b.WriteString(heading(fmt.Sprintf("%s ranking", c.Position)))
	b.WriteString(standingsTable(c.Ranking, electedSet(c.Ranking, opts.Seats)))
	b.WriteString("\n")

	if opts.Verbose && len(opts.Journal) > 0 {
		b.WriteString(heading("journal"))
		for _, line := range opts.Journal {
			b.WriteString(mutedStyle.Render(line))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func heading(s string) string {
	return headingStyle.Render(strings.ToUpper(s)) + "\n"
}

func seatLine(o election.Outcome) string {
	if o.ManuallyResolved() {
		names := make([]string, len(o.Tied))
		for i, s := range o.Tied {
			names[i] = s.Candidate
		}
		note := warnStyle.Render(fmt.Sprintf("Tie at %d between %s, decided by hand.", o.Tied[0].Total, strings.Join(names, ", ")))
		return note + "\n" + winnerStyle.Render(fmt.Sprintf("%s: %s", o.Position, o.Winner))
	}
	return winnerStyle.Render(fmt.Sprintf("%s: %s", o.Position, o.Winner))
}

func validitySummary(c election.CouncilResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d candidates, %d ballots considered, %d valid. Each ballot must rank %d; the top %d count.\n",
		c.Candidates, c.Considered, c.Considered-len(c.Rejected), c.Required, c.Retained)
	if len(c.Rejected) == 0 {
		return b.String()
	}
	rows := make([][]string, len(c.Rejected))
	for i, r := range c.Rejected {
		rows[i] = []string{r.Ballot, r.Reason}
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorder).
		Headers("Rejected ballot", "Reason").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCell
			}
			return cellStyle
		})
	b.WriteString(t.String())
	b.WriteString("\n")
	return b.String()
}

// standingsTable lists candidates with totals. Excluded candidates are
// greyed and marked; names in elected get an elected marker.
func standingsTable(standings []election.Standing, elected map[string]bool) string {
	rows := make([][]string, len(standings))
	for i, s := range standings {
		note := ""
		switch {
		case s.Excluded:
			note = excludedMark
		case elected[s.Candidate]:
			note = electedMarker
		}
		rows[i] = []string{strconv.Itoa(i + 1), s.Candidate, strconv.Itoa(s.Total), note}
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorder).
		Headers("#", "Candidate", "Total", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCell
			}
			if row >= 0 && row < len(rows) && rows[row][3] == excludedMark {
				return excludedCell
			}
			return cellStyle
		})
	return t.String()
}

func scoreTable(bt *ballot.Table) string {
	headers := append([]string{"Ballot"}, bt.Candidates...)
	rows := make([][]string, bt.Len())
	for i := 0; i < bt.Len(); i++ {
		row := make([]string, 0, bt.Width()+1)
		row = append(row, bt.Ballots[i])
		for _, s := range bt.Row(i) {
			row = append(row, s.String())
		}
		rows[i] = row
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorder).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCell
			}
			return cellStyle
		})
	return t.String() + "\n"
}

func electedSet(r election.Ranking, seats int) map[string]bool {
	if seats <= 0 {
		return nil
	}
	out := map[string]bool{}
	for _, s := range r.Top(seats) {
		out[s.Candidate] = true
	}
	return out
}
