// internal/tui/tiebreak.go
//
// The tie prompt is the one interactive step of a count. When two or more
// eligible candidates share the top total for a single-seat position, the
// count stops here until a returning officer types the winner's name.
// It uses bubbletea like the rest of the terminal UI:
//
// User Input -> Message -> Update -> New Model -> View -> Screen

package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/tally/internal/election"
)

// ErrPromptAborted is returned when the officer quits the prompt without
// naming a winner.
var ErrPromptAborted = errors.New("tui: tie prompt aborted")

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F7B801")).Padding(1, 0, 0, 0)
	tiedNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	excludedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999")).Strikethrough(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).MarginTop(1)
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(0, 1)
)

// TiePrompt asks a human to settle a tie. It satisfies election.TieBreaker.
type TiePrompt struct {
	options []tea.ProgramOption
}

// NewTiePrompt builds a prompt. Program options let callers swap the input
// and output streams.
func NewTiePrompt(opts ...tea.ProgramOption) *TiePrompt {
	return &TiePrompt{options: opts}
}

// ResolveTie blocks until a name is entered. The name is returned as typed
// (trimmed); it is not checked against the tied candidates.
func (p *TiePrompt) ResolveTie(req election.TieRequest) (string, error) {
	program := tea.NewProgram(newTieModel(req), p.options...)
	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("tui: tie prompt for %s: %w", req.Position, err)
	}
	m, ok := final.(tieModel)
	if !ok || m.aborted || m.choice == "" {
		return "", ErrPromptAborted
	}
	return m.choice, nil
}

type tieModel struct {
	req     election.TieRequest
	input   textinput.Model
	choice  string
	aborted bool
	warning string
}

func newTieModel(req election.TieRequest) tieModel {
	ti := textinput.New()
	ti.Placeholder = "winner's name"
	ti.Prompt = "› "
	ti.CharLimit = 256
	ti.Width = 40
	ti.Focus()
	return tieModel{req: req, input: ti}
}

func (m tieModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m tieModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if w := msg.Width - 4; w > 0 && w < 40 {
			m.input.Width = w
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyEnter:
			value := strings.TrimSpace(m.input.Value())
			if value == "" {
				m.warning = "Enter a name to continue."
				return m, nil
			}
			m.choice = value
			return m, tea.Quit
		}
	}

	m.warning = ""
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m tieModel) View() string {
	if m.choice != "" || m.aborted {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("TIE · %s", strings.ToUpper(m.req.Position))))
	b.WriteString("\n")
	total := 0
	if len(m.req.Tied) > 0 {
		total = m.req.Tied[0].Total
	}
	lines := make([]string, 0, len(m.req.Tied))
	for _, s := range m.req.Tied {
		name := tiedNameStyle.Render(s.Candidate)
		if s.Excluded {
			name = excludedStyle.Render(s.Candidate) + " (already elected)"
		}
		lines = append(lines, fmt.Sprintf("%s  %d", name, s.Total))
	}
	b.WriteString(boxStyle.Render(strings.Join(lines, "\n")))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("These candidates are tied at %d. Calculate the %s by hand and enter the winner:\n", total, m.req.Position))
	b.WriteString(m.input.View())
	if m.warning != "" {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render(m.warning))
	}
	b.WriteString(hintStyle.Render("\nenter: confirm · ctrl+c: abort the count"))
	return b.String()
}
