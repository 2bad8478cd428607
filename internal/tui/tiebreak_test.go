package tui

import (
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/tally/internal/election"
)

func tieRequest() election.TieRequest {
	return election.TieRequest{
		Position: "president",
		Tied: []election.Standing{
			{Candidate: "Ann", Total: 7},
			{Candidate: "Ben", Total: 7},
		},
	}
}

func send(t *testing.T, m tea.Model, msg tea.Msg) (tieModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	tm, ok := next.(tieModel)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return tm, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestTieModelSubmitsTypedName(t *testing.T) {
	m := newTieModel(tieRequest())
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("  Ben ")})
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.choice != "Ben" {
		t.Fatalf("choice = %q, want Ben", m.choice)
	}
	if !isQuit(cmd) {
		t.Fatalf("enter with a name should quit the prompt")
	}
}

func TestTieModelIgnoresEmptySubmit(t *testing.T) {
	m := newTieModel(tieRequest())
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.choice != "" || cmd != nil {
		t.Fatalf("empty submit must keep waiting, choice=%q", m.choice)
	}
	if !strings.Contains(m.View(), "Enter a name") {
		t.Fatalf("expected a warning in the view")
	}
}

func TestTieModelCtrlCAborts(t *testing.T) {
	m := newTieModel(tieRequest())
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.aborted || !isQuit(cmd) {
		t.Fatalf("ctrl+c should abort and quit")
	}
}

func TestTieModelViewListsTiedCandidates(t *testing.T) {
	req := tieRequest()
	req.Tied[1].Excluded = true
	view := newTieModel(req).View()
	for _, want := range []string{"PRESIDENT", "Ann", "Ben", "already elected", "tied at 7"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestTiePromptResolveTieReadsInput(t *testing.T) {
	prompt := NewTiePrompt(tea.WithInput(strings.NewReader("Ben\r")), tea.WithOutput(io.Discard))
	got, err := prompt.ResolveTie(tieRequest())
	if err != nil {
		t.Fatalf("ResolveTie: %v", err)
	}
	if got != "Ben" {
		t.Fatalf("winner = %q, want Ben", got)
	}
}

func TestTiePromptResolveTieCtrlC(t *testing.T) {
	prompt := NewTiePrompt(tea.WithInput(strings.NewReader("\x03")), tea.WithOutput(io.Discard))
	_, err := prompt.ResolveTie(tieRequest())
	if !errors.Is(err, ErrPromptAborted) {
		t.Fatalf("err = %v, want ErrPromptAborted", err)
	}
}
