package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kingrea/tally/internal/ballot"
	"github.com/kingrea/tally/internal/config"
	"github.com/kingrea/tally/internal/election"
	"github.com/kingrea/tally/internal/logbook"
	"github.com/kingrea/tally/internal/logging"
	"github.com/kingrea/tally/internal/report"
	"github.com/kingrea/tally/internal/tui"
)

var (
	ballotsFile string
	verbose     bool
	outputFmt   string
	noPrompt    bool
	recordTies  bool
)

// countCmd runs the whole count
var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Count every position and print the result",
	Long: `Reads the vote file, resolves the single-seat positions in priority order
and counts the general council.

Ties for a single-seat position are settled from tie_breaks in the config;
otherwise you are asked for the winner. With --no-prompt an unsettled tie
stops the count.`,
	Args: cobra.NoArgs,
	RunE: runCount,
}

func init() {
	countCmd.Flags().StringVarP(&ballotsFile, "ballots", "b", "", "vote file (overrides ballots in the config)")
	countCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "also print the raw and adjusted ballot tables")
	countCmd.Flags().StringVarP(&outputFmt, "output", "o", "text", "output format: text or yaml")
	countCmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "never ask for tie decisions")
	countCmd.Flags().BoolVar(&recordTies, "record-ties", false, "save tie decisions to the config")
}

func runCount(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(outputFmt)
	if err != nil {
		return err
	}
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return err
	}
	if ballotsFile != "" {
		cfg.SetBallotsPath(ballotsFile)
	}

	book, err := logbook.New(filepath.Join(cfg.LogsDir(), "journal.log"))
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	logger, err := logging.New(cfg.ProjectDir, book.RunID())
	if err != nil {
		return err
	}
	defer logger.Close()
	logger.Printf("count started: ballots=%s journal=%s", cfg.BallotsPath(), book.Path())

	res, raw, err := count(cmd, cfg, book)
	if err != nil {
		logger.Printf("count failed: %v", err)
		book.Error("count failed: %v", err)
		return err
	}
	logger.Printf("count finished")

	opts := report.Options{
		Verbose: verbose,
		Seats:   cfg.Project.GeneralCouncil.Seats,
		Raw:     raw,
	}
	if verbose {
		opts.Journal = book.Run()
	}
	return report.Write(cmd.OutOrStdout(), res, format, opts)
}

func count(cmd *cobra.Command, cfg *config.Config, book *logbook.Logbook) (*election.Result, []*ballot.Table, error) {
	tables, err := ballot.ParseFile(cfg.BallotsPath(), cfg.Layout())
	if err != nil {
		return nil, nil, err
	}
	ballots, err := splitTables(cfg, tables)
	if err != nil {
		return nil, nil, err
	}

	tallier, err := election.New(election.Params{
		Required:       cfg.Project.GeneralCouncil.NumWithSafety,
		Retained:       cfg.Project.GeneralCouncil.NumWithoutSafety,
		Workers:        cfg.Project.Workers,
		LegacyTieCheck: cfg.Project.LegacyTieCheck,
	}, election.WithTieBreaker(tieBreaker(cmd, cfg, book)), election.WithJournal(book))
	if err != nil {
		return nil, nil, err
	}
	res, err := tallier.Run(cmd.Context(), ballots)
	if err != nil {
		var tie *election.UnresolvedTieError
		if errors.As(err, &tie) {
			return nil, nil, fmt.Errorf("%w; add tie_breaks.%s to %s or run without --no-prompt", err, tie.Position, cfg.ProjectConfigPath())
		}
		return nil, nil, err
	}
	return res, tables, nil
}

// splitTables pairs parsed tables with their configured positions. Tables
// come back in layout order, which is the config's position order.
func splitTables(cfg *config.Config, tables []*ballot.Table) (election.Ballots, error) {
	var b election.Ballots
	if len(tables) != len(cfg.Project.Positions) {
		return b, fmt.Errorf("expected %d position tables, parsed %d", len(cfg.Project.Positions), len(tables))
	}
	council := cfg.CouncilPosition()
	for i, p := range cfg.Project.Positions {
		if p.Name == council {
			b.Council = tables[i]
			continue
		}
		b.Single = append(b.Single, tables[i])
	}
	return b, nil
}

// newTiePrompt builds the interactive tie breaker. It reads in and draws on
// out, never on the report stream.
var newTiePrompt = func(in io.Reader, out io.Writer) election.TieBreaker {
	opts := []tea.ProgramOption{tea.WithOutput(out)}
	if in != os.Stdin {
		opts = append(opts, tea.WithInput(in))
	}
	return tui.NewTiePrompt(opts...)
}

func tieBreaker(cmd *cobra.Command, cfg *config.Config, book *logbook.Logbook) election.TieBreaker {
	var fallback election.TieBreaker
	if !noPrompt {
		fallback = newTiePrompt(cmd.InOrStdin(), cmd.ErrOrStderr())
		if recordTies {
			prompt := fallback
			fallback = election.TieBreakerFunc(func(req election.TieRequest) (string, error) {
				winner, err := prompt.ResolveTie(req)
				if err != nil {
					return "", err
				}
				if err := cfg.SetTieBreak(req.Position, winner); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not save tie decision: %v\n", err)
				} else {
					book.Info("%s: tie decision saved to %s", req.Position, cfg.ProjectConfigPath())
				}
				return winner, nil
			})
		}
	}
	return election.PresetTieBreaker{Choices: cfg.Project.TieBreaks, Fallback: fallback}
}
