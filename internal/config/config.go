// internal/config/config.go
//
// This package handles configuration and the .tally directory structure.
// Every election folder that is counted with tally gets a .tally/ folder
// holding config.yaml and the logs of each count.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kingrea/tally/internal/ballot"
)

const (
	// TallyDir is the name of the directory we create in each election folder
	TallyDir = ".tally"

	// KindSingle marks a single-seat position.
	KindSingle = "single"
	// KindCouncil marks the multi-seat general council position.
	KindCouncil = "general-council"
)

const defaultProjectConfigYAML = `# tally election configuration
version: 1

# Vote file, relative to this election folder.
ballots: votes.csv
ballot_column: Ballot

# Positions in priority order. A candidate elected to an earlier position is
# excluded from every later one. section counts blank lines from the top of
# the vote file: the table sits between blank line N and blank line N+1.
positions:
  - name: president
    kind: single
    section: 2
  - name: treasurer
    kind: single
    section: 6
  - name: international representative
    kind: single
    section: 10
  - name: gc
    kind: general-council
    section: 14

# Every council ballot must rank num_with_safety candidates; once elected
# candidates are removed, only the top num_without_safety preferences count.
general_council:
  num_with_safety: 11
  num_without_safety: 8
  seats: 0

# Decisions for tied positions, e.g.
#   president: Jane Citizen
tie_breaks: {}

# Compare the leader against whatever sits second after dropping excluded
# leaders, even if that candidate is excluded too.
legacy_tie_check: false
`

// Position declares one position and where its table sits in the vote file.
type Position struct {
	Name    string `yaml:"name"`
	Kind    string `yaml:"kind"`
	Section int    `yaml:"section"`
}

// CouncilConfig holds the general council counting parameters.
type CouncilConfig struct {
	NumWithSafety    int `yaml:"num_with_safety"`
	NumWithoutSafety int `yaml:"num_without_safety"`
	// Seats is how many council members are marked elected. Zero prints the
	// ranking only.
	Seats int `yaml:"seats"`
}

// ProjectConfig models .tally/config.yaml.
type ProjectConfig struct {
	Version        int               `yaml:"version"`
	Ballots        string            `yaml:"ballots"`
	BallotColumn   string            `yaml:"ballot_column"`
	Positions      []Position        `yaml:"positions"`
	GeneralCouncil CouncilConfig     `yaml:"general_council"`
	TieBreaks      map[string]string `yaml:"tie_breaks"`
	LegacyTieCheck bool              `yaml:"legacy_tie_check"`
	Workers        int               `yaml:"workers,omitempty"`
}

// Config holds the runtime configuration for a count.
type Config struct {
	// ProjectDir is the election folder tally was pointed at
	ProjectDir string

	// TallyProjectDir is ProjectDir/.tally
	TallyProjectDir string

	Project ProjectConfig

	ballotsOverride string
}

// InitTallyDir creates the .tally directory structure in the given election
// folder and writes the default config.yaml if none exists.
//
// Structure created:
// .tally/
// ├── config.yaml
// └── logs/         <- process log and count journal
func InitTallyDir(projectDir string) error {
	tallyDir := filepath.Join(projectDir, TallyDir)
	if err := os.MkdirAll(filepath.Join(tallyDir, "logs"), 0o755); err != nil {
		return err
	}
	return ensureProjectConfig(filepath.Join(tallyDir, "config.yaml"))
}

// NewConfig loads .tally/config.yaml for the election folder, falling back to
// the defaults when the file does not exist.
func NewConfig(projectDir string) (*Config, error) {
	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", projectDir, err)
	}
	cfg := &Config{
		ProjectDir:      abs,
		TallyProjectDir: filepath.Join(abs, TallyDir),
		Project:         defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.TallyProjectDir, "logs")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.TallyProjectDir, "config.yaml")
}

// BallotsPath returns the resolved vote file path.
func (c *Config) BallotsPath() string {
	if c.ballotsOverride != "" {
		return c.ballotsOverride
	}
	return c.Project.Ballots
}

// SetBallotsPath overrides the vote file for this run only; the override is
// never written back to config.yaml.
func (c *Config) SetBallotsPath(path string) {
	c.ballotsOverride = resolvePath(c.ProjectDir, path)
}

// Layout describes how the vote file is split into position tables, in the
// configured priority order.
func (c *Config) Layout() ballot.Layout {
	sections := make([]ballot.Section, len(c.Project.Positions))
	for i, p := range c.Project.Positions {
		sections[i] = ballot.Section{Position: p.Name, Offset: p.Section}
	}
	return ballot.Layout{BallotColumn: c.Project.BallotColumn, Sections: sections}
}

// CouncilPosition returns the general council position name.
func (c *Config) CouncilPosition() string {
	for _, p := range c.Project.Positions {
		if p.Kind == KindCouncil {
			return p.Name
		}
	}
	return ""
}

// SetTieBreak records a tie decision and persists it back to
// .tally/config.yaml so a recount reaches the same result without asking.
func (c *Config) SetTieBreak(position, winner string) error {
	position = strings.TrimSpace(position)
	winner = strings.TrimSpace(winner)
	if position == "" || winner == "" {
		return fmt.Errorf("config: tie break needs a position and a winner")
	}
	if c.Project.TieBreaks == nil {
		c.Project.TieBreaks = map[string]string{}
	}
	c.Project.TieBreaks[position] = winner
	return c.saveProjectConfig()
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.Project.normalize(c.ProjectDir)
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize(c.ProjectDir)
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	var pc ProjectConfig
	if err := yaml.Unmarshal([]byte(defaultProjectConfigYAML), &pc); err != nil {
		panic(fmt.Sprintf("config: default template: %v", err))
	}
	pc.applyDefaults()
	return pc
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if pc.BallotColumn == "" {
		pc.BallotColumn = ballot.DefaultBallotColumn
	}
	if pc.TieBreaks == nil {
		pc.TieBreaks = map[string]string{}
	}
	for i := range pc.Positions {
		if pc.Positions[i].Kind == "" {
			pc.Positions[i].Kind = KindSingle
		}
	}
}

func (pc *ProjectConfig) normalize(base string) {
	pc.Ballots = resolvePath(base, pc.Ballots)
	pc.BallotColumn = strings.TrimSpace(pc.BallotColumn)
	for i := range pc.Positions {
		pc.Positions[i].Name = strings.TrimSpace(pc.Positions[i].Name)
		pc.Positions[i].Kind = strings.ToLower(strings.TrimSpace(pc.Positions[i].Kind))
	}
	cleaned := make(map[string]string, len(pc.TieBreaks))
	for position, winner := range pc.TieBreaks {
		cleaned[strings.TrimSpace(position)] = strings.TrimSpace(winner)
	}
	pc.TieBreaks = cleaned
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if pc.Ballots == "" {
		return fmt.Errorf("ballots is required")
	}
	seen := make(map[string]bool, len(pc.Positions))
	councils, singles := 0, 0
	for i, p := range pc.Positions {
		if err := p.validate(); err != nil {
			return fmt.Errorf("positions[%d]: %w", i, err)
		}
		if seen[p.Name] {
			return fmt.Errorf("positions[%d]: duplicate position %q", i, p.Name)
		}
		seen[p.Name] = true
		if p.Kind == KindCouncil {
			councils++
		} else {
			singles++
		}
	}
	if councils != 1 {
		return fmt.Errorf("exactly one %s position is required, found %d", KindCouncil, councils)
	}
	if singles == 0 {
		return fmt.Errorf("at least one %s position is required", KindSingle)
	}
	if err := pc.GeneralCouncil.validate(); err != nil {
		return fmt.Errorf("general_council: %w", err)
	}
	for position := range pc.TieBreaks {
		if !seen[position] {
			return fmt.Errorf("tie_breaks: unknown position %q", position)
		}
	}
	if pc.Workers < 0 {
		return fmt.Errorf("workers must be >= 0")
	}
	return nil
}

func (p Position) validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	switch p.Kind {
	case KindSingle, KindCouncil:
	default:
		return fmt.Errorf("kind must be '%s' or '%s'", KindSingle, KindCouncil)
	}
	if p.Section < 1 {
		return fmt.Errorf("section must be >= 1")
	}
	return nil
}

func (cc CouncilConfig) validate() error {
	if cc.NumWithSafety < 1 {
		return fmt.Errorf("num_with_safety must be >= 1")
	}
	if cc.NumWithoutSafety < 1 || cc.NumWithoutSafety > cc.NumWithSafety {
		return fmt.Errorf("num_without_safety must be between 1 and num_with_safety")
	}
	if cc.Seats < 0 {
		return fmt.Errorf("seats must be >= 0")
	}
	return nil
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}

func (c *Config) saveProjectConfig() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	c.Project.applyDefaults()
	if err := c.Project.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(c.TallyProjectDir, 0o755); err != nil {
		return fmt.Errorf("config: ensure tally dir: %w", err)
	}
	out := c.Project
	if rel, err := filepath.Rel(c.ProjectDir, out.Ballots); err == nil && !strings.HasPrefix(rel, "..") {
		out.Ballots = rel
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := os.WriteFile(c.ProjectConfigPath(), data, 0o644); err != nil {
		return fmt.Errorf("config: write project config: %w", err)
	}
	return nil
}
