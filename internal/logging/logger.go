package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kingrea/tally/internal/config"
)

// Logger appends timestamped lines to .tally/logs/tally.log. Each line carries
// the run id of the count that wrote it, matching the journal, so a failure
// in the process log can be traced to the count's audit entries.
type Logger struct {
	file  *os.File
	runID string
}

// New creates (or reuses) the log file for the election folder. runID may be
// empty for commands that are not part of a count.
func New(projectDir, runID string) (*Logger, error) {
	logDir := filepath.Join(projectDir, config.TallyDir, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	path := filepath.Join(logDir, "tally.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	return &Logger{file: f, runID: strings.TrimSpace(runID)}, nil
}

// Close releases the file handle.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Printf writes a single line: [timestamp] run-id message.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || l.file == nil {
		return
	}
	line := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	timestamp := time.Now().Format(time.RFC3339)
	if l.runID == "" {
		fmt.Fprintf(l.file, "[%s] %s\n", timestamp, line)
		return
	}
	fmt.Fprintf(l.file, "[%s] %s %s\n", timestamp, l.runID, line)
}
