package ballot

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultBallotColumn is the header naming the ballot id column.
const DefaultBallotColumn = "Ballot"

// Section places one position's table inside a vote file. Offset counts
// blank lines from the top of the file (1-based): the table sits between
// blank line Offset and blank line Offset+1.
type Section struct {
	Position string
	Offset   int
}

// Layout describes how a vote file is split into tables.
type Layout struct {
	BallotColumn string
	Sections     []Section
}

// ErrSectionMissing is returned when the file has fewer blank lines than a
// section offset needs.
var ErrSectionMissing = errors.New("ballot: section not found")

// ParseFile reads a vote file from disk.
func ParseFile(path string, layout Layout) ([]*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ballot: open %s: %w", path, err)
	}
	defer f.Close()
	tables, err := Parse(f, layout)
	if err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, path)
	}
	return tables, nil
}

// Parse splits a vote file into one table per layout section, returned in
// layout order.
func Parse(r io.Reader, layout Layout) ([]*Table, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	var blanks []int
	for i, line := range lines {
		if line == "" {
			blanks = append(blanks, i)
		}
	}
	column := layout.BallotColumn
	if column == "" {
		column = DefaultBallotColumn
	}
	tables := make([]*Table, 0, len(layout.Sections))
	for _, section := range layout.Sections {
		if section.Offset < 1 || section.Offset >= len(blanks) {
			return nil, fmt.Errorf("%w: %s needs blank line %d, file has %d", ErrSectionMissing, section.Position, section.Offset+1, len(blanks))
		}
		start := blanks[section.Offset-1] + 1
		end := blanks[section.Offset]
		table, err := parseSection(section.Position, column, lines[start:end])
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, nil
}

// readLines keeps whitespace-only lines as content; only truly empty lines
// separate sections.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ballot: scan vote file: %w", err)
	}
	return lines, nil
}

func parseSection(position, ballotColumn string, lines []string) (*Table, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("ballot: %s: empty section", position)
	}
	cleaned := make([]string, len(lines))
	for i, line := range lines {
		cleaned[i] = strings.ReplaceAll(strings.TrimSpace(line), "\t", "")
	}
	reader := csv.NewReader(strings.NewReader(strings.Join(cleaned, "\n")))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ballot: %s: read rows: %w", position, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("ballot: %s: missing header row", position)
	}
	header := make([]string, len(records[0]))
	for i, cell := range records[0] {
		header[i] = cleanCell(cell)
	}
	idCol := -1
	for i, name := range header {
		if name == ballotColumn {
			idCol = i
			break
		}
	}
	if idCol < 0 {
		return nil, fmt.Errorf("ballot: %s: column %q not found in header", position, ballotColumn)
	}
	candidates := make([]string, 0, len(header)-1)
	colOf := make([]int, len(header))
	for i, name := range header {
		if i == idCol {
			colOf[i] = -1
			continue
		}
		colOf[i] = len(candidates)
		candidates = append(candidates, name)
	}

	ballots := make([]string, 0, len(records)-1)
	rows := make([][]Score, 0, len(records)-1)
	for n, record := range records[1:] {
		if len(record) > len(header) {
			return nil, fmt.Errorf("ballot: %s: row %d has %d fields, header has %d", position, n+1, len(record), len(header))
		}
		row := make([]Score, len(candidates))
		id := ""
		for i, cell := range record {
			if i == idCol {
				id = strings.TrimSpace(cell)
				continue
			}
			row[colOf[i]] = ParseScore(cell)
		}
		ballots = append(ballots, id)
		rows = append(rows, row)
	}
	return NewTable(position, candidates, ballots, rows)
}

// ParseScore coerces a cell to a score. Integers and integral decimals in
// the int32 range are accepted; anything else is no value.
func ParseScore(cell string) Score {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return None()
	}
	if v, err := strconv.ParseInt(cell, 10, 32); err == nil {
		return Some(int(v))
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return None()
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return None()
	}
	return Some(int(f))
}

func cleanCell(v string) string {
	v = strings.TrimPrefix(v, "\ufeff")
	v = norm.NFKC.String(v)
	return strings.TrimSpace(v)
}
