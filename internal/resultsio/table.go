package resultsio

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseError reports a malformed numeric results table.
type ParseError struct {
	File string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// ReadTable reads columns of float data from a file, ignoring # comments.
// Every data line must hold the same number of space-separated numeric
// fields; anything else fails with a ParseError naming the offending line.
func ReadTable(path string) ([][]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open results file: %w", err)
	}
	defer file.Close()

	var rows [][]float64
	width := -1
	lineNum := 0

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Split(line, " ")
		row := make([]float64, len(fields))
		for i, field := range fields {
			val, err := decimal.NewFromString(field)
			if err != nil {
				return nil, &ParseError{File: path, Line: lineNum, Msg: fmt.Sprintf("invalid numeric field %q", field)}
			}
			row[i] = val.InexactFloat64()
		}

		if width < 0 {
			width = len(row)
		} else if len(row) != width {
			return nil, &ParseError{File: path, Line: lineNum, Msg: fmt.Sprintf("expected %d fields, got %d", width, len(row))}
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if width < 0 {
		return nil, nil
	}

	columns := make([][]float64, width)
	for j := range columns {
		columns[j] = make([]float64, len(rows))
		for i, row := range rows {
			columns[j][i] = row[j]
		}
	}
	return columns, nil
}

// WriteTable writes columns of data to a file, one space-joined row per
// line, with an optional footer comment. All columns must share length.
func WriteTable(path string, columns [][]float64, footer string) error {
	if len(columns) == 0 {
		return fmt.Errorf("no columns to write to %s", path)
	}
	n := len(columns[0])
	for i, col := range columns {
		if len(col) != n {
			return fmt.Errorf("column %d has %d rows, expected %d", i, len(col), n)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create results file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for i := 0; i < n; i++ {
		for j, col := range columns {
			if j > 0 {
				w.WriteByte(' ')
			}
			w.WriteString(formatValue(col[i]))
		}
		w.WriteByte('\n')
	}
	if footer != "" {
		fmt.Fprintf(w, "# %s\n", footer)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// formatValue prints the shortest decimal representation of v, so that a
// written table reads back to the same values.
func formatValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return decimal.NewFromFloat(v).String()
}
