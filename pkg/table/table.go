// Package table renders command results as a padded text table or as JSON
// with the same field set.
package table

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Table is a list of rows under named columns.
// Cells hold raw values so JSON output keeps numbers as numbers.
type Table struct {
	Columns []string
	Rows    [][]any
}

// New creates an empty table with the given column names.
func New(columns ...string) *Table {
	return &Table{Columns: columns}
}

// AddRow appends a row. Missing trailing cells are left empty and extra cells
// are dropped, so every row has exactly len(Columns) cells.
func (t *Table) AddRow(values ...any) {
	row := make([]any, len(t.Columns))
	copy(row, values)
	t.Rows = append(t.Rows, row)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Widths returns the display width of each column: the widest of the header
// and every cell in that column.
func (t *Table) Widths() []int {
	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = runewidth.StringWidth(col)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(formatCell(cell)); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// Write renders the table as left-justified text: a header line, a dash
// separator line, then one line per row. Every cell is padded to its column
// width plus one separator space.
func (t *Table) Write(w io.Writer) error {
	widths := t.Widths()
	bw := bufio.NewWriter(w)

	writeLine := func(cells []string) {
		for i, cell := range cells {
			bw.WriteString(cell)
			bw.WriteString(strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell)+1))
		}
		bw.WriteByte('\n')
	}

	writeLine(t.Columns)

	separator := make([]string, len(widths))
	for i, width := range widths {
		separator[i] = strings.Repeat("-", width)
	}
	writeLine(separator)

	cells := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, cell := range row {
			cells[i] = formatCell(cell)
		}
		writeLine(cells)
	}

	return bw.Flush()
}

// WriteJSON renders the table as a JSON array with one object per row.
// Object keys are the column names in column order.
func (t *Table) WriteJSON(w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for r, row := range t.Rows {
		if r > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for i, col := range t.Columns {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(col)
			if err != nil {
				return fmt.Errorf("failed to encode column %q: %w", col, err)
			}
			val, err := json.Marshal(row[i])
			if err != nil {
				return fmt.Errorf("failed to encode %s value: %w", col, err)
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	buf.WriteString("]\n")

	_, err := w.Write(buf.Bytes())
	return err
}

func formatCell(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
