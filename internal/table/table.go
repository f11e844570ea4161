package table

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingColumn reports that a table lacks a column a consumer requires.
var ErrMissingColumn = errors.New("missing column")

// Table is an in-memory table of string cells addressed by column name.
type Table struct {
	Columns []string
	Rows    [][]string

	index map[string]int
}

// New builds a table from a header and rows. Rows are used as given; short
// rows read as missing cells.
func New(columns []string, rows [][]string) Table {
	t := Table{Columns: columns, Rows: rows}
	t.index = make(map[string]int, len(columns))
	for i, name := range columns {
		if _, exists := t.index[name]; !exists {
			t.index[name] = i
		}
	}
	return t
}

// Len returns the number of data rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Index returns the position of the named column.
func (t Table) Index(column string) (int, bool) {
	if t.index != nil {
		i, ok := t.index[column]
		return i, ok
	}
	for i, name := range t.Columns {
		if name == column {
			return i, true
		}
	}
	return 0, false
}

// Require checks that every named column is present.
func (t Table) Require(columns ...string) error {
	var missing []string
	for _, column := range columns {
		if _, ok := t.Index(column); !ok {
			missing = append(missing, column)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
}

// Cell returns the cell at the given row and column position, or "" when the
// row is shorter than the header.
func (t Table) Cell(row, column int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	cells := t.Rows[row]
	if column < 0 || column >= len(cells) {
		return ""
	}
	return cells[column]
}

// Value returns the cell at the given row for the named column.
func (t Table) Value(row int, column string) string {
	i, ok := t.Index(column)
	if !ok {
		return ""
	}
	return t.Cell(row, i)
}
