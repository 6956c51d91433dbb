package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// CellType is the declared type of a column, resolved once at ingestion
type CellType int

const (
	// TypeText marks a column holding free-form text values
	TypeText CellType = iota
	// TypeNumeric marks a column whose non-null values all parse as numbers
	TypeNumeric
	// TypeUnknown marks a column with no non-null values to infer from
	TypeUnknown
)

// String returns the string representation of the cell type
func (t CellType) String() string {
	switch t {
	case TypeText:
		return "text"
	case TypeNumeric:
		return "numeric"
	default:
		return "unknown"
	}
}

// Cell is a single value in a column. Null is independent of the
// column's declared type.
type Cell struct {
	Raw  string
	Null bool
}

// Column is a named, typed, ordered sequence of cells
type Column struct {
	Name  string
	Type  CellType
	cells []Cell
}

// NewColumn creates a column from raw values. Values that are empty after
// trimming whitespace become null cells; the raw text is preserved as-is
// for non-null cells.
func NewColumn(name string, values []string) Column {
	cells := make([]Cell, len(values))
	for i, v := range values {
		if strings.TrimSpace(v) == "" {
			cells[i] = Cell{Null: true}
		} else {
			cells[i] = Cell{Raw: v}
		}
	}
	col := Column{Name: name, cells: cells}
	col.Type = inferType(cells)
	return col
}

// inferType resolves the declared type by scanning non-null cells:
// all numeric means numeric, none at all means unknown, otherwise text.
func inferType(cells []Cell) CellType {
	nonNull := 0
	numeric := 0
	for _, c := range cells {
		if c.Null {
			continue
		}
		nonNull++
		if _, err := strconv.ParseFloat(strings.TrimSpace(c.Raw), 64); err == nil {
			numeric++
		}
	}
	if nonNull == 0 {
		return TypeUnknown
	}
	if numeric == nonNull {
		return TypeNumeric
	}
	return TypeText
}

// Len returns the number of cells in the column
func (c Column) Len() int {
	return len(c.cells)
}

// Cell returns the cell at the given row index
func (c Column) Cell(row int) Cell {
	return c.cells[row]
}

// Float parses the cell at the given row as a number. The second return
// is false for null cells and unparseable values.
func (c Column) Float(row int) (float64, bool) {
	cell := c.cells[row]
	if cell.Null {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(cell.Raw), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Table is an immutable, column-oriented view of a dataset. All columns
// have identical length.
type Table struct {
	columns []Column
	rows    int
}

// New creates a table from columns, enforcing the equal-length invariant
func New(columns []Column) (*Table, error) {
	rows := 0
	for i, col := range columns {
		if i == 0 {
			rows = col.Len()
			continue
		}
		if col.Len() != rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", col.Name, col.Len(), rows)
		}
	}
	return &Table{columns: columns, rows: rows}, nil
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return t.rows
}

// ColumnCount returns the number of columns
func (t *Table) ColumnCount() int {
	return len(t.columns)
}

// Columns returns the table's columns in order. The returned slice is a
// copy; the underlying cells are shared and must be treated as read-only.
func (t *Table) Columns() []Column {
	cols := make([]Column, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// ColumnNames returns the column names in order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	return names
}

// RowKey builds a canonical byte-for-byte key for a row across all
// columns, used for exact duplicate detection. Null cells are encoded
// distinctly from empty strings.
func (t *Table) RowKey(row int) string {
	var b strings.Builder
	for _, col := range t.columns {
		cell := col.cells[row]
		if cell.Null {
			b.WriteByte(0x00)
		} else {
			b.WriteString(cell.Raw)
		}
		b.WriteByte(0x1f)
	}
	return b.String()
}
