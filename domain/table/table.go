package table

import (
	"fmt"

	"flextab/domain/core"
)

// Column is a named, typed sequence of cells
type Column struct {
	Name  string
	Type  Type
	Cells []Value
}

// NumericColumn builds a numeric column from float values
func NumericColumn(name string, values ...float64) Column {
	cells := make([]Value, len(values))
	for i, v := range values {
		cells[i] = Num(v)
	}
	return Column{Name: name, Type: TypeNumeric, Cells: cells}
}

// TextColumn builds a text column from string values
func TextColumn(name string, values ...string) Column {
	cells := make([]Value, len(values))
	for i, v := range values {
		cells[i] = Text(v)
	}
	return Column{Name: name, Type: TypeText, Cells: cells}
}

// LogicalColumn builds a logical column from bool values
func LogicalColumn(name string, values ...bool) Column {
	cells := make([]Value, len(values))
	for i, v := range values {
		cells[i] = Logical(v)
	}
	return Column{Name: name, Type: TypeLogical, Cells: cells}
}

// Table is an ordered sequence of named columns with equal lengths.
// A Table is immutable after construction; operations return new tables.
type Table struct {
	cols  []Column
	index map[string]int
	nrow  int
}

// New validates the columns and builds a table. It rejects zero columns,
// unequal column lengths, empty names, and duplicate names with no partial
// result.
func New(cols ...Column) (*Table, error) {
	if len(cols) == 0 {
		return nil, core.ErrZeroColumns
	}

	index := make(map[string]int, len(cols))
	nrow := len(cols[0].Cells)
	owned := make([]Column, len(cols))

	for i, col := range cols {
		if col.Name == "" {
			return nil, core.ErrEmptyColumnName
		}
		if _, dup := index[col.Name]; dup {
			return nil, fmt.Errorf("%w: %q", core.ErrDuplicateColumn, col.Name)
		}
		if len(col.Cells) != nrow {
			return nil, fmt.Errorf("%w: column %q has %d cells, want %d",
				core.ErrLengthMismatch, col.Name, len(col.Cells), nrow)
		}
		for r, cell := range col.Cells {
			if cell.Type() != col.Type {
				return nil, core.NewTypeMismatchError(col.Name,
					string(col.Type), fmt.Sprintf("%s at row %d", cell.Type(), r))
			}
		}

		cells := make([]Value, len(col.Cells))
		copy(cells, col.Cells)
		owned[i] = Column{Name: col.Name, Type: col.Type, Cells: cells}
		index[col.Name] = i
	}

	return &Table{cols: owned, index: index, nrow: nrow}, nil
}

// NCol returns the number of columns
func (t *Table) NCol() int { return len(t.cols) }

// NRow returns the number of rows
func (t *Table) NRow() int { return t.nrow }

// Names returns the column names in order
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, col := range t.cols {
		names[i] = col.Name
	}
	return names
}

// ColumnIndex returns the position of a named column
func (t *Table) ColumnIndex(name string) (int, error) {
	idx, ok := t.index[name]
	if !ok {
		return 0, core.NewUnknownColumnError(name)
	}
	return idx, nil
}

// Column returns a copy of the named column
func (t *Table) Column(name string) (Column, error) {
	idx, err := t.ColumnIndex(name)
	if err != nil {
		return Column{}, err
	}
	col := t.cols[idx]
	cells := make([]Value, len(col.Cells))
	copy(cells, col.Cells)
	return Column{Name: col.Name, Type: col.Type, Cells: cells}, nil
}

// ColumnType returns the declared type of a named column
func (t *Table) ColumnType(name string) (Type, error) {
	idx, err := t.ColumnIndex(name)
	if err != nil {
		return "", err
	}
	return t.cols[idx].Type, nil
}

// Cell returns the value at (row, col) by position
func (t *Table) Cell(row, col int) Value {
	return t.cols[col].Cells[row]
}

// Row returns a copy of row i across all columns
func (t *Table) Row(i int) []Value {
	row := make([]Value, len(t.cols))
	for c, col := range t.cols {
		row[c] = col.Cells[i]
	}
	return row
}

// Equal compares two tables cell by cell
func (t *Table) Equal(other *Table) bool {
	if other == nil || len(t.cols) != len(other.cols) || t.nrow != other.nrow {
		return false
	}
	for c := range t.cols {
		if t.cols[c].Name != other.cols[c].Name || t.cols[c].Type != other.cols[c].Type {
			return false
		}
		for r := range t.cols[c].Cells {
			if !t.cols[c].Cells[r].Equal(other.cols[c].Cells[r]) {
				return false
			}
		}
	}
	return true
}

// Fingerprint computes a deterministic content hash over the schema and every
// cell in order. Identical tables always fingerprint identically.
func (t *Table) Fingerprint() core.Fingerprint {
	parts := make([]string, 0, len(t.cols)*(t.nrow+2))
	for _, col := range t.cols {
		parts = append(parts, col.Name, string(col.Type))
		for _, cell := range col.Cells {
			if cell.IsBlank() {
				parts = append(parts, "\x00blank")
			} else {
				parts = append(parts, cell.String())
			}
		}
	}
	return core.NewFingerprint(parts)
}

// FromRows builds a table from a header, per-column types, and row-major cells.
// Row arity must match the header.
func FromRows(names []string, types []Type, rows [][]Value) (*Table, error) {
	if len(names) == 0 {
		return nil, core.ErrZeroColumns
	}
	if len(types) != len(names) {
		return nil, fmt.Errorf("%w: %d types for %d columns",
			core.ErrLengthMismatch, len(types), len(names))
	}

	cols := make([]Column, len(names))
	for c := range names {
		cols[c] = Column{Name: names[c], Type: types[c], Cells: make([]Value, len(rows))}
	}
	for r, row := range rows {
		if len(row) != len(names) {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d",
				core.ErrLengthMismatch, r, len(row), len(names))
		}
		for c, cell := range row {
			cols[c].Cells[r] = cell
		}
	}
	return New(cols...)
}
