// Package grouped collapses runs of identical group-column values in a table
// into synthetic title rows, producing the flattened row sequence consumed by
// the report binder.
package grouped

import (
	"strconv"

	"flextab/domain/core"
	"flextab/domain/table"
)

// RowKind distinguishes synthetic title rows from original data rows
type RowKind string

const (
	RowData  RowKind = "data"
	RowTitle RowKind = "title"
)

// Row is one row of a grouped table. Title rows populate exactly one group
// column (the run's value at their level); data rows carry the original cells
// with covered group columns blanked.
type Row struct {
	Kind        RowKind
	Level       int    // 1-based nesting depth for titles, 0 for data rows
	GroupColumn string // populated for title rows only
	Cells       []table.Value
	SourcePos   int // original row index this row sorts with
}

// Options controls grouped-table construction
type Options struct {
	// ExpandSingle emits a title row even for runs of length 1. When false,
	// single-row runs keep their group value on the data row.
	ExpandSingle bool
}

// GroupedTable is the immutable grouped representation of a base table. It is
// computed once by Build and consumed by the report binder.
type GroupedTable struct {
	base     *table.Table
	groups   []string
	groupIdx []int
	rows     []Row
	blanked  map[int][]int // source row -> column positions blanked by title rows
}

type run struct {
	start, end int // half-open row range
}

// Build produces the grouped row sequence for an ordered list of group
// columns, outer to inner. Only contiguous runs collapse: equal values that
// recur non-adjacently stay in separate runs.
func Build(t *table.Table, groups []string, opts Options) (*GroupedTable, error) {
	if t == nil {
		return nil, core.ErrInvalidInput
	}

	groupIdx := make([]int, len(groups))
	for i, name := range groups {
		idx, err := t.ColumnIndex(name)
		if err != nil {
			return nil, err
		}
		groupIdx[i] = idx
	}

	g := &GroupedTable{
		base:     t,
		groups:   append([]string(nil), groups...),
		groupIdx: groupIdx,
		blanked:  make(map[int][]int),
	}

	// Empty group list: the table passes through unchanged, tagged with zero levels.
	if len(groups) == 0 {
		for i := 0; i < t.NRow(); i++ {
			g.rows = append(g.rows, Row{Kind: RowData, Cells: t.Row(i), SourcePos: i})
		}
		return g, nil
	}

	// Title rows per level, keyed by the run's first data row.
	titlesAt := make(map[int][]Row)
	for level := 1; level <= len(groups); level++ {
		for _, r := range runsAtLevel(t, groupIdx[:level]) {
			if r.end-r.start == 1 && !opts.ExpandSingle {
				continue
			}
			col := groupIdx[level-1]
			titlesAt[r.start] = append(titlesAt[r.start], Row{
				Kind:        RowTitle,
				Level:       level,
				GroupColumn: groups[level-1],
				Cells:       titleCells(t, r.start, col),
				SourcePos:   r.start,
			})
			for i := r.start; i < r.end; i++ {
				g.blanked[i] = append(g.blanked[i], col)
			}
		}
	}

	// Interleave: titles for runs starting at row i precede data row i,
	// ordered outer level first.
	for i := 0; i < t.NRow(); i++ {
		g.rows = append(g.rows, titlesAt[i]...)

		cells := t.Row(i)
		for _, col := range g.blanked[i] {
			cells[col] = table.Blank(cells[col].Type())
		}
		g.rows = append(g.rows, Row{Kind: RowData, Cells: cells, SourcePos: i})
	}

	return g, nil
}

// runsAtLevel finds maximal contiguous runs of rows sharing identical values
// across the given group-column prefix.
func runsAtLevel(t *table.Table, cols []int) []run {
	var runs []run
	start := 0
	for i := 1; i <= t.NRow(); i++ {
		if i == t.NRow() || !samePrefix(t, i-1, i, cols) {
			runs = append(runs, run{start: start, end: i})
			start = i
		}
	}
	if t.NRow() == 0 {
		return nil
	}
	return runs
}

func samePrefix(t *table.Table, a, b int, cols []int) bool {
	for _, c := range cols {
		if !t.Cell(a, c).Equal(t.Cell(b, c)) {
			return false
		}
	}
	return true
}

func titleCells(t *table.Table, row, keep int) []table.Value {
	cells := make([]table.Value, t.NCol())
	for c := 0; c < t.NCol(); c++ {
		if c == keep {
			cells[c] = t.Cell(row, c)
		} else {
			cells[c] = table.Blank(t.Cell(row, c).Type())
		}
	}
	return cells
}

// Base returns the originating table
func (g *GroupedTable) Base() *table.Table { return g.base }

// Groups returns the group column names, outer to inner
func (g *GroupedTable) Groups() []string {
	return append([]string(nil), g.groups...)
}

// Levels returns the number of nesting levels
func (g *GroupedTable) Levels() int { return len(g.groups) }

// NRow returns the total row count including title rows
func (g *GroupedTable) NRow() int { return len(g.rows) }

// Rows returns a copy of the grouped row sequence
func (g *GroupedTable) Rows() []Row {
	rows := make([]Row, len(g.rows))
	for i, r := range g.rows {
		cells := make([]table.Value, len(r.Cells))
		copy(cells, r.Cells)
		r.Cells = cells
		rows[i] = r
	}
	return rows
}

// TitleCount returns the number of title rows at a given level
func (g *GroupedTable) TitleCount(level int) int {
	n := 0
	for _, r := range g.rows {
		if r.Kind == RowTitle && r.Level == level {
			n++
		}
	}
	return n
}

// Ungroup reconstructs the original table from the grouped rows: title rows
// are discarded and blanked group cells are restored from the most recent
// title at their level.
func (g *GroupedTable) Ungroup() (*table.Table, error) {
	levelOf := make(map[int]int, len(g.groupIdx))
	for level, col := range g.groupIdx {
		levelOf[col] = level + 1
	}

	current := make(map[int]table.Value)
	var rows [][]table.Value
	for _, r := range g.rows {
		if r.Kind == RowTitle {
			current[r.Level] = r.Cells[g.groupIdx[r.Level-1]]
			continue
		}
		cells := make([]table.Value, len(r.Cells))
		copy(cells, r.Cells)
		for _, col := range g.blanked[r.SourcePos] {
			cells[col] = current[levelOf[col]]
		}
		rows = append(rows, cells)
	}

	types := make([]table.Type, g.base.NCol())
	for c, name := range g.base.Names() {
		typ, err := g.base.ColumnType(name)
		if err != nil {
			return nil, err
		}
		types[c] = typ
	}
	return table.FromRows(g.base.Names(), types, rows)
}

// Fingerprint computes a deterministic content hash over the grouped row
// sequence. Identical input tables and group lists fingerprint identically.
func (g *GroupedTable) Fingerprint() core.Fingerprint {
	parts := []string{strconv.Itoa(len(g.groups))}
	parts = append(parts, g.groups...)
	for _, r := range g.rows {
		parts = append(parts, string(r.Kind), strconv.Itoa(r.Level), r.GroupColumn)
		for _, cell := range r.Cells {
			if cell.IsBlank() {
				parts = append(parts, "\x00blank")
			} else {
				parts = append(parts, cell.String())
			}
		}
	}
	return core.NewFingerprint(parts)
}
