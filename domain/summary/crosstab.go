package summary

import (
	"flextab/domain/core"
	"flextab/domain/table"

	"gonum.org/v1/gonum/stat/distuv"
)

// Contingency is a two-way frequency table. Level order follows first
// appearance in the data, so identical input always yields identical layout.
type Contingency struct {
	RowVar, ColVar       string
	RowLevels, ColLevels []string
	Counts               [][]int
	Total                int
}

// CrossTab tabulates the joint frequencies of two columns. Rows where either
// variable is blank are excluded; producing zero cells is not an error.
func CrossTab(t *table.Table, rowVar, colVar string) (*Contingency, error) {
	if t == nil {
		return nil, core.ErrInvalidInput
	}
	rowIdx, err := t.ColumnIndex(rowVar)
	if err != nil {
		return nil, err
	}
	colIdx, err := t.ColumnIndex(colVar)
	if err != nil {
		return nil, err
	}

	c := &Contingency{RowVar: rowVar, ColVar: colVar}
	rowPos := make(map[string]int)
	colPos := make(map[string]int)

	for r := 0; r < t.NRow(); r++ {
		rv, cv := t.Cell(r, rowIdx), t.Cell(r, colIdx)
		if rv.IsBlank() || cv.IsBlank() {
			continue
		}
		i, ok := rowPos[rv.String()]
		if !ok {
			i = len(c.RowLevels)
			rowPos[rv.String()] = i
			c.RowLevels = append(c.RowLevels, rv.String())
			c.Counts = append(c.Counts, make([]int, len(c.ColLevels)))
		}
		j, ok := colPos[cv.String()]
		if !ok {
			j = len(c.ColLevels)
			colPos[cv.String()] = j
			c.ColLevels = append(c.ColLevels, cv.String())
			for k := range c.Counts {
				c.Counts[k] = append(c.Counts[k], 0)
			}
		}
		c.Counts[i][j]++
		c.Total++
	}

	return c, nil
}

// RowTotal returns the marginal count of row i
func (c *Contingency) RowTotal(i int) int {
	n := 0
	for _, v := range c.Counts[i] {
		n += v
	}
	return n
}

// ColTotal returns the marginal count of column j
func (c *Contingency) ColTotal(j int) int {
	n := 0
	for i := range c.Counts {
		n += c.Counts[i][j]
	}
	return n
}

// RowPercent returns cell (i, j) as a share of its row
func (c *Contingency) RowPercent(i, j int) float64 {
	total := c.RowTotal(i)
	if total == 0 {
		return 0
	}
	return 100 * float64(c.Counts[i][j]) / float64(total)
}

// ColPercent returns cell (i, j) as a share of its column
func (c *Contingency) ColPercent(i, j int) float64 {
	total := c.ColTotal(j)
	if total == 0 {
		return 0
	}
	return 100 * float64(c.Counts[i][j]) / float64(total)
}

// ChiSquare runs the chi-square test of independence. With fewer than two
// levels on either margin the test is undefined and p is reported as 1.
func (c *Contingency) ChiSquare() (stat, p float64, df int) {
	df = (len(c.RowLevels) - 1) * (len(c.ColLevels) - 1)
	if df < 1 || c.Total == 0 {
		return 0, 1, 0
	}

	for i := range c.RowLevels {
		for j := range c.ColLevels {
			expected := float64(c.RowTotal(i)) * float64(c.ColTotal(j)) / float64(c.Total)
			if expected == 0 {
				continue
			}
			diff := float64(c.Counts[i][j]) - expected
			stat += diff * diff / expected
		}
	}

	p = distuv.ChiSquared{K: float64(df)}.Survival(stat)
	return stat, p, df
}

// ToTable converts the contingency into a report-ready table: one text column
// of row levels and one numeric count column per column level, with optional
// marginal totals.
func (c *Contingency) ToTable(includeTotals bool) (*table.Table, error) {
	names := []string{c.RowVar}
	types := []table.Type{table.TypeText}
	for _, level := range c.ColLevels {
		names = append(names, level)
		types = append(types, table.TypeNumeric)
	}
	if includeTotals {
		names = append(names, "total")
		types = append(types, table.TypeNumeric)
	}

	rows := make([][]table.Value, 0, len(c.RowLevels)+1)
	for i, level := range c.RowLevels {
		row := []table.Value{table.Text(level)}
		for j := range c.ColLevels {
			row = append(row, table.Num(float64(c.Counts[i][j])))
		}
		if includeTotals {
			row = append(row, table.Num(float64(c.RowTotal(i))))
		}
		rows = append(rows, row)
	}
	if includeTotals {
		row := []table.Value{table.Text("total")}
		for j := range c.ColLevels {
			row = append(row, table.Num(float64(c.ColTotal(j))))
		}
		row = append(row, table.Num(float64(c.Total)))
		rows = append(rows, row)
	}

	// Zero observed cells yields a zero-row table, not an error.
	return table.FromRows(names, types, rows)
}
