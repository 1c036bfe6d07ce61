// Package summary builds statistical-summary tables from raw tables: grouped
// continuous descriptions and two-way cross-tabulations. Output tables are
// ordered group-major so they feed straight into the grouped builder.
package summary

import (
	"fmt"
	"math"
	"strings"

	"flextab/domain/core"
	"flextab/domain/table"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// DescribeRequest selects what Describe computes
type DescribeRequest struct {
	// By lists grouping columns; empty means one overall group.
	By []string
	// Columns lists the numeric columns to summarize; empty means all numeric columns.
	Columns []string
	// CILevel adds normal-approximation confidence bounds when in (0, 1).
	CILevel float64
}

// statColumns is the fixed summary column order
var statColumns = []string{"n", "mean", "sd", "median", "q25", "q75", "min", "max"}

// Describe computes per-group summary statistics for numeric columns. Each
// output row is one (group, variable) pair; group rows stay contiguous.
// Groups where a variable has no valid values produce an n=0 row with blank
// statistics rather than an error.
func Describe(t *table.Table, req DescribeRequest) (*table.Table, error) {
	if t == nil {
		return nil, core.ErrInvalidInput
	}

	byIdx := make([]int, len(req.By))
	for i, name := range req.By {
		idx, err := t.ColumnIndex(name)
		if err != nil {
			return nil, err
		}
		byIdx[i] = idx
	}

	vars := req.Columns
	if len(vars) == 0 {
		for _, name := range t.Names() {
			typ, _ := t.ColumnType(name)
			if typ == table.TypeNumeric && !contains(req.By, name) {
				vars = append(vars, name)
			}
		}
	}
	if len(vars) == 0 {
		return nil, fmt.Errorf("%w: no numeric columns to summarize", core.ErrInvalidInput)
	}
	varIdx := make([]int, len(vars))
	for i, name := range vars {
		idx, err := t.ColumnIndex(name)
		if err != nil {
			return nil, err
		}
		typ, _ := t.ColumnType(name)
		if typ != table.TypeNumeric {
			return nil, core.NewTypeMismatchError(name, string(table.TypeNumeric), string(typ))
		}
		varIdx[i] = idx
	}

	// Group rows by their by-tuple, first-appearance order.
	keys := make([]string, 0)
	members := make(map[string][]int)
	keyCells := make(map[string][]table.Value)
	for r := 0; r < t.NRow(); r++ {
		cells := make([]table.Value, len(byIdx))
		parts := make([]string, len(byIdx))
		for i, c := range byIdx {
			cells[i] = t.Cell(r, c)
			parts[i] = cells[i].String()
		}
		key := strings.Join(parts, "\x1f")
		if _, seen := members[key]; !seen {
			keys = append(keys, key)
			keyCells[key] = cells
		}
		members[key] = append(members[key], r)
	}

	withCI := req.CILevel > 0 && req.CILevel < 1
	var rows [][]table.Value
	for _, key := range keys {
		for v, name := range vars {
			data := make([]float64, 0, len(members[key]))
			for _, r := range members[key] {
				if f, ok := t.Cell(r, varIdx[v]).Float(); ok {
					data = append(data, f)
				}
			}
			row := append(append([]table.Value(nil), keyCells[key]...), table.Text(name))
			row = append(row, summarize(data, withCI, req.CILevel)...)
			rows = append(rows, row)
		}
	}

	names := append(append([]string(nil), req.By...), "variable")
	types := make([]table.Type, 0, len(names)+len(statColumns)+2)
	for _, c := range byIdx {
		typ, _ := t.ColumnType(t.Names()[c])
		types = append(types, typ)
	}
	types = append(types, table.TypeText)
	names = append(names, statColumns...)
	for range statColumns {
		types = append(types, table.TypeNumeric)
	}
	if withCI {
		names = append(names, "ci_low", "ci_high")
		types = append(types, table.TypeNumeric, table.TypeNumeric)
	}

	return table.FromRows(names, types, rows)
}

// summarize computes the statistic cells for one variable in one group
func summarize(data []float64, withCI bool, level float64) []table.Value {
	n := len(data)
	width := len(statColumns)
	if withCI {
		width += 2
	}

	cells := make([]table.Value, width)
	cells[0] = table.Num(float64(n))
	if n == 0 {
		for i := 1; i < width; i++ {
			cells[i] = table.Blank(table.TypeNumeric)
		}
		return cells
	}

	mean, _ := stats.Mean(data)
	sd, _ := stats.StandardDeviationSample(data)
	median, _ := stats.Median(data)
	q25, _ := stats.Percentile(data, 25)
	q75, _ := stats.Percentile(data, 75)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	if n == 1 {
		sd = 0
		q25, q75 = data[0], data[0]
	}

	cells[1] = table.Num(mean)
	cells[2] = table.Num(sd)
	cells[3] = table.Num(median)
	cells[4] = table.Num(q25)
	cells[5] = table.Num(q75)
	cells[6] = table.Num(min)
	cells[7] = table.Num(max)

	if withCI {
		low, high := MeanCI(mean, sd, n, level)
		cells[8] = table.Num(low)
		cells[9] = table.Num(high)
	}
	return cells
}

// MeanCI returns the normal-approximation confidence bounds for a mean
func MeanCI(mean, sd float64, n int, level float64) (low, high float64) {
	if n == 0 {
		return math.NaN(), math.NaN()
	}
	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(0.5 + level/2)
	delta := z * sd / math.Sqrt(float64(n))
	return mean - delta, mean + delta
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
