package summary

import (
	"testing"

	"flextab/domain/core"
	"flextab/domain/grouped"
	"flextab/domain/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func salesTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New(
		table.TextColumn("region", "north", "north", "north", "south", "south"),
		table.NumericColumn("sales", 10, 20, 30, 40, 50),
		table.NumericColumn("margin", 1, 2, 3, 4, 5),
	)
	require.NoError(t, err)
	return tbl
}

func TestDescribeGrouped(t *testing.T) {
	out, err := Describe(salesTable(t), DescribeRequest{By: []string{"region"}})
	require.NoError(t, err)

	// 2 groups x 2 variables
	assert.Equal(t, 4, out.NRow())
	assert.Equal(t,
		[]string{"region", "variable", "n", "mean", "sd", "median", "q25", "q75", "min", "max"},
		out.Names())

	// First row: north / sales
	row := out.Row(0)
	assert.Equal(t, "north", row[0].String())
	assert.Equal(t, "sales", row[1].String())
	n, _ := row[2].Float()
	mean, _ := row[3].Float()
	sd, _ := row[4].Float()
	assert.Equal(t, 3.0, n)
	assert.InDelta(t, 20.0, mean, 1e-9)
	assert.InDelta(t, 10.0, sd, 1e-9)

	// Third row: south / sales
	row = out.Row(2)
	assert.Equal(t, "south", row[0].String())
	mean, _ = row[3].Float()
	assert.InDelta(t, 45.0, mean, 1e-9)
}

// A describe output feeds straight into the grouped builder: group rows are
// contiguous by construction.
func TestDescribeFeedsGroupedBuilder(t *testing.T) {
	out, err := Describe(salesTable(t), DescribeRequest{By: []string{"region"}})
	require.NoError(t, err)

	g, err := grouped.Build(out, []string{"region"}, grouped.Options{ExpandSingle: true})
	require.NoError(t, err)
	assert.Equal(t, 2, g.TitleCount(1))
}

func TestDescribeOverallGroup(t *testing.T) {
	out, err := Describe(salesTable(t), DescribeRequest{Columns: []string{"sales"}})
	require.NoError(t, err)
	require.Equal(t, 1, out.NRow())

	row := out.Row(0)
	assert.Equal(t, "sales", row[0].String())
	mean, _ := row[2].Float()
	assert.InDelta(t, 30.0, mean, 1e-9)
}

func TestDescribeConfidenceBounds(t *testing.T) {
	out, err := Describe(salesTable(t), DescribeRequest{Columns: []string{"sales"}, CILevel: 0.95})
	require.NoError(t, err)

	names := out.Names()
	assert.Equal(t, "ci_low", names[len(names)-2])
	assert.Equal(t, "ci_high", names[len(names)-1])

	row := out.Row(0)
	low, _ := row[len(row)-2].Float()
	high, _ := row[len(row)-1].Float()
	mean := 30.0
	assert.Less(t, low, mean)
	assert.Greater(t, high, mean)
	// 95% z is 1.96; sd is sqrt(250), n is 5, so the half-width is z*sqrt(50).
	assert.InDelta(t, mean-1.959964*7.0710678, low, 1e-3)
}

func TestDescribeBlanksSkipped(t *testing.T) {
	tbl, err := table.New(
		table.TextColumn("g", "a", "a", "b"),
		table.Column{Name: "v", Type: table.TypeNumeric, Cells: []table.Value{
			table.Num(1), table.Blank(table.TypeNumeric), table.Blank(table.TypeNumeric),
		}},
	)
	require.NoError(t, err)

	out, err := Describe(tbl, DescribeRequest{By: []string{"g"}})
	require.NoError(t, err)
	require.Equal(t, 2, out.NRow())

	// Group a: n=1 from the single valid value.
	n, _ := out.Row(0)[2].Float()
	assert.Equal(t, 1.0, n)

	// Group b: no valid values, n=0 and blank statistics, not an error.
	n, _ = out.Row(1)[2].Float()
	assert.Equal(t, 0.0, n)
	assert.True(t, out.Row(1)[3].IsBlank())
}

func TestDescribeValidation(t *testing.T) {
	_, err := Describe(salesTable(t), DescribeRequest{By: []string{"missing"}})
	assert.ErrorIs(t, err, core.ErrUnknownColumn)

	_, err = Describe(salesTable(t), DescribeRequest{Columns: []string{"region"}})
	assert.ErrorIs(t, err, core.ErrTypeMismatch)

	onlyText, err := table.New(table.TextColumn("t", "x"))
	require.NoError(t, err)
	_, err = Describe(onlyText, DescribeRequest{})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func surveyTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New(
		table.TextColumn("gender", "f", "f", "f", "m", "m", "m", "f", "m"),
		table.TextColumn("answer", "yes", "yes", "no", "no", "no", "yes", "yes", "no"),
	)
	require.NoError(t, err)
	return tbl
}

func TestCrossTabCounts(t *testing.T) {
	c, err := CrossTab(surveyTable(t), "gender", "answer")
	require.NoError(t, err)

	assert.Equal(t, []string{"f", "m"}, c.RowLevels)
	assert.Equal(t, []string{"yes", "no"}, c.ColLevels)
	assert.Equal(t, 8, c.Total)
	assert.Equal(t, 3, c.Counts[0][0]) // f / yes
	assert.Equal(t, 1, c.Counts[0][1]) // f / no
	assert.Equal(t, 1, c.Counts[1][0]) // m / yes
	assert.Equal(t, 3, c.Counts[1][1]) // m / no

	assert.Equal(t, 4, c.RowTotal(0))
	assert.Equal(t, 4, c.ColTotal(1))
	assert.InDelta(t, 75.0, c.RowPercent(0, 0), 1e-9)
	assert.InDelta(t, 25.0, c.ColPercent(0, 1), 1e-9)
}

func TestCrossTabChiSquare(t *testing.T) {
	c, err := CrossTab(surveyTable(t), "gender", "answer")
	require.NoError(t, err)

	stat, p, df := c.ChiSquare()
	assert.Equal(t, 1, df)
	// Expected counts are all 2, observed deviate by 1: stat = 4 * 1/2 = 2.
	assert.InDelta(t, 2.0, stat, 1e-9)
	assert.InDelta(t, 0.15729, p, 1e-4)
}

func TestCrossTabDegenerate(t *testing.T) {
	tbl, err := table.New(
		table.TextColumn("a", "x", "x"),
		table.TextColumn("b", "y", "y"),
	)
	require.NoError(t, err)
	c, err := CrossTab(tbl, "a", "b")
	require.NoError(t, err)

	stat, p, df := c.ChiSquare()
	assert.Equal(t, 0, df)
	assert.Equal(t, 0.0, stat)
	assert.Equal(t, 1.0, p)
}

func TestCrossTabToTable(t *testing.T) {
	c, err := CrossTab(surveyTable(t), "gender", "answer")
	require.NoError(t, err)

	out, err := c.ToTable(true)
	require.NoError(t, err)
	assert.Equal(t, []string{"gender", "yes", "no", "total"}, out.Names())
	require.Equal(t, 3, out.NRow())

	total := out.Row(2)
	assert.Equal(t, "total", total[0].String())
	v, _ := total[3].Float()
	assert.Equal(t, 8.0, v)
}

func TestCrossTabUnknownColumn(t *testing.T) {
	_, err := CrossTab(surveyTable(t), "gender", "nope")
	assert.ErrorIs(t, err, core.ErrUnknownColumn)
}
