package report

import (
	"testing"

	"flextab/domain/core"
	"flextab/domain/grouped"
	"flextab/domain/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boundPlan(t *testing.T, defaults Defaults) *Plan {
	t.Helper()
	tbl, err := table.New(
		table.TextColumn("grp", "A", "A", "B"),
		table.NumericColumn("val", 1, 2, 3),
	)
	require.NoError(t, err)

	g, err := grouped.Build(tbl, []string{"grp"}, grouped.Options{ExpandSingle: true})
	require.NoError(t, err)

	p, err := Bind(g, defaults)
	require.NoError(t, err)
	return p
}

func TestBindTitleInstructions(t *testing.T) {
	p := boundPlan(t, StandardDefaults())

	composes := p.Composes()
	require.Len(t, composes, 2)
	assert.Equal(t, "grp: A", composes[0].Par.Text)
	assert.Equal(t, 0, composes[0].Row)
	assert.Equal(t, 0, composes[0].Col)
	assert.True(t, composes[0].Par.Bold)
	assert.Equal(t, "grp: B", composes[1].Par.Text)
	assert.Equal(t, 3, composes[1].Row)

	// Each title merges from the first displayed column through the last.
	merges := p.Merges()
	require.Len(t, merges, 2)
	for _, m := range merges {
		assert.Equal(t, 0, m.From)
		assert.Equal(t, p.NCol()-1, m.To)
	}

	aligns := p.Aligns()
	require.Len(t, aligns, 2)
	for _, a := range aligns {
		assert.Equal(t, AlignLeft, a.Align)
	}

	paginates := p.Paginates()
	require.Len(t, paginates, 2)
	for _, pg := range paginates {
		assert.True(t, pg.KeepWithNext)
	}
}

func TestBindHideGroupLabel(t *testing.T) {
	d := StandardDefaults()
	d.HideGroupLabel = true
	p := boundPlan(t, d)

	composes := p.Composes()
	require.Len(t, composes, 2)
	assert.Equal(t, "A", composes[0].Par.Text)
	assert.Equal(t, "B", composes[1].Par.Text)
}

func TestBindNoTitleRows(t *testing.T) {
	tbl, err := table.New(table.NumericColumn("val", 1, 2))
	require.NoError(t, err)
	g, err := grouped.Build(tbl, nil, grouped.Options{})
	require.NoError(t, err)

	p, err := Bind(g, StandardDefaults())
	require.NoError(t, err)
	assert.Empty(t, p.Composes())
	assert.Empty(t, p.Merges())
	assert.Empty(t, p.Aligns())
}

func TestBindNilGrouped(t *testing.T) {
	_, err := Bind(nil, StandardDefaults())
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestPlanFunctionalUpdates(t *testing.T) {
	p := boundPlan(t, StandardDefaults())
	before := len(p.Merges())

	next := p.WithMerge(MergeOp{Row: 1, From: 0, To: 1}).
		WithAlign(AlignOp{Row: 1, Align: AlignCenter}).
		WithKeepWithNext(1)

	// The original plan is untouched.
	assert.Len(t, p.Merges(), before)
	assert.Len(t, next.Merges(), before+1)
	assert.Equal(t, p.ID(), next.ID())

	// Accessor slices are copies.
	merges := p.Merges()
	merges[0].From = 99
	assert.Equal(t, 0, p.Merges()[0].From)
}

func TestPlanWithHeader(t *testing.T) {
	p := boundPlan(t, StandardDefaults())

	renamed, err := p.WithHeader([]string{"Group", "Value"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Group", "Value"}, renamed.Header())
	assert.Equal(t, []string{"grp", "val"}, p.Header())

	_, err = p.WithHeader([]string{"only-one"})
	assert.ErrorIs(t, err, core.ErrLengthMismatch)
}

func TestAutofitWidths(t *testing.T) {
	d := StandardDefaults()
	d.MinColWidth = 2
	d.MaxColWidth = 10
	p := boundPlan(t, d).Autofit()

	widths := p.Widths()
	require.Len(t, widths, 2)
	// "grp" header is the longest content in column 0 (title labels are
	// merged and excluded from the measure).
	assert.Equal(t, 3.0, widths[0])
	assert.Equal(t, 3.0, widths[1])
}

func TestPlanDeterminism(t *testing.T) {
	a := boundPlan(t, StandardDefaults())
	b := boundPlan(t, StandardDefaults())
	assert.True(t, a.Fingerprint().Equals(b.Fingerprint()))

	c := boundPlan(t, Defaults{LabelSeparator: " = "})
	assert.False(t, a.Fingerprint().Equals(c.Fingerprint()))
}
