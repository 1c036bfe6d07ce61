package input

import (
	"testing"

	"flextab/domain/core"
	"flextab/domain/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTableKind(t *testing.T) {
	tbl, err := table.New(table.TextColumn("a", "x"))
	require.NoError(t, err)

	out, err := Resolve(Source{Kind: KindTable, Table: tbl}, nil)
	require.NoError(t, err)
	assert.True(t, tbl.Equal(out))

	_, err = Resolve(Source{Kind: KindTable}, nil)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestResolveColumnsKind(t *testing.T) {
	out, err := Resolve(Source{
		Kind: KindColumns,
		Columns: []table.Column{
			table.TextColumn("g", "a", "b"),
			table.NumericColumn("v", 1, 2),
		},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, out.NRow())

	// Construction failures surface as invalid input with no partial result.
	_, err = Resolve(Source{Kind: KindColumns}, nil)
	assert.ErrorIs(t, err, core.ErrZeroColumns)
}

func TestResolveRecordsKind(t *testing.T) {
	rec := &Records{
		Fields: []string{"g", "v"},
		Types:  []table.Type{table.TypeText, table.TypeNumeric},
		Rows: []map[string]table.Value{
			{"g": table.Text("a"), "v": table.Num(1)},
			{"g": table.Text("b")}, // missing v becomes blank
		},
	}
	out, err := Resolve(Source{Kind: KindRecords, Records: rec}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"g", "v"}, out.Names())
	assert.True(t, out.Cell(1, 1).IsBlank())
}

func TestResolveUnsupportedKind(t *testing.T) {
	_, err := Resolve(Source{Kind: Kind("spreadsheet")}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestResolveModelFit(t *testing.T) {
	fit := &ModelFit{
		Kind: "lm",
		Terms: []Term{
			{Name: "(intercept)", Estimate: 1.2, StdErr: 0.3, Statistic: 4.0, PValue: 0.001},
			{Name: "x", Estimate: 0.8, StdErr: 0.1, Statistic: 8.0, PValue: 0.0001},
		},
	}

	out, err := Resolve(Source{Kind: KindModelFit, Model: fit}, StandardRegistry())
	require.NoError(t, err)
	assert.Equal(t, []string{"term", "estimate", "std_error", "statistic", "p_value"}, out.Names())
	assert.Equal(t, 2, out.NRow())
	est, _ := out.Cell(1, 1).Float()
	assert.Equal(t, 0.8, est)
}

func TestResolveModelFitMissingSummarizer(t *testing.T) {
	fit := &ModelFit{Kind: "coxph", Terms: []Term{{Name: "x"}}}

	_, err := Resolve(Source{Kind: KindModelFit, Model: fit}, StandardRegistry())
	require.Error(t, err)
	assert.True(t, core.IsMissingCapability(err))
	assert.Contains(t, err.Error(), "coxph")

	// No registry at all reports the same condition.
	_, err = Resolve(Source{Kind: KindModelFit, Model: fit}, nil)
	assert.True(t, core.IsMissingCapability(err))
}

func TestRegistryCustomSummarizer(t *testing.T) {
	reg := NewRegistry()
	reg.Register("anova", func(fit *ModelFit) (*table.Table, error) {
		return table.New(table.TextColumn("term", fit.Terms[0].Name))
	})

	out, err := reg.Summarize(&ModelFit{Kind: "anova", Terms: []Term{{Name: "x"}}})
	require.NoError(t, err)
	assert.Equal(t, "x", out.Cell(0, 0).String())
}
