package sqldb

import (
	"testing"
	"time"

	"flextab/domain/core"
	"flextab/domain/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableFromNatives(t *testing.T) {
	when := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	tbl, err := tableFromNatives(
		[]string{"name", "count", "ratio", "active", "since"},
		[][]interface{}{
			{[]byte("alpha"), int64(3), 0.5, true, when},
			{"beta", int64(7), 1.25, false, when},
		},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "count", "ratio", "active", "since"}, tbl.Names())
	for name, want := range map[string]table.Type{
		"name":   table.TypeText,
		"count":  table.TypeNumeric,
		"ratio":  table.TypeNumeric,
		"active": table.TypeLogical,
		"since":  table.TypeDate,
	} {
		typ, err := tbl.ColumnType(name)
		require.NoError(t, err)
		assert.Equal(t, want, typ, name)
	}

	assert.Equal(t, "alpha", tbl.Cell(0, 0).String())
	n, _ := tbl.Cell(1, 1).Float()
	assert.Equal(t, 7.0, n)
	assert.Equal(t, "2026-01-15", tbl.Cell(0, 4).String())
}

func TestTableFromNativesNulls(t *testing.T) {
	tbl, err := tableFromNatives(
		[]string{"v"},
		[][]interface{}{{int64(1)}, {nil}, {int64(3)}},
	)
	require.NoError(t, err)

	typ, _ := tbl.ColumnType("v")
	assert.Equal(t, table.TypeNumeric, typ)
	assert.True(t, tbl.Cell(1, 0).IsBlank())
}

func TestTableFromNativesMixedTypesDemoteToText(t *testing.T) {
	tbl, err := tableFromNatives(
		[]string{"v"},
		[][]interface{}{{int64(1)}, {"x"}},
	)
	require.NoError(t, err)

	typ, _ := tbl.ColumnType("v")
	assert.Equal(t, table.TypeText, typ)
	assert.Equal(t, "1", tbl.Cell(0, 0).String())
	assert.Equal(t, "x", tbl.Cell(1, 0).String())
}

func TestTableFromNativesAllNull(t *testing.T) {
	tbl, err := tableFromNatives(
		[]string{"v"},
		[][]interface{}{{nil}},
	)
	require.NoError(t, err)
	typ, _ := tbl.ColumnType("v")
	assert.Equal(t, table.TypeText, typ)
	assert.True(t, tbl.Cell(0, 0).IsBlank())
}

func TestTableFromNativesValidation(t *testing.T) {
	_, err := tableFromNatives(nil, nil)
	assert.ErrorIs(t, err, core.ErrZeroColumns)

	_, err = tableFromNatives([]string{"a", "b"}, [][]interface{}{{int64(1)}})
	assert.ErrorIs(t, err, core.ErrLengthMismatch)
}
