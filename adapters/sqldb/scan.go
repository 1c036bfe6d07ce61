package sqldb

import (
	"fmt"
	"strconv"
	"time"

	"flextab/domain/core"
	"flextab/domain/table"
)

// tableFromNatives converts driver-native row values into a typed table. The
// column type is the first non-NULL value's type; later values that disagree
// demote the column to text.
func tableFromNatives(names []string, raw [][]interface{}) (*table.Table, error) {
	if len(names) == 0 {
		return nil, core.ErrZeroColumns
	}

	types := make([]table.Type, len(names))
	for c := range names {
		types[c] = inferNativeType(column(raw, c))
	}

	rows := make([][]table.Value, len(raw))
	for r, vals := range raw {
		if len(vals) != len(names) {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d",
				core.ErrLengthMismatch, r, len(vals), len(names))
		}
		cells := make([]table.Value, len(names))
		for c, v := range vals {
			cells[c] = nativeValue(v, types[c])
		}
		rows[r] = cells
	}
	return table.FromRows(names, types, rows)
}

func column(raw [][]interface{}, c int) []interface{} {
	out := make([]interface{}, 0, len(raw))
	for _, row := range raw {
		if c < len(row) {
			out = append(out, row[c])
		}
	}
	return out
}

func inferNativeType(values []interface{}) table.Type {
	typ := table.Type("")
	for _, v := range values {
		if v == nil {
			continue
		}
		next := nativeType(v)
		if typ == "" {
			typ = next
			continue
		}
		if typ != next {
			return table.TypeText
		}
	}
	if typ == "" {
		return table.TypeText
	}
	return typ
}

func nativeType(v interface{}) table.Type {
	switch v.(type) {
	case int64, float64:
		return table.TypeNumeric
	case bool:
		return table.TypeLogical
	case time.Time:
		return table.TypeDate
	default:
		return table.TypeText
	}
}

// nativeValue coerces one driver value into a cell of the column's type
func nativeValue(v interface{}, typ table.Type) table.Value {
	if v == nil {
		return table.Blank(typ)
	}

	switch typ {
	case table.TypeNumeric:
		switch n := v.(type) {
		case int64:
			return table.Num(float64(n))
		case float64:
			return table.Num(n)
		}
	case table.TypeLogical:
		if b, ok := v.(bool); ok {
			return table.Logical(b)
		}
	case table.TypeDate:
		if t, ok := v.(time.Time); ok {
			return table.Date(t)
		}
	case table.TypeText:
		return table.Text(nativeString(v))
	}
	return table.Blank(typ)
}

func nativeString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	case time.Time:
		return s.Format(table.DateLayout)
	default:
		return fmt.Sprintf("%v", s)
	}
}
