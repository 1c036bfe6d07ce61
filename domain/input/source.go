// Package input resolves the supported input kinds into the common table
// form. The kinds form a closed set: there is no dispatch over arbitrary
// object classes, only explicit conversion per kind.
package input

import (
	"fmt"

	"flextab/domain/core"
	"flextab/domain/table"
)

// Kind enumerates the supported input kinds
type Kind string

const (
	KindTable    Kind = "table"
	KindColumns  Kind = "columns"
	KindRecords  Kind = "records"
	KindModelFit Kind = "model_fit"
)

// Source is a tagged variant over the supported input kinds. Exactly the
// field matching Kind is consulted.
type Source struct {
	Kind Kind

	Table   *table.Table
	Columns []table.Column
	Records *Records
	Model   *ModelFit
}

// Records is row-oriented input: an ordered field list plus one map per row.
// Field order fixes the output column order; map iteration order never leaks.
type Records struct {
	Fields []string
	Types  []table.Type
	Rows   []map[string]table.Value
}

// Resolve converts a source into a table. Model fits require a summarizer
// registered for their kind in the given registry.
func Resolve(src Source, reg *Registry) (*table.Table, error) {
	switch src.Kind {
	case KindTable:
		if src.Table == nil {
			return nil, fmt.Errorf("%w: nil table", core.ErrInvalidInput)
		}
		return src.Table, nil
	case KindColumns:
		return table.New(src.Columns...)
	case KindRecords:
		if src.Records == nil {
			return nil, fmt.Errorf("%w: nil records", core.ErrInvalidInput)
		}
		return fromRecords(src.Records)
	case KindModelFit:
		if src.Model == nil {
			return nil, fmt.Errorf("%w: nil model fit", core.ErrInvalidInput)
		}
		if reg == nil {
			return nil, core.NewMissingCapabilityError("model summarizer registry")
		}
		return reg.Summarize(src.Model)
	default:
		return nil, fmt.Errorf("%w: unsupported input kind %q", core.ErrInvalidInput, src.Kind)
	}
}

// fromRecords builds a table in field order, filling absent keys with blanks
func fromRecords(rec *Records) (*table.Table, error) {
	if len(rec.Fields) == 0 {
		return nil, core.ErrZeroColumns
	}
	if len(rec.Types) != len(rec.Fields) {
		return nil, fmt.Errorf("%w: %d types for %d fields",
			core.ErrLengthMismatch, len(rec.Types), len(rec.Fields))
	}

	rows := make([][]table.Value, len(rec.Rows))
	for r, m := range rec.Rows {
		row := make([]table.Value, len(rec.Fields))
		for c, field := range rec.Fields {
			if v, ok := m[field]; ok {
				row[c] = v
			} else {
				row[c] = table.Blank(rec.Types[c])
			}
		}
		rows[r] = row
	}
	return table.FromRows(rec.Fields, rec.Types, rows)
}
