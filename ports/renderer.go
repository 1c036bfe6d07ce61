package ports

import (
	"flextab/domain/report"
	"flextab/domain/table"
)

// RendererPort is the contract between a report plan and a document backend.
// A backend only has to know how to compose a paragraph at a cell, merge a
// row across a column range, and set a row's alignment; everything else is
// carried by the plan.
//
// Row and column indices are 0-based over the plan body; backends place their
// own header row.
type RendererPort interface {
	// Begin starts a document with header labels and optional column widths
	// (nil when the plan was not autofitted).
	Begin(header []string, widths []float64) error
	// WriteCell writes a plain body cell. Blank values render empty.
	WriteCell(row, col int, v table.Value) error
	// ComposeParagraph replaces a body cell with composed content.
	ComposeParagraph(row, col int, par report.Paragraph) error
	// MergeRow merges a body row horizontally across an inclusive range.
	MergeRow(row, from, to int) error
	// SetRowAlignment aligns every cell of a body row.
	SetRowAlignment(row int, align report.Alignment) error
	// SetKeepWithNext attaches a pagination hint. Backends without
	// pagination ignore it.
	SetKeepWithNext(row int) error
	// Flush finalizes the document.
	Flush() error
	// Backend names the backend for error reporting.
	Backend() string
}
