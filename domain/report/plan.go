// Package report binds a grouped table to an immutable rendering plan: the
// compose, merge, alignment, and pagination instructions a backend renderer
// consumes.
package report

import (
	"strconv"

	"flextab/domain/core"
	"flextab/domain/grouped"
)

// Alignment is a horizontal paragraph alignment
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Paragraph is composed cell content
type Paragraph struct {
	Text   string
	Bold   bool
	Italic bool
}

// ComposeOp replaces the content of one body cell with a paragraph
type ComposeOp struct {
	Row, Col int
	Par      Paragraph
}

// MergeOp merges a body row horizontally across an inclusive column range
type MergeOp struct {
	Row, From, To int
}

// AlignOp sets the alignment of every cell in a body row
type AlignOp struct {
	Row   int
	Align Alignment
}

// PaginateOp attaches a keep-with-next pagination hint to a body row
type PaginateOp struct {
	Row          int
	KeepWithNext bool
}

// Plan is an immutable instruction set layered onto a grouped table. Row
// indices are 0-based over the grouped body rows; renderers place headers
// themselves. Every With* mutation returns a new plan.
type Plan struct {
	id        core.PlanID
	grouped   *grouped.GroupedTable
	header    []string
	composes  []ComposeOp
	merges    []MergeOp
	aligns    []AlignOp
	paginates []PaginateOp
	widths    []float64
	defaults  Defaults
}

// ID returns the plan identifier
func (p *Plan) ID() core.PlanID { return p.id }

// Grouped returns the underlying grouped table
func (p *Plan) Grouped() *grouped.GroupedTable { return p.grouped }

// Header returns the display labels, one per column
func (p *Plan) Header() []string {
	return append([]string(nil), p.header...)
}

// NCol returns the number of displayed columns
func (p *Plan) NCol() int { return len(p.header) }

// NRow returns the number of body rows, title rows included
func (p *Plan) NRow() int { return p.grouped.NRow() }

// Defaults returns the formatting configuration the plan was bound with
func (p *Plan) Defaults() Defaults { return p.defaults }

// Composes returns a copy of the compose instructions
func (p *Plan) Composes() []ComposeOp { return append([]ComposeOp(nil), p.composes...) }

// Merges returns a copy of the merge instructions
func (p *Plan) Merges() []MergeOp { return append([]MergeOp(nil), p.merges...) }

// Aligns returns a copy of the alignment instructions
func (p *Plan) Aligns() []AlignOp { return append([]AlignOp(nil), p.aligns...) }

// Paginates returns a copy of the pagination hints
func (p *Plan) Paginates() []PaginateOp { return append([]PaginateOp(nil), p.paginates...) }

// Widths returns the autofit column widths, or nil if Autofit was not applied
func (p *Plan) Widths() []float64 { return append([]float64(nil), p.widths...) }

func (p *Plan) clone() *Plan {
	return &Plan{
		id:        p.id,
		grouped:   p.grouped,
		header:    append([]string(nil), p.header...),
		composes:  append([]ComposeOp(nil), p.composes...),
		merges:    append([]MergeOp(nil), p.merges...),
		aligns:    append([]AlignOp(nil), p.aligns...),
		paginates: append([]PaginateOp(nil), p.paginates...),
		widths:    append([]float64(nil), p.widths...),
		defaults:  p.defaults,
	}
}

// WithCompose returns a new plan with an extra compose instruction
func (p *Plan) WithCompose(op ComposeOp) *Plan {
	next := p.clone()
	next.composes = append(next.composes, op)
	return next
}

// WithMerge returns a new plan with an extra merge instruction
func (p *Plan) WithMerge(op MergeOp) *Plan {
	next := p.clone()
	next.merges = append(next.merges, op)
	return next
}

// WithAlign returns a new plan with an extra alignment instruction
func (p *Plan) WithAlign(op AlignOp) *Plan {
	next := p.clone()
	next.aligns = append(next.aligns, op)
	return next
}

// WithKeepWithNext returns a new plan with a pagination hint for a row
func (p *Plan) WithKeepWithNext(row int) *Plan {
	next := p.clone()
	next.paginates = append(next.paginates, PaginateOp{Row: row, KeepWithNext: true})
	return next
}

// WithHeader returns a new plan with replacement display labels
func (p *Plan) WithHeader(labels []string) (*Plan, error) {
	if len(labels) != len(p.header) {
		return nil, core.ErrLengthMismatch
	}
	next := p.clone()
	next.header = append([]string(nil), labels...)
	return next, nil
}

// Autofit returns a new plan with content-measured column widths. Widths are
// the longest rendered cell per column, clamped to the configured bounds.
// Merged title labels span several columns and are excluded from the measure.
func (p *Plan) Autofit() *Plan {
	next := p.clone()
	next.widths = make([]float64, len(p.header))
	for c, label := range p.header {
		next.widths[c] = float64(len([]rune(label)))
	}
	for _, row := range p.grouped.Rows() {
		if row.Kind == grouped.RowTitle {
			continue
		}
		for c, cell := range row.Cells {
			if w := float64(len([]rune(cell.String()))); w > next.widths[c] {
				next.widths[c] = w
			}
		}
	}
	for c := range next.widths {
		if next.widths[c] < p.defaults.MinColWidth {
			next.widths[c] = p.defaults.MinColWidth
		}
		if next.widths[c] > p.defaults.MaxColWidth {
			next.widths[c] = p.defaults.MaxColWidth
		}
	}
	return next
}

// Fingerprint computes a deterministic content hash over the grouped rows and
// every instruction in order
func (p *Plan) Fingerprint() core.Fingerprint {
	parts := []string{p.grouped.Fingerprint().String()}
	parts = append(parts, p.header...)
	for _, op := range p.composes {
		parts = append(parts, "compose", strconv.Itoa(op.Row), strconv.Itoa(op.Col),
			op.Par.Text, strconv.FormatBool(op.Par.Bold), strconv.FormatBool(op.Par.Italic))
	}
	for _, op := range p.merges {
		parts = append(parts, "merge", strconv.Itoa(op.Row), strconv.Itoa(op.From), strconv.Itoa(op.To))
	}
	for _, op := range p.aligns {
		parts = append(parts, "align", strconv.Itoa(op.Row), string(op.Align))
	}
	for _, op := range p.paginates {
		parts = append(parts, "paginate", strconv.Itoa(op.Row), strconv.FormatBool(op.KeepWithNext))
	}
	for _, w := range p.widths {
		parts = append(parts, strconv.FormatFloat(w, 'g', -1, 64))
	}
	return core.NewFingerprint(parts)
}
