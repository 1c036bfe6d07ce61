// Package markdown renders report plans as pipe tables, with an HTML
// conversion for web embedding.
package markdown

import (
	"fmt"
	"strings"

	"flextab/domain/report"
	"flextab/domain/table"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Renderer accumulates a plan into a pipe table. It implements
// ports.RendererPort. Pipe tables cannot merge cells, so merged title labels
// span by writing the label into the range's first cell and leaving the rest
// of the row empty.
type Renderer struct {
	header []string
	cells  [][]string
	merged map[int]bool
	out    strings.Builder
	done   bool
}

// NewRenderer creates a markdown renderer
func NewRenderer() *Renderer {
	return &Renderer{merged: make(map[int]bool)}
}

// Backend names the backend for error reporting
func (r *Renderer) Backend() string { return "markdown" }

// Begin records the header; pipe tables have no width control
func (r *Renderer) Begin(header []string, widths []float64) error {
	r.header = append([]string(nil), header...)
	return nil
}

func (r *Renderer) ensureRow(row int) error {
	if row < 0 {
		return fmt.Errorf("negative row %d", row)
	}
	for len(r.cells) <= row {
		r.cells = append(r.cells, make([]string, len(r.header)))
	}
	return nil
}

// WriteCell writes a plain body cell
func (r *Renderer) WriteCell(row, col int, v table.Value) error {
	if err := r.ensureRow(row); err != nil {
		return err
	}
	r.cells[row][col] = escapePipes(v.String())
	return nil
}

// ComposeParagraph writes composed content with markdown emphasis
func (r *Renderer) ComposeParagraph(row, col int, par report.Paragraph) error {
	if err := r.ensureRow(row); err != nil {
		return err
	}
	text := escapePipes(par.Text)
	if par.Italic {
		text = "*" + text + "*"
	}
	if par.Bold {
		text = "**" + text + "**"
	}
	r.cells[row][col] = text
	return nil
}

// MergeRow marks a row as label-spanned
func (r *Renderer) MergeRow(row, from, to int) error {
	if err := r.ensureRow(row); err != nil {
		return err
	}
	r.merged[row] = true
	for c := from + 1; c <= to && c < len(r.header); c++ {
		r.cells[row][c] = ""
	}
	return nil
}

// SetRowAlignment is a no-op: pipe tables align per column, not per row
func (r *Renderer) SetRowAlignment(row int, align report.Alignment) error { return nil }

// SetKeepWithNext is a no-op: markdown does not paginate
func (r *Renderer) SetKeepWithNext(row int) error { return nil }

// Flush assembles the pipe table
func (r *Renderer) Flush() error {
	r.out.Reset()
	writeRow := func(cells []string) {
		r.out.WriteString("| ")
		r.out.WriteString(strings.Join(cells, " | "))
		r.out.WriteString(" |\n")
	}

	writeRow(r.header)
	sep := make([]string, len(r.header))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(sep)
	for _, row := range r.cells {
		writeRow(row)
	}

	r.done = true
	return nil
}

// Markdown returns the rendered pipe table; empty until Flush
func (r *Renderer) Markdown() string {
	if !r.done {
		return ""
	}
	return r.out.String()
}

// HTML converts the rendered table to an HTML fragment
func (r *Renderer) HTML() []byte {
	md := r.Markdown()
	if md == "" {
		return nil
	}
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
