// Package xlsx renders report plans into Excel workbooks and reads tables
// back from xlsx/csv files.
package xlsx

import (
	"fmt"
	"io"

	"flextab/domain/report"
	"flextab/domain/table"

	"github.com/xuri/excelize/v2"
)

const headerRows = 1

type cellKey struct {
	row, col int
}

// Renderer writes a plan into one worksheet. It implements
// ports.RendererPort; sheet row 1 is the header, body rows follow.
type Renderer struct {
	f        *excelize.File
	sheet    string
	defaults report.Defaults
	ncol     int
	composed map[cellKey]report.Paragraph
}

// NewRenderer creates an xlsx renderer targeting the named sheet
func NewRenderer(sheet string, defaults report.Defaults) *Renderer {
	if sheet == "" {
		sheet = "Sheet1"
	}
	return &Renderer{
		f:        excelize.NewFile(),
		sheet:    sheet,
		defaults: defaults,
		composed: make(map[cellKey]report.Paragraph),
	}
}

// Backend names the backend for error reporting
func (r *Renderer) Backend() string { return "xlsx" }

// Begin writes the header row and applies column widths
func (r *Renderer) Begin(header []string, widths []float64) error {
	if r.sheet != "Sheet1" {
		if err := r.f.SetSheetName("Sheet1", r.sheet); err != nil {
			return err
		}
	}
	r.ncol = len(header)

	headerStyle, err := r.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   r.defaults.HeaderBold,
			Family: r.defaults.FontFamily,
			Size:   r.defaults.FontSize,
		},
	})
	if err != nil {
		return err
	}

	for c, label := range header {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := r.f.SetCellStr(r.sheet, cell, label); err != nil {
			return err
		}
		if err := r.f.SetCellStyle(r.sheet, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	for c, w := range widths {
		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		// Excel width units roughly track character counts; add breathing room.
		if err := r.f.SetColWidth(r.sheet, name, name, w+2); err != nil {
			return err
		}
	}
	return nil
}

// WriteCell writes a plain body cell. Blanks leave the cell empty.
func (r *Renderer) WriteCell(row, col int, v table.Value) error {
	if v.IsBlank() {
		return nil
	}
	cell, err := r.cellName(row, col)
	if err != nil {
		return err
	}
	if v.Type() == table.TypeDate {
		// Dates carry their display format rather than Excel serial styling.
		return r.f.SetCellStr(r.sheet, cell, v.String())
	}
	return r.f.SetCellValue(r.sheet, cell, v.Native())
}

// ComposeParagraph replaces a body cell with styled paragraph content
func (r *Renderer) ComposeParagraph(row, col int, par report.Paragraph) error {
	cell, err := r.cellName(row, col)
	if err != nil {
		return err
	}
	if err := r.f.SetCellStr(r.sheet, cell, par.Text); err != nil {
		return err
	}
	r.composed[cellKey{row, col}] = par

	style, err := r.f.NewStyle(&excelize.Style{
		Font: r.paragraphFont(par),
	})
	if err != nil {
		return err
	}
	return r.f.SetCellStyle(r.sheet, cell, cell, style)
}

// MergeRow merges a body row across an inclusive column range
func (r *Renderer) MergeRow(row, from, to int) error {
	start, err := r.cellName(row, from)
	if err != nil {
		return err
	}
	end, err := r.cellName(row, to)
	if err != nil {
		return err
	}
	return r.f.MergeCell(r.sheet, start, end)
}

// SetRowAlignment aligns every cell of a body row, preserving composed fonts
func (r *Renderer) SetRowAlignment(row int, align report.Alignment) error {
	for col := 0; col < r.ncol; col++ {
		style := &excelize.Style{
			Alignment: &excelize.Alignment{Horizontal: string(align), Vertical: "center"},
		}
		if par, ok := r.composed[cellKey{row, col}]; ok {
			style.Font = r.paragraphFont(par)
		}
		styleID, err := r.f.NewStyle(style)
		if err != nil {
			return err
		}
		cell, err := r.cellName(row, col)
		if err != nil {
			return err
		}
		if err := r.f.SetCellStyle(r.sheet, cell, cell, styleID); err != nil {
			return err
		}
	}
	return nil
}

// SetKeepWithNext is a no-op: worksheets do not paginate
func (r *Renderer) SetKeepWithNext(row int) error { return nil }

// Flush finalizes the in-memory workbook
func (r *Renderer) Flush() error { return nil }

// File exposes the underlying workbook
func (r *Renderer) File() *excelize.File { return r.f }

// SaveAs writes the workbook to disk
func (r *Renderer) SaveAs(path string) error {
	return r.f.SaveAs(path)
}

// WriteTo streams the workbook
func (r *Renderer) WriteTo(w io.Writer) (int64, error) {
	return r.f.WriteTo(w)
}

func (r *Renderer) cellName(row, col int) (string, error) {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1+headerRows)
	if err != nil {
		return "", fmt.Errorf("cell (%d, %d): %w", row, col, err)
	}
	return cell, nil
}

func (r *Renderer) paragraphFont(par report.Paragraph) *excelize.Font {
	return &excelize.Font{
		Bold:   par.Bold,
		Italic: par.Italic,
		Family: r.defaults.FontFamily,
		Size:   r.defaults.FontSize,
	}
}
