package report

import (
	"flextab/domain/core"
	"flextab/domain/grouped"
)

// Bind walks a grouped table and emits the rendering plan: for every title
// row a composed label, a horizontal merge from the first displayed column
// through the last, left alignment, and a keep-with-next hint so the title
// never paginates away from its first data row.
func Bind(g *grouped.GroupedTable, defaults Defaults) (*Plan, error) {
	if g == nil {
		return nil, core.ErrInvalidInput
	}
	if defaults.LabelSeparator == "" {
		defaults.LabelSeparator = ": "
	}

	base := g.Base()
	p := &Plan{
		id:       core.PlanID(core.NewID()),
		grouped:  g,
		header:   base.Names(),
		defaults: defaults,
	}

	lastCol := base.NCol() - 1
	for i, row := range g.Rows() {
		if row.Kind != grouped.RowTitle {
			continue
		}
		p.composes = append(p.composes, ComposeOp{
			Row: i,
			Col: 0,
			Par: Paragraph{Text: titleLabel(row, defaults), Bold: defaults.TitleBold},
		})
		p.merges = append(p.merges, MergeOp{Row: i, From: 0, To: lastCol})
		p.aligns = append(p.aligns, AlignOp{Row: i, Align: AlignLeft})
		p.paginates = append(p.paginates, PaginateOp{Row: i, KeepWithNext: true})
	}

	return p, nil
}

// titleLabel composes the displayed label for a title row: the group column
// name joined to the run's value, or the value alone when labels are hidden.
func titleLabel(row grouped.Row, defaults Defaults) string {
	value := ""
	for _, cell := range row.Cells {
		if !cell.IsBlank() {
			value = cell.String()
			break
		}
	}
	if defaults.HideGroupLabel {
		return value
	}
	return row.GroupColumn + defaults.LabelSeparator + value
}
