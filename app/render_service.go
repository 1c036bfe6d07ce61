package app

import (
	"context"

	"flextab/domain/core"
	"flextab/domain/grouped"
	"flextab/domain/report"
	"flextab/domain/table"
	"flextab/ports"

	"golang.org/x/sync/errgroup"
)

// RenderService orchestrates building a report plan and replaying it against
// document backends
type RenderService struct{}

// NewRenderService creates a render service
func NewRenderService() *RenderService {
	return &RenderService{}
}

// BuildReport groups a table and binds the rendering plan in one step
func (s *RenderService) BuildReport(t *table.Table, groups []string, opts grouped.Options, defaults report.Defaults) (*report.Plan, error) {
	g, err := grouped.Build(t, groups, opts)
	if err != nil {
		return nil, err
	}
	p, err := report.Bind(g, defaults)
	if err != nil {
		return nil, err
	}
	return p.Autofit(), nil
}

// RenderPlan replays a plan against one backend: body cells first, then the
// compose, merge, alignment, and pagination instructions, in plan order.
func (s *RenderService) RenderPlan(p *report.Plan, r ports.RendererPort) error {
	fail := func(err error) error {
		return core.NewRenderError(r.Backend(), err)
	}

	if err := r.Begin(p.Header(), p.Widths()); err != nil {
		return fail(err)
	}

	for i, row := range p.Grouped().Rows() {
		if row.Kind == grouped.RowTitle {
			continue // title content arrives via compose instructions
		}
		for c, cell := range row.Cells {
			if err := r.WriteCell(i, c, cell); err != nil {
				return fail(err)
			}
		}
	}

	for _, op := range p.Composes() {
		if err := r.ComposeParagraph(op.Row, op.Col, op.Par); err != nil {
			return fail(err)
		}
	}
	for _, op := range p.Merges() {
		if err := r.MergeRow(op.Row, op.From, op.To); err != nil {
			return fail(err)
		}
	}
	for _, op := range p.Aligns() {
		if err := r.SetRowAlignment(op.Row, op.Align); err != nil {
			return fail(err)
		}
	}
	for _, op := range p.Paginates() {
		if !op.KeepWithNext {
			continue
		}
		if err := r.SetKeepWithNext(op.Row); err != nil {
			return fail(err)
		}
	}

	if err := r.Flush(); err != nil {
		return fail(err)
	}
	return nil
}

// RenderAll fans a plan out to several backends. Each backend renders from
// the same immutable plan; the first failure wins.
func (s *RenderService) RenderAll(ctx context.Context, p *report.Plan, renderers ...ports.RendererPort) error {
	eg, _ := errgroup.WithContext(ctx)
	for _, r := range renderers {
		r := r
		eg.Go(func() error {
			return s.RenderPlan(p, r)
		})
	}
	return eg.Wait()
}
