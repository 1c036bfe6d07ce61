package input

import (
	"fmt"

	"flextab/domain/core"
	"flextab/domain/table"
)

// ModelFit is the summarized output of an externally fitted statistical
// model. flextab never fits models; it only tabulates fitted results.
type ModelFit struct {
	Kind  string // e.g. "lm", "glm"
	Terms []Term
}

// Term is one coefficient row of a fitted model
type Term struct {
	Name      string
	Estimate  float64
	StdErr    float64
	Statistic float64
	PValue    float64
}

// Summarizer converts one model kind into its coefficient table
type Summarizer func(*ModelFit) (*table.Table, error)

// Registry maps model kinds to summarizers. It is passed explicitly to
// Resolve; there is no global registration.
type Registry struct {
	summarizers map[string]Summarizer
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{summarizers: make(map[string]Summarizer)}
}

// StandardRegistry creates a registry with the built-in linear and
// generalized linear model summarizers
func StandardRegistry() *Registry {
	reg := NewRegistry()
	reg.Register("lm", coefficientSummarizer)
	reg.Register("glm", coefficientSummarizer)
	return reg
}

// Register adds or replaces the summarizer for a model kind
func (r *Registry) Register(kind string, fn Summarizer) {
	r.summarizers[kind] = fn
}

// Summarize tabulates a model fit. An unregistered kind is a
// missing-capability condition naming the required summarizer.
func (r *Registry) Summarize(fit *ModelFit) (*table.Table, error) {
	fn, ok := r.summarizers[fit.Kind]
	if !ok {
		return nil, core.NewMissingCapabilityError(
			fmt.Sprintf("summarizer for model kind %q", fit.Kind))
	}
	return fn(fit)
}

// coefficientSummarizer emits the standard coefficient table: one row per
// term with estimate, standard error, statistic, and p-value.
func coefficientSummarizer(fit *ModelFit) (*table.Table, error) {
	if len(fit.Terms) == 0 {
		return nil, fmt.Errorf("%w: model fit has no terms", core.ErrInvalidInput)
	}

	rows := make([][]table.Value, len(fit.Terms))
	for i, term := range fit.Terms {
		rows[i] = []table.Value{
			table.Text(term.Name),
			table.Num(term.Estimate),
			table.Num(term.StdErr),
			table.Num(term.Statistic),
			table.Num(term.PValue),
		}
	}
	return table.FromRows(
		[]string{"term", "estimate", "std_error", "statistic", "p_value"},
		[]table.Type{table.TypeText, table.TypeNumeric, table.TypeNumeric, table.TypeNumeric, table.TypeNumeric},
		rows,
	)
}
