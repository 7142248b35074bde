// Package behavior composes pluggable utility models into a single
// voter-by-party utility matrix. Models are pure: all randomness lives in
// the vote-sampling step, not here.
package behavior

import (
	"gonum.org/v1/gonum/floats"

	"github.com/talgya/electoral-sim/internal/agents"
)

// Matrix is a dense row-major voter-by-party utility matrix.
type Matrix struct {
	Rows, Cols int
	Data       []float64
}

// NewMatrix allocates a zeroed rows-by-cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}
}

// Row returns row i as a slice view.
func (m *Matrix) Row(i int) []float64 {
	return m.Data[i*m.Cols : (i+1)*m.Cols]
}

// At returns the element at (i, j).
func (m *Matrix) At(i, j int) float64 {
	return m.Data[i*m.Cols+j]
}

// Zero resets every element.
func (m *Matrix) Zero() {
	for i := range m.Data {
		m.Data[i] = 0
	}
}

// Context carries the national and historical signals the models read.
type Context struct {
	// EconomicGrowth is the national growth rate read by retrospective and
	// sociotropic evaluation.
	EconomicGrowth float64
	// NationalMood shifts retrospective reward uniformly.
	NationalMood float64
	// AntiIncumbency is an additional penalty applied to incumbent columns.
	AntiIncumbency float64
	// PersonalIncomeChange is the per-voter income-change signal used by
	// pocketbook evaluation. May be nil (treated as zero).
	PersonalIncomeChange []float64
	// Viability holds per-party expected vote shares, typically seeded from
	// historical results. May be nil (all parties viable).
	Viability []float64
}

// Model is a single utility contribution. Contribute adds its unweighted
// contribution for every voter and party into dst.
type Model interface {
	Contribute(v *agents.VoterSet, p *agents.PartySet, ctx *Context, dst *Matrix)
}

type weightedModel struct {
	model  Model
	weight float64
}

// Engine combines registered models by weighted sum.
type Engine struct {
	models []weightedModel
}

// NewEngine returns an empty behavior engine.
func NewEngine() *Engine {
	return &Engine{}
}

// AddModel registers a model with a combining weight.
func (e *Engine) AddModel(m Model, weight float64) {
	e.models = append(e.models, weightedModel{model: m, weight: weight})
}

// Compute evaluates every registered model and returns the weight-summed
// utility matrix.
func (e *Engine) Compute(v *agents.VoterSet, p *agents.PartySet, ctx *Context) *Matrix {
	if ctx == nil {
		ctx = &Context{}
	}
	total := NewMatrix(v.N, p.Len())
	scratch := NewMatrix(v.N, p.Len())
	for _, wm := range e.models {
		scratch.Zero()
		wm.model.Contribute(v, p, ctx, scratch)
		floats.AddScaled(total.Data, wm.weight, scratch.Data)
	}
	return total
}

// DefaultEngine wires the standard model stack: proximity, valence,
// retrospective, sociotropic/pocketbook, and strategic discounting when
// viability data is available.
func DefaultEngine(hasViability bool) *Engine {
	e := NewEngine()
	e.AddModel(Proximity{}, 1.0)
	e.AddModel(Valence{}, 0.01)
	e.AddModel(Retrospective{}, 0.5)
	e.AddModel(SociotropicPocketbook{}, 0.3)
	if hasViability {
		e.AddModel(Strategic{Sensitivity: 1.0}, 0.5)
	}
	return e
}
