// The standard utility models. Each contributes one behavioral factor;
// the engine owns the combining weights.
package behavior

import (
	"math"

	"github.com/talgya/electoral-sim/internal/agents"
)

// Proximity is the spatial model: utility falls with Euclidean distance
// between voter ideology and party position.
type Proximity struct{}

func (Proximity) Contribute(v *agents.VoterSet, p *agents.PartySet, _ *Context, dst *Matrix) {
	for i := 0; i < v.N; i++ {
		row := dst.Row(i)
		vx, vy := v.IdeologyX[i], v.IdeologyY[i]
		for j := range row {
			dx := vx - p.PositionX[j]
			dy := vy - p.PositionY[j]
			row[j] -= math.Sqrt(dx*dx + dy*dy)
		}
	}
}

// Valence adds each party's non-policy appeal identically for every voter.
type Valence struct{}

func (Valence) Contribute(v *agents.VoterSet, p *agents.PartySet, _ *Context, dst *Matrix) {
	for i := 0; i < v.N; i++ {
		row := dst.Row(i)
		for j := range row {
			row[j] += p.Valence[j]
		}
	}
}

// Retrospective rewards or punishes incumbents with the national growth rate
// plus mood, minus the anti-incumbency penalty. Non-incumbents get zero.
type Retrospective struct{}

func (Retrospective) Contribute(v *agents.VoterSet, p *agents.PartySet, ctx *Context, dst *Matrix) {
	reward := ctx.EconomicGrowth + ctx.NationalMood - ctx.AntiIncumbency
	if reward == 0 {
		return
	}
	for i := 0; i < v.N; i++ {
		row := dst.Row(i)
		for j := range row {
			if p.Incumbent[j] {
				row[j] += reward
			}
		}
	}
}

// SociotropicPocketbook blends the national growth signal with each voter's
// personal income change, weighted by the voter's economic-perception type
// (0 = pure pocketbook, 1 = pure sociotropic). Incumbent columns only.
type SociotropicPocketbook struct{}

func (SociotropicPocketbook) Contribute(v *agents.VoterSet, p *agents.PartySet, ctx *Context, dst *Matrix) {
	for i := 0; i < v.N; i++ {
		personal := 0.0
		if ctx.PersonalIncomeChange != nil {
			personal = ctx.PersonalIncomeChange[i]
		}
		blend := v.EconomicPerception[i]
		signal := blend*ctx.EconomicGrowth + (1-blend)*personal
		if signal == 0 {
			continue
		}
		row := dst.Row(i)
		for j := range row {
			if p.Incumbent[j] {
				row[j] += signal
			}
		}
	}
}

// Strategic discounts parties with low estimated viability using a continuous
// log penalty, broadcast across voters (homogeneous perception of viability).
type Strategic struct {
	Sensitivity float64
}

func (s Strategic) Contribute(v *agents.VoterSet, p *agents.PartySet, ctx *Context, dst *Matrix) {
	if ctx.Viability == nil {
		return
	}
	penalty := make([]float64, p.Len())
	for j := range penalty {
		penalty[j] = s.Sensitivity * math.Log(ctx.Viability[j]+1e-6)
	}
	for i := 0; i < v.N; i++ {
		row := dst.Row(i)
		for j := range row {
			row[j] += penalty[j]
		}
	}
}

// WastedVote applies a flat penalty to parties whose viability falls below
// a threshold, a binary version of strategic discounting.
type WastedVote struct {
	Threshold float64 // Viability below this is "wasted"
	Penalty   float64 // Utility subtracted from non-viable parties
}

func (w WastedVote) Contribute(v *agents.VoterSet, p *agents.PartySet, ctx *Context, dst *Matrix) {
	if ctx.Viability == nil {
		return
	}
	for i := 0; i < v.N; i++ {
		row := dst.Row(i)
		for j := range row {
			if ctx.Viability[j] < w.Threshold {
				row[j] -= w.Penalty
			}
		}
	}
}
