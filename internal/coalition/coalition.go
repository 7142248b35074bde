// Package coalition enumerates winning coalitions over a post-election seat
// vector, scores their cohesion, and selects a government.
package coalition

import (
	"fmt"
	"math"
	"sort"
)

// MaxParties caps the exhaustive subset search. The enumeration is
// exponential in party count; beyond this the search is truncated and the
// result flagged rather than left to run unbounded.
const MaxParties = 20

// Coalition is one winning subset of parties.
type Coalition struct {
	Parties     []int   // Member party indices, ascending
	Seats       int     // Aggregate seat total
	PolicyRange float64 // Max - min position on the connecting axis
}

// Majority returns the seat count needed for a majority:
// floor(total * threshold) + 1.
func Majority(totalSeats int, threshold float64) int {
	return int(math.Floor(float64(totalSeats)*threshold)) + 1
}

// MinimumWinningCoalitions enumerates every subset of parties whose seat sum
// reaches the majority and from which no member can be removed without
// losing it. Results are sorted by coalition size ascending, then seats
// descending. Truncated reports whether the search was cut short by the
// party-count ceiling.
func MinimumWinningCoalitions(seats []int, threshold float64) (mwcs []Coalition, truncated bool) {
	n := len(seats)
	if n > MaxParties {
		n = MaxParties
		truncated = true
	}

	totalSeats := 0
	for _, s := range seats {
		totalSeats += s
	}
	majority := Majority(totalSeats, threshold)

	for mask := 1; mask < 1<<n; mask++ {
		sum := 0
		for p := 0; p < n; p++ {
			if mask&(1<<p) != 0 {
				sum += seats[p]
			}
		}
		if sum < majority {
			continue
		}

		minimal := true
		for p := 0; p < n; p++ {
			if mask&(1<<p) != 0 && sum-seats[p] >= majority {
				minimal = false
				break
			}
		}
		if !minimal {
			continue
		}

		members := make([]int, 0, n)
		for p := 0; p < n; p++ {
			if mask&(1<<p) != 0 {
				members = append(members, p)
			}
		}
		mwcs = append(mwcs, Coalition{Parties: members, Seats: sum})
	}

	sort.SliceStable(mwcs, func(a, b int) bool {
		if len(mwcs[a].Parties) != len(mwcs[b].Parties) {
			return len(mwcs[a].Parties) < len(mwcs[b].Parties)
		}
		return mwcs[a].Seats > mwcs[b].Seats
	})
	return mwcs, truncated
}

// MinimumConnectedWinning filters MWCs down to coalitions whose members span
// at most maxRange on the given policy axis, sorted most cohesive first.
func MinimumConnectedWinning(seats []int, positions []float64, threshold, maxRange float64) ([]Coalition, bool) {
	mwcs, truncated := MinimumWinningCoalitions(seats, threshold)

	var mcws []Coalition
	for _, c := range mwcs {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, p := range c.Parties {
			lo = math.Min(lo, positions[p])
			hi = math.Max(hi, positions[p])
		}
		c.PolicyRange = hi - lo
		if c.PolicyRange <= maxRange {
			mcws = append(mcws, c)
		}
	}

	sort.SliceStable(mcws, func(a, b int) bool {
		return mcws[a].PolicyRange < mcws[b].PolicyRange
	})
	return mcws, truncated
}

// Strain computes the seat-share-weighted mean pairwise Euclidean distance
// among member positions. Singleton and empty coalitions have zero strain.
func Strain(posX, posY, weights []float64) float64 {
	n := len(posX)
	if n < 2 {
		return 0
	}

	totalW := 0.0
	for _, w := range weights {
		totalW += w
	}
	if totalW == 0 {
		return 0
	}

	strain, weightSum := 0.0, 0.0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := posX[i] - posX[j]
			dy := posY[i] - posY[j]
			dist := math.Sqrt(dx*dx + dy*dy)
			w := (weights[i] / totalW) * (weights[j] / totalW)
			strain += dist * w
			weightSum += w
		}
	}
	if weightSum == 0 {
		return 0
	}
	return strain / weightSum
}

// Stability transform tags.
const (
	TransformSigmoid     = "sigmoid"
	TransformLinear      = "linear"
	TransformExponential = "exponential"
)

// PredictStability composes a strain factor, a saturating majority-margin
// factor, and a party-count penalty into a raw score, then maps it into
// [0, 1] through the chosen transform.
func PredictStability(strain, majorityMargin float64, nParties int, transform string) float64 {
	strainFactor := 1.0 / (1.0 + strain)
	marginFactor := 0.5 + 0.5*clip(majorityMargin*5, 0, 1)
	partyFactor := 1.0 / math.Sqrt(float64(nParties))
	raw := strainFactor * marginFactor * partyFactor

	switch transform {
	case TransformSigmoid:
		return 1.0 / (1.0 + math.Exp(-5*(raw-0.5)))
	case TransformExponential:
		return 1.0 - math.Exp(-3*raw)
	default: // linear
		return clip(raw, 0, 1)
	}
}

// Government describes a formed (or failed) government.
type Government struct {
	Success   bool
	Reason    string   // Set when Success is false
	Parties   []int
	Names     []string
	Seats     int
	Majority  int
	Margin    float64  // (seats - majority) / total
	Strain    float64
	Stability float64
	Truncated bool     // Coalition search hit the party ceiling
}

// FormGovernment picks the most cohesive minimum-connected-winning coalition,
// falling back to the smallest minimum winning coalition when none is
// connected. When no majority coalition exists at all it returns a
// structured failure, not an error.
func FormGovernment(seats []int, posX, posY []float64, names []string, threshold, maxRange float64) Government {
	totalSeats := 0
	for _, s := range seats {
		totalSeats += s
	}
	majority := Majority(totalSeats, threshold)

	mcws, truncated := MinimumConnectedWinning(seats, posX, threshold, maxRange)

	var chosen Coalition
	if len(mcws) > 0 {
		chosen = mcws[0]
	} else {
		mwcs, trunc := MinimumWinningCoalitions(seats, threshold)
		truncated = truncated || trunc
		if len(mwcs) == 0 {
			return Government{
				Success:   false,
				Reason:    "no majority coalition possible",
				Majority:  majority,
				Truncated: truncated,
			}
		}
		chosen = mwcs[0]
	}

	memberX := make([]float64, len(chosen.Parties))
	memberY := make([]float64, len(chosen.Parties))
	weights := make([]float64, len(chosen.Parties))
	memberNames := make([]string, len(chosen.Parties))
	for i, p := range chosen.Parties {
		memberX[i] = posX[p]
		memberY[i] = posY[p]
		weights[i] = float64(seats[p])
		if names != nil {
			memberNames[i] = names[p]
		} else {
			memberNames[i] = fmt.Sprintf("Party %d", p)
		}
	}

	strain := Strain(memberX, memberY, weights)
	margin := float64(chosen.Seats-majority) / float64(totalSeats)
	stability := PredictStability(strain, margin, len(chosen.Parties), TransformSigmoid)

	return Government{
		Success:   true,
		Parties:   chosen.Parties,
		Names:     memberNames,
		Seats:     chosen.Seats,
		Majority:  majority,
		Margin:    margin,
		Strain:    strain,
		Stability: stability,
		Truncated: truncated,
	}
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
