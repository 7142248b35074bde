// Monte Carlo survival driver.
package government

import (
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

// SurvivalStats summarizes repeated survival simulations.
type SurvivalStats struct {
	MeanSurvival      float64 `json:"mean_survival"`
	MedianSurvival    float64 `json:"median_survival"`
	StdSurvival       float64 `json:"std_survival"`
	FullTermProb      float64 `json:"full_term_prob"`
	EarlyCollapseProb float64 `json:"early_collapse_prob"`
	MinSurvival       int     `json:"min_survival"`
	MaxSurvival       int     `json:"max_survival"`
	Simulations       int     `json:"simulations"`
}

// SimulateSurvival repeats single-government simulation nSimulations times
// with independent draws from a seeded stream and reports survival
// statistics. Early collapse means falling before half-term.
func SimulateSurvival(strain, stability float64, model string, maxTerm, nSimulations int, seed int64) SurvivalStats {
	rng := rand.New(rand.NewSource(uint64(seed)))

	times := make([]float64, nSimulations)
	fullTerm, early := 0, 0
	minT, maxT := maxTerm, 0

	for i := 0; i < nSimulations; i++ {
		months := 0
		for month := 1; month <= maxTerm; month++ {
			p := CollapseProbability(month, strain, stability, model, 0.05, maxTerm)
			if rng.Float64() < p {
				months = month
				break
			}
		}
		if months == 0 {
			months = maxTerm
		}

		times[i] = float64(months)
		if months >= maxTerm {
			fullTerm++
		}
		if months < maxTerm/2 {
			early++
		}
		if months < minT {
			minT = months
		}
		if months > maxT {
			maxT = months
		}
	}

	sorted := make([]float64, len(times))
	copy(sorted, times)
	sort.Float64s(sorted)

	// Population form: std_survival describes this exact batch of runs, not
	// an estimate of a larger population.
	mean, std := stat.PopMeanStdDev(times, nil)
	return SurvivalStats{
		MeanSurvival:      mean,
		MedianSurvival:    stat.Quantile(0.5, stat.Empirical, sorted, nil),
		StdSurvival:       std,
		FullTermProb:      float64(fullTerm) / float64(nSimulations),
		EarlyCollapseProb: float64(early) / float64(nSimulations),
		MinSurvival:       minT,
		MaxSurvival:       maxT,
		Simulations:       nSimulations,
	}
}
