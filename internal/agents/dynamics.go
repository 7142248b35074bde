// Opinion dynamics between elections: noisy voter model over party
// identification, plus slow ideological drift toward the identified camp.
package agents

import (
	"golang.org/x/exp/rand"
)

// DynamicsConfig controls one opinion-dynamics step.
type DynamicsConfig struct {
	// MutationRate is the probability a voter spontaneously re-draws their
	// party identification instead of copying another voter's.
	MutationRate float64
	// DriftRate scales how far ideology moves toward the identified camp
	// per step. Zero disables ideological drift.
	DriftRate float64
}

// StepOpinions runs one noisy-voter step. Each non-zealot voter either
// mutates to a uniform random identification (with probability MutationRate)
// or copies the identification of a uniformly chosen voter. Zealots never
// change. The update reads from a snapshot so ordering within the step does
// not matter.
func StepOpinions(v *VoterSet, cfg DynamicsConfig, rng *rand.Rand) {
	snapshot := make([]int, v.N)
	copy(snapshot, v.PartyID7)

	for i := 0; i < v.N; i++ {
		if v.Zealot[i] {
			continue
		}
		if rng.Float64() < cfg.MutationRate {
			v.PartyID7[i] = rng.Intn(7) - 3
		} else {
			v.PartyID7[i] = snapshot[rng.Intn(v.N)]
		}
	}

	if cfg.DriftRate > 0 {
		// Identification pulls the economic axis toward the matching third
		// of the spectrum: id/3 maps -3..+3 onto -1..+1.
		for i := 0; i < v.N; i++ {
			if v.Zealot[i] {
				continue
			}
			target := float64(v.PartyID7[i]) / 3.0
			v.IdeologyX[i] = clip(v.IdeologyX[i]+cfg.DriftRate*(target-v.IdeologyX[i]), -1, 1)
		}
	}
}
