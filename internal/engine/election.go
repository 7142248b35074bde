// Election running: turnout draws, probabilistic vote choice, and tabulation
// under the configured electoral system.
package engine

import (
	"log/slog"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/talgya/electoral-sim/internal/behavior"
	"github.com/talgya/electoral-sim/internal/config"
	"github.com/talgya/electoral-sim/internal/systems"
)

// RunElection computes utilities, draws turnout and votes, tallies under the
// configured system, and appends the result.
func (m *Model) RunElection() (Result, error) {
	utilities := m.Behavior.Compute(m.Voters, m.Parties, &m.Context)

	// Turnout: one Bernoulli draw per voter, in voter order.
	willVote := make([]bool, m.Voters.N)
	for i := range willVote {
		willVote[i] = m.rng.Float64() < m.Voters.TurnoutProb[i]
	}

	// Vote choice: one uniform draw per voter, also in voter order. Draws
	// happen for every voter regardless of turnout so the random stream
	// stays aligned with the population.
	choices := m.sampleVotes(utilities)

	votes := make([]int, m.Parties.Len())
	ballots := 0
	perConstituency := make([][]int, m.Config.NConstituencies)
	for c := range perConstituency {
		perConstituency[c] = make([]int, m.Parties.Len())
	}
	for i := 0; i < m.Voters.N; i++ {
		if !willVote[i] {
			continue
		}
		votes[choices[i]]++
		perConstituency[m.Voters.Constituency[i]][choices[i]]++
		ballots++
	}

	var seats []int
	switch m.Config.ElectoralSystem {
	case config.SystemFPTP:
		seats = m.countFPTP(perConstituency)
	case config.SystemPR:
		var err error
		seats, err = systems.Allocate(m.Config.AllocationMethod, votes,
			m.Config.NConstituencies, m.Config.Threshold)
		if err != nil {
			return Result{}, err
		}
	}

	result := newResult(m.Config.ElectoralSystem, votes, seats, ballots, m.Voters.N)
	m.Results = append(m.Results, result)

	slog.Info("election complete",
		"system", result.System,
		"ballots", humanize.Comma(int64(ballots)),
		"turnout", math.Round(result.Turnout*1000)/10,
		"gallagher", result.Gallagher,
		"enp_votes", result.ENPVotes,
		"enp_seats", result.ENPSeats,
	)
	return result, nil
}

// sampleVotes converts the utility matrix into one party choice per voter
// via a temperature softmax and an inverse-CDF draw: the choice is the count
// of cumulative probabilities the uniform exceeds.
func (m *Model) sampleVotes(utilities *behavior.Matrix) []int {
	nParties := utilities.Cols
	choices := make([]int, utilities.Rows)
	invTemp := 1.0 / m.Config.Temperature
	probs := make([]float64, nParties)

	for i := 0; i < utilities.Rows; i++ {
		row := utilities.Row(i)

		// Scale by inverse temperature and subtract the row max before
		// exponentiating. The shift cancels in normalization; it only
		// guards against overflow.
		max := math.Inf(-1)
		for _, u := range row {
			if s := u * invTemp; s > max {
				max = s
			}
		}
		sum := 0.0
		for j, u := range row {
			probs[j] = math.Exp(u*invTemp - max)
			sum += probs[j]
		}

		u := m.rng.Float64()
		cum := 0.0
		choice := nParties - 1
		for j := 0; j < nParties; j++ {
			cum += probs[j] / sum
			if u < cum {
				choice = j
				break
			}
		}
		choices[i] = choice
	}
	return choices
}

// countFPTP awards each constituency's single seat to its plurality winner;
// ties favor the lowest party index. A constituency where nobody voted
// awards no seat.
func (m *Model) countFPTP(perConstituency [][]int) []int {
	seats := make([]int, m.Parties.Len())
	for _, counts := range perConstituency {
		if winner := systems.FPTPWinner(counts); winner >= 0 {
			seats[winner]++
		}
	}
	return seats
}
