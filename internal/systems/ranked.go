// Ranked-ballot systems: IRV, STV, Condorcet, and approval voting.
package systems

import "sort"

// GenerateRankings converts a voter-by-candidate utility matrix into full
// strict rankings: each voter's candidates sorted by descending utility.
// Utility ties favor the lower candidate index.
func GenerateRankings(utilities [][]float64) [][]int {
	rankings := make([][]int, len(utilities))
	for v, row := range utilities {
		order := make([]int, len(row))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return row[order[a]] > row[order[b]]
		})
		rankings[v] = order
	}
	return rankings
}

// IRVRound records one elimination round: first-preference counts among
// remaining candidates and the candidate eliminated (or -1 on the final round).
type IRVRound struct {
	Counts     []int
	Eliminated int
}

// IRVResult holds the winner and the round-by-round elimination sequence.
type IRVResult struct {
	Winner int
	Rounds []IRVRound
}

// IRV runs instant-runoff voting over full rankings of nCandidates.
// Candidates with the fewest first preferences are eliminated (lowest index
// on ties) until one holds a strict majority of valid ballots or one remains.
func IRV(rankings [][]int, nCandidates int) IRVResult {
	eliminated := make([]bool, nCandidates)
	remaining := nCandidates
	var rounds []IRVRound

	for {
		counts := make([]int, nCandidates)
		valid := 0
		for _, ballot := range rankings {
			for _, c := range ballot {
				if !eliminated[c] {
					counts[c]++
					valid++
					break
				}
			}
		}

		// Majority check.
		for c := 0; c < nCandidates; c++ {
			if !eliminated[c] && counts[c]*2 > valid {
				rounds = append(rounds, IRVRound{Counts: counts, Eliminated: -1})
				return IRVResult{Winner: c, Rounds: rounds}
			}
		}

		if remaining <= 1 {
			winner := -1
			for c := 0; c < nCandidates; c++ {
				if !eliminated[c] {
					winner = c
					break
				}
			}
			rounds = append(rounds, IRVRound{Counts: counts, Eliminated: -1})
			return IRVResult{Winner: winner, Rounds: rounds}
		}

		// Eliminate the candidate with fewest first preferences.
		loser := -1
		for c := 0; c < nCandidates; c++ {
			if eliminated[c] {
				continue
			}
			if loser == -1 || counts[c] < counts[loser] {
				loser = c
			}
		}
		eliminated[loser] = true
		remaining--
		rounds = append(rounds, IRVRound{Counts: counts, Eliminated: loser})
	}
}

// STVResult holds the elected candidates in election order.
type STVResult struct {
	Elected []int
}

// STV runs single transferable vote for nSeats using the Droop quota over
// valid first preferences. Surplus votes transfer at fractional weight
// surplus/received; ballots with no remaining preference are exhausted.
// When remaining candidates equal remaining seats, all are elected.
func STV(rankings [][]int, nCandidates, nSeats int) STVResult {
	if nSeats >= nCandidates {
		elected := make([]int, nCandidates)
		for i := range elected {
			elected[i] = i
		}
		return STVResult{Elected: elected}
	}

	quota := float64(len(rankings)/(nSeats+1) + 1)
	weights := make([]float64, len(rankings))
	for i := range weights {
		weights[i] = 1.0
	}

	elected := make([]bool, nCandidates)
	eliminated := make([]bool, nCandidates)
	var result []int
	remaining := nCandidates

	tally := func() []float64 {
		counts := make([]float64, nCandidates)
		for b, ballot := range rankings {
			if weights[b] <= 0 {
				continue
			}
			for _, c := range ballot {
				if !elected[c] && !eliminated[c] {
					counts[c] += weights[b]
					break
				}
			}
		}
		return counts
	}

	// transferSurplus reduces the weight of every ballot currently counting
	// toward candidate c by the retention ratio.
	transferSurplus := func(c int, received float64) {
		ratio := (received - quota) / received
		for b, ballot := range rankings {
			if weights[b] <= 0 {
				continue
			}
			for _, cand := range ballot {
				if cand == c {
					weights[b] *= ratio
					break
				}
				if !elected[cand] && !eliminated[cand] {
					break // Ballot counts toward someone else.
				}
			}
		}
	}

	for len(result) < nSeats {
		if remaining == nSeats-len(result) {
			// Remaining candidates fill the remaining seats by default.
			for c := 0; c < nCandidates; c++ {
				if !elected[c] && !eliminated[c] {
					elected[c] = true
					result = append(result, c)
				}
			}
			break
		}

		counts := tally()

		// Elect the highest count at or above quota, if any.
		winner := -1
		for c := 0; c < nCandidates; c++ {
			if elected[c] || eliminated[c] || counts[c] < quota {
				continue
			}
			if winner == -1 || counts[c] > counts[winner] {
				winner = c
			}
		}
		if winner != -1 {
			elected[winner] = true
			remaining--
			result = append(result, winner)
			// At exactly quota the retention ratio is zero and the ballots
			// are fully consumed.
			transferSurplus(winner, counts[winner])
			continue
		}

		// Nobody reaches quota: eliminate the lowest count (lowest index on ties).
		loser := -1
		for c := 0; c < nCandidates; c++ {
			if elected[c] || eliminated[c] {
				continue
			}
			if loser == -1 || counts[c] < counts[loser] {
				loser = c
			}
		}
		if loser == -1 {
			break
		}
		eliminated[loser] = true
		remaining--
	}

	return STVResult{Elected: result}
}

// PairwiseMatrix builds the Condorcet preference matrix: entry [i][j] counts
// ballots ranking candidate i above candidate j.
func PairwiseMatrix(rankings [][]int, nCandidates int) [][]int {
	wins := make([][]int, nCandidates)
	for i := range wins {
		wins[i] = make([]int, nCandidates)
	}
	for _, ballot := range rankings {
		for ahead, i := range ballot {
			for _, j := range ballot[ahead+1:] {
				wins[i][j]++
			}
		}
	}
	return wins
}

// CondorcetWinner returns the candidate who beats every other candidate
// pairwise, or (-1, false) when no Condorcet winner exists.
func CondorcetWinner(rankings [][]int, nCandidates int) (int, bool) {
	wins := PairwiseMatrix(rankings, nCandidates)
	for i := 0; i < nCandidates; i++ {
		beatsAll := true
		for j := 0; j < nCandidates; j++ {
			if i == j {
				continue
			}
			if wins[i][j] <= wins[j][i] {
				beatsAll = false
				break
			}
		}
		if beatsAll {
			return i, true
		}
	}
	return -1, false
}

// ApprovalVoting counts approvals from a utility matrix. In relative mode a
// voter approves every candidate at or above their own mean utility;
// otherwise candidates at or above the absolute threshold. Returns approval
// counts and the winner (lowest index on ties).
func ApprovalVoting(utilities [][]float64, threshold float64, relative bool) (counts []int, winner int) {
	if len(utilities) == 0 {
		return nil, -1
	}
	nCandidates := len(utilities[0])
	counts = make([]int, nCandidates)
	for _, row := range utilities {
		cutoff := threshold
		if relative {
			sum := 0.0
			for _, u := range row {
				sum += u
			}
			cutoff = sum / float64(len(row))
		}
		for c, u := range row {
			if u >= cutoff {
				counts[c]++
			}
		}
	}
	winner = FPTPWinner(counts)
	return counts, winner
}
