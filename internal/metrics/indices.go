// Package metrics computes disproportionality and fragmentation indices
// from vote and seat share vectors.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// VoteShares converts a vote count vector into shares summing to 1.
// A zero-total vector yields all-zero shares.
func VoteShares(votes []int) []float64 {
	shares := make([]float64, len(votes))
	total := 0
	for _, v := range votes {
		total += v
	}
	if total == 0 {
		return shares
	}
	for i, v := range votes {
		shares[i] = float64(v) / float64(total)
	}
	return shares
}

// SeatShares converts a seat count vector into shares summing to 1.
func SeatShares(seats []int) []float64 {
	return VoteShares(seats)
}

// Gallagher computes the Gallagher (least squares) disproportionality index:
// sqrt(0.5 * sum((v_i - s_i)^2)). Vote and seat shares must be index-aligned
// and of equal length.
func Gallagher(voteShares, seatShares []float64) float64 {
	if len(voteShares) != len(seatShares) {
		panic("metrics: vote and seat share vectors differ in length")
	}
	sum := 0.0
	for i := range voteShares {
		d := voteShares[i] - seatShares[i]
		sum += d * d
	}
	return math.Sqrt(0.5 * sum)
}

// LoosemoreHanby computes the Loosemore-Hanby index:
// 0.5 * sum(|v_i - s_i|).
func LoosemoreHanby(voteShares, seatShares []float64) float64 {
	if len(voteShares) != len(seatShares) {
		panic("metrics: vote and seat share vectors differ in length")
	}
	sum := 0.0
	for i := range voteShares {
		sum += math.Abs(voteShares[i] - seatShares[i])
	}
	return 0.5 * sum
}

// EffectiveNumberOfParties computes the inverse Herfindahl measure
// 1 / sum(share_i^2). Returns 0 for an all-zero share vector.
func EffectiveNumberOfParties(shares []float64) float64 {
	hhi := HHI(shares)
	if hhi == 0 {
		return 0
	}
	return 1.0 / hhi
}

// HHI computes the Herfindahl-Hirschman concentration index sum(share_i^2).
func HHI(shares []float64) float64 {
	sum := 0.0
	for _, s := range shares {
		sum += s * s
	}
	return sum
}

// EfficiencyGap computes the two-party efficiency gap from per-district vote
// counts for parties A and B. Wasted votes are all losing-side votes plus
// winning-side votes beyond the majority needed; the gap is the difference in
// wasted votes over total votes. Positive values favor party A.
func EfficiencyGap(votesA, votesB []int) float64 {
	if len(votesA) != len(votesB) {
		panic("metrics: district vote vectors differ in length")
	}
	wastedA, wastedB, total := 0.0, 0.0, 0.0
	for i := range votesA {
		a, b := float64(votesA[i]), float64(votesB[i])
		districtTotal := a + b
		if districtTotal == 0 {
			continue
		}
		total += districtTotal
		needed := math.Floor(districtTotal/2) + 1
		if a > b {
			wastedA += a - needed
			wastedB += b
		} else {
			wastedB += b - needed
			wastedA += a
		}
	}
	if total == 0 {
		return 0
	}
	return (wastedB - wastedA) / total
}

// TurnoutRate returns ballots cast over eligible voters.
func TurnoutRate(ballotsCast, eligible int) float64 {
	if eligible == 0 {
		return 0
	}
	return float64(ballotsCast) / float64(eligible)
}

// SeatsVotesRatio returns the per-party advantage ratio seat_share/vote_share.
// Parties with zero vote share get a ratio of 0.
func SeatsVotesRatio(voteShares, seatShares []float64) []float64 {
	ratios := make([]float64, len(voteShares))
	for i := range voteShares {
		if voteShares[i] > 0 {
			ratios[i] = seatShares[i] / voteShares[i]
		}
	}
	return ratios
}

// NormalizeShares scales a share vector in place so it sums to 1.
// A zero vector is left untouched.
func NormalizeShares(shares []float64) {
	total := floats.Sum(shares)
	if total > 0 {
		floats.Scale(1/total, shares)
	}
}
