// Package systems implements seat-allocation algorithms and alternative
// (ranked-ballot) voting systems.
package systems

import (
	"fmt"
	"sort"
)

// AllocationFunc converts a vote-count vector and a seat total into a
// seat-count vector of the same length, summing to nSeats whenever at least
// one party has nonzero votes.
type AllocationFunc func(votes []int, nSeats int) []int

// AllocationMethods maps configuration tags to allocation functions.
var AllocationMethods = map[string]AllocationFunc{
	"dhondt":       DHondt,
	"sainte_lague": SainteLague,
	"hare":         HareQuota,
	"droop":        DroopQuota,
}

// Allocate applies the threshold filter and the named allocation method.
// Parties with vote share below threshold receive zero seats and are removed
// from the method's input; their votes still count toward share metrics,
// which are computed elsewhere from the unfiltered vote vector.
func Allocate(method string, votes []int, nSeats int, threshold float64) ([]int, error) {
	fn, ok := AllocationMethods[method]
	if !ok {
		return nil, fmt.Errorf("unknown allocation method %q", method)
	}
	filtered := ApplyThreshold(votes, threshold)
	return fn(filtered, nSeats), nil
}

// ApplyThreshold zeroes out the votes of parties whose national vote share
// falls below threshold. The returned slice is a copy.
func ApplyThreshold(votes []int, threshold float64) []int {
	out := make([]int, len(votes))
	copy(out, votes)
	if threshold <= 0 {
		return out
	}
	total := 0
	for _, v := range votes {
		total += v
	}
	if total == 0 {
		return out
	}
	for i, v := range votes {
		if float64(v)/float64(total) < threshold {
			out[i] = 0
		}
	}
	return out
}

// DHondt allocates seats by the highest-averages method with divisors
// 1, 2, 3, ... Each seat goes to the party maximizing votes/(seats+1).
// Ties favor the lowest party index.
func DHondt(votes []int, nSeats int) []int {
	return highestAverages(votes, nSeats, func(seats int) int64 {
		return int64(seats) + 1
	})
}

// SainteLague allocates seats by the highest-averages method with divisors
// 1, 3, 5, ... Ties favor the lowest party index.
func SainteLague(votes []int, nSeats int) []int {
	return highestAverages(votes, nSeats, func(seats int) int64 {
		return 2*int64(seats) + 1
	})
}

// highestAverages runs the sequential divisor scheme. Quotients are compared
// by cross-multiplication so tie-breaking is exact, not float-dependent.
func highestAverages(votes []int, nSeats int, divisor func(seats int) int64) []int {
	seats := make([]int, len(votes))
	if totalVotes(votes) == 0 {
		return seats
	}
	for s := 0; s < nSeats; s++ {
		best := -1
		var bestVotes, bestDiv int64
		for i, v := range votes {
			if v == 0 {
				continue
			}
			d := divisor(seats[i])
			// votes[i]/d > bestVotes/bestDiv  <=>  votes[i]*bestDiv > bestVotes*d
			if best == -1 || int64(v)*bestDiv > bestVotes*d {
				best = i
				bestVotes = int64(v)
				bestDiv = d
			}
		}
		if best == -1 {
			break
		}
		seats[best]++
	}
	return seats
}

// HareQuota allocates seats by largest remainder with quota total/nSeats.
// Remainder ties favor the lowest party index.
func HareQuota(votes []int, nSeats int) []int {
	seats := make([]int, len(votes))
	total := totalVotes(votes)
	if total == 0 || nSeats <= 0 {
		return seats
	}
	// floor(votes/quota) with quota = total/nSeats, computed exactly as
	// floor(votes*nSeats/total).
	remainders := make([]int64, len(votes))
	allocated := 0
	for i, v := range votes {
		n := int64(v) * int64(nSeats)
		seats[i] = int(n / total)
		remainders[i] = n % total
		allocated += seats[i]
	}
	distributeRemainders(seats, remainders, nSeats-allocated)
	return seats
}

// DroopQuota allocates seats by largest remainder with quota
// floor(total/(nSeats+1)) + 1. Remainder ties favor the lowest party index.
func DroopQuota(votes []int, nSeats int) []int {
	seats := make([]int, len(votes))
	total := totalVotes(votes)
	if total == 0 || nSeats <= 0 {
		return seats
	}
	quota := total/int64(nSeats+1) + 1
	remainders := make([]int64, len(votes))
	allocated := 0
	for i, v := range votes {
		seats[i] = int(int64(v) / quota)
		remainders[i] = int64(v) % quota
		allocated += seats[i]
	}
	distributeRemainders(seats, remainders, nSeats-allocated)
	return seats
}

// distributeRemainders awards the leftover seats one each to the parties with
// the largest remainders, lowest index first on ties.
func distributeRemainders(seats []int, remainders []int64, leftover int) {
	if leftover <= 0 {
		return
	}
	order := make([]int, len(seats))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})
	if leftover > len(order) {
		leftover = len(order)
	}
	for _, i := range order[:leftover] {
		seats[i]++
	}
}

func totalVotes(votes []int) int64 {
	var total int64
	for _, v := range votes {
		total += int64(v)
	}
	return total
}

// FPTPWinner returns the index of the party with the most votes,
// lowest index on ties. Returns -1 for an empty or all-zero vector.
func FPTPWinner(votes []int) int {
	best := -1
	bestVotes := 0
	for i, v := range votes {
		if v > bestVotes {
			best = i
			bestVotes = v
		}
	}
	return best
}
