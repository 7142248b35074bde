package engine

import "github.com/talgya/electoral-sim/internal/metrics"

// Result is the value object for one election run. Vote and seat vectors are
// keyed by the stable party index.
type Result struct {
	System      string  `json:"system"`
	Votes       []int   `json:"votes"`
	Seats       []int   `json:"seats"`
	BallotsCast int     `json:"ballots_cast"`
	Turnout     float64 `json:"turnout"`

	Gallagher      float64 `json:"gallagher"`
	LoosemoreHanby float64 `json:"loosemore_hanby"`
	ENPVotes       float64 `json:"enp_votes"`
	ENPSeats       float64 `json:"enp_seats"`
}

func newResult(system string, votes, seats []int, ballots, eligible int) Result {
	voteShares := metrics.VoteShares(votes)
	seatShares := metrics.SeatShares(seats)
	return Result{
		System:         system,
		Votes:          votes,
		Seats:          seats,
		BallotsCast:    ballots,
		Turnout:        metrics.TurnoutRate(ballots, eligible),
		Gallagher:      metrics.Gallagher(voteShares, seatShares),
		LoosemoreHanby: metrics.LoosemoreHanby(voteShares, seatShares),
		ENPVotes:       metrics.EffectiveNumberOfParties(voteShares),
		ENPSeats:       metrics.EffectiveNumberOfParties(seatShares),
	}
}

// TotalSeats returns the allocated seat total.
func (r Result) TotalSeats() int {
	total := 0
	for _, s := range r.Seats {
		total += s
	}
	return total
}
