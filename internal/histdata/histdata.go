// Package histdata converts historical election results into simulation
// inputs: party viability weights, incumbency lists, and per-constituency
// vote-share maps.
package histdata

import (
	"fmt"
	"sort"
)

// Row is one historical result record. Seats and Year may be zero when the
// source dataset lacks them.
type Row struct {
	Constituency string `db:"constituency"`
	Party        string `db:"party"`
	Votes        int    `db:"votes"`
	Seats        int    `db:"seats"`
	Year         int    `db:"year"`
}

// Dataset wraps historical rows with the derivation queries the behavior
// models consume.
type Dataset struct {
	rows []Row
}

// New builds a dataset from rows. Rows with negative votes are rejected.
func New(rows []Row) (*Dataset, error) {
	for i, r := range rows {
		if r.Votes < 0 {
			return nil, fmt.Errorf("row %d: negative votes %d", i, r.Votes)
		}
		if r.Party == "" {
			return nil, fmt.Errorf("row %d: empty party name", i)
		}
	}
	return &Dataset{rows: rows}, nil
}

// filtered returns rows for the given year, or all rows when year is zero.
func (d *Dataset) filtered(year int) []Row {
	if year == 0 {
		return d.rows
	}
	var out []Row
	for _, r := range d.rows {
		if r.Year == year {
			out = append(out, r)
		}
	}
	return out
}

// ViabilityWeights returns each party's national vote share. Year 0 uses
// all rows.
func (d *Dataset) ViabilityWeights(year int) map[string]float64 {
	partyVotes := make(map[string]int)
	total := 0
	for _, r := range d.filtered(year) {
		partyVotes[r.Party] += r.Votes
		total += r.Votes
	}
	weights := make(map[string]float64, len(partyVotes))
	if total == 0 {
		return weights
	}
	for party, votes := range partyVotes {
		weights[party] = float64(votes) / float64(total)
	}
	return weights
}

// ViabilityVector maps the weights onto a party-index-ordered vector.
// Parties absent from the historical data get zero viability.
func (d *Dataset) ViabilityVector(partyNames []string, year int) []float64 {
	weights := d.ViabilityWeights(year)
	out := make([]float64, len(partyNames))
	for i, name := range partyNames {
		out[i] = weights[name]
	}
	return out
}

// Incumbents lists parties that won seats, sorted by name. When the dataset
// has no seat column, the plurality winner of each constituency stands in.
func (d *Dataset) Incumbents(year int) []string {
	rows := d.filtered(year)

	hasSeats := false
	for _, r := range rows {
		if r.Seats > 0 {
			hasSeats = true
			break
		}
	}

	set := make(map[string]bool)
	if hasSeats {
		for _, r := range rows {
			if r.Seats > 0 {
				set[r.Party] = true
			}
		}
	} else {
		// Plurality winner per constituency.
		type leader struct {
			party string
			votes int
		}
		leaders := make(map[string]leader)
		for _, r := range rows {
			if best, ok := leaders[r.Constituency]; !ok || r.Votes > best.votes {
				leaders[r.Constituency] = leader{party: r.Party, votes: r.Votes}
			}
		}
		for _, l := range leaders {
			set[l.party] = true
		}
	}

	out := make([]string, 0, len(set))
	for party := range set {
		out = append(out, party)
	}
	sort.Strings(out)
	return out
}

// ConstituencyShares returns per-constituency party vote-share maps.
func (d *Dataset) ConstituencyShares(year int) map[string]map[string]float64 {
	totals := make(map[string]int)
	for _, r := range d.filtered(year) {
		totals[r.Constituency] += r.Votes
	}

	out := make(map[string]map[string]float64, len(totals))
	for _, r := range d.filtered(year) {
		total := totals[r.Constituency]
		if total == 0 {
			continue
		}
		if out[r.Constituency] == nil {
			out[r.Constituency] = make(map[string]float64)
		}
		out[r.Constituency][r.Party] += float64(r.Votes) / float64(total)
	}
	return out
}
