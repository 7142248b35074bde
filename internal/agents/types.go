// Package agents holds the voter population and party roster as columnar
// tables. Attributes live in parallel slices (one per column) so the engine
// can run whole-column numeric passes over millions of voters.
package agents

import "github.com/talgya/electoral-sim/internal/config"

// Education levels.
const (
	EducationNone = iota
	EducationPrimary
	EducationSecondary
	EducationGraduate
	EducationPostgrad
)

// VoterSet is the voter table. All slices have length N and are index-aligned:
// row i describes one voter.
type VoterSet struct {
	N int

	// Demographics.
	Constituency []int     // 0..C-1
	Age          []int     // Voting-age range
	Gender       []uint8   // 0 or 1
	Education    []int     // EducationNone..EducationPostgrad
	Income       []float64 // Percentile 0-100
	Religion     []int     // Category 0-5

	// Political identity.
	PartyID7  []int     // 7-point scale, -3..+3
	IdeologyX []float64 // Economic axis, [-1, 1]
	IdeologyY []float64 // Social axis, [-1, 1]

	// Knowledge and behavior.
	Knowledge             []float64 // 0-100
	MisinfoSusceptibility []float64 // 0-1
	AffectivePolarization []float64 // 0-1
	EconomicPerception    []float64 // 0=pocketbook, 1=sociotropic
	TurnoutProb           []float64 // [0.1, 0.95]
	Zealot                []bool    // Opinion immutable under dynamics
}

// PartySet is the party table. Party index is stable for a model run and is
// the join key for every downstream vote and seat vector.
type PartySet struct {
	Names     []string
	PositionX []float64
	PositionY []float64
	Valence   []float64
	Incumbent []bool
	NOTA      []bool
}

// Len returns the number of parties, including NOTA when present.
func (p *PartySet) Len() int {
	return len(p.Names)
}

// IncumbentMask returns the incumbency flags as a reusable mask.
func (p *PartySet) IncumbentMask() []bool {
	return p.Incumbent
}

// Index returns the index of the named party, or -1.
func (p *PartySet) Index(name string) int {
	for i, n := range p.Names {
		if n == name {
			return i
		}
	}
	return -1
}

// NewPartySet builds the party table from configuration. With includeNOTA a
// zero-valence "none of the above" pseudo-party is appended last.
func NewPartySet(parties []config.PartyConfig, includeNOTA bool) *PartySet {
	n := len(parties)
	if includeNOTA {
		n++
	}
	p := &PartySet{
		Names:     make([]string, 0, n),
		PositionX: make([]float64, 0, n),
		PositionY: make([]float64, 0, n),
		Valence:   make([]float64, 0, n),
		Incumbent: make([]bool, 0, n),
		NOTA:      make([]bool, 0, n),
	}
	for _, pc := range parties {
		p.Names = append(p.Names, pc.Name)
		p.PositionX = append(p.PositionX, pc.PositionX)
		p.PositionY = append(p.PositionY, pc.PositionY)
		p.Valence = append(p.Valence, pc.Valence)
		p.Incumbent = append(p.Incumbent, pc.Incumbent)
		p.NOTA = append(p.NOTA, false)
	}
	if includeNOTA {
		p.Names = append(p.Names, "NOTA")
		p.PositionX = append(p.PositionX, 0)
		p.PositionY = append(p.PositionY, 0)
		p.Valence = append(p.Valence, 0)
		p.Incumbent = append(p.Incumbent, false)
		p.NOTA = append(p.NOTA, true)
	}
	return p
}
