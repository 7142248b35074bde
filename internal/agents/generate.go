// Voter generation. Draws are seeded and column by column so identical
// seeds reproduce identical tables bit for bit.
package agents

import (
	"fmt"
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/talgya/electoral-sim/internal/config"
)

// Demographic weight tables.
var (
	educationWeights = []float64{0.15, 0.25, 0.30, 0.20, 0.10}
	religionWeights  = []float64{0.65, 0.14, 0.10, 0.05, 0.03, 0.03}
)

// Regional offset scale: how strongly a constituency's political geography
// shifts its voters' ideology.
const regionalOffsetScale = 0.15

// GeneratePopulation creates the voter table and party roster from a seeded
// random stream. The draw order is fixed (column by column, in declaration
// order) so a given seed and parameter set always yields the same tables.
func GeneratePopulation(cfg config.Config) (*VoterSet, *PartySet, error) {
	if cfg.NVoters <= 0 {
		return nil, nil, fmt.Errorf("n_voters must be positive, got %d", cfg.NVoters)
	}
	if cfg.NConstituencies <= 0 {
		return nil, nil, fmt.Errorf("n_constituencies must be positive, got %d", cfg.NConstituencies)
	}

	parties := NewPartySet(cfg.Parties, cfg.IncludeNOTA)
	n := cfg.NVoters

	rng := rand.New(rand.NewSource(uint64(cfg.Seed)))
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}
	logNormal := distuv.LogNormal{Mu: 3.5, Sigma: 0.8, Src: rng}
	betaKnowledge := distuv.Beta{Alpha: 2, Beta: 5, Src: rng} // Skewed low
	betaMid := distuv.Beta{Alpha: 2, Beta: 3, Src: rng}
	betaTurnout := distuv.Beta{Alpha: 5, Beta: 2, Src: rng}   // Skewed high

	v := &VoterSet{
		N:                     n,
		Constituency:          make([]int, n),
		Age:                   make([]int, n),
		Gender:                make([]uint8, n),
		Education:             make([]int, n),
		Income:                make([]float64, n),
		Religion:              make([]int, n),
		PartyID7:              make([]int, n),
		IdeologyX:             make([]float64, n),
		IdeologyY:             make([]float64, n),
		Knowledge:             make([]float64, n),
		MisinfoSusceptibility: make([]float64, n),
		AffectivePolarization: make([]float64, n),
		EconomicPerception:    make([]float64, n),
		TurnoutProb:           make([]float64, n),
		Zealot:                make([]bool, n),
	}

	for i := range v.Constituency {
		v.Constituency[i] = rng.Intn(cfg.NConstituencies)
	}
	for i := range v.Age {
		v.Age[i] = 18 + rng.Intn(72) // 18..89
	}
	for i := range v.Gender {
		v.Gender[i] = uint8(rng.Intn(2))
	}
	for i := range v.Education {
		v.Education[i] = categorical(rng, educationWeights)
	}
	for i := range v.Income {
		v.Income[i] = clip(logNormal.Rand(), 0, 100)
	}
	for i := range v.Religion {
		v.Religion[i] = categorical(rng, religionWeights)
	}
	for i := range v.PartyID7 {
		v.PartyID7[i] = int(clip(math.Round(normal.Rand()*1.2), -3, 3))
	}

	// Ideology: base normal draws shifted by demographics and by the
	// constituency's regional offset, then clipped to the axis range.
	// The regional offsets come from a smooth noise field so neighboring
	// constituency indices get correlated political geography.
	offsetX, offsetY := regionalOffsets(cfg.Seed, cfg.NConstituencies)
	for i := 0; i < n; i++ {
		base := normal.Rand() * 0.3
		x := base + 0.005*(v.Income[i]-50) + 0.003*float64(v.Age[i]-50) + offsetX[v.Constituency[i]]
		v.IdeologyX[i] = clip(x, -1, 1)
	}
	for i := 0; i < n; i++ {
		base := normal.Rand() * 0.3
		y := base - 0.02*float64(v.Education[i]-2) + 0.005*float64(v.Age[i]-50) + offsetY[v.Constituency[i]]
		v.IdeologyY[i] = clip(y, -1, 1)
	}

	for i := range v.Knowledge {
		v.Knowledge[i] = betaKnowledge.Rand() * 100
	}
	for i := range v.MisinfoSusceptibility {
		s := betaMid.Rand() - 0.1*float64(v.Education[i])/4 - 0.1*v.Knowledge[i]/100
		v.MisinfoSusceptibility[i] = clip(s, 0.05, 0.95)
	}
	for i := range v.AffectivePolarization {
		strength := math.Abs(float64(v.PartyID7[i])) / 3.0
		v.AffectivePolarization[i] = clip(betaKnowledge.Rand()+0.3*strength, 0, 1)
	}
	for i := range v.EconomicPerception {
		v.EconomicPerception[i] = clip(betaMid.Rand()+0.15*float64(v.Education[i])/4, 0, 1)
	}
	for i := range v.TurnoutProb {
		p := betaTurnout.Rand() +
			0.02*float64(v.Education[i]) +
			0.002*math.Min(float64(v.Age[i]-18), 50) +
			0.002*v.Knowledge[i]/100
		v.TurnoutProb[i] = clip(p, 0.1, 0.95)
	}
	if cfg.ZealotFraction > 0 {
		for i := range v.Zealot {
			v.Zealot[i] = rng.Float64() < cfg.ZealotFraction
		}
	}

	return v, parties, nil
}

// regionalOffsets evaluates a seeded noise field once per constituency,
// producing small correlated shifts on each ideology axis.
func regionalOffsets(seed int64, nConstituencies int) (x, y []float64) {
	noiseX := opensimplex.NewNormalized(seed + 1)
	noiseY := opensimplex.NewNormalized(seed + 2)
	x = make([]float64, nConstituencies)
	y = make([]float64, nConstituencies)
	for c := 0; c < nConstituencies; c++ {
		t := float64(c) * 0.13
		x[c] = (noiseX.Eval2(t, 0) - 0.5) * 2 * regionalOffsetScale
		y[c] = (noiseY.Eval2(t, 0) - 0.5) * 2 * regionalOffsetScale
	}
	return x, y
}

// categorical draws an index from the cumulative weight table.
func categorical(rng *rand.Rand, weights []float64) int {
	u := rng.Float64()
	cum := 0.0
	for i, w := range weights {
		cum += w
		if u < cum {
			return i
		}
	}
	return len(weights) - 1
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
