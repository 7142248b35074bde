package behavior

import (
	"math"
	"testing"

	"github.com/talgya/electoral-sim/internal/agents"
	"github.com/talgya/electoral-sim/internal/config"
)

// twoVoterFixture builds a 2-voter, 2-party population with hand-set
// positions so contributions can be checked against closed forms.
func twoVoterFixture() (*agents.VoterSet, *agents.PartySet) {
	v := &agents.VoterSet{
		N:                  2,
		IdeologyX:          []float64{0, 0.5},
		IdeologyY:          []float64{0, 0},
		EconomicPerception: []float64{1.0, 0.0}, // Pure sociotropic, pure pocketbook
	}
	p := agents.NewPartySet([]config.PartyConfig{
		{Name: "Left", PositionX: -0.5, Valence: 40, Incumbent: true},
		{Name: "Right", PositionX: 0.5, Valence: 60},
	}, false)
	return v, p
}

func TestProximity(t *testing.T) {
	v, p := twoVoterFixture()
	dst := NewMatrix(2, 2)
	Proximity{}.Contribute(v, p, &Context{}, dst)

	// Voter 0 at origin: distance 0.5 to each party.
	if math.Abs(dst.At(0, 0)+0.5) > 1e-12 || math.Abs(dst.At(0, 1)+0.5) > 1e-12 {
		t.Errorf("voter 0 proximity = %v %v, want -0.5 -0.5", dst.At(0, 0), dst.At(0, 1))
	}
	// Voter 1 at (0.5, 0): distance 1.0 and 0.0.
	if math.Abs(dst.At(1, 0)+1.0) > 1e-12 || math.Abs(dst.At(1, 1)) > 1e-12 {
		t.Errorf("voter 1 proximity = %v %v, want -1 0", dst.At(1, 0), dst.At(1, 1))
	}
}

func TestValenceBroadcast(t *testing.T) {
	v, p := twoVoterFixture()
	dst := NewMatrix(2, 2)
	Valence{}.Contribute(v, p, &Context{}, dst)

	for i := 0; i < 2; i++ {
		if dst.At(i, 0) != 40 || dst.At(i, 1) != 60 {
			t.Errorf("voter %d valence = %v %v, want 40 60", i, dst.At(i, 0), dst.At(i, 1))
		}
	}
}

func TestRetrospectiveIncumbentOnly(t *testing.T) {
	v, p := twoVoterFixture()
	dst := NewMatrix(2, 2)
	Retrospective{}.Contribute(v, p, &Context{EconomicGrowth: 2.0}, dst)

	if dst.At(0, 0) != 2.0 {
		t.Errorf("incumbent contribution = %v, want 2", dst.At(0, 0))
	}
	if dst.At(0, 1) != 0 {
		t.Errorf("non-incumbent contribution = %v, want 0", dst.At(0, 1))
	}
}

func TestSociotropicPocketbookBlend(t *testing.T) {
	v, p := twoVoterFixture()
	dst := NewMatrix(2, 2)
	ctx := &Context{
		EconomicGrowth:       1.0,
		PersonalIncomeChange: []float64{-4.0, -4.0},
	}
	SociotropicPocketbook{}.Contribute(v, p, ctx, dst)

	// Voter 0 is fully sociotropic: sees national growth +1 on the incumbent.
	if dst.At(0, 0) != 1.0 {
		t.Errorf("sociotropic voter contribution = %v, want 1", dst.At(0, 0))
	}
	// Voter 1 is fully pocketbook: sees personal change -4.
	if dst.At(1, 0) != -4.0 {
		t.Errorf("pocketbook voter contribution = %v, want -4", dst.At(1, 0))
	}
	// Non-incumbent columns stay zero.
	if dst.At(0, 1) != 0 || dst.At(1, 1) != 0 {
		t.Error("non-incumbent column received economic contribution")
	}
}

func TestStrategicPenalizesNonViable(t *testing.T) {
	v, p := twoVoterFixture()
	dst := NewMatrix(2, 2)
	ctx := &Context{Viability: []float64{0.5, 0.01}}
	Strategic{Sensitivity: 1.0}.Contribute(v, p, ctx, dst)

	if dst.At(0, 1) >= dst.At(0, 0) {
		t.Errorf("low-viability party not penalized: %v vs %v", dst.At(0, 1), dst.At(0, 0))
	}
	// Broadcast: both voters see the same penalties.
	if dst.At(0, 0) != dst.At(1, 0) || dst.At(0, 1) != dst.At(1, 1) {
		t.Error("strategic penalty differs across voters")
	}
}

func TestWastedVoteThreshold(t *testing.T) {
	v, p := twoVoterFixture()
	dst := NewMatrix(2, 2)
	ctx := &Context{Viability: []float64{0.40, 0.04}}
	WastedVote{Threshold: 0.05, Penalty: 2.0}.Contribute(v, p, ctx, dst)

	if dst.At(0, 0) != 0 {
		t.Errorf("viable party penalized: %v", dst.At(0, 0))
	}
	if dst.At(0, 1) != -2.0 {
		t.Errorf("non-viable party penalty = %v, want -2", dst.At(0, 1))
	}
}

func TestEngineWeightedSum(t *testing.T) {
	v, p := twoVoterFixture()
	e := NewEngine()
	e.AddModel(Proximity{}, 2.0)
	e.AddModel(Valence{}, 0.1)

	got := e.Compute(v, p, nil)

	// Voter 0, party 0: 2*(-0.5) + 0.1*40 = 3.0.
	if math.Abs(got.At(0, 0)-3.0) > 1e-12 {
		t.Errorf("combined utility = %v, want 3", got.At(0, 0))
	}
	// Voter 0, party 1: 2*(-0.5) + 0.1*60 = 5.0.
	if math.Abs(got.At(0, 1)-5.0) > 1e-12 {
		t.Errorf("combined utility = %v, want 5", got.At(0, 1))
	}
}

func TestEnginePure(t *testing.T) {
	v, p := twoVoterFixture()
	e := DefaultEngine(false)
	ctx := &Context{EconomicGrowth: 1.5}

	a := e.Compute(v, p, ctx)
	b := e.Compute(v, p, ctx)
	for i := range a.Data {
		if a.Data[i] != b.Data[i] {
			t.Fatal("Compute is not deterministic for identical inputs")
		}
	}
}
