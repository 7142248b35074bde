package histdata

import (
	"math"
	"reflect"
	"testing"
)

func sampleRows() []Row {
	return []Row{
		{Constituency: "North", Party: "Red", Votes: 600, Year: 2019},
		{Constituency: "North", Party: "Blue", Votes: 400, Year: 2019},
		{Constituency: "South", Party: "Red", Votes: 300, Year: 2019},
		{Constituency: "South", Party: "Blue", Votes: 700, Year: 2019},
		{Constituency: "North", Party: "Red", Votes: 100, Year: 2024},
	}
}

func TestNewRejectsBadRows(t *testing.T) {
	if _, err := New([]Row{{Party: "X", Votes: -1}}); err == nil {
		t.Error("expected error for negative votes")
	}
	if _, err := New([]Row{{Party: "", Votes: 5}}); err == nil {
		t.Error("expected error for empty party")
	}
}

func TestViabilityWeights(t *testing.T) {
	d, err := New(sampleRows())
	if err != nil {
		t.Fatal(err)
	}

	weights := d.ViabilityWeights(2019)
	if math.Abs(weights["Red"]-0.45) > 1e-12 {
		t.Errorf("Red weight = %v, want 0.45", weights["Red"])
	}
	if math.Abs(weights["Blue"]-0.55) > 1e-12 {
		t.Errorf("Blue weight = %v, want 0.55", weights["Blue"])
	}

	// Year 0 aggregates everything.
	all := d.ViabilityWeights(0)
	if math.Abs(all["Red"]+all["Blue"]-1.0) > 1e-12 {
		t.Errorf("all-year weights sum to %v", all["Red"]+all["Blue"])
	}
}

func TestViabilityVector(t *testing.T) {
	d, _ := New(sampleRows())
	vec := d.ViabilityVector([]string{"Blue", "Red", "Green"}, 2019)
	if math.Abs(vec[0]-0.55) > 1e-12 || math.Abs(vec[1]-0.45) > 1e-12 {
		t.Errorf("vector = %v", vec)
	}
	if vec[2] != 0 {
		t.Errorf("unknown party viability = %v, want 0", vec[2])
	}
}

func TestIncumbentsFromPlurality(t *testing.T) {
	// No seat data: plurality winners per constituency stand in.
	d, _ := New(sampleRows())
	got := d.Incumbents(2019)
	want := []string{"Blue", "Red"} // Red wins North, Blue wins South.
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Incumbents = %v, want %v", got, want)
	}
}

func TestIncumbentsFromSeats(t *testing.T) {
	rows := []Row{
		{Constituency: "A", Party: "Red", Votes: 100, Seats: 1},
		{Constituency: "A", Party: "Blue", Votes: 400, Seats: 0},
	}
	d, _ := New(rows)
	got := d.Incumbents(0)
	if !reflect.DeepEqual(got, []string{"Red"}) {
		t.Errorf("Incumbents = %v, want [Red]", got)
	}
}

func TestConstituencyShares(t *testing.T) {
	d, _ := New(sampleRows())
	shares := d.ConstituencyShares(2019)

	north := shares["North"]
	if math.Abs(north["Red"]-0.6) > 1e-12 || math.Abs(north["Blue"]-0.4) > 1e-12 {
		t.Errorf("North shares = %v", north)
	}
	south := shares["South"]
	if math.Abs(south["Blue"]-0.7) > 1e-12 {
		t.Errorf("South shares = %v", south)
	}
}
