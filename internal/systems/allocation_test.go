package systems

import (
	"reflect"
	"testing"
)

var benchmarkVotes = []int{100000, 80000, 30000, 20000, 10000}

func TestDHondtGolden(t *testing.T) {
	got := DHondt(benchmarkVotes, 10)
	want := []int{5, 4, 1, 0, 0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DHondt(%v, 10) = %v, want %v", benchmarkVotes, got, want)
	}
}

func TestSainteLagueGolden(t *testing.T) {
	got := SainteLague(benchmarkVotes, 10)
	want := []int{4, 4, 1, 1, 0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SainteLague(%v, 10) = %v, want %v", benchmarkVotes, got, want)
	}
}

func TestSainteLagueFairerThanDHondt(t *testing.T) {
	dh := DHondt(benchmarkVotes, 10)
	sl := SainteLague(benchmarkVotes, 10)
	if sl[0] >= dh[0] {
		t.Errorf("Sainte-Laguë gave the largest party %d seats, D'Hondt %d; expected fewer", sl[0], dh[0])
	}
	smallDH := dh[3] + dh[4]
	smallSL := sl[3] + sl[4]
	if smallSL <= smallDH {
		t.Errorf("Sainte-Laguë gave small parties %d seats, D'Hondt %d; expected more", smallSL, smallDH)
	}
}

func TestQuotaMethods(t *testing.T) {
	tests := []struct {
		name string
		fn   AllocationFunc
		want []int
	}{
		// Hare: quota 24000, floors [4 3 1 0 0], remainder seats to the two
		// largest fractions (parties 3 and 4).
		{"hare", HareQuota, []int{4, 3, 1, 1, 1}},
		// Droop: quota 21819, floors [4 3 1 0 0], remainder seats to
		// parties 3 and 1.
		{"droop", DroopQuota, []int{4, 4, 1, 1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(benchmarkVotes, 10)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("%s(%v, 10) = %v, want %v", tt.name, benchmarkVotes, got, tt.want)
			}
		})
	}
}

func TestAllocationSeatTotals(t *testing.T) {
	cases := [][]int{
		{100, 50, 25},
		{1000, 1000, 1000, 1000, 1000},
		{982374, 1, 0, 44},
		{700},
	}
	for name, fn := range AllocationMethods {
		for _, votes := range cases {
			for _, nSeats := range []int{1, 5, 17} {
				seats := fn(votes, nSeats)
				sum := 0
				for _, s := range seats {
					if s < 0 {
						t.Fatalf("%s(%v, %d): negative seat count %v", name, votes, nSeats, seats)
					}
					sum += s
				}
				if sum != nSeats {
					t.Errorf("%s(%v, %d): seats sum to %d", name, votes, nSeats, sum)
				}
			}
		}
	}
}

func TestAllocationZeroVotes(t *testing.T) {
	for name, fn := range AllocationMethods {
		seats := fn([]int{0, 0, 0}, 10)
		if !reflect.DeepEqual(seats, []int{0, 0, 0}) {
			t.Errorf("%s on zero votes = %v, want all zeros", name, seats)
		}
	}
}

func TestAllocationTieBreakLowestIndex(t *testing.T) {
	// Equal votes, odd seat count: the extra seat must go to party 0.
	got := DHondt([]int{100, 100}, 3)
	want := []int{2, 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DHondt([100 100], 3) = %v, want %v", got, want)
	}

	got = SainteLague([]int{100, 100}, 3)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SainteLague([100 100], 3) = %v, want %v", got, want)
	}

	got = HareQuota([]int{100, 100, 100}, 4)
	want = []int{2, 1, 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("HareQuota([100 100 100], 4) = %v, want %v", got, want)
	}
}

func TestApplyThreshold(t *testing.T) {
	votes := []int{500, 460, 40} // Party 2 holds 4% of 1000.
	filtered := ApplyThreshold(votes, 0.05)
	if !reflect.DeepEqual(filtered, []int{500, 460, 0}) {
		t.Errorf("ApplyThreshold = %v", filtered)
	}
	// Original slice untouched.
	if votes[2] != 40 {
		t.Errorf("ApplyThreshold mutated its input: %v", votes)
	}
}

func TestAllocateThresholdZeroSeats(t *testing.T) {
	votes := []int{500, 460, 40}
	seats, err := Allocate("dhondt", votes, 10, 0.05)
	if err != nil {
		t.Fatal(err)
	}
	if seats[2] != 0 {
		t.Errorf("party under threshold received %d seats", seats[2])
	}
	sum := seats[0] + seats[1] + seats[2]
	if sum != 10 {
		t.Errorf("seats sum to %d, want 10", sum)
	}
}

func TestAllocateUnknownMethod(t *testing.T) {
	if _, err := Allocate("imperiali", []int{1}, 1, 0); err == nil {
		t.Error("expected error for unknown allocation method")
	}
}

func TestFPTPWinner(t *testing.T) {
	tests := []struct {
		votes []int
		want  int
	}{
		{[]int{10, 20, 15}, 1},
		{[]int{20, 20, 15}, 0}, // Tie favors lowest index.
		{[]int{0, 0, 0}, -1},
		{nil, -1},
	}
	for _, tt := range tests {
		if got := FPTPWinner(tt.votes); got != tt.want {
			t.Errorf("FPTPWinner(%v) = %d, want %d", tt.votes, got, tt.want)
		}
	}
}
