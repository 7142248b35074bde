package persistence

import (
	"path/filepath"
	"testing"

	"github.com/talgya/electoral-sim/internal/coalition"
	"github.com/talgya/electoral-sim/internal/engine"
	"github.com/talgya/electoral-sim/internal/histdata"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveLoadRun(t *testing.T) {
	db := openTestDB(t)

	result := engine.Result{
		System:    "FPTP",
		Votes:     []int{500, 300, 200},
		Seats:     []int{7, 2, 1},
		Turnout:   0.72,
		Gallagher: 12.5,
		ENPVotes:  2.6,
		ENPSeats:  1.8,
	}
	gov := &coalition.Government{
		Success: true,
		Parties: []int{0},
		Names:   []string{"Alpha"},
		Seats:   7,
	}

	id, err := db.SaveRun(42, result, []string{"Alpha", "Beta", "Gamma"}, gov)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if id == "" {
		t.Fatal("empty run id")
	}

	got, err := db.LoadRun(id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Seed != 42 {
		t.Errorf("seed = %d", got.Seed)
	}
	if got.Result.System != "FPTP" || got.Result.Turnout != 0.72 {
		t.Errorf("result = %+v", got.Result)
	}
	if len(got.Result.Votes) != 3 || got.Result.Votes[0] != 500 {
		t.Errorf("votes = %v", got.Result.Votes)
	}
	if len(got.Parties) != 3 || got.Parties[2] != "Gamma" {
		t.Errorf("parties = %v", got.Parties)
	}
	if got.Government == nil || !got.Government.Success || got.Government.Names[0] != "Alpha" {
		t.Errorf("government = %+v", got.Government)
	}
}

func TestSaveRunWithoutGovernment(t *testing.T) {
	db := openTestDB(t)

	id, err := db.SaveRun(1, engine.Result{System: "PR", Votes: []int{1}, Seats: []int{1}}, []string{"A"}, nil)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := db.LoadRun(id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Government != nil {
		t.Errorf("expected nil government, got %+v", got.Government)
	}
}

func TestLoadRunMissing(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.LoadRun("no-such-id"); err == nil {
		t.Error("expected error for unknown run id")
	}
}

func TestHistoricalRoundTrip(t *testing.T) {
	db := openTestDB(t)

	rows := []histdata.Row{
		{Constituency: "North", Party: "Red", Votes: 600, Year: 2019},
		{Constituency: "North", Party: "Blue", Votes: 400, Year: 2019},
		{Constituency: "South", Party: "Blue", Votes: 700, Seats: 1, Year: 2019},
	}
	if err := db.SaveHistorical(rows); err != nil {
		t.Fatalf("save historical: %v", err)
	}

	ds, err := db.LoadHistorical()
	if err != nil {
		t.Fatalf("load historical: %v", err)
	}
	weights := ds.ViabilityWeights(2019)
	if weights["Blue"] <= weights["Red"] {
		t.Errorf("weights = %v", weights)
	}
}

func TestMeta(t *testing.T) {
	db := openTestDB(t)

	if err := db.SaveMeta("last_seed", "42"); err != nil {
		t.Fatalf("save meta: %v", err)
	}
	if err := db.SaveMeta("last_seed", "43"); err != nil {
		t.Fatalf("overwrite meta: %v", err)
	}
	v, err := db.GetMeta("last_seed")
	if err != nil {
		t.Fatalf("get meta: %v", err)
	}
	if v != "43" {
		t.Errorf("meta = %q, want 43", v)
	}
}
