// Package persistence provides SQLite-based storage for run summaries and
// historical election results.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/electoral-sim/internal/coalition"
	"github.com/talgya/electoral-sim/internal/engine"
	"github.com/talgya/electoral-sim/internal/histdata"
)

// DB wraps a SQLite connection.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		system TEXT NOT NULL,
		seed INTEGER NOT NULL,
		turnout REAL NOT NULL,
		gallagher REAL NOT NULL,
		enp_votes REAL NOT NULL,
		enp_seats REAL NOT NULL,
		votes_json TEXT NOT NULL,
		seats_json TEXT NOT NULL,
		parties_json TEXT NOT NULL,
		government_json TEXT
	);

	CREATE TABLE IF NOT EXISTS historical_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		constituency TEXT NOT NULL,
		party TEXT NOT NULL,
		votes INTEGER NOT NULL,
		seats INTEGER NOT NULL DEFAULT 0,
		year INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS sim_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_historical_year ON historical_results(year);
	CREATE INDEX IF NOT EXISTS idx_historical_party ON historical_results(party);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// RunSummary is one persisted simulation run.
type RunSummary struct {
	ID         string
	CreatedAt  time.Time
	Seed       int64
	Result     engine.Result
	Parties    []string
	Government *coalition.Government
}

// SaveRun persists a run summary and returns its generated ID.
func (db *DB) SaveRun(seed int64, result engine.Result, parties []string, gov *coalition.Government) (string, error) {
	id := uuid.NewString()

	votesJSON, _ := json.Marshal(result.Votes)
	seatsJSON, _ := json.Marshal(result.Seats)
	partiesJSON, _ := json.Marshal(parties)

	var govJSON []byte
	if gov != nil {
		govJSON, _ = json.Marshal(gov)
	}

	_, err := db.conn.Exec(`INSERT INTO runs
		(id, created_at, system, seed, turnout, gallagher, enp_votes, enp_seats,
		 votes_json, seats_json, parties_json, government_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, time.Now().UTC().Format(time.RFC3339), result.System, seed,
		result.Turnout, result.Gallagher, result.ENPVotes, result.ENPSeats,
		string(votesJSON), string(seatsJSON), string(partiesJSON), nullable(govJSON),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	slog.Info("run saved", "id", id, "system", result.System)
	return id, nil
}

func nullable(b []byte) any {
	if b == nil {
		return nil
	}
	return string(b)
}

// LoadRun retrieves a run summary by ID.
func (db *DB) LoadRun(id string) (*RunSummary, error) {
	var row struct {
		ID             string  `db:"id"`
		CreatedAt      string  `db:"created_at"`
		System         string  `db:"system"`
		Seed           int64   `db:"seed"`
		Turnout        float64 `db:"turnout"`
		Gallagher      float64 `db:"gallagher"`
		ENPVotes       float64 `db:"enp_votes"`
		ENPSeats       float64 `db:"enp_seats"`
		VotesJSON      string  `db:"votes_json"`
		SeatsJSON      string  `db:"seats_json"`
		PartiesJSON    string  `db:"parties_json"`
		GovernmentJSON *string `db:"government_json"`
	}
	if err := db.conn.Get(&row, "SELECT * FROM runs WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("load run %s: %w", id, err)
	}

	summary := &RunSummary{
		ID:   row.ID,
		Seed: row.Seed,
		Result: engine.Result{
			System:    row.System,
			Turnout:   row.Turnout,
			Gallagher: row.Gallagher,
			ENPVotes:  row.ENPVotes,
			ENPSeats:  row.ENPSeats,
		},
	}
	summary.CreatedAt, _ = time.Parse(time.RFC3339, row.CreatedAt)
	if err := json.Unmarshal([]byte(row.VotesJSON), &summary.Result.Votes); err != nil {
		return nil, fmt.Errorf("parse votes: %w", err)
	}
	if err := json.Unmarshal([]byte(row.SeatsJSON), &summary.Result.Seats); err != nil {
		return nil, fmt.Errorf("parse seats: %w", err)
	}
	if err := json.Unmarshal([]byte(row.PartiesJSON), &summary.Parties); err != nil {
		return nil, fmt.Errorf("parse parties: %w", err)
	}
	if row.GovernmentJSON != nil {
		summary.Government = &coalition.Government{}
		if err := json.Unmarshal([]byte(*row.GovernmentJSON), summary.Government); err != nil {
			return nil, fmt.Errorf("parse government: %w", err)
		}
	}
	return summary, nil
}

// SaveHistorical appends historical result rows.
func (db *DB) SaveHistorical(rows []histdata.Row) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`INSERT INTO historical_results
		(constituency, party, votes, seats, year) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.Exec(r.Constituency, r.Party, r.Votes, r.Seats, r.Year); err != nil {
			return fmt.Errorf("insert historical row: %w", err)
		}
	}
	return tx.Commit()
}

// LoadHistorical reads all historical rows back as a dataset.
func (db *DB) LoadHistorical() (*histdata.Dataset, error) {
	var rows []histdata.Row
	err := db.conn.Select(&rows,
		"SELECT constituency, party, votes, seats, year FROM historical_results ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("load historical: %w", err)
	}
	return histdata.New(rows)
}

// SaveMeta stores a key-value pair.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO sim_meta (key, value) VALUES (?, ?)", key, value)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM sim_meta WHERE key = ?", key)
	return value, err
}
