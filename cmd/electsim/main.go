// Command electsim runs an agent-based electoral simulation. It generates a
// synthetic voter population, holds an election under the configured system,
// then forms a government and forecasts how long it survives.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	"github.com/talgya/electoral-sim/internal/coalition"
	"github.com/talgya/electoral-sim/internal/config"
	"github.com/talgya/electoral-sim/internal/engine"
	"github.com/talgya/electoral-sim/internal/government"
	"github.com/talgya/electoral-sim/internal/persistence"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// .env is optional; real env vars win either way.
	godotenv.Load()

	if len(os.Args) > 1 && os.Args[1] == "presets" {
		listPresets()
		return
	}

	slog.Info("electsim starting")

	preset := os.Getenv("ELECTSIM_PRESET")
	configPath := os.Getenv("ELECTSIM_CONFIG")
	dbPath := envOrDefault("ELECTSIM_DB", "data/electsim.db")
	nSteps := envIntOrDefault("ELECTSIM_STEPS", 0)
	interval := envIntOrDefault("ELECTSIM_INTERVAL", 10)
	nSims := envIntOrDefault("ELECTSIM_SURVIVAL_SIMS", 1000)
	outPath := os.Getenv("ELECTSIM_OUT")

	// ── Configuration ────────────────────────────────────────────────
	cfg, err := resolveConfig(preset, configPath)
	if err != nil {
		slog.Error("configuration failed", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"voters", humanize.Comma(int64(cfg.NVoters)),
		"constituencies", cfg.NConstituencies,
		"parties", cfg.NParties(),
		"system", cfg.ElectoralSystem,
		"seed", cfg.Seed,
	)

	// ── Database ─────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(dbPath), 0755)
	db, err := persistence.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", dbPath)

	// ── Population and dynamics ──────────────────────────────────────
	model, err := engine.New(cfg)
	if err != nil {
		slog.Error("model construction failed", "error", err)
		os.Exit(1)
	}

	if hist, err := db.LoadHistorical(); err == nil {
		viability := hist.ViabilityVector(model.Parties.Names, 0)
		if sum(viability) > 0 {
			if err := model.SetViability(viability); err != nil {
				slog.Error("viability wiring failed", "error", err)
				os.Exit(1)
			}
			slog.Info("strategic voting enabled from historical results")
		}
	}

	if nSteps > 0 {
		slog.Info("running opinion dynamics", "steps", nSteps, "election_interval", interval)
		if _, err := model.Run(nSteps, interval); err != nil {
			slog.Error("simulation run failed", "error", err)
			os.Exit(1)
		}
	}

	// ── Election ─────────────────────────────────────────────────────
	result, err := model.RunElection()
	if err != nil {
		slog.Error("election failed", "error", err)
		os.Exit(1)
	}

	for i, name := range model.Parties.Names {
		slog.Info("party result",
			"party", name,
			"votes", humanize.Comma(int64(result.Votes[i])),
			"seats", result.Seats[i],
		)
	}
	slog.Info("disproportionality",
		"gallagher", fmt.Sprintf("%.2f", result.Gallagher),
		"loosemore_hanby", fmt.Sprintf("%.2f", result.LoosemoreHanby),
		"enp_votes", fmt.Sprintf("%.2f", result.ENPVotes),
		"enp_seats", fmt.Sprintf("%.2f", result.ENPSeats),
	)

	// ── Government formation ─────────────────────────────────────────
	posX, posY := partyPositions(cfg)
	gov := coalition.FormGovernment(result.Seats, posX, posY, model.Parties.Names, 0.5, 0.6)

	var survival *government.SurvivalStats
	if gov.Success {
		slog.Info("government formed",
			"parties", strings.Join(gov.Names, "+"),
			"seats", gov.Seats,
			"majority", gov.Majority,
			"strain", fmt.Sprintf("%.3f", gov.Strain),
			"stability", fmt.Sprintf("%.3f", gov.Stability),
		)

		// ── Survival ─────────────────────────────────────────────────
		stats := government.SimulateSurvival(gov.Strain, gov.Stability,
			government.ModelSigmoid, 60, nSims, cfg.Seed)
		survival = &stats
		slog.Info("survival forecast",
			"simulations", stats.Simulations,
			"mean_months", fmt.Sprintf("%.1f", stats.MeanSurvival),
			"median_months", fmt.Sprintf("%.1f", stats.MedianSurvival),
			"full_term_prob", fmt.Sprintf("%.3f", stats.FullTermProb),
			"early_collapse_prob", fmt.Sprintf("%.3f", stats.EarlyCollapseProb),
		)
	} else {
		slog.Warn("no government formed", "reason", gov.Reason)
	}

	// ── Persist ──────────────────────────────────────────────────────
	var govPtr *coalition.Government
	if gov.Success {
		govPtr = &gov
	}
	runID, err := db.SaveRun(cfg.Seed, result, model.Parties.Names, govPtr)
	if err != nil {
		slog.Error("failed to save run", "error", err)
		os.Exit(1)
	}
	db.SaveMeta("last_run", runID)

	if outPath != "" {
		if err := writeSummary(outPath, runID, cfg, result, model.Parties.Names, govPtr, survival); err != nil {
			slog.Error("failed to write summary", "error", err)
			os.Exit(1)
		}
		slog.Info("summary written", "path", outPath)
	}

	slog.Info("simulation complete", "run_id", runID)
}

func listPresets() {
	for _, name := range config.PresetNames() {
		cfg, err := config.Preset(name)
		if err != nil {
			continue
		}
		fmt.Printf("%-10s %s, %d constituencies, %d parties\n",
			name, cfg.ElectoralSystem, cfg.NConstituencies, cfg.NParties())
	}
}

// writeSummary emits the run as a JSON document for dashboards and plots.
func writeSummary(path, runID string, cfg config.Config, result engine.Result,
	parties []string, gov *coalition.Government, survival *government.SurvivalStats) error {

	summary := struct {
		RunID      string                    `json:"run_id"`
		Seed       int64                     `json:"seed"`
		Parties    []string                  `json:"parties"`
		Result     engine.Result             `json:"result"`
		Government *coalition.Government     `json:"government,omitempty"`
		Survival   *government.SurvivalStats `json:"survival,omitempty"`
	}{runID, cfg.Seed, parties, result, gov, survival}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// resolveConfig layers preset, config file, and environment overrides.
func resolveConfig(preset, configPath string) (config.Config, error) {
	var cfg config.Config
	var err error

	switch {
	case preset != "":
		cfg, err = config.Preset(preset)
		if err != nil {
			return cfg, fmt.Errorf("preset %q (available: %s): %w",
				preset, strings.Join(config.PresetNames(), ", "), err)
		}
	case configPath != "":
		cfg, err = config.LoadFile(configPath)
		if err != nil {
			return cfg, err
		}
	default:
		cfg = config.Default()
	}

	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func partyPositions(cfg config.Config) (posX, posY []float64) {
	for _, p := range cfg.Parties {
		posX = append(posX, p.PositionX)
		posY = append(posY, p.PositionY)
	}
	if cfg.IncludeNOTA {
		posX = append(posX, 0)
		posY = append(posY, 0)
	}
	return posX, posY
}

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOrDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
