// Package engine ties the population, behavior models, and tabulation
// together and runs elections.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"golang.org/x/exp/rand"

	"github.com/talgya/electoral-sim/internal/agents"
	"github.com/talgya/electoral-sim/internal/behavior"
	"github.com/talgya/electoral-sim/internal/config"
)

// voteStreamOffset separates the election draw stream from the population
// generation stream so adding voters never perturbs vote draws.
const voteStreamOffset = 1000

// Model is one simulation instance. All state is private to the instance;
// resetting regenerates the whole population from the seed.
type Model struct {
	Config   config.Config
	Voters   *agents.VoterSet
	Parties  *agents.PartySet
	Behavior *behavior.Engine
	Context  behavior.Context

	rng     *rand.Rand
	Results []Result
}

// New validates the configuration, generates the population, and wires the
// default behavior stack.
func New(cfg config.Config) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	voters, parties, err := agents.GeneratePopulation(cfg)
	if err != nil {
		return nil, err
	}

	m := &Model{
		Config:   cfg,
		Voters:   voters,
		Parties:  parties,
		Behavior: behavior.DefaultEngine(false),
		Context: behavior.Context{
			EconomicGrowth: cfg.EconomicGrowth,
			NationalMood:   cfg.NationalMood,
			AntiIncumbency: cfg.AntiIncumbency,
		},
		rng: rand.New(rand.NewSource(uint64(cfg.Seed + voteStreamOffset))),
	}

	slog.Info("model ready",
		"voters", humanize.Comma(int64(voters.N)),
		"parties", parties.Len(),
		"constituencies", cfg.NConstituencies,
		"system", cfg.ElectoralSystem,
		"seed", cfg.Seed,
	)
	return m, nil
}

// FromPreset builds a model from a named country preset.
func FromPreset(name string) (*Model, error) {
	cfg, err := config.Preset(name)
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// SetViability installs per-party viability weights (expected vote shares)
// and enables the strategic discounting model.
func (m *Model) SetViability(viability []float64) error {
	if len(viability) != m.Parties.Len() {
		return fmt.Errorf("viability length %d does not match %d parties",
			len(viability), m.Parties.Len())
	}
	m.Context.Viability = viability
	m.Behavior = behavior.DefaultEngine(true)
	return nil
}

// Step runs one opinion-dynamics step between elections.
func (m *Model) Step() {
	agents.StepOpinions(m.Voters, agents.DynamicsConfig{
		MutationRate: 0.01,
		DriftRate:    0.05,
	}, m.rng)
}

// Run advances nSteps dynamics steps, holding an election every
// electionInterval steps, and returns the accumulated results.
func (m *Model) Run(nSteps, electionInterval int) ([]Result, error) {
	if electionInterval <= 0 {
		return nil, fmt.Errorf("election_interval must be positive, got %d", electionInterval)
	}
	for step := 1; step <= nSteps; step++ {
		m.Step()
		if step%electionInterval == 0 {
			if _, err := m.RunElection(); err != nil {
				return nil, err
			}
		}
	}
	return m.Results, nil
}

// Reset regenerates the population and clears results. The same seed
// reproduces the identical starting state.
func (m *Model) Reset() error {
	voters, parties, err := agents.GeneratePopulation(m.Config)
	if err != nil {
		return err
	}
	m.Voters = voters
	m.Parties = parties
	m.rng = rand.New(rand.NewSource(uint64(m.Config.Seed + voteStreamOffset)))
	m.Results = nil
	return nil
}
