// Package config defines the simulation configuration, validation rules,
// and country presets.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// Electoral system tags.
const (
	SystemFPTP = "FPTP"
	SystemPR   = "PR"
)

// PartyConfig describes one competing party.
type PartyConfig struct {
	Name      string  `json:"name"`
	PositionX float64 `json:"position_x"`
	PositionY float64 `json:"position_y"`
	Valence   float64 `json:"valence"`
	Incumbent bool    `json:"incumbent"`
}

// Config holds every parameter of a simulation run. Zero values are filled
// in by Default; Validate rejects inconsistent configurations before any
// random draw happens.
type Config struct {
	// Scale.
	NVoters         int `json:"n_voters" env:"ELECTSIM_VOTERS"`
	NConstituencies int `json:"n_constituencies" env:"ELECTSIM_CONSTITUENCIES"`

	// Parties.
	Parties     []PartyConfig `json:"parties"`
	IncludeNOTA bool          `json:"include_nota"`

	// Electoral system.
	ElectoralSystem  string  `json:"electoral_system" env:"ELECTSIM_SYSTEM"`
	AllocationMethod string  `json:"allocation_method" env:"ELECTSIM_ALLOCATION"`
	Threshold        float64 `json:"threshold" env:"ELECTSIM_THRESHOLD"`

	// Voting behavior.
	Temperature    float64 `json:"temperature" env:"ELECTSIM_TEMPERATURE"`
	ZealotFraction float64 `json:"zealot_fraction"`

	// National context consumed by the behavior models.
	EconomicGrowth float64 `json:"economic_growth"`
	NationalMood   float64 `json:"national_mood"`
	AntiIncumbency float64 `json:"anti_incumbency"`

	// Reproducibility.
	Seed int64 `json:"seed" env:"ELECTSIM_SEED"`
}

// Default returns the baseline three-party configuration.
func Default() Config {
	return Config{
		NVoters:         100_000,
		NConstituencies: 10,
		Parties: []PartyConfig{
			{Name: "Party A", PositionX: -0.3, PositionY: 0.1, Valence: 50},
			{Name: "Party B", PositionX: 0.3, PositionY: -0.1, Valence: 50},
			{Name: "Party C", PositionX: 0.0, PositionY: 0.3, Valence: 45},
		},
		ElectoralSystem:  SystemFPTP,
		AllocationMethod: "dhondt",
		Temperature:      0.5,
		Seed:             42,
	}
}

// allocationMethods mirrors the registry in internal/systems; validation must
// not import the algorithm package just to check a tag.
var allocationMethods = map[string]bool{
	"dhondt":       true,
	"sainte_lague": true,
	"hare":         true,
	"droop":        true,
}

// Validate checks the configuration and returns a descriptive error naming
// the offending field. It never mutates the config.
func (c *Config) Validate() error {
	if c.NVoters <= 0 {
		return fmt.Errorf("n_voters must be positive, got %d", c.NVoters)
	}
	if c.NConstituencies <= 0 {
		return fmt.Errorf("n_constituencies must be positive, got %d", c.NConstituencies)
	}
	if len(c.Parties) == 0 {
		return fmt.Errorf("parties list is empty")
	}
	seen := make(map[string]bool, len(c.Parties))
	for i, p := range c.Parties {
		if p.Name == "" {
			return fmt.Errorf("parties[%d].name is empty", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate party name %q", p.Name)
		}
		seen[p.Name] = true
	}
	switch c.ElectoralSystem {
	case SystemFPTP, SystemPR:
	default:
		return fmt.Errorf("unknown electoral_system %q (want FPTP or PR)", c.ElectoralSystem)
	}
	if !allocationMethods[c.AllocationMethod] {
		return fmt.Errorf("unknown allocation_method %q", c.AllocationMethod)
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("threshold must be in [0,1], got %g", c.Threshold)
	}
	if c.Temperature <= 0 {
		return fmt.Errorf("temperature must be positive, got %g", c.Temperature)
	}
	if c.ZealotFraction < 0 || c.ZealotFraction > 1 {
		return fmt.Errorf("zealot_fraction must be in [0,1], got %g", c.ZealotFraction)
	}
	return nil
}

// NParties returns the number of configured parties, excluding NOTA.
func (c *Config) NParties() int {
	return len(c.Parties)
}

// LoadFile reads a JSON configuration file on top of the defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides configuration fields from ELECTSIM_* environment
// variables.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
