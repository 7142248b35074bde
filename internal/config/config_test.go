package config

import (
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero voters", func(c *Config) { c.NVoters = 0 }, "n_voters"},
		{"negative voters", func(c *Config) { c.NVoters = -5 }, "n_voters"},
		{"zero constituencies", func(c *Config) { c.NConstituencies = 0 }, "n_constituencies"},
		{"no parties", func(c *Config) { c.Parties = nil }, "parties"},
		{"unnamed party", func(c *Config) { c.Parties[0].Name = "" }, "name"},
		{"duplicate party", func(c *Config) { c.Parties[1].Name = c.Parties[0].Name }, "duplicate"},
		{"bad system", func(c *Config) { c.ElectoralSystem = "MMP" }, "electoral_system"},
		{"bad allocation", func(c *Config) { c.AllocationMethod = "imperiali" }, "allocation_method"},
		{"threshold too high", func(c *Config) { c.Threshold = 1.5 }, "threshold"},
		{"negative threshold", func(c *Config) { c.Threshold = -0.1 }, "threshold"},
		{"zero temperature", func(c *Config) { c.Temperature = 0 }, "temperature"},
		{"bad zealots", func(c *Config) { c.ZealotFraction = 2 }, "zealot_fraction"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestPresets(t *testing.T) {
	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			cfg, err := Preset(name)
			if err != nil {
				t.Fatal(err)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset %s invalid: %v", name, err)
			}
		})
	}

	if _, err := Preset("atlantis"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestPresetReturnsFreshCopy(t *testing.T) {
	a, _ := Preset("uk")
	b, _ := Preset("uk")
	a.Parties[0].Name = "mutated"
	if b.Parties[0].Name == "mutated" {
		t.Error("presets share party slices across calls")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("ELECTSIM_VOTERS", "5000")
	t.Setenv("ELECTSIM_SYSTEM", "PR")
	cfg := Default()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.NVoters != 5000 {
		t.Errorf("NVoters = %d, want 5000", cfg.NVoters)
	}
	if cfg.ElectoralSystem != SystemPR {
		t.Errorf("ElectoralSystem = %q, want PR", cfg.ElectoralSystem)
	}
}
