// Country presets with realistic party rosters.
package config

import (
	"fmt"
	"sort"
)

// presetFunc builds a fresh Config; each caller owns its own copy.
type presetFunc func() Config

var presets = map[string]presetFunc{
	"india":   India,
	"usa":     USA,
	"uk":      UK,
	"germany": Germany,
}

// Preset returns a named country preset.
func Preset(name string) (Config, error) {
	fn, ok := presets[name]
	if !ok {
		return Config{}, fmt.Errorf("unknown preset %q", name)
	}
	return fn(), nil
}

// PresetNames lists available presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// India models the Lok Sabha: 543 constituencies under FPTP.
func India() Config {
	cfg := Default()
	cfg.NVoters = 1_000_000
	cfg.NConstituencies = 543
	cfg.ElectoralSystem = SystemFPTP
	cfg.Parties = []PartyConfig{
		{Name: "BJP", PositionX: 0.4, PositionY: 0.5, Valence: 70, Incumbent: true},
		{Name: "INC", PositionX: -0.2, PositionY: -0.1, Valence: 55},
		{Name: "AAP", PositionX: -0.3, PositionY: -0.3, Valence: 50},
		{Name: "TMC", PositionX: -0.1, PositionY: 0.1, Valence: 45},
		{Name: "DMK", PositionX: -0.4, PositionY: -0.4, Valence: 45},
		{Name: "SP", PositionX: -0.2, PositionY: 0.2, Valence: 40},
		{Name: "BSP", PositionX: -0.1, PositionY: 0.3, Valence: 35},
		{Name: "Others", PositionX: 0.0, PositionY: 0.0, Valence: 30},
	}
	return cfg
}

// USA models the House of Representatives: 435 districts, two parties.
func USA() Config {
	cfg := Default()
	cfg.NVoters = 500_000
	cfg.NConstituencies = 435
	cfg.ElectoralSystem = SystemFPTP
	cfg.Parties = []PartyConfig{
		{Name: "Democratic", PositionX: -0.4, PositionY: -0.2, Valence: 50},
		{Name: "Republican", PositionX: 0.4, PositionY: 0.3, Valence: 50},
	}
	return cfg
}

// UK models the House of Commons: 650 constituencies, multi-party FPTP.
func UK() Config {
	cfg := Default()
	cfg.NVoters = 500_000
	cfg.NConstituencies = 650
	cfg.ElectoralSystem = SystemFPTP
	cfg.Parties = []PartyConfig{
		{Name: "Conservative", PositionX: 0.3, PositionY: 0.2, Valence: 45},
		{Name: "Labour", PositionX: -0.3, PositionY: -0.1, Valence: 50, Incumbent: true},
		{Name: "Liberal Democrats", PositionX: 0.0, PositionY: -0.2, Valence: 40},
		{Name: "SNP", PositionX: -0.2, PositionY: -0.3, Valence: 45},
		{Name: "Green", PositionX: -0.5, PositionY: -0.4, Valence: 35},
	}
	return cfg
}

// Germany models the Bundestag: Sainte-Laguë PR with a 5% threshold.
func Germany() Config {
	cfg := Default()
	cfg.NVoters = 500_000
	cfg.NConstituencies = 299
	cfg.ElectoralSystem = SystemPR
	cfg.AllocationMethod = "sainte_lague"
	cfg.Threshold = 0.05
	cfg.Parties = []PartyConfig{
		{Name: "CDU/CSU", PositionX: 0.2, PositionY: 0.1, Valence: 50},
		{Name: "SPD", PositionX: -0.2, PositionY: -0.1, Valence: 48, Incumbent: true},
		{Name: "Grüne", PositionX: -0.3, PositionY: -0.4, Valence: 45},
		{Name: "FDP", PositionX: 0.3, PositionY: -0.2, Valence: 40},
		{Name: "AfD", PositionX: 0.5, PositionY: 0.5, Valence: 35},
		{Name: "Linke", PositionX: -0.5, PositionY: -0.2, Valence: 35},
	}
	return cfg
}
