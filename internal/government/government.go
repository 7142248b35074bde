// Package government models post-formation survival: monthly collapse
// hazard, destabilizing events, and Monte Carlo survival statistics.
package government

import (
	"math"

	"golang.org/x/exp/rand"
)

// Hazard model tags.
const (
	ModelSigmoid     = "sigmoid"
	ModelLinear      = "linear"
	ModelExponential = "exponential"
)

// Collapse reasons.
const (
	ReasonPolicyStrain = "policy_strain"
	ReasonTimeInOffice = "time_in_office"
)

// strainCollapseCutoff separates strain-driven from time-driven collapses.
const strainCollapseCutoff = 0.5

// CollapseProbability returns the chance the government falls in the given
// month. All three models are non-decreasing in time and force collapse at
// the maximum term.
func CollapseProbability(monthsInOffice int, strain, stability float64, model string, baseRate float64, maxTerm int) float64 {
	if monthsInOffice >= maxTerm {
		return 1.0
	}

	timeFactor := float64(monthsInOffice) / float64(maxTerm)
	hazard := baseRate * (1.0 + strain) * (1.0 + (1.0 - stability))

	var p float64
	switch model {
	case ModelExponential:
		p = hazard * math.Exp(2*timeFactor)
	case ModelLinear:
		p = hazard * (1.0 + timeFactor)
	default: // sigmoid
		p = hazard / (1.0 + math.Exp(-10*(timeFactor-0.5)))
	}

	return clip(p, 0, 1)
}

// Event is a destabilizing occurrence during a government's term.
type Event struct {
	Type     string  `json:"type"`
	Severity float64 `json:"severity"`
	Month    int     `json:"month"`
}

// eventWeights scales the hazard contribution per event type.
var eventWeights = map[string]float64{
	"scandal":               0.3,
	"economic_crisis":       0.4,
	"defection":             0.5,
	"vote_of_no_confidence": 0.8,
	"leadership_challenge":  0.3,
}

// HazardRate returns the instantaneous bathtub-shaped hazard: honeymoon
// uncertainty early, a stable middle, rising late-term instability, scaled
// up by recent events.
func HazardRate(monthsInOffice int, events []Event, baseHazard float64) float64 {
	var timeHazard float64
	switch {
	case monthsInOffice < 6:
		timeHazard = 0.8
	case monthsInOffice < 36:
		timeHazard = 0.5 + 0.01*float64(monthsInOffice-6)
	default:
		timeHazard = 0.8 + 0.02*float64(monthsInOffice-36)
	}

	eventHazard := 0.0
	for _, e := range events {
		w, ok := eventWeights[e.Type]
		if !ok {
			w = 0.1
		}
		eventHazard += w * e.Severity
	}

	return baseHazard * timeHazard * (1.0 + eventHazard)
}

// Simulator advances a single government month by month.
type Simulator struct {
	Strain    float64
	Stability float64
	Coalition []string
	Model     string
	BaseRate  float64
	MaxTerm   int

	MonthsInOffice int
	Collapsed      bool
	CollapseReason string
	Events         []Event

	rng *rand.Rand
}

// NewSimulator creates a government simulator with the standard base rate
// (0.05/month) and a 60-month maximum term.
func NewSimulator(strain, stability float64, coalition []string, model string, seed int64) *Simulator {
	return &Simulator{
		Strain:    strain,
		Stability: stability,
		Coalition: coalition,
		Model:     model,
		BaseRate:  0.05,
		MaxTerm:   60,
		rng:       rand.New(rand.NewSource(uint64(seed))),
	}
}

// AddEvent records a destabilizing event at the current month.
func (s *Simulator) AddEvent(eventType string, severity float64) {
	s.Events = append(s.Events, Event{
		Type:     eventType,
		Severity: severity,
		Month:    s.MonthsInOffice,
	})
}

// Step advances one month and reports whether the government survives it.
// Events within the last three months each add 0.1 x severity to the
// collapse probability.
func (s *Simulator) Step() bool {
	if s.Collapsed {
		return false
	}

	s.MonthsInOffice++

	p := CollapseProbability(s.MonthsInOffice, s.Strain, s.Stability, s.Model, s.BaseRate, s.MaxTerm)
	for _, e := range s.Events {
		if e.Month >= s.MonthsInOffice-3 {
			p += 0.1 * e.Severity
		}
	}
	if p > 1 {
		p = 1
	}

	if s.rng.Float64() < p {
		s.Collapsed = true
		if s.Strain > strainCollapseCutoff {
			s.CollapseReason = ReasonPolicyStrain
		} else {
			s.CollapseReason = ReasonTimeInOffice
		}
		return false
	}
	return true
}

// Simulate runs until collapse or maxMonths and returns months survived.
func (s *Simulator) Simulate(maxMonths int) int {
	for s.MonthsInOffice < maxMonths && s.Step() {
	}
	return s.MonthsInOffice
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
