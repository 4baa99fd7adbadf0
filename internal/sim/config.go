package sim

import (
	"fmt"
	"math/rand"

	"steps/internal/cfg"
)

// Config is the internal, derived configuration built once per driver from
// the externally supplied cfg.SimConfig: values that are expensive or
// error-prone to recompute every transfer.
type Config struct {
	// Inner is the user-supplied configuration, unchanged.
	Inner cfg.SimConfig

	// TotalMutationRate is Ub + Un + Ud.
	TotalMutationRate float64
	// DilutionCoefficient is 1/D.
	DilutionCoefficient float64
	// Phase1Doublings is the number of Phase-1 doublings per transfer.
	Phase1Doublings int

	// mutationTypeWeights holds {Ub, Un, Ud} in MutationType order, or nil
	// if the total mutation rate is zero (no mutations can occur).
	mutationTypeWeights []float64
}

// NewConfig derives a Config from cfg, validating it first. Returns an
// error for any configuration violation (spec §7); never panics on bad
// user input.
func NewConfig(c cfg.SimConfig) (*Config, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}

	total := c.BeneficialMutationRate + c.NeutralMutationRate + c.DeleteriousMutationRate

	var weights []float64
	if total > 0 {
		weights = []float64{c.BeneficialMutationRate, c.NeutralMutationRate, c.DeleteriousMutationRate}
	}

	return &Config{
		Inner:               c,
		TotalMutationRate:   total,
		DilutionCoefficient: 1.0 / c.DilutionFactor,
		Phase1Doublings:     phaseOneDoublingsRequired(c.DilutionFactor),
		mutationTypeWeights: weights,
	}, nil
}

// sampleMutationType picks a mutation type weighted by the configured
// mutation rates, or reports ok=false if every rate is zero.
func (c *Config) sampleMutationType(rng *rand.Rand) (MutationType, bool) {
	if c.mutationTypeWeights == nil {
		return 0, false
	}
	idx := weightedChoice(c.mutationTypeWeights, rng)
	switch idx {
	case 0:
		return Beneficial, true
	case 1:
		return Neutral, true
	default:
		return Deleterious, true
	}
}
