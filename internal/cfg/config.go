// Package cfg defines the externally configurable options for STEPS
// simulations, with validation and cobra/pflag registration.
package cfg

import (
	"fmt"

	"github.com/spf13/pflag"
)

// SimConfig holds every option recognized by the simulation engine.
// JSON tags give the snake_case option names written into output headers;
// the CLI flag names are set separately in RegisterFlags.
type SimConfig struct {
	Replicates                          uint32  `json:"replicates"`
	Transfers                           uint32  `json:"transfers"`
	Markers                             uint16  `json:"markers"`
	DilutionFactor                      float64 `json:"dilution_factor"`
	BeneficialMutationRate              float64 `json:"beneficial_mutation_rate"`
	NeutralMutationRate                 float64 `json:"neutral_mutation_rate"`
	DeleteriousMutationRate             float64 `json:"deleterious_mutation_rate"`
	InitialBeneficialMutationSize       float64 `json:"initial_beneficial_mutation_size"`
	DiminishingReturnsEpistasisStrength float64 `json:"diminishing_returns_epistasis_strength"`
	MaxPopSize                          float64 `json:"max_pop_size"`
	Seed                                *uint64 `json:"seed,omitempty"`
}

// DefaultSimConfig returns the engine's default configuration.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Replicates:                          1,
		Transfers:                           1000,
		Markers:                             2,
		DilutionFactor:                      100,
		BeneficialMutationRate:              0,
		NeutralMutationRate:                 0,
		DeleteriousMutationRate:             0,
		InitialBeneficialMutationSize:       0.015873,
		DiminishingReturnsEpistasisStrength: 1.0,
		MaxPopSize:                          5e8,
		Seed:                                nil,
	}
}

// RegisterFlags attaches every SimConfig field except Seed to fs,
// defaulting to the values already present in c (call after
// DefaultSimConfig or after loading a reproduced config so flags override
// it). Seed is registered separately by ApplySeedFlag/seed flag handling
// in the CLI layer, since "not present" (seed from entropy) is a distinct
// state from any particular uint64 value and pflag has no built-in
// optional-scalar type.
func (c *SimConfig) RegisterFlags(fs *pflag.FlagSet) {
	fs.Uint32Var(&c.Replicates, "replicates", c.Replicates, "independent runs")
	fs.Uint32Var(&c.Transfers, "transfers", c.Transfers, "transfers per replicate")
	fs.Uint16Var(&c.Markers, "markers", c.Markers, "number of neutral marker founders (>= 1)")
	fs.Float64VarP(&c.DilutionFactor, "dilution-factor", "D", c.DilutionFactor, "growth required per transfer (>= 2)")
	fs.Float64Var(&c.BeneficialMutationRate, "Ub", c.BeneficialMutationRate, "beneficial mutation rate per individual per division")
	fs.Float64Var(&c.NeutralMutationRate, "Un", c.NeutralMutationRate, "neutral mutation rate per individual per division")
	fs.Float64Var(&c.DeleteriousMutationRate, "Ud", c.DeleteriousMutationRate, "deleterious mutation rate per individual per division (unsupported, must stay 0)")
	fs.Float64Var(&c.InitialBeneficialMutationSize, "Sb", c.InitialBeneficialMutationSize, "mean of the initial beneficial mutation size distribution")
	fs.Float64VarP(&c.DiminishingReturnsEpistasisStrength, "epistasis", "g", c.DiminishingReturnsEpistasisStrength, "diminishing returns epistasis strength")
	fs.Float64Var(&c.MaxPopSize, "Nmax", c.MaxPopSize, "maximum population size reached before bottleneck")
}

// ApplySeedFlag registers the --seed flag on fs and, after fs has been
// parsed, assigns c.Seed only if the flag was actually supplied on the
// command line. Call the returned function after fs.Parse.
func (c *SimConfig) ApplySeedFlag(fs *pflag.FlagSet) (apply func()) {
	var seed uint64
	fs.Uint64Var(&seed, "seed", 0, "optional 64-bit RNG seed (default: seeded from OS entropy)")
	return func() {
		if fs.Changed("seed") {
			c.Seed = &seed
		}
	}
}

// Validate reports a configuration violation, or nil if c is
// usable. The engine must never be started from an invalid config.
func (c SimConfig) Validate() error {
	if c.DilutionFactor < 2 {
		return fmt.Errorf("dilution factor must be >= 2, got %g", c.DilutionFactor)
	}
	if c.Markers < 1 {
		return fmt.Errorf("markers must be >= 1, got %d", c.Markers)
	}
	if c.BeneficialMutationRate < 0 {
		return fmt.Errorf("beneficial mutation rate must be >= 0, got %g", c.BeneficialMutationRate)
	}
	if c.NeutralMutationRate < 0 {
		return fmt.Errorf("neutral mutation rate must be >= 0, got %g", c.NeutralMutationRate)
	}
	if c.DeleteriousMutationRate < 0 {
		return fmt.Errorf("deleterious mutation rate must be >= 0, got %g", c.DeleteriousMutationRate)
	}
	if c.DeleteriousMutationRate > 0 {
		return fmt.Errorf("deleterious mutations are not supported; deleterious_mutation_rate must be 0")
	}
	if c.InitialBeneficialMutationSize <= 0 {
		return fmt.Errorf("initial beneficial mutation size must be > 0, got %g", c.InitialBeneficialMutationSize)
	}
	if c.MaxPopSize <= 0 {
		return fmt.Errorf("max pop size must be > 0, got %g", c.MaxPopSize)
	}
	return nil
}
