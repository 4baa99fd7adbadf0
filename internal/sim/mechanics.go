package sim

import (
	"math"
	"math/rand"
	"sort"
)

// phaseOneDoublingsRequired derives the number of Phase-1 doublings per
// transfer from the dilution factor D, reserving at least half a doubling
// for Phase 2. Panics if D < 2.
func phaseOneDoublingsRequired(dilutionFactor float64) int {
	if dilutionFactor < 2 {
		panic("phaseOneDoublingsRequired: dilution factor must be >= 2")
	}
	totalDoublings := math.Log2(dilutionFactor)
	frac := totalDoublings - math.Floor(totalDoublings)
	if frac < 0.5 {
		return int(math.Floor(totalDoublings)) - 1
	}
	return int(math.Floor(totalDoublings))
}

// growthPhase1 performs a single Phase-1 doubling on lineages in place, at
// the time step that doubles the population at its current mean fitness.
// New mutants are added; no bottlenecking occurs.
func growthPhase1(cfg *Config, lineages *LineagesData, mutations *MutationsData, rng *rand.Rand) {
	_, avgW := sumNAndAvgW(lineages)
	deltaT := 1.0 / avgW

	oldN := make([]float64, len(lineages.N))
	copy(oldN, lineages.N)

	growLineagesInplace(lineages, deltaT)
	deltaN := oldNToDeltaN(lineages, oldN)

	addMutants(cfg, lineages, mutations, deltaN, rng)
}

// growthPhase2 performs the final doubling of a transfer, sized to bring
// the total population to approximately Nmax, then bottlenecks (binomial
// subsampling at rate 1/D) and adds mutants among the survivors.
func growthPhase2(cfg *Config, lineages **LineagesData, mutations *MutationsData, rng *rand.Rand) {
	l := *lineages
	sumN, avgW := sumNAndAvgW(l)
	deltaT := math.Log2(cfg.Inner.MaxPopSize/sumN) / avgW
	if deltaT < 0 {
		panic("growthPhase2: computed negative time step")
	}

	oldN := make([]float64, len(l.N))
	copy(oldN, l.N)

	growLineagesInplace(l, deltaT)

	bottlenecked := Successor(l)
	var deltaN []float64

	length := l.Len()
	l.assertLenEq(length)
	for i := 0; i < length; i++ {
		lineage := l.Get(i)
		nAfterGrowth := lineage.N
		nBottlenecked := binomial(uint64(math.Round(lineage.N)), cfg.DilutionCoefficient, rng)
		if nBottlenecked > 0 {
			lineage.N = float64(nBottlenecked)
			bottlenecked.Push(lineage)
			deltaN = append(deltaN, lineage.N*(1.0-oldN[i]/nAfterGrowth))
		}
	}

	*lineages = bottlenecked
	addMutants(cfg, bottlenecked, mutations, deltaN, rng)
}

// addMutants is the algorithmic heart of a transfer: given the expected
// number of new-individual mutations per pre-existing lineage (deltaN[i]
// new individuals at rate 2*U[i] each), it draws a Poisson count of total
// mutations, sorts that many uniform cutoffs over [0, totalExpected), and
// sweeps lineages by cumulative expectation, attributing each cutoff to a
// specific new individual within its lineage. Individuals hit by more than
// one cutoff get a multi-order mutation.
func addMutants(cfg *Config, lineages *LineagesData, mutations *MutationsData, deltaN []float64, rng *rand.Rand) {
	expectedCounts := expectedMutationCounts(lineages, deltaN)
	var totalExpected float64
	for _, e := range expectedCounts {
		totalExpected += e
	}
	if totalExpected < 0 {
		panic("addMutants: negative expected mutation count")
	}

	numMutations := poisson(totalExpected, rng)
	if numMutations == 0 {
		return
	}

	cutoffs := make([]float64, numMutations)
	for i := range cutoffs {
		cutoffs[i] = uniform(0, totalExpected, rng)
	}
	sort.Float64s(cutoffs)

	cutoffIdx := 0
	cutoff := cutoffs[cutoffIdx]
	cutoffIdx++
	cutoffsExhausted := false

	var cumsum float64
	length := len(expectedCounts)
	lineages.assertLenEq(length)

	for i := 0; i < length; i++ {
		if expectedCounts[i] == 0 {
			continue
		}

		prevCumsum := cumsum
		cumsum += expectedCounts[i]

		if cutoff >= cumsum {
			continue
		}

		lineage := lineages.Get(i)
		for cutoff < cumsum {
			var mutantOrder uint32

			tmp := cutoff - prevCumsum
			individualMaxCutoff := tmp - math.Mod(tmp, lineage.U) + lineage.U + prevCumsum
			individualMaxCutoff = clampFloat(individualMaxCutoff, nextFloat(cutoff), cumsum)

			for cutoff < individualMaxCutoff {
				mutantOrder++

				if cutoffIdx < len(cutoffs) {
					cutoff = cutoffs[cutoffIdx]
					cutoffIdx++
				} else {
					cutoffsExhausted = true
					break
				}
			}

			mutant := newMutant(lineage, mutantOrder, cfg, rng)
			lineages.PushChild(mutant, lineage, mutantOrder, mutations)
			lineages.N[i] = math.Max(lineages.N[i]-1.0, 0)

			if cutoffsExhausted {
				return
			}
		}
	}
}

func clampFloat(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// nextFloat returns the next representable float64 above a non-negative x
// (for negative x it steps one representable value below x), used to
// guarantee the sub-interval sweep in addMutants strictly progresses even
// when a cutoff lands exactly on a boundary. Panics if x is not finite.
func nextFloat(x float64) float64 {
	if !isFinite(x) {
		panic("nextFloat: x must be finite")
	}
	return math.Float64frombits(math.Float64bits(x) + 1)
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// newMutant derives a descendant lineage from parent with population size
// 1.0, applying order independent mutations drawn from the configured
// mutation-type weights.
func newMutant(parent Lineage, order uint32, cfg *Config, rng *rand.Rand) Lineage {
	mutant := parent
	mutant.N = 1.0

	for i := uint32(0); i < order; i++ {
		mutationType, ok := cfg.sampleMutationType(rng)
		if !ok {
			panic("newMutant: called with no mutation rate configured")
		}

		switch mutationType {
		case Beneficial:
			applyBeneficialMutation(&mutant, cfg, rng)
		case Neutral:
			// no-op: a neutral mutation changes nothing observable
		case Deleterious:
			panic("deleterious mutations are not supported")
		case MutationRate:
			panic("mutation-rate mutations are not supported")
		}
	}

	return mutant
}

// applyBeneficialMutation draws a mutation size from Exponential(lambda),
// scales W by 1+size, and shrinks lambda's reciprocal by the
// diminishing-returns epistasis factor.
func applyBeneficialMutation(lineage *Lineage, cfg *Config, rng *rand.Rand) {
	size := exponential(lineage.Secondary.Lambda, rng)
	lineage.W *= 1.0 + size
	lineage.Secondary.Lambda *= 1.0 + cfg.Inner.DiminishingReturnsEpistasisStrength*size
}
