package sim

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// growLineagesInplace grows every lineage's population forward deltaT time
// units, using N_new = N_old * exp(W * deltaT * ln2). Panics if the N and W
// columns differ in length.
//
// Computed over a scratch buffer: a gonum/floats Scale pass, a scalar
// math.Exp loop, then a gonum/floats Mul pass into N.
func growLineagesInplace(l *LineagesData, deltaT float64) {
	if len(l.N) != len(l.W) {
		panic("growLineagesInplace: N and W columns differ in length")
	}

	scaled := make([]float64, len(l.W))
	copy(scaled, l.W)
	floats.Scale(deltaT*math.Ln2, scaled)
	for i := range scaled {
		scaled[i] = math.Exp(scaled[i])
	}
	floats.Mul(l.N, scaled)
}

// oldNToDeltaN overwrites oldN in place with lineages.N[i] - oldN[i] and
// returns it, representing the number of new individuals added by growth.
// Panics if the lengths differ.
func oldNToDeltaN(l *LineagesData, oldN []float64) []float64 {
	if len(l.N) != len(oldN) {
		panic("oldNToDeltaN: length mismatch")
	}
	floats.SubTo(oldN, l.N, oldN)
	return oldN
}

// expectedMutationCounts returns 2*U[i]*eligibleN[i] for each lineage. The
// factor of 2 is a modeling convention preserved exactly for
// reproducibility; it is not re-derived here.
func expectedMutationCounts(l *LineagesData, eligibleN []float64) []float64 {
	if len(l.U) != len(eligibleN) {
		panic("expectedMutationCounts: length mismatch")
	}
	out := make([]float64, len(l.U))
	copy(out, l.U)
	floats.Mul(out, eligibleN)
	floats.Scale(2.0, out)
	return out
}
