package sim

import (
	"math"
	"math/rand"
)

// poisson samples a Poisson random variate with mean lambda.
//
// For lambda <= 10 it uses direct inversion (Algorithm 3 of Atkinson 1979),
// which is faster than a transformed sampler for small means and is the
// algorithm this package's reproducibility guarantees are pinned to. For
// larger lambda it falls back to a rejection sampler (transformedPoisson),
// since the direct inversion loop grows linearly with lambda.
//
// Panics if lambda is negative or non-finite.
func poisson(lambda float64, rng *rand.Rand) uint64 {
	if !(lambda >= 0) || math.IsInf(lambda, 0) {
		panic("poisson called with negative or non-finite lambda")
	}
	if lambda <= 10.0 {
		return directPoisson(lambda, rng)
	}
	return transformedPoisson(lambda, rng)
}

func directPoisson(lambda float64, rng *rand.Rand) uint64 {
	var x uint64
	p := math.Exp(-lambda)
	u := rng.Float64()

	for u > p {
		x++
		u -= p
		p *= lambda / float64(x)
	}

	return x
}

// transformedPoisson samples from a Poisson distribution for lambda > 10
// by rejection with a logistic envelope (Atkinson's method PA): a candidate
// n is drawn from a logistic distribution matched to lambda, rounded, and
// accepted by comparing log densities, so every accepted value is an exact
// Poisson variate.
func transformedPoisson(lambda float64, rng *rand.Rand) uint64 {
	c := 0.767 - 3.36/lambda
	beta := math.Pi / math.Sqrt(3.0*lambda)
	alpha := beta * lambda
	k := math.Log(c) - lambda - math.Log(beta)

	for {
		u := rng.Float64()
		x := (alpha - math.Log((1.0-u)/u)) / beta
		n := math.Floor(x + 0.5)
		if n < 0 {
			continue
		}
		v := rng.Float64()
		y := alpha - beta*x
		lhs := y + math.Log(v/math.Pow(1.0+math.Exp(y), 2))
		rhs := k + n*math.Log(lambda) - lgammaOnePlus(n)
		if lhs <= rhs {
			return uint64(n)
		}
	}
}

func lgammaOnePlus(n float64) float64 {
	v, _ := math.Lgamma(n + 1)
	return v
}

// binomial samples a Binomial(n, p) random variate by direct Bernoulli
// summation for small n and a normal approximation for large n, matching
// the standard trade-off used by every production binomial sampler.
func binomial(n uint64, p float64, rng *rand.Rand) uint64 {
	if p <= 0 || n == 0 {
		return 0
	}
	if p >= 1 {
		return n
	}

	const directThreshold = 1 << 20
	if n <= directThreshold {
		var successes uint64
		for i := uint64(0); i < n; i++ {
			if rng.Float64() < p {
				successes++
			}
		}
		return successes
	}

	mean := float64(n) * p
	stdev := math.Sqrt(mean * (1 - p))
	for {
		x := math.Round(mean + stdev*normal(rng))
		if x >= 0 && x <= float64(n) {
			return uint64(x)
		}
	}
}

func normal(rng *rand.Rand) float64 {
	return rng.NormFloat64()
}

// exponential samples an Exponential(rate) random variate via inverse CDF.
func exponential(rate float64, rng *rand.Rand) float64 {
	return -math.Log(1-rng.Float64()) / rate
}

// uniform samples a Uniform(lo, hi) random variate over the half-open
// interval [lo, hi).
func uniform(lo, hi float64, rng *rand.Rand) float64 {
	return lo + (hi-lo)*rng.Float64()
}

// weightedChoice picks an index into weights with probability proportional
// to its weight. Panics if weights is empty or all-zero.
func weightedChoice(weights []float64, rng *rand.Rand) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		panic("weightedChoice requires at least one positive weight")
	}

	target := uniform(0, total, rng)
	var cum float64
	for i, w := range weights {
		cum += w
		if target < cum {
			return i
		}
	}
	return len(weights) - 1
}
