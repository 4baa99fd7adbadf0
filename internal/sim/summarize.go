package sim

import "math"

// sumNAndAvgW returns the total population size and the N-weighted mean
// fitness of lineages. Panics if the N and W columns differ in length.
func sumNAndAvgW(lineages *LineagesData) (sumN, avgW float64) {
	if len(lineages.N) != len(lineages.W) {
		panic("sumNAndAvgW: N and W columns differ in length")
	}

	var weightedSumW float64
	for i, n := range lineages.N {
		sumN += n
		weightedSumW += n * lineages.W[i]
	}

	return sumN, weightedSumW / sumN
}

// AvgW returns the N-weighted arithmetic mean fitness of lineages.
func AvgW(lineages *LineagesData) float64 {
	_, avgW := sumNAndAvgW(lineages)
	return avgW
}

// SumN returns the total population size of lineages.
func SumN(lineages *LineagesData) float64 {
	sumN, _ := sumNAndAvgW(lineages)
	return sumN
}

// Marker1Ratio returns the ratio of marker-1 population to the population
// of every other marker. If no non-marker-1 individuals exist, the result
// is +Inf (or NaN if both sums are zero) — this package does not panic on
// the degenerate single-marker case; see DESIGN.md for the rationale.
func Marker1Ratio(lineages *LineagesData) float64 {
	var sumN, marker1SumN float64
	for i, n := range lineages.N {
		sumN += n
		if lineages.Secondary[i].Marker == 1 {
			marker1SumN += n
		}
	}
	return marker1SumN / (sumN - marker1SumN)
}

// weightedStdev computes the N-weighted population standard deviation of
// elements.
func weightedStdev(elements, weights []float64) float64 {
	var n, weightedSum float64
	for i, w := range weights {
		n += w
		weightedSum += w * elements[i]
	}
	mean := weightedSum / n

	var sse float64
	for i, w := range weights {
		d := elements[i] - mean
		sse += w * d * d
	}
	return math.Sqrt(sse / n)
}

// StdevW returns the N-weighted population standard deviation of lineage
// fitnesses.
func StdevW(lineages *LineagesData) float64 {
	return weightedStdev(lineages.W, lineages.N)
}

// StdevAccumulatedMuts returns the N-weighted population standard
// deviation of accumulated-mutation counts across lineages.
func StdevAccumulatedMuts(lineages *LineagesData) float64 {
	muts := make([]float64, len(lineages.Secondary))
	for i, s := range lineages.Secondary {
		muts[i] = float64(s.AccumulatedMuts)
	}
	return weightedStdev(muts, lineages.N)
}

// MaxW returns the maximum fitness of any lineage. Panics if lineages is
// empty.
func MaxW(lineages *LineagesData) float64 {
	if len(lineages.W) == 0 {
		panic("MaxW: empty lineages")
	}
	max := lineages.W[0]
	for _, w := range lineages.W[1:] {
		if w > max {
			max = w
		}
	}
	return max
}

// MaxAccumulatedMuts returns the maximum number of mutations away from the
// root ancestor of any lineage, i.e. AccumulatedMuts - 1. Panics if
// lineages is empty.
func MaxAccumulatedMuts(lineages *LineagesData) uint32 {
	if len(lineages.Secondary) == 0 {
		panic("MaxAccumulatedMuts: empty lineages")
	}
	max := lineages.Secondary[0].AccumulatedMuts - 1
	for _, s := range lineages.Secondary[1:] {
		if v := s.AccumulatedMuts - 1; v > max {
			max = v
		}
	}
	return max
}

// MinAccumulatedMuts returns the minimum number of mutations away from the
// root ancestor of any lineage, i.e. AccumulatedMuts - 1. Panics if
// lineages is empty.
func MinAccumulatedMuts(lineages *LineagesData) uint32 {
	if len(lineages.Secondary) == 0 {
		panic("MinAccumulatedMuts: empty lineages")
	}
	min := lineages.Secondary[0].AccumulatedMuts - 1
	for _, s := range lineages.Secondary[1:] {
		if v := s.AccumulatedMuts - 1; v < min {
			min = v
		}
	}
	return min
}

// MeanAccumulatedMuts returns the N-weighted mean number of mutations away
// from the root ancestor of any lineage.
func MeanAccumulatedMuts(lineages *LineagesData) float64 {
	var sumN, sumM float64
	for i, n := range lineages.N {
		sumN += n
		sumM += float64(lineages.Secondary[i].AccumulatedMuts-1) * n
	}
	return sumM / sumN
}

// GenotypeCount returns the number of lineages with nonzero population.
func GenotypeCount(lineages *LineagesData) int {
	count := 0
	for _, n := range lineages.N {
		if n != 0 {
			count++
		}
	}
	return count
}

// ShannonDiversity returns ln(sum N) - sum(N*ln(N))/sum(N), skipping
// zero-population lineages.
func ShannonDiversity(lineages *LineagesData) float64 {
	var sumN, weightedSumLogN float64
	for _, n := range lineages.N {
		if n == 0 {
			continue
		}
		sumN += n
		weightedSumLogN += n * math.Log(n)
	}
	return math.Log(sumN) - weightedSumLogN/sumN
}
