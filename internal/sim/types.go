// Package sim implements the stochastic transfer engine and mutation
// tracking subsystem for serial-transfer bacterial evolution experiments.
package sim

import "math"

// SecondaryLineageData holds the per-lineage attributes that are not
// accessed by the vectorized kernels, so they are kept out of the hot
// columnar arrays and carried around as one small struct per lineage.
type SecondaryLineageData struct {
	// Lambda is the reciprocal of the current mean beneficial mutation
	// size; it shrinks under diminishing-returns epistasis.
	Lambda float64 `json:"lambda"`

	// ID uniquely identifies this lineage; also identifies the mutation
	// edge from ParentID to this lineage.
	ID uint64 `json:"id"`
	// ParentID is the id of the lineage this one mutated from; 0 for the
	// synthetic root.
	ParentID uint64 `json:"parent_id"`
	// Marker is the neutral marker tag (1..=markers), inherited unchanged.
	Marker uint16 `json:"marker"`
	// AccumulatedMuts counts mutations from the root along the ancestral
	// chain; marker founders start at 1.
	AccumulatedMuts uint32 `json:"accumulated_muts"`
}

// Lineage is a value-copy view of one row across the columnar arrays of a
// LineagesData.
type Lineage struct {
	N         float64
	W         float64
	U         float64
	Secondary SecondaryLineageData
}

// LineagesData is a struct-of-arrays container for the population of
// lineages at one point in time. All four columns always have equal
// length; entries with N == 0 may exist transiently but are dropped at the
// next bottleneck.
type LineagesData struct {
	N         []float64              `json:"N"`
	W         []float64              `json:"W"`
	U         []float64              `json:"U"`
	Secondary []SecondaryLineageData `json:"secondary"`

	// idCounter stores the last assigned id. IDs are strictly monotone
	// over the lifetime of one replicate; 0 is reserved for the synthetic
	// ancestor and is never assigned to a real lineage.
	idCounter uint64
}

// Len returns the number of lineages currently stored.
func (l *LineagesData) Len() int {
	return len(l.N)
}

// assertLenEq panics if any column's length differs from want; this
// guards the unsafe-equivalent indexed loops in mechanics.go against a
// programmer error, matching the invariant checks in the reference engine.
func (l *LineagesData) assertLenEq(want int) {
	if len(l.N) != want || len(l.W) != want || len(l.U) != want || len(l.Secondary) != want {
		panic("LineagesData: column length mismatch")
	}
}

// Get returns a value copy of lineage i's columns. Panics on out-of-range i.
func (l *LineagesData) Get(i int) Lineage {
	return Lineage{
		N:         l.N[i],
		W:         l.W[i],
		U:         l.U[i],
		Secondary: l.Secondary[i],
	}
}

// reserve pre-allocates capacity in every column, so bottleneck migration
// doesn't repeatedly reallocate while copying survivors into a fresh
// container.
func (l *LineagesData) reserve(additional int) {
	if cap(l.N)-len(l.N) < additional {
		grown := make([]float64, len(l.N), len(l.N)+additional)
		copy(grown, l.N)
		l.N = grown
	}
	if cap(l.W)-len(l.W) < additional {
		grown := make([]float64, len(l.W), len(l.W)+additional)
		copy(grown, l.W)
		l.W = grown
	}
	if cap(l.U)-len(l.U) < additional {
		grown := make([]float64, len(l.U), len(l.U)+additional)
		copy(grown, l.U)
		l.U = grown
	}
	if cap(l.Secondary)-len(l.Secondary) < additional {
		grown := make([]SecondaryLineageData, len(l.Secondary), len(l.Secondary)+additional)
		copy(grown, l.Secondary)
		l.Secondary = grown
	}
}

// Successor creates a new, empty LineagesData that inherits old's id
// counter and reserves capacity scaled to old's length. This is the only
// correct way to build the container a bottleneck migrates survivors into;
// starting a new replicate must instead use ForSimConfig.
func Successor(old *LineagesData) *LineagesData {
	n := &LineagesData{idCounter: old.idCounter}
	n.reserve(old.Len())
	return n
}

// Push appends a lineage verbatim to the columnar arrays.
func (l *LineagesData) Push(lin Lineage) {
	l.N = append(l.N, lin.N)
	l.W = append(l.W, lin.W)
	l.U = append(l.U, lin.U)
	l.Secondary = append(l.Secondary, lin.Secondary)
}

// PushChild appends child as a descendant of parent: assigns child's
// ParentID and a freshly allocated ID, sets AccumulatedMuts, appends to the
// columns, and registers the mutation with mutations if tracking is
// enabled.
func (l *LineagesData) PushChild(child Lineage, parent Lineage, mutationOrder uint32, mutations *MutationsData) {
	child.Secondary.ParentID = parent.Secondary.ID
	l.idCounter++
	child.Secondary.ID = l.idCounter
	child.Secondary.AccumulatedMuts = parent.Secondary.AccumulatedMuts + mutationOrder

	l.Push(child)

	if mutations != nil {
		mutations.register(child, parent, mutationOrder)
	}
}

// ForSimConfig builds the start-of-replicate LineagesData: one lineage per
// marker, each seeded at N = round(Nmax / D / markers), descending from a
// synthetic, never-stored ancestor with id 0.
func ForSimConfig(cfg *Config, mutations *MutationsData) *LineagesData {
	output := &LineagesData{}

	ancestor := Lineage{
		N: 0,
		W: 1.0,
		U: cfg.TotalMutationRate,
		Secondary: SecondaryLineageData{
			Lambda:          1.0 / cfg.Inner.InitialBeneficialMutationSize,
			ID:              0,
			ParentID:        0,
			Marker:          0,
			AccumulatedMuts: 0,
		},
	}

	n0 := math.Round(cfg.Inner.MaxPopSize * cfg.DilutionCoefficient / float64(cfg.Inner.Markers))

	for m := uint16(1); m <= cfg.Inner.Markers; m++ {
		markerMutant := ancestor
		markerMutant.N = n0
		markerMutant.Secondary.Marker = m

		output.PushChild(markerMutant, ancestor, 1, mutations)
	}

	return output
}

// MutationType enumerates the possible effects a mutation can have.
type MutationType int

const (
	Beneficial MutationType = iota
	Neutral
	Deleterious
	MutationRate
)

func (t MutationType) String() string {
	switch t {
	case Beneficial:
		return "beneficial"
	case Neutral:
		return "neutral"
	case Deleterious:
		return "deleterious"
	case MutationRate:
		return "mutation_rate"
	default:
		return "unknown"
	}
}
