package sim

// Mutation is a tracked allele: the fitness change it conferred and the
// population-size history of every lineage descended from it that is
// still under active tracking.
type Mutation struct {
	// ID is the id of the lineage this mutation created.
	ID uint64 `json:"id"`
	// BackgroundID is the id of the parent lineage it arose on. This is a
	// soft reference: once the background mutation is pruned, it is never
	// looked up again, and descendants roll up to their nearest
	// still-tracked ancestor instead (see UpdateSizes).
	BackgroundID uint64 `json:"background_id"`
	// DeltaW is child.W/parent.W - 1, the multiplicative fitness change.
	DeltaW float64 `json:"delta_W"`
	// DeltaU is the multiplicative mutation-rate change; always 0 in the
	// supported subset (no mutation-rate mutations).
	DeltaU float64 `json:"delta_U"`
	// FirstTransfer is the transfer at which this mutation first appeared.
	FirstTransfer uint32 `json:"first_transfer"`
	// N is the population-size history, one entry per transfer starting
	// at FirstTransfer, appended for as long as the mutation stays
	// tracked.
	N []float64 `json:"N"`
	// Order is the number of elementary mutations this record fuses
	// (>= 1; >= 2 when multiple mutations hit the same new individual).
	Order uint32 `json:"order"`

	// justUpdated is a transient per-transfer flag used by UpdateSizes.
	justUpdated bool
}

// MutationsData maps lineage id to the active Mutation it corresponds to,
// plus the mutations most recently pruned from tracking.
type MutationsData struct {
	// Muts holds mutations currently under active tracking, keyed by id.
	Muts map[uint64]*Mutation
	// PrunedMuts holds mutations pruned since the last time the driver
	// cleared this slice (at the start of each NextState call).
	PrunedMuts []Mutation

	onTransfer uint32
}

// NewMutationsData returns a freshly initialized, empty MutationsData.
func NewMutationsData() *MutationsData {
	return &MutationsData{Muts: make(map[uint64]*Mutation)}
}

// SetTransfer records which transfer subsequently registered mutations
// belong to. Must be called every time the transfer counter changes.
func (m *MutationsData) SetTransfer(transfer uint32) {
	m.onTransfer = transfer
}

// register inserts a new Mutation for child, computed relative to parent.
func (m *MutationsData) register(child Lineage, parent Lineage, mutationOrder uint32) {
	mutation := &Mutation{
		ID:            child.Secondary.ID,
		BackgroundID:  parent.Secondary.ID,
		DeltaW:        child.W/parent.W - 1.0,
		DeltaU:        0,
		FirstTransfer: m.onTransfer,
		N:             nil,
		Order:         mutationOrder,
		justUpdated:   false,
	}
	m.Muts[child.Secondary.ID] = mutation
}

// UpdateSizes performs the end-of-transfer accounting: every tracked
// mutation's N history gets one new entry
// (or has N's last entry incremented) equal to the summed population of
// every extant lineage descended from it, found by walking each
// lineage's background chain until an untracked id is hit. Mutations
// that are extinct (never walked to) or fixed (last N entry equals the
// total population, within floating-point epsilon) are pruned into
// PrunedMuts.
func (m *MutationsData) UpdateSizes(population *LineagesData) {
	if population.Len() != len(population.Secondary) {
		panic("UpdateSizes: column length mismatch")
	}

	var sumN float64
	for _, n := range population.N {
		sumN += n
	}

	for _, mutation := range m.Muts {
		mutation.justUpdated = false
	}

	for i, secondary := range population.Secondary {
		n := population.N[i]
		id := secondary.ID
		for {
			mutation, ok := m.Muts[id]
			if !ok {
				break
			}
			if mutation.justUpdated {
				mutation.N[len(mutation.N)-1] += n
			} else {
				mutation.N = append(mutation.N, n)
				mutation.justUpdated = true
			}
			id = mutation.BackgroundID
		}
	}

	for id, mutation := range m.Muts {
		fixed := len(mutation.N) > 0 && floatsNearlyEqual(mutation.N[len(mutation.N)-1], sumN)
		if !mutation.justUpdated || fixed {
			m.PrunedMuts = append(m.PrunedMuts, *mutation)
			delete(m.Muts, id)
		}
	}
}

func floatsNearlyEqual(a, b float64) bool {
	const epsilon = 2.220446049250313e-16 // float64 machine epsilon, matches Rust's f64::EPSILON
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < epsilon
}
