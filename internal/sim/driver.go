package sim

import (
	"math/rand"

	"steps/internal/cfg"
)

// Driver runs one simulation: replicates, transfers within a replicate,
// mutation tracking, and a single RNG owned exclusively by it. It exposes
// a synchronous pull interface — NextState — for an external collaborator
// to drive in a loop.
type Driver struct {
	replicate uint32
	transfer  uint32

	cfg *Config

	lineages  *LineagesData
	mutations *MutationsData // nil when mutation tracking is disabled

	rng *rand.Rand
}

// NewDriver constructs a Driver from an external SimConfig. trackMutations
// enables the mutation provenance tracker. Returns an error if the config
// is invalid; never panics on bad user input.
func NewDriver(c cfg.SimConfig, trackMutations bool) (*Driver, error) {
	internal, err := NewConfig(c)
	if err != nil {
		return nil, err
	}

	var mutations *MutationsData
	if trackMutations {
		mutations = NewMutationsData()
	}

	return &Driver{
		cfg:       internal,
		mutations: mutations,
		rng:       NewRNG(c.Seed),
	}, nil
}

// Snapshot is the state of the simulation exposed after each advance.
type Snapshot struct {
	Replicate      uint32
	Transfer       uint32
	EndOfReplicate bool
	Lineages       *LineagesData
	Mutations      *MutationsData // nil when tracking is disabled
}

// CurrentState returns the current snapshot, or ok=false if the driver
// hasn't been advanced yet or Replicates is 0.
func (d *Driver) CurrentState() (Snapshot, bool) {
	if d.replicate == 0 {
		return Snapshot{}, false
	}
	return Snapshot{
		Replicate:      d.replicate,
		Transfer:       d.transfer,
		EndOfReplicate: d.transfer == d.cfg.Inner.Transfers,
		Lineages:       d.lineages,
		Mutations:      d.mutations,
	}, true
}

// IsFinished reports whether the simulation has no more transfers to run;
// when true, NextState will return ok=false.
func (d *Driver) IsFinished() bool {
	return d.replicate == d.cfg.Inner.Replicates &&
		(d.replicate == 0 || d.transfer == d.cfg.Inner.Transfers)
}

// NextState advances the simulation by one transfer, or to the start of
// the next replicate at a replicate boundary, and returns the resulting
// snapshot. Returns ok=false once the simulation is finished, leaving the
// state unchanged.
func (d *Driver) NextState() (Snapshot, bool) {
	if state, ok := d.CurrentState(); ok && !state.EndOfReplicate {
		d.transfer++
	} else if d.replicate < d.cfg.Inner.Replicates {
		d.replicate++
		d.transfer = 0
	} else {
		return Snapshot{}, false
	}

	if d.mutations != nil {
		// Clear before mechanics so the caller only ever observes the
		// mutations pruned during the step that just ran.
		d.mutations.PrunedMuts = nil
		d.mutations.SetTransfer(d.transfer)
	}

	if d.transfer == 0 {
		d.startReplicate()
	} else {
		d.performTransfer()
	}

	return d.CurrentState()
}

func (d *Driver) startReplicate() {
	if d.mutations != nil {
		d.mutations = NewMutationsData()
	}
	d.lineages = ForSimConfig(d.cfg, d.mutations)

	if d.mutations != nil {
		d.mutations.UpdateSizes(d.lineages)
	}
}

func (d *Driver) performTransfer() {
	for i := 0; i < d.cfg.Phase1Doublings; i++ {
		growthPhase1(d.cfg, d.lineages, d.mutations, d.rng)
	}

	growthPhase2(d.cfg, &d.lineages, d.mutations, d.rng)

	if d.mutations != nil {
		d.mutations.UpdateSizes(d.lineages)
	}
}
