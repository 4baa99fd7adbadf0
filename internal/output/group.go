package output

import "steps/internal/sim"

// LineagesRecorder accepts lineage snapshots at each sampled transfer.
type LineagesRecorder interface {
	RecordLineages(replicate, transfer uint32, lineages *sim.LineagesData) error
}

// MutationsRecorder accepts pruned-mutation and end-of-replicate
// active-mutation batches.
type MutationsRecorder interface {
	RecordPrunedMutations(replicate uint32, mutations *sim.MutationsData) error
	RecordActiveMutations(replicate uint32, mutations *sim.MutationsData) error
}

// Group broadcasts a Driver's snapshots to every configured writer,
// applying the lineage sampling frequency once rather than in each
// individual writer.
type Group struct {
	samplingFrequency uint32
	lineageWriters    []LineagesRecorder
	mutationWriters   []MutationsRecorder
}

// NewGroup returns a Group that samples lineage output every
// samplingFrequency transfers (0 is treated as 1, i.e. every transfer).
func NewGroup(samplingFrequency uint32) *Group {
	if samplingFrequency == 0 {
		samplingFrequency = 1
	}
	return &Group{samplingFrequency: samplingFrequency}
}

// AddLineagesWriter registers a writer to receive sampled lineage snapshots.
func (g *Group) AddLineagesWriter(w LineagesRecorder) {
	g.lineageWriters = append(g.lineageWriters, w)
}

// AddMutationsWriter registers a writer to receive mutation batches.
func (g *Group) AddMutationsWriter(w MutationsRecorder) {
	g.mutationWriters = append(g.mutationWriters, w)
}

// RecordLineages forwards lineages to every registered lineage writer, if
// transfer is a multiple of the group's sampling frequency.
func (g *Group) RecordLineages(replicate, transfer uint32, lineages *sim.LineagesData) error {
	if transfer%g.samplingFrequency != 0 {
		return nil
	}
	for _, w := range g.lineageWriters {
		if err := w.RecordLineages(replicate, transfer, lineages); err != nil {
			return err
		}
	}
	return nil
}

// RecordPrunedMutations forwards a pruned-mutation batch to every
// registered mutation writer. Call every transfer so no pruned mutation
// is ever missed.
func (g *Group) RecordPrunedMutations(replicate uint32, mutations *sim.MutationsData) error {
	for _, w := range g.mutationWriters {
		if err := w.RecordPrunedMutations(replicate, mutations); err != nil {
			return err
		}
	}
	return nil
}

// RecordActiveMutations forwards the still-active mutations to every
// registered mutation writer. Call only at the end of a replicate.
func (g *Group) RecordActiveMutations(replicate uint32, mutations *sim.MutationsData) error {
	for _, w := range g.mutationWriters {
		if err := w.RecordActiveMutations(replicate, mutations); err != nil {
			return err
		}
	}
	return nil
}
