package output

import (
	"testing"

	"steps/internal/sim"
)

type recordingLineagesWriter struct {
	transfers []uint32
}

func (r *recordingLineagesWriter) RecordLineages(replicate, transfer uint32, lineages *sim.LineagesData) error {
	r.transfers = append(r.transfers, transfer)
	return nil
}

type recordingMutationsWriter struct {
	prunedCalls, activeCalls int
}

func (r *recordingMutationsWriter) RecordPrunedMutations(replicate uint32, mutations *sim.MutationsData) error {
	r.prunedCalls++
	return nil
}

func (r *recordingMutationsWriter) RecordActiveMutations(replicate uint32, mutations *sim.MutationsData) error {
	r.activeCalls++
	return nil
}

func TestGroupAppliesSamplingFrequencyOnce(t *testing.T) {
	g := NewGroup(2)
	w := &recordingLineagesWriter{}
	g.AddLineagesWriter(w)

	lineages := &sim.LineagesData{}
	for transfer := uint32(0); transfer <= 5; transfer++ {
		if err := g.RecordLineages(1, transfer, lineages); err != nil {
			t.Fatalf("RecordLineages: %v", err)
		}
	}

	want := []uint32{0, 2, 4}
	if len(w.transfers) != len(want) {
		t.Fatalf("recorded transfers = %v, want %v", w.transfers, want)
	}
	for i, v := range want {
		if w.transfers[i] != v {
			t.Fatalf("recorded transfers = %v, want %v", w.transfers, want)
		}
	}
}

func TestNewGroupTreatsZeroFrequencyAsOne(t *testing.T) {
	g := NewGroup(0)
	w := &recordingLineagesWriter{}
	g.AddLineagesWriter(w)

	lineages := &sim.LineagesData{}
	for transfer := uint32(0); transfer <= 2; transfer++ {
		if err := g.RecordLineages(1, transfer, lineages); err != nil {
			t.Fatalf("RecordLineages: %v", err)
		}
	}
	if len(w.transfers) != 3 {
		t.Fatalf("%d transfers recorded, want 3 (every transfer)", len(w.transfers))
	}
}

func TestGroupBroadcastsMutationsToAllWriters(t *testing.T) {
	g := NewGroup(1)
	w1, w2 := &recordingMutationsWriter{}, &recordingMutationsWriter{}
	g.AddMutationsWriter(w1)
	g.AddMutationsWriter(w2)

	mutations := sim.NewMutationsData()
	if err := g.RecordPrunedMutations(1, mutations); err != nil {
		t.Fatalf("RecordPrunedMutations: %v", err)
	}
	if err := g.RecordActiveMutations(1, mutations); err != nil {
		t.Fatalf("RecordActiveMutations: %v", err)
	}

	for i, w := range []*recordingMutationsWriter{w1, w2} {
		if w.prunedCalls != 1 || w.activeCalls != 1 {
			t.Fatalf("writer %d got pruned=%d active=%d, want 1 and 1", i, w.prunedCalls, w.activeCalls)
		}
	}
}
