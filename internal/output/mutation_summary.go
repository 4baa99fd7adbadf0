package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"steps/internal/cfg"
	"steps/internal/sim"
)

// MutationSummaryWriter writes one CSV row per (mutation, tracked
// transfer), unpacking each mutation's population-size history into
// individual rows (replicate, transfer, ID, N), provided as a
// supplementary output alongside the raw and sequencing streams.
type MutationSummaryWriter struct {
	w *csv.Writer
}

// NewMutationSummaryWriter writes the header to w and returns a ready
// MutationSummaryWriter.
func NewMutationSummaryWriter(w io.Writer, simCfg cfg.SimConfig) (*MutationSummaryWriter, error) {
	if err := writeHeader(w, simCfg, ModeMutationSummary); err != nil {
		return nil, err
	}
	csvW := csv.NewWriter(w)
	if err := csvW.Write([]string{"replicate", "transfer", "ID", "N"}); err != nil {
		return nil, fmt.Errorf("output: write mutation summary header: %w", err)
	}
	return &MutationSummaryWriter{w: csvW}, nil
}

func (m *MutationSummaryWriter) recordMutation(replicate uint32, mutation *sim.Mutation) error {
	for i, n := range mutation.N {
		row := []string{
			strconv.FormatUint(uint64(replicate), 10),
			strconv.FormatUint(uint64(mutation.FirstTransfer+uint32(i)), 10),
			strconv.FormatUint(mutation.ID, 10),
			f64(n),
		}
		if err := m.w.Write(row); err != nil {
			return fmt.Errorf("output: write mutation summary row: %w", err)
		}
	}
	return nil
}

// RecordPrunedMutations writes a row for every (transfer, population size)
// pair in every mutation pruned from mutations since it was last cleared.
func (m *MutationSummaryWriter) RecordPrunedMutations(replicate uint32, mutations *sim.MutationsData) error {
	for i := range mutations.PrunedMuts {
		if err := m.recordMutation(replicate, &mutations.PrunedMuts[i]); err != nil {
			return err
		}
	}
	return nil
}

// RecordActiveMutations writes a row for every (transfer, population size)
// pair in every mutation still under active tracking.
func (m *MutationSummaryWriter) RecordActiveMutations(replicate uint32, mutations *sim.MutationsData) error {
	for _, mutation := range mutations.Muts {
		if err := m.recordMutation(replicate, mutation); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes any buffered CSV output to the underlying writer.
func (m *MutationSummaryWriter) Flush() error {
	m.w.Flush()
	return m.w.Error()
}
