package output

import (
	"encoding/json"
	"fmt"
	"io"

	"steps/internal/cfg"
	"steps/internal/sim"
)

// SequencingWriter writes one newline-delimited JSON record per mutation,
// recording every pruned mutation each transfer (so none are ever lost)
// plus every still-active mutation at the end of a replicate.
// Successive replicates are separated by a blank line.
type SequencingWriter struct {
	w             io.Writer
	lastReplicate uint32
}

// NewSequencingWriter writes the header to w and returns a ready
// SequencingWriter.
func NewSequencingWriter(w io.Writer, simCfg cfg.SimConfig) (*SequencingWriter, error) {
	if err := writeHeader(w, simCfg, ModeSequencing); err != nil {
		return nil, err
	}
	return &SequencingWriter{w: w, lastReplicate: 1}, nil
}

func (s *SequencingWriter) recordMutation(replicate uint32, mutation *sim.Mutation) error {
	if replicate != s.lastReplicate {
		if _, err := io.WriteString(s.w, "\n"); err != nil {
			return err
		}
		s.lastReplicate = replicate
	}
	if err := json.NewEncoder(s.w).Encode(mutation); err != nil {
		return fmt.Errorf("output: write mutation record: %w", err)
	}
	return nil
}

// RecordPrunedMutations writes every mutation pruned from mutations since
// it was last cleared. Call this every transfer so no pruned mutation is
// ever missed.
func (s *SequencingWriter) RecordPrunedMutations(replicate uint32, mutations *sim.MutationsData) error {
	for i := range mutations.PrunedMuts {
		if err := s.recordMutation(replicate, &mutations.PrunedMuts[i]); err != nil {
			return err
		}
	}
	return nil
}

// RecordActiveMutations writes every mutation still under active tracking.
// Active mutations may later be pruned and recorded again, so this should
// only be called at the end of a replicate to avoid duplicate records.
func (s *SequencingWriter) RecordActiveMutations(replicate uint32, mutations *sim.MutationsData) error {
	for _, mutation := range mutations.Muts {
		if err := s.recordMutation(replicate, mutation); err != nil {
			return err
		}
	}
	return nil
}
