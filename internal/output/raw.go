package output

import (
	"encoding/json"
	"fmt"
	"io"

	"steps/internal/cfg"
	"steps/internal/sim"
)

// rawRecord is the tuple-shaped JSON record written by RawWriter, matching
// a compact (r, t, lineages) triple.
type rawRecord struct {
	Replicate uint32            `json:"r"`
	Transfer  uint32            `json:"t"`
	Lineages  *sim.LineagesData `json:"lineages"`
}

// RawWriter writes one newline-delimited JSON record per call to
// RecordLineages, containing the full columnar LineagesData.
// Sampling is the caller's responsibility (see Group), so every call here
// is written unconditionally.
type RawWriter struct {
	w io.Writer
}

// NewRawWriter writes the header to w and returns a ready RawWriter.
func NewRawWriter(w io.Writer, simCfg cfg.SimConfig) (*RawWriter, error) {
	if err := writeHeader(w, simCfg, ModeRaw); err != nil {
		return nil, err
	}
	return &RawWriter{w: w}, nil
}

// RecordLineages writes lineages as one JSON line.
func (r *RawWriter) RecordLineages(replicate, transfer uint32, lineages *sim.LineagesData) error {
	record := rawRecord{Replicate: replicate, Transfer: transfer, Lineages: lineages}
	if err := json.NewEncoder(r.w).Encode(record); err != nil {
		return fmt.Errorf("output: write raw record: %w", err)
	}
	return nil
}
