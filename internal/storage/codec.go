package storage

import (
	"encoding/json"
	"errors"

	"steps/internal/sim"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

// RunRecord archives a single finished replicate: its final lineage
// population and, if mutation tracking was enabled, every mutation
// observed during it (pruned mutations accumulated transfer by transfer,
// plus whatever was still active at the end).
type RunRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`

	RunID     string            `json:"run_id"`
	Replicate uint32            `json:"replicate"`
	Lineages  *sim.LineagesData `json:"lineages"`
	Mutations []sim.Mutation    `json:"mutations,omitempty"`
}

// NewRunRecord stamps a RunRecord with the current schema/codec versions.
func NewRunRecord(runID string, replicate uint32, lineages *sim.LineagesData, mutations []sim.Mutation) RunRecord {
	return RunRecord{
		SchemaVersion: CurrentSchemaVersion,
		CodecVersion:  CurrentCodecVersion,
		RunID:         runID,
		Replicate:     replicate,
		Lineages:      lineages,
		Mutations:     mutations,
	}
}

func EncodeRun(r RunRecord) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeRun(data []byte) (RunRecord, error) {
	var run RunRecord
	if err := json.Unmarshal(data, &run); err != nil {
		return RunRecord{}, err
	}
	if run.SchemaVersion != CurrentSchemaVersion || run.CodecVersion != CurrentCodecVersion {
		return RunRecord{}, ErrVersionMismatch
	}
	return run, nil
}
