package main

import (
	"context"
	"fmt"

	"steps/internal/cfg"
	"steps/internal/output"
	"steps/internal/sim"
	"steps/internal/storage"
)

// runSimulation drives sim.Driver synchronously to completion, broadcasting
// every snapshot through group and, if store is non-nil, archiving each
// finished replicate's final lineage state under runIDPrefix-<replicate>.
//
// This is a single goroutine end to end: the driver owns the only RNG draw
// sequence in the process, and nothing here may run concurrently with it
// without breaking run-to-run reproducibility.
func runSimulation(ctx context.Context, simCfg cfg.SimConfig, outCfg cfg.OutputConfig, group *output.Group, store storage.Store, runIDPrefix string) error {
	driver, err := sim.NewDriver(simCfg, outCfg.ShouldTrackMutations())
	if err != nil {
		return fmt.Errorf("construct simulation: %w", err)
	}

	var prunedThisReplicate []sim.Mutation
	for {
		state, ok := driver.NextState()
		if !ok {
			break
		}
		if store != nil && state.Mutations != nil {
			prunedThisReplicate = append(prunedThisReplicate, state.Mutations.PrunedMuts...)
		}

		if err := group.RecordLineages(state.Replicate, state.Transfer, state.Lineages); err != nil {
			return fmt.Errorf("record lineages: %w", err)
		}

		if state.Mutations != nil {
			if err := group.RecordPrunedMutations(state.Replicate, state.Mutations); err != nil {
				return fmt.Errorf("record pruned mutations: %w", err)
			}
			if state.EndOfReplicate {
				if err := group.RecordActiveMutations(state.Replicate, state.Mutations); err != nil {
					return fmt.Errorf("record active mutations: %w", err)
				}
			}
		}

		if state.EndOfReplicate && store != nil {
			if err := archiveReplicate(ctx, store, runIDPrefix, state, prunedThisReplicate); err != nil {
				return fmt.Errorf("archive replicate %d: %w", state.Replicate, err)
			}
			prunedThisReplicate = nil
		}
	}

	return nil
}

func archiveReplicate(ctx context.Context, store storage.Store, runIDPrefix string, state sim.Snapshot, pruned []sim.Mutation) error {
	var mutations []sim.Mutation
	if state.Mutations != nil {
		for _, mutation := range state.Mutations.Muts {
			mutations = append(mutations, *mutation)
		}
		mutations = append(mutations, pruned...)
	}

	runID := fmt.Sprintf("%s-%d", runIDPrefix, state.Replicate)
	run := storage.NewRunRecord(runID, state.Replicate, state.Lineages, mutations)
	return store.SaveRun(ctx, run)
}
