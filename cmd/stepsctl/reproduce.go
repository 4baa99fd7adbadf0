package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"steps/internal/cfg"
	"steps/internal/output"
)

func newReproduceCmd() *cobra.Command {
	var outCfg cfg.OutputConfig
	var storeKind, dbPath, runID string

	cmd := &cobra.Command{
		Use:   "reproduce <input-path>",
		Short: "Reproduce results of a previous simulation run",
		Args:  cobra.ExactArgs(1),
	}

	outCfg.RegisterFlags(cmd.Flags())
	registerStoreFlags(cmd.Flags(), &storeKind, &dbPath, &runID)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		simCfg, err := extractSimConfig(args[0])
		if err != nil {
			return fmt.Errorf("read simulation options for reproduction: %w", err)
		}
		if simCfg.Seed == nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Note: the previous run had no seed; results will not be identical.")
		}

		store, closeStore, err := openStore(cmd.Context(), storeKind, dbPath)
		if err != nil {
			return err
		}
		defer closeStore()

		setup, err := buildOutputGroup(outCfg, simCfg)
		if err != nil {
			return err
		}
		defer func() { _ = setup.finish() }()

		if err := runSimulation(cmd.Context(), simCfg, outCfg, setup.group, store, runID); err != nil {
			return err
		}
		return setup.finish()
	}

	return cmd
}

// extractSimConfig reads the SimConfig header line previously written by
// writeHeader out of the file at path.
func extractSimConfig(path string) (cfg.SimConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return cfg.SimConfig{}, err
	}
	defer file.Close()

	_, simCfg, err := output.ReadHeader(file)
	if err != nil {
		return cfg.SimConfig{}, err
	}
	return simCfg, nil
}
