package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"steps/internal/cfg"
	"steps/internal/storage"
)

func newSimulateCmd() *cobra.Command {
	simCfg := cfg.DefaultSimConfig()
	var outCfg cfg.OutputConfig
	var storeKind, dbPath, runID string

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run simulations from scratch",
	}

	simCfg.RegisterFlags(cmd.Flags())
	applySeed := simCfg.ApplySeedFlag(cmd.Flags())
	outCfg.RegisterFlags(cmd.Flags())
	registerStoreFlags(cmd.Flags(), &storeKind, &dbPath, &runID)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		applySeed()

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

func registerStoreFlags(fs *pflag.FlagSet, storeKind, dbPath, runID *string) {
	fs.StringVar(storeKind, "store", "memory", "finished-run archive backend: memory|sqlite")
	fs.StringVar(dbPath, "db-path", "steps.db", "sqlite database path, when --store=sqlite")
	fs.StringVar(runID, "run-id", "run", "identifying prefix for archived replicates")
}

func openStore(ctx context.Context, storeKind, dbPath string) (storage.Store, func(), error) {
	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, nil, err
	}
	return store, func() { _ = storage.CloseIfSupported(store) }, nil
}
