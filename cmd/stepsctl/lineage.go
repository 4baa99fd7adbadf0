package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newLineageCmd() *cobra.Command {
	var storeKind, dbPath, runID string

	cmd := &cobra.Command{
		Use:   "lineage <run-id>",
		Short: "Print the archived lineage and mutation data for a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openStore(cmd.Context(), storeKind, dbPath)
			if err != nil {
				return err
			}
			defer closeStore()

			run, ok, err := store.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no archived run %q", args[0])
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(run)
		},
	}

	registerStoreFlags(cmd.Flags(), &storeKind, &dbPath, &runID)
	return cmd
}
