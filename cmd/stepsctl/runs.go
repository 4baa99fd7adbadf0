package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRunsCmd() *cobra.Command {
	var storeKind, dbPath, runID string

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List archived finished replicates",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openStore(cmd.Context(), storeKind, dbPath)
			if err != nil {
				return err
			}
			defer closeStore()

			ids, err := store.ListRuns(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}

	registerStoreFlags(cmd.Flags(), &storeKind, &dbPath, &runID)
	return cmd
}
