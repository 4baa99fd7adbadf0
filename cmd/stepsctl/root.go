package main

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "stepsctl",
		Short:        "Serially transferred evolving population simulator",
		SilenceUsage: true,
	}

	root.AddCommand(
		newSimulateCmd(),
		newReproduceCmd(),
		newRunsCmd(),
		newLineageCmd(),
	)

	return root
}
