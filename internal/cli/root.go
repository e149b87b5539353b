package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sched-os/backend/internal/sched"
)

// NewRootCmd creates the root cobra command for the schedsim CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "schedsim",
		Short:        "CPU scheduler simulator",
		Long:         "schedsim runs scheduling scenarios against the FCFS, round-robin, MLFQ, lottery and CFS algorithms and reports per-process timing.",
		SilenceUsage: true,
	}

	root.AddCommand(
		newRunCmd(),
		newAlgorithmsCmd(),
	)

	return root
}

func newAlgorithmsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List the available scheduling algorithms",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range sched.AvailableAlgorithms() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
