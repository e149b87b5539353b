package cli

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"sched-os/backend/internal/proc"
	"sched-os/backend/internal/sched"
	"sched-os/backend/internal/sim"
)

func newRunCmd() *cobra.Command {
	var (
		flagAlgorithm string
		flagQuantum   int
		flagSeed      int64
	)

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a scheduling scenario and print the timing report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := LoadScenario(args[0])
			if err != nil {
				return err
			}

			// Flags override the scenario file.
			if flagAlgorithm != "" {
				scenario.Algorithm = flagAlgorithm
			}
			if flagQuantum > 0 {
				scenario.Quantum = flagQuantum
			}
			if flagSeed != 0 {
				scenario.Seed = flagSeed
			}
			if scenario.Algorithm == "" {
				return fmt.Errorf("no algorithm given (scenario file or --algorithm)")
			}

			seed := scenario.Seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			rng := rand.New(rand.NewSource(seed))
			clock := sim.NewClock()

			cfg := sched.DefaultConfig()
			cfg.Clock = clock
			cfg.Rand = rng
			if scenario.Quantum > 0 {
				cfg.Quantum = time.Duration(scenario.Quantum) * proc.Unit
			}

			scheduler, err := sched.New(scenario.Algorithm, cfg)
			if err != nil {
				return err
			}

			processes := make([]*proc.Process, 0, len(scenario.Processes))
			for _, spec := range scenario.Processes {
				p := proc.New(
					time.Duration(spec.Arrival)*proc.Unit,
					time.Duration(spec.Work)*proc.Unit,
					spec.IOProbability,
				)
				p.Tickets = spec.Tickets
				processes = append(processes, p)
			}

			cpu := sim.NewCPU(scheduler, clock, rng)
			result := cpu.Run(processes)

			fmt.Fprintf(cmd.OutOrStdout(), "%s (seed %d)\n", scenario.Algorithm, seed)
			renderReport(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVar(&flagAlgorithm, "algorithm", "", "Scheduling algorithm (overrides scenario)")
	cmd.Flags().IntVar(&flagQuantum, "quantum", 0, "Quantum in time units (overrides scenario)")
	cmd.Flags().Int64Var(&flagSeed, "seed", 0, "Random seed (overrides scenario; 0 means time-seeded)")

	return cmd
}
