package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	"sched-os/backend/internal/proc"
	"sched-os/backend/internal/sim"
)

// renderReport writes the per-process timing table with aggregate footer.
// Durations are printed in scheduler time units.
func renderReport(w io.Writer, result sim.RunResult) {
	rows := make([][]string, 0, len(result.Processes))
	for _, p := range result.Processes {
		rows = append(rows, []string{
			fmt.Sprint(p.PID),
			fmt.Sprint(units(p.ArrivalTime)),
			fmt.Sprint(units(p.TotalWork)),
			fmt.Sprint(units(p.FirstStartTime)),
			fmt.Sprint(units(p.CompletionTime)),
			fmt.Sprint(units(p.WaitingTime)),
			fmt.Sprint(units(p.TurnaroundTime)),
		})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PID", "Arrival", "Work", "Start", "Exit", "Wait", "Turnaround"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "",
		fmt.Sprintf("Total\n%d", units(result.TotalTime)),
		fmt.Sprintf("Average\n%d", units(result.AverageWaiting)),
		fmt.Sprintf("Average\n%d", units(result.AverageTurnaround))})
	table.Render()

	fmt.Fprintf(w, "Throughput: %.3f processes/unit\n", result.Throughput)
}

func units(d time.Duration) int64 {
	return int64(d / proc.Unit)
}
