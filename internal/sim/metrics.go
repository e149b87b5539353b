package sim

import (
	"time"

	"sched-os/backend/internal/proc"
)

// ProcessResult holds the timing metrics for one finished process.
type ProcessResult struct {
	PID            int           `json:"pid"`
	ArrivalTime    time.Duration `json:"arrival_time"`
	TotalWork      time.Duration `json:"total_work"`
	FirstStartTime time.Duration `json:"first_start_time"`
	CompletionTime time.Duration `json:"completion_time"`
	TurnaroundTime time.Duration `json:"turnaround_time"`
	WaitingTime    time.Duration `json:"waiting_time"`
}

// RunResult aggregates a whole simulation run.
type RunResult struct {
	TotalTime         time.Duration   `json:"total_time"`
	Processes         []ProcessResult `json:"processes"`
	AverageWaiting    time.Duration   `json:"average_waiting"`
	AverageTurnaround time.Duration   `json:"average_turnaround"`
	// Throughput is completed processes per time unit.
	Throughput float64 `json:"throughput"`
}

type accounting struct {
	order     []int
	arrival   map[int]time.Duration
	totalWork map[int]time.Duration
	started   map[int]time.Duration
	completed map[int]time.Duration
}

func newAccounting(processes []*proc.Process) *accounting {
	a := &accounting{
		arrival:   make(map[int]time.Duration),
		totalWork: make(map[int]time.Duration),
		started:   make(map[int]time.Duration),
		completed: make(map[int]time.Duration),
	}
	for _, p := range processes {
		a.order = append(a.order, p.PID)
		a.arrival[p.PID] = p.ArrivalTime
		a.totalWork[p.PID] = p.TimeToCompletion + p.CumulativeTimeRan
	}
	return a
}

func (a *accounting) markStarted(pid int, now time.Duration) {
	if _, ok := a.started[pid]; !ok {
		a.started[pid] = now
	}
}

func (a *accounting) markCompleted(pid int, now time.Duration) {
	a.completed[pid] = now
}

func (a *accounting) result(totalTime time.Duration) RunResult {
	res := RunResult{TotalTime: totalTime}

	var sumWait, sumTurnaround time.Duration
	for _, pid := range a.order {
		completion := a.completed[pid]
		turnaround := completion - a.arrival[pid]
		waiting := turnaround - a.totalWork[pid]
		if waiting < 0 {
			waiting = 0
		}
		res.Processes = append(res.Processes, ProcessResult{
			PID:            pid,
			ArrivalTime:    a.arrival[pid],
			TotalWork:      a.totalWork[pid],
			FirstStartTime: a.started[pid],
			CompletionTime: completion,
			TurnaroundTime: turnaround,
			WaitingTime:    waiting,
		})
		sumWait += waiting
		sumTurnaround += turnaround
	}

	if n := len(res.Processes); n > 0 {
		res.AverageWaiting = sumWait / time.Duration(n)
		res.AverageTurnaround = sumTurnaround / time.Duration(n)
		if totalTime > 0 {
			res.Throughput = float64(n) / (float64(totalTime) / float64(proc.Unit))
		}
	}
	return res
}
