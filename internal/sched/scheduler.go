package sched

import (
	"time"

	"sched-os/backend/internal/proc"
)

// Scheduler is the contract every scheduling algorithm implements. The CPU
// driver runs the select/run/return cycle: check HasProcesses, take a process
// with GetNextProcess, ask GetAllottedTime for its slice, simulate running it,
// and hand it back through AddProcess unless it terminated. Preemption is
// cooperative; the driver enforces the allotted time.
//
// Schedulers are single-threaded decision components. Only one process may be
// held outside the scheduler at a time; driving one instance from several CPUs
// needs external locking around the whole cycle.
type Scheduler interface {
	// GetAllottedTime returns the maximum contiguous time the process may run
	// before it must yield. Pure: it never mutates scheduler state and always
	// returns a positive duration.
	GetAllottedTime(p *proc.Process) time.Duration

	// AddProcess inserts a process into the waiting structure, whether it is
	// newly arrived, preempted, or back from an I/O wait. Duplicate PIDs are
	// the caller's problem.
	AddProcess(p *proc.Process)

	// GetNextProcess removes and returns the process selected to run next.
	// Returns ErrEmptyScheduler when nothing is waiting.
	GetNextProcess() (*proc.Process, error)

	// HasProcesses reports whether at least one process is waiting. It never
	// mutates state.
	HasProcesses() bool
}

// Clock supplies the current simulated time. The MLFQ scheduler uses it to
// decide when a promotion boundary has passed.
type Clock interface {
	Now() time.Duration
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() time.Duration

func (f ClockFunc) Now() time.Duration { return f() }
