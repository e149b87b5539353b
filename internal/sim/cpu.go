package sim

import (
	"math/rand"
	"sort"
	"time"

	"sched-os/backend/internal/proc"
	"sched-os/backend/internal/sched"
)

// CPU drives a scheduler through the select/run/return cycle on the shared
// simulated clock: take the next process, run it for at most its allotted
// time, then hand it back unless it terminated or yielded for I/O. One CPU
// owns one scheduler instance; nothing here is safe for concurrent use.
type CPU struct {
	scheduler sched.Scheduler
	clock     *Clock
	io        *IODevice
	rng       *rand.Rand
}

func NewCPU(s sched.Scheduler, clock *Clock, rng *rand.Rand) *CPU {
	if clock == nil {
		clock = NewClock()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &CPU{
		scheduler: s,
		clock:     clock,
		io:        NewIODevice(rng),
		rng:       rng,
	}
}

// Run admits the given processes at their arrival times and drives the
// scheduler until every process has terminated, returning per-process and
// aggregate metrics.
func (c *CPU) Run(processes []*proc.Process) RunResult {
	pending := make([]*proc.Process, len(processes))
	copy(pending, processes)
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].ArrivalTime < pending[j].ArrivalTime
	})

	acct := newAccounting(processes)

	for len(pending) > 0 || c.io.Pending() || c.scheduler.HasProcesses() {
		pending = c.admitArrived(pending)

		for _, p := range c.io.Completed(c.clock.Now()) {
			c.scheduler.AddProcess(p)
		}

		if !c.scheduler.HasProcesses() {
			// Idle until the next arrival or I/O completion.
			c.clock.Advance(proc.Unit)
			continue
		}

		p, err := c.scheduler.GetNextProcess()
		if err != nil {
			// HasProcesses was just true; only reachable if the scheduler
			// breaks its own contract.
			panic(err)
		}
		slice := c.scheduler.GetAllottedTime(p)

		p.SetState(proc.StateRunning)
		acct.markStarted(p.PID, c.clock.Now())

		ran := p.RunFor(slice, c.rng)
		c.clock.Advance(ran)

		switch {
		case p.State() == proc.StateWaiting:
			c.io.AddWaiting(p, c.clock.Now())
		case p.IsTerminated():
			acct.markCompleted(p.PID, c.clock.Now())
		default:
			p.SetState(proc.StateReady)
			c.scheduler.AddProcess(p)
		}
	}

	return acct.result(c.clock.Now())
}

func (c *CPU) admitArrived(pending []*proc.Process) []*proc.Process {
	now := c.clock.Now()
	for len(pending) > 0 && pending[0].ArrivalTime <= now {
		c.scheduler.AddProcess(pending[0])
		pending = pending[1:]
	}
	return pending
}
