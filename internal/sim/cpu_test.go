package sim

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sched-os/backend/internal/proc"
	"sched-os/backend/internal/sched"
)

// Round-robin with quantum 4 over P1(10) and P2(4): P1 runs 4, P2 runs 4 and
// completes, P1 runs 4, P1 runs its final 2. No I/O, so the trace is exact.
func TestCPURoundRobinTrace(t *testing.T) {
	scheduler, err := sched.NewRoundRobin(4 * proc.Unit)
	require.NoError(t, err)

	p1 := proc.New(0, 10*proc.Unit, 0)
	p2 := proc.New(0, 4*proc.Unit, 0)

	cpu := NewCPU(scheduler, NewClock(), rand.New(rand.NewSource(1)))
	result := cpu.Run([]*proc.Process{p1, p2})

	assert.Equal(t, 14*proc.Unit, result.TotalTime)
	require.Len(t, result.Processes, 2)

	byPID := map[int]ProcessResult{}
	for _, pr := range result.Processes {
		byPID[pr.PID] = pr
	}

	assert.Equal(t, 8*proc.Unit, byPID[p2.PID].CompletionTime)
	assert.Equal(t, 4*proc.Unit, byPID[p2.PID].WaitingTime)
	assert.Equal(t, 14*proc.Unit, byPID[p1.PID].CompletionTime)
	assert.Equal(t, 4*proc.Unit, byPID[p1.PID].WaitingTime)

	assert.True(t, p1.IsTerminated())
	assert.True(t, p2.IsTerminated())
}

func TestCPUFCFSRunsToCompletionInArrivalOrder(t *testing.T) {
	scheduler := sched.NewSimple()

	p1 := proc.New(0, 6*proc.Unit, 0)
	p2 := proc.New(0, 3*proc.Unit, 0)

	cpu := NewCPU(scheduler, NewClock(), rand.New(rand.NewSource(1)))
	result := cpu.Run([]*proc.Process{p1, p2})

	byPID := map[int]ProcessResult{}
	for _, pr := range result.Processes {
		byPID[pr.PID] = pr
	}

	// p1 runs 0..6 uninterrupted, p2 runs 6..9.
	assert.Equal(t, 6*proc.Unit, byPID[p1.PID].CompletionTime)
	assert.Equal(t, time.Duration(0), byPID[p1.PID].WaitingTime)
	assert.Equal(t, 9*proc.Unit, byPID[p2.PID].CompletionTime)
	assert.Equal(t, 6*proc.Unit, byPID[p2.PID].WaitingTime)
}

func TestCPURespectsArrivalTimes(t *testing.T) {
	scheduler := sched.NewSimple()

	early := proc.New(0, 2*proc.Unit, 0)
	late := proc.New(5*proc.Unit, 2*proc.Unit, 0)

	cpu := NewCPU(scheduler, NewClock(), rand.New(rand.NewSource(1)))
	result := cpu.Run([]*proc.Process{late, early})

	byPID := map[int]ProcessResult{}
	for _, pr := range result.Processes {
		byPID[pr.PID] = pr
	}

	// The CPU idles 2..5 until the late process arrives.
	assert.Equal(t, 2*proc.Unit, byPID[early.PID].CompletionTime)
	assert.Equal(t, 5*proc.Unit, byPID[late.PID].FirstStartTime)
	assert.Equal(t, 7*proc.Unit, byPID[late.PID].CompletionTime)
}

func TestCPUCompletesWithIO(t *testing.T) {
	scheduler, err := sched.NewRoundRobin(4 * proc.Unit)
	require.NoError(t, err)

	var processes []*proc.Process
	for i := 0; i < 5; i++ {
		processes = append(processes, proc.New(0, 12*proc.Unit, 0.4))
	}

	cpu := NewCPU(scheduler, NewClock(), rand.New(rand.NewSource(99)))
	result := cpu.Run(processes)

	require.Len(t, result.Processes, 5)
	for _, pr := range result.Processes {
		assert.Equal(t, 12*proc.Unit, pr.TotalWork)
		assert.Positive(t, pr.CompletionTime)
	}
	for _, p := range processes {
		assert.True(t, p.IsTerminated())
	}
}

// Every algorithm drives an identical workload to completion.
func TestCPUCompletesUnderEveryAlgorithm(t *testing.T) {
	for _, name := range sched.AvailableAlgorithms() {
		clock := NewClock()
		rng := rand.New(rand.NewSource(5))

		cfg := sched.DefaultConfig()
		cfg.Clock = clock
		cfg.Rand = rng
		scheduler, err := sched.New(name, cfg)
		require.NoError(t, err, "algorithm %s", name)

		var processes []*proc.Process
		for i := 0; i < 4; i++ {
			processes = append(processes, proc.New(
				time.Duration(i)*proc.Unit, 8*proc.Unit, 0.3))
		}

		cpu := NewCPU(scheduler, clock, rng)
		result := cpu.Run(processes)

		require.Len(t, result.Processes, 4, "algorithm %s", name)
		for _, p := range processes {
			assert.True(t, p.IsTerminated(), "algorithm %s", name)
		}
		assert.False(t, scheduler.HasProcesses(), "algorithm %s", name)
		assert.Positive(t, result.Throughput, "algorithm %s", name)
	}
}
