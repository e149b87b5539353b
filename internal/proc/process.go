package proc

import (
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

type ProcessState int

const (
	StateReady ProcessState = iota
	StateRunning
	StateWaiting
	StateTerminated
)

func (s ProcessState) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateWaiting:
		return "waiting"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

var nextPID int64

// NextPID returns a fresh process id. PIDs are small ordered integers because
// the CFS runqueue uses them to break ties between equal virtual runtimes.
func NextPID() int {
	return int(atomic.AddInt64(&nextPID, 1))
}

// Process is the unit every scheduler operates on. The scheduler owns the
// process while it is Ready; ownership moves to the CPU driver while it is
// Running and comes back through AddProcess, which is also when the driver
// must have refreshed CumulativeTimeRan and VirtualRuntime.
type Process struct {
	PID               int
	ArrivalTime       time.Duration
	TimeToCompletion  time.Duration // remaining work
	CumulativeTimeRan time.Duration
	IOProbability     float64

	// Level and TimeAtLevel are maintained by the MLFQ scheduler.
	Level       int
	TimeAtLevel time.Duration

	// Tickets is read by the Lottery scheduler; zero means "use the default".
	Tickets int

	// VirtualRuntime is maintained by the CFS scheduler.
	VirtualRuntime time.Duration

	state ProcessState
	mu    sync.RWMutex
}

// New creates a Ready process with a fresh PID.
func New(arrival, work time.Duration, ioProbability float64) *Process {
	return &Process{
		PID:              NextPID(),
		ArrivalTime:      arrival,
		TimeToCompletion: work,
		IOProbability:    ioProbability,
		state:            StateReady,
	}
}

func (p *Process) State() ProcessState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

func (p *Process) SetState(state ProcessState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = state
}

func (p *Process) IsTerminated() bool {
	return p.State() == StateTerminated
}

// RunFor consumes up to slice of the remaining work. With probability
// IOProbability the process yields early for I/O (entering StateWaiting)
// after running at least one unit but less than the full slice; otherwise
// it runs the whole slice, terminating if the work is exhausted.
// Returns the time actually run.
func (p *Process) RunFor(slice time.Duration, rng *rand.Rand) time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateRunning {
		panic(fmt.Sprintf("process %d cannot run in state %s", p.PID, p.state))
	}

	maxRun := slice
	if p.TimeToCompletion < maxRun {
		maxRun = p.TimeToCompletion
	}

	units := int64(maxRun / Unit)
	if rng != nil && rng.Float64() < p.IOProbability && units > 1 {
		ran := time.Duration(1+rng.Int63n(units-1)) * Unit
		p.TimeToCompletion -= ran
		p.CumulativeTimeRan += ran
		p.state = StateWaiting
		return ran
	}

	p.TimeToCompletion -= maxRun
	p.CumulativeTimeRan += maxRun
	if p.TimeToCompletion <= 0 {
		p.state = StateTerminated
	}
	return maxRun
}

// Unit is the granularity of the simulated clock. All quanta, arrival times
// and work amounts are whole multiples of it.
const Unit = time.Millisecond

func (p *Process) String() string {
	return fmt.Sprintf("Process(pid=%d, remaining=%s, ran=%s, state=%s)",
		p.PID, p.TimeToCompletion, p.CumulativeTimeRan, p.State())
}
