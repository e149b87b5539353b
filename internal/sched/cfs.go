package sched

import (
	"container/heap"
	"time"

	"sched-os/backend/internal/proc"
)

// runQueue implements heap.Interface keyed on (VirtualRuntime, PID). The pid
// tie-break keeps the ordering total, so equal virtual runtimes never collide.
type runQueue []*proc.Process

func (rq runQueue) Len() int { return len(rq) }

func (rq runQueue) Less(i, j int) bool {
	if rq[i].VirtualRuntime != rq[j].VirtualRuntime {
		return rq[i].VirtualRuntime < rq[j].VirtualRuntime
	}
	return rq[i].PID < rq[j].PID
}

func (rq runQueue) Swap(i, j int) {
	rq[i], rq[j] = rq[j], rq[i]
}

func (rq *runQueue) Push(x any) {
	*rq = append(*rq, x.(*proc.Process))
}

func (rq *runQueue) Pop() any {
	old := *rq
	n := len(old)
	p := old[n-1]
	old[n-1] = nil // avoid memory leak
	*rq = old[:n-1]
	return p
}

// CFSScheduler approximates the Completely Fair Scheduler: the process that
// has received the least virtual runtime runs next. The runqueue is a min-heap
// keyed natively on (vruntime, pid). The allotted slice is the base quantum
// shared among residents, floored at a minimum so it stays useful under load.
//
// All processes weigh the same here, so virtual runtime is just cumulative
// run time.
type CFSScheduler struct {
	baseQuantum time.Duration
	minQuantum  time.Duration

	queue runQueue

	// smallest vruntime among residents; kept as the fairness floor while
	// the queue is briefly empty (the selected process is out running)
	minVruntime time.Duration
}

func NewCFS(baseQuantum, minQuantum time.Duration) (*CFSScheduler, error) {
	if baseQuantum <= 0 || minQuantum <= 0 || minQuantum > baseQuantum {
		return nil, ErrInvalidQuantum
	}
	return &CFSScheduler{
		baseQuantum: baseQuantum,
		minQuantum:  minQuantum,
		queue:       make(runQueue, 0),
	}, nil
}

// GetAllottedTime splits the base quantum across the resident processes plus
// the one being allotted, never going below the minimum quantum.
func (s *CFSScheduler) GetAllottedTime(p *proc.Process) time.Duration {
	q := s.baseQuantum / time.Duration(len(s.queue)+1)
	if q < s.minQuantum {
		q = s.minQuantum
	}
	return q
}

// AddProcess inserts the process keyed by its virtual runtime. A process
// returning from a long absence re-enters at no less than the current
// fairness floor, so idling (e.g. a long I/O wait) can't bank cheap runtime
// and monopolize the CPU afterwards.
func (s *CFSScheduler) AddProcess(p *proc.Process) {
	vr := p.VirtualRuntime
	if p.CumulativeTimeRan > vr {
		vr = p.CumulativeTimeRan
	}
	if vr < s.minVruntime {
		vr = s.minVruntime
	}
	p.VirtualRuntime = vr

	heap.Push(&s.queue, p)
	s.minVruntime = s.queue[0].VirtualRuntime
}

// GetNextProcess removes and returns the resident with the smallest
// (vruntime, pid) key.
func (s *CFSScheduler) GetNextProcess() (*proc.Process, error) {
	if len(s.queue) == 0 {
		return nil, ErrEmptyScheduler
	}
	p := heap.Pop(&s.queue).(*proc.Process)
	if len(s.queue) > 0 {
		s.minVruntime = s.queue[0].VirtualRuntime
	}
	return p, nil
}

func (s *CFSScheduler) HasProcesses() bool {
	return len(s.queue) > 0
}
