package sched

import (
	"time"

	"sched-os/backend/internal/proc"
)

// SimpleScheduler runs processes to completion in arrival order (FCFS).
// It allots each process its full remaining work, so nothing is ever
// preempted. That requires knowing the total work up front, which real
// systems don't; callers picking this scheduler accept the constraint.
type SimpleScheduler struct {
	queue []*proc.Process
}

func NewSimple() *SimpleScheduler {
	return &SimpleScheduler{queue: make([]*proc.Process, 0)}
}

func (s *SimpleScheduler) GetAllottedTime(p *proc.Process) time.Duration {
	return p.TimeToCompletion
}

func (s *SimpleScheduler) AddProcess(p *proc.Process) {
	s.queue = append(s.queue, p)
}

func (s *SimpleScheduler) GetNextProcess() (*proc.Process, error) {
	if len(s.queue) == 0 {
		return nil, ErrEmptyScheduler
	}
	p := s.queue[0]
	s.queue = s.queue[1:]
	return p, nil
}

func (s *SimpleScheduler) HasProcesses() bool {
	return len(s.queue) > 0
}
