package sched

import (
	"time"

	"sched-os/backend/internal/proc"
)

// RoundRobinScheduler cycles through a single FIFO queue, allotting every
// process the same fixed quantum. Preempted processes re-enter at the tail,
// so each waiting process is served once per cycle.
type RoundRobinScheduler struct {
	quantum time.Duration
	queue   []*proc.Process
}

func NewRoundRobin(quantum time.Duration) (*RoundRobinScheduler, error) {
	if quantum <= 0 {
		return nil, ErrInvalidQuantum
	}
	return &RoundRobinScheduler{
		quantum: quantum,
		queue:   make([]*proc.Process, 0),
	}, nil
}

func (s *RoundRobinScheduler) GetAllottedTime(p *proc.Process) time.Duration {
	return s.quantum
}

func (s *RoundRobinScheduler) AddProcess(p *proc.Process) {
	s.queue = append(s.queue, p)
}

func (s *RoundRobinScheduler) GetNextProcess() (*proc.Process, error) {
	if len(s.queue) == 0 {
		return nil, ErrEmptyScheduler
	}
	p := s.queue[0]
	s.queue = s.queue[1:]
	return p, nil
}

func (s *RoundRobinScheduler) HasProcesses() bool {
	return len(s.queue) > 0
}
