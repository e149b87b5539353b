package sched

import (
	"math/rand"
	"time"

	"sched-os/backend/internal/proc"
)

// LotteryScheduler selects the next process by a weighted random draw: each
// waiting process holds tickets, and a draw in [0, totalTickets) walked over
// the ticket ranges in insertion order picks the winner. Ticket counts are
// static for a process's stay in the scheduler; priority-driven ticket
// adjustment is deliberately not implemented.
type LotteryScheduler struct {
	quantum        time.Duration
	defaultTickets int
	rng            *rand.Rand

	order   []int // pids in insertion order, stable walk for the draw
	waiting map[int]*proc.Process
	tickets map[int]int
	total   int
}

// NewLottery builds a lottery scheduler with a fixed quantum and the ticket
// count given to processes that don't carry their own. The random source is
// injectable so draws can be reproduced; a nil rng falls back to a
// time-seeded one.
func NewLottery(quantum time.Duration, defaultTickets int, rng *rand.Rand) (*LotteryScheduler, error) {
	if quantum <= 0 {
		return nil, ErrInvalidQuantum
	}
	if defaultTickets <= 0 {
		return nil, ErrInvalidTickets
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &LotteryScheduler{
		quantum:        quantum,
		defaultTickets: defaultTickets,
		rng:            rng,
		waiting:        make(map[int]*proc.Process),
		tickets:        make(map[int]int),
	}, nil
}

func (s *LotteryScheduler) GetAllottedTime(p *proc.Process) time.Duration {
	return s.quantum
}

func (s *LotteryScheduler) AddProcess(p *proc.Process) {
	t := p.Tickets
	if t <= 0 {
		t = s.defaultTickets
		p.Tickets = t
	}
	s.order = append(s.order, p.PID)
	s.waiting[p.PID] = p
	s.tickets[p.PID] = t
	s.total += t
}

func (s *LotteryScheduler) GetNextProcess() (*proc.Process, error) {
	if s.total == 0 {
		return nil, ErrEmptyScheduler
	}

	draw := s.rng.Intn(s.total)
	sum := 0
	for i, pid := range s.order {
		sum += s.tickets[pid]
		if draw < sum {
			winner := s.waiting[pid]
			s.order = append(s.order[:i], s.order[i+1:]...)
			s.total -= s.tickets[pid]
			delete(s.waiting, pid)
			delete(s.tickets, pid)
			return winner, nil
		}
	}

	// Unreachable: the ranges cover [0, total).
	return nil, ErrEmptyScheduler
}

func (s *LotteryScheduler) HasProcesses() bool {
	return len(s.waiting) > 0
}
