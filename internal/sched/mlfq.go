package sched

import (
	"time"

	"sched-os/backend/internal/proc"
)

// LevelConfig describes one MLFQ priority level. Quantum is the slice allotted
// per selection; Allowance is how much total run time a process may accumulate
// at the level before it is demoted.
type LevelConfig struct {
	Quantum   time.Duration
	Allowance time.Duration
}

// MLFQScheduler keeps one FIFO queue per priority level, level 0 highest.
// Selection scans levels top-down and takes the front of the first non-empty
// queue. Demotion is driven by the time a process accumulates at its level,
// not by how often it is preempted, so yielding just short of the quantum
// buys nothing. A periodic promotion moves every waiting process back to
// level 0 so long-running work cannot starve behind a stream of short jobs.
type MLFQScheduler struct {
	levels        []LevelConfig
	queues        [][]*proc.Process
	promoteEvery  time.Duration
	clock         Clock
	lastPromotion time.Duration

	// cumulative run time last observed per pid, used to charge the
	// delta to the process's current level on re-entry
	lastObserved map[int]time.Duration
}

func NewMLFQ(levels []LevelConfig, promoteEvery time.Duration, clock Clock) (*MLFQScheduler, error) {
	if len(levels) == 0 {
		return nil, ErrNoLevels
	}
	for _, lvl := range levels {
		if lvl.Quantum <= 0 {
			return nil, ErrInvalidQuantum
		}
		if lvl.Allowance <= 0 {
			return nil, ErrInvalidAllowance
		}
	}
	if promoteEvery <= 0 {
		return nil, ErrInvalidPromotion
	}
	queues := make([][]*proc.Process, len(levels))
	for i := range queues {
		queues[i] = make([]*proc.Process, 0)
	}
	return &MLFQScheduler{
		levels:       levels,
		queues:       queues,
		promoteEvery: promoteEvery,
		clock:        clock,
		lastObserved: make(map[int]time.Duration),
	}, nil
}

func (s *MLFQScheduler) GetAllottedTime(p *proc.Process) time.Duration {
	level := p.Level
	if level < 0 || level >= len(s.levels) {
		level = 0
	}
	return s.levels[level].Quantum
}

// AddProcess inserts the process into its current level's queue. For a
// process the scheduler has seen before, the run time accumulated since it
// was last added is charged to its level; breaching the level's allowance
// demotes it one level (the lowest level is a floor) and resets the
// accumulator.
func (s *MLFQScheduler) AddProcess(p *proc.Process) {
	prev, seen := s.lastObserved[p.PID]
	if !seen {
		p.Level = 0
		p.TimeAtLevel = 0
	} else {
		p.TimeAtLevel += p.CumulativeTimeRan - prev
		if p.TimeAtLevel > s.levels[p.Level].Allowance {
			if p.Level < len(s.levels)-1 {
				p.Level++
			}
			p.TimeAtLevel = 0
		}
	}
	s.lastObserved[p.PID] = p.CumulativeTimeRan
	s.queues[p.Level] = append(s.queues[p.Level], p)
}

func (s *MLFQScheduler) GetNextProcess() (*proc.Process, error) {
	s.promoteAll()
	for level := range s.queues {
		if len(s.queues[level]) > 0 {
			p := s.queues[level][0]
			s.queues[level] = s.queues[level][1:]
			return p, nil
		}
	}
	return nil, ErrEmptyScheduler
}

func (s *MLFQScheduler) HasProcesses() bool {
	for _, q := range s.queues {
		if len(q) > 0 {
			return true
		}
	}
	return false
}

// promoteAll moves every waiting process to level 0 once a full promotion
// interval has elapsed on the simulated clock.
func (s *MLFQScheduler) promoteAll() {
	if s.clock == nil {
		return
	}
	now := s.clock.Now()
	if now-s.lastPromotion < s.promoteEvery {
		return
	}
	for level := 1; level < len(s.queues); level++ {
		for _, p := range s.queues[level] {
			p.Level = 0
			p.TimeAtLevel = 0
			s.queues[0] = append(s.queues[0], p)
		}
		s.queues[level] = s.queues[level][:0]
	}
	s.lastPromotion = now
}
