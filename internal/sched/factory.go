package sched

import (
	"fmt"
	"math/rand"
	"time"

	"sched-os/backend/internal/proc"
)

// Config carries the construction-time parameters for every algorithm.
// Each constructor validates the fields it uses; a scheduler is never
// handed out with a configuration that could fail mid-operation.
type Config struct {
	// Quantum is the fixed slice for round-robin and lottery.
	Quantum time.Duration

	// Levels and PromotionInterval configure MLFQ. Clock supplies simulated
	// time for promotion boundaries; the CPU driver implements it.
	Levels            []LevelConfig
	PromotionInterval time.Duration
	Clock             Clock

	// DefaultTickets is given to lottery processes without their own count.
	// Rand makes draws reproducible; nil means time-seeded.
	DefaultTickets int
	Rand           *rand.Rand

	// BaseQuantum and MinQuantum bound the CFS fair-share slice.
	BaseQuantum time.Duration
	MinQuantum  time.Duration
}

// New builds the scheduler for the named algorithm.
func New(algorithm string, cfg Config) (Scheduler, error) {
	switch algorithm {
	case "fcfs":
		return NewSimple(), nil
	case "round-robin":
		return NewRoundRobin(cfg.Quantum)
	case "mlfq":
		return NewMLFQ(cfg.Levels, cfg.PromotionInterval, cfg.Clock)
	case "lottery":
		return NewLottery(cfg.Quantum, cfg.DefaultTickets, cfg.Rand)
	case "cfs":
		return NewCFS(cfg.BaseQuantum, cfg.MinQuantum)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, algorithm)
	}
}

func AvailableAlgorithms() []string {
	return []string{"fcfs", "round-robin", "mlfq", "lottery", "cfs"}
}

func DefaultConfig() Config {
	return Config{
		Quantum: 4 * proc.Unit,
		Levels: []LevelConfig{
			{Quantum: 3 * proc.Unit, Allowance: 3 * proc.Unit},
			{Quantum: 6 * proc.Unit, Allowance: 6 * proc.Unit},
			{Quantum: 12 * proc.Unit, Allowance: 12 * proc.Unit},
		},
		PromotionInterval: 50 * proc.Unit,
		DefaultTickets:    10,
		BaseQuantum:       10 * proc.Unit,
		MinQuantum:        2 * proc.Unit,
	}
}
