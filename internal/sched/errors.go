package sched

import "errors"

var (
	ErrEmptyScheduler   = errors.New("no processes available")
	ErrInvalidQuantum   = errors.New("quantum must be positive")
	ErrNoLevels         = errors.New("at least one priority level is required")
	ErrInvalidAllowance = errors.New("level allowance must be positive")
	ErrInvalidPromotion = errors.New("promotion interval must be positive")
	ErrInvalidTickets   = errors.New("ticket count must be positive")
	ErrUnknownAlgorithm = errors.New("unknown scheduler algorithm")
)
