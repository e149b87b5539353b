package sched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sched-os/backend/internal/proc"
)

func newTestProcess(work time.Duration) *proc.Process {
	return proc.New(0, work, 0)
}

func TestSimpleArrivalOrder(t *testing.T) {
	s := NewSimple()

	p1 := newTestProcess(10 * proc.Unit)
	p2 := newTestProcess(5 * proc.Unit)
	p3 := newTestProcess(7 * proc.Unit)

	s.AddProcess(p1)
	s.AddProcess(p2)
	s.AddProcess(p3)

	for _, want := range []*proc.Process{p1, p2, p3} {
		got, err := s.GetNextProcess()
		require.NoError(t, err)
		assert.Equal(t, want.PID, got.PID)
	}
	assert.False(t, s.HasProcesses())
}

func TestSimpleAllotsFullRemainingWork(t *testing.T) {
	s := NewSimple()

	p := newTestProcess(10 * proc.Unit)
	s.AddProcess(p)
	assert.Equal(t, 10*proc.Unit, s.GetAllottedTime(p))

	// Allotment tracks remaining work, not the original total.
	p.TimeToCompletion = 3 * proc.Unit
	assert.Equal(t, 3*proc.Unit, s.GetAllottedTime(p))
}

func TestSimpleEmpty(t *testing.T) {
	s := NewSimple()
	assert.False(t, s.HasProcesses())

	_, err := s.GetNextProcess()
	assert.ErrorIs(t, err, ErrEmptyScheduler)
}
