package sim

import "time"

// Clock is the simulated time source shared by the CPU driver, the I/O
// device, and any scheduler that needs wall time (MLFQ promotion). It only
// moves when the driver advances it.
type Clock struct {
	now time.Duration
}

func NewClock() *Clock {
	return &Clock{}
}

func (c *Clock) Now() time.Duration {
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.now += d
}
