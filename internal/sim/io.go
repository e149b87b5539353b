package sim

import (
	"math/rand"
	"time"

	"sched-os/backend/internal/proc"
)

const (
	minIOService = 2 * proc.Unit
	maxIOService = 5 * proc.Unit
)

type ioEntry struct {
	process    *proc.Process
	completeAt time.Duration
}

// IODevice simulates a single serial I/O device. Requests queue behind each
// other: a request submitted while the device is busy starts when the device
// frees up. Service times are drawn uniformly from [minIOService, maxIOService].
type IODevice struct {
	waiting  []ioEntry
	nextFree time.Duration
	rng      *rand.Rand
}

func NewIODevice(rng *rand.Rand) *IODevice {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &IODevice{rng: rng}
}

// AddWaiting queues a process that yielded for I/O at the given clock time.
func (d *IODevice) AddWaiting(p *proc.Process, now time.Duration) {
	units := int64((maxIOService - minIOService) / proc.Unit)
	service := minIOService + time.Duration(d.rng.Int63n(units+1))*proc.Unit

	start := now
	if d.nextFree > start {
		start = d.nextFree
	}
	completeAt := start + service
	d.waiting = append(d.waiting, ioEntry{process: p, completeAt: completeAt})
	d.nextFree = completeAt
}

// Completed removes and returns the processes whose I/O has finished by the
// given clock time, marking them ready again.
func (d *IODevice) Completed(now time.Duration) []*proc.Process {
	var ready []*proc.Process
	var still []ioEntry
	for _, e := range d.waiting {
		if now >= e.completeAt {
			e.process.SetState(proc.StateReady)
			ready = append(ready, e.process)
		} else {
			still = append(still, e)
		}
	}
	d.waiting = still
	return ready
}

func (d *IODevice) Pending() bool {
	return len(d.waiting) > 0
}
