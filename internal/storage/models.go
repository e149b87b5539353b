package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"sched-os/backend/internal/sim"
)

var ErrRunNotFound = errors.New("simulation run not found")

// SimulationRun is one persisted scheduler simulation: the request parameters
// plus the full result.
type SimulationRun struct {
	ID        uuid.UUID     `json:"id" db:"id"`
	Algorithm string        `json:"algorithm" db:"algorithm"`
	Seed      int64         `json:"seed" db:"seed"`
	Result    sim.RunResult `json:"result" db:"result"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
}

// Store persists simulation runs.
type Store interface {
	SaveRun(ctx context.Context, run *SimulationRun) error
	GetRun(ctx context.Context, id uuid.UUID) (*SimulationRun, error)
	ListRuns(ctx context.Context, limit int) ([]*SimulationRun, error)
}
