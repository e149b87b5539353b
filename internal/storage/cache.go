package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const cacheTTL = 15 * time.Minute

// RunCache is a Redis read-through in front of a Store. Completed runs are
// immutable, so a cached copy never goes stale within its TTL.
type RunCache struct {
	store  Store
	client *redis.Client
}

func NewRunCache(store Store, client *redis.Client) *RunCache {
	return &RunCache{store: store, client: client}
}

func (c *RunCache) SaveRun(ctx context.Context, run *SimulationRun) error {
	if err := c.store.SaveRun(ctx, run); err != nil {
		return err
	}
	c.put(ctx, run)
	return nil
}

func (c *RunCache) GetRun(ctx context.Context, id uuid.UUID) (*SimulationRun, error) {
	if data, err := c.client.Get(ctx, cacheKey(id)).Bytes(); err == nil {
		var run SimulationRun
		if err := json.Unmarshal(data, &run); err == nil {
			return &run, nil
		}
	}

	run, err := c.store.GetRun(ctx, id)
	if err != nil {
		return nil, err
	}
	c.put(ctx, run)
	return run, nil
}

func (c *RunCache) ListRuns(ctx context.Context, limit int) ([]*SimulationRun, error) {
	return c.store.ListRuns(ctx, limit)
}

// put caches best-effort; a failed write only costs a future cache miss.
func (c *RunCache) put(ctx context.Context, run *SimulationRun) {
	data, err := json.Marshal(run)
	if err != nil {
		return
	}
	c.client.Set(ctx, cacheKey(run.ID), data, cacheTTL)
}

func cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("run:%s", id)
}
