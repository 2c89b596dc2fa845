// Package cache provides a Redis-backed read cache for per-owner task
// lists, following the cache-aside pattern: List reads through the cache,
// every mutation invalidates the owner's entry.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	domain "github.com/example/task-dashboard/domain/task"
	"github.com/redis/go-redis/v9"
)

// TaskListCache caches the full task list of each owner under a single
// key. Keys are scoped per owner so one user's mutations never evict
// another user's entry.
type TaskListCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	stats  *Stats
}

// Stats tracks cache statistics.
type Stats struct {
	Hits          uint64 `json:"hits"`
	Misses        uint64 `json:"misses"`
	Sets          uint64 `json:"sets"`
	Invalidations uint64 `json:"invalidations"`
	Errors        uint64 `json:"errors"`
}

// StatsSnapshot is a point-in-time view of the statistics.
type StatsSnapshot struct {
	Hits          uint64  `json:"hits"`
	Misses        uint64  `json:"misses"`
	Sets          uint64  `json:"sets"`
	Invalidations uint64  `json:"invalidations"`
	Errors        uint64  `json:"errors"`
	HitRate       float64 `json:"hit_rate"`
	TotalGets     uint64  `json:"total_gets"`
}

// New creates a new TaskListCache.
func New(client *redis.Client, prefix string, ttl time.Duration) *TaskListCache {
	return &TaskListCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		stats:  &Stats{},
	}
}

func (c *TaskListCache) key(ownerID string) string {
	return c.prefix + ownerID
}

// GetList retrieves an owner's cached task list. The second return value
// reports whether the entry was found (cache hit).
func (c *TaskListCache) GetList(ctx context.Context, ownerID string) ([]domain.Task, bool, error) {
	data, err := c.client.Get(ctx, c.key(ownerID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			atomic.AddUint64(&c.stats.Misses, 1)
			return nil, false, nil
		}
		atomic.AddUint64(&c.stats.Errors, 1)
		return nil, false, fmt.Errorf("cache get error: %w", err)
	}

	var tasks []domain.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return nil, false, fmt.Errorf("cache unmarshal error: %w", err)
	}

	atomic.AddUint64(&c.stats.Hits, 1)
	return tasks, true, nil
}

// SetList stores an owner's task list with the configured TTL.
func (c *TaskListCache) SetList(ctx context.Context, ownerID string, tasks []domain.Task) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return fmt.Errorf("cache marshal error: %w", err)
	}

	if err := c.client.Set(ctx, c.key(ownerID), data, c.ttl).Err(); err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return fmt.Errorf("cache set error: %w", err)
	}

	atomic.AddUint64(&c.stats.Sets, 1)
	return nil
}

// Invalidate drops an owner's cached list. Called after every successful
// mutation so stale lists are never served past a write.
func (c *TaskListCache) Invalidate(ctx context.Context, ownerID string) error {
	if err := c.client.Del(ctx, c.key(ownerID)).Err(); err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return fmt.Errorf("cache invalidate error: %w", err)
	}

	atomic.AddUint64(&c.stats.Invalidations, 1)
	return nil
}

// GetStats returns the current cache statistics.
func (c *TaskListCache) GetStats() StatsSnapshot {
	hits := atomic.LoadUint64(&c.stats.Hits)
	misses := atomic.LoadUint64(&c.stats.Misses)
	totalGets := hits + misses

	var hitRate float64
	if totalGets > 0 {
		hitRate = float64(hits) / float64(totalGets) * 100
	}

	return StatsSnapshot{
		Hits:          hits,
		Misses:        misses,
		Sets:          atomic.LoadUint64(&c.stats.Sets),
		Invalidations: atomic.LoadUint64(&c.stats.Invalidations),
		Errors:        atomic.LoadUint64(&c.stats.Errors),
		HitRate:       hitRate,
		TotalGets:     totalGets,
	}
}

// Ping checks if the Redis connection is healthy.
func (c *TaskListCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
