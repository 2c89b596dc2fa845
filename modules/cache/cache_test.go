package cache

import (
	"context"
	"testing"
	"time"

	domain "github.com/example/task-dashboard/domain/task"
	"github.com/redis/go-redis/v9"
)

const testRedisAddr = "localhost:6379"

func setupCache(t *testing.T) *TaskListCache {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: testRedisAddr,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}

	prefix := "test:" + t.Name() + ":"
	c := New(client, prefix, time.Minute)

	t.Cleanup(func() {
		client.Del(ctx, prefix+"owner-1", prefix+"owner-2")
		client.Close()
	})

	return c
}

func sampleTasks(owner string) []domain.Task {
	now := time.Now().Truncate(time.Second)
	return []domain.Task{
		{
			ID:        "t-1",
			OwnerID:   owner,
			Title:     "first",
			Status:    domain.StatusPending,
			Priority:  domain.PriorityMedium,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        "t-2",
			OwnerID:   owner,
			Title:     "second",
			Status:    domain.StatusCompleted,
			Priority:  domain.PriorityHigh,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func TestTaskListCache_SetAndGet(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()

	// Miss before anything is cached.
	_, hit, err := c.GetList(ctx, "owner-1")
	if err != nil {
		t.Fatalf("GetList() error = %v", err)
	}
	if hit {
		t.Fatal("GetList() reported a hit on an empty cache")
	}

	tasks := sampleTasks("owner-1")
	if err := c.SetList(ctx, "owner-1", tasks); err != nil {
		t.Fatalf("SetList() error = %v", err)
	}

	got, hit, err := c.GetList(ctx, "owner-1")
	if err != nil {
		t.Fatalf("GetList() error = %v", err)
	}
	if !hit {
		t.Fatal("GetList() missed after SetList()")
	}
	if len(got) != 2 || got[0].ID != "t-1" || got[1].ID != "t-2" {
		t.Errorf("GetList() = %+v, order not preserved", got)
	}

	stats := c.GetStats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Sets != 1 {
		t.Errorf("stats = %+v, want 1 hit, 1 miss, 1 set", stats)
	}
}

func TestTaskListCache_KeysAreOwnerScoped(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()

	if err := c.SetList(ctx, "owner-1", sampleTasks("owner-1")); err != nil {
		t.Fatalf("SetList() error = %v", err)
	}

	// Another owner's key is untouched.
	_, hit, err := c.GetList(ctx, "owner-2")
	if err != nil {
		t.Fatalf("GetList() error = %v", err)
	}
	if hit {
		t.Error("owner-2 hit a list cached for owner-1")
	}
}

func TestTaskListCache_Invalidate(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()

	if err := c.SetList(ctx, "owner-1", sampleTasks("owner-1")); err != nil {
		t.Fatalf("SetList() error = %v", err)
	}
	if err := c.SetList(ctx, "owner-2", sampleTasks("owner-2")); err != nil {
		t.Fatalf("SetList() error = %v", err)
	}

	if err := c.Invalidate(ctx, "owner-1"); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}

	_, hit, err := c.GetList(ctx, "owner-1")
	if err != nil {
		t.Fatalf("GetList() error = %v", err)
	}
	if hit {
		t.Error("owner-1 list survived invalidation")
	}

	_, hit, err = c.GetList(ctx, "owner-2")
	if err != nil {
		t.Fatalf("GetList() error = %v", err)
	}
	if !hit {
		t.Error("invalidating owner-1 evicted owner-2's list")
	}
}
