package repositories

import (
	"context"
	"github.com/maxaizer/job-radar/internal/entities"
	gocache "github.com/patrickmn/go-cache"
	"time"
)

type seenJobRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
	Insert(ctx context.Context, job entities.SeenJob) (bool, error)
	ListAll(ctx context.Context, limit int) ([]entities.SeenJob, error)
	Count(ctx context.Context) (int64, error)
}

// CachedSeenJobs remembers identities known to be stored. Seen entries are never removed,
// so a cached hit never goes stale; misses always reach the database.
type CachedSeenJobs struct {
	repo  seenJobRepository
	cache *gocache.Cache
}

func NewCachedSeenJobs(repo seenJobRepository) *CachedSeenJobs {
	return &CachedSeenJobs{repo: repo, cache: gocache.New(24*time.Hour, time.Hour)}
}

func (c *CachedSeenJobs) Exists(ctx context.Context, id string) (bool, error) {
	if _, found := c.cache.Get(id); found {
		return true, nil
	}

	exists, err := c.repo.Exists(ctx, id)
	if err == nil && exists {
		c.cache.Set(id, struct{}{}, gocache.DefaultExpiration)
	}
	return exists, err
}

func (c *CachedSeenJobs) Insert(ctx context.Context, job entities.SeenJob) (bool, error) {
	inserted, err := c.repo.Insert(ctx, job)
	if err == nil {
		c.cache.Set(job.JobID, struct{}{}, gocache.DefaultExpiration)
	}
	return inserted, err
}

func (c *CachedSeenJobs) ListAll(ctx context.Context, limit int) ([]entities.SeenJob, error) {
	return c.repo.ListAll(ctx, limit)
}

func (c *CachedSeenJobs) Count(ctx context.Context) (int64, error) {
	return c.repo.Count(ctx)
}
