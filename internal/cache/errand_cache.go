package cache

import (
	"context"
	"log"
	"sync"

	"github.com/errandly/errand-service/internal/metrics"
	"github.com/errandly/errand-service/internal/repository"
)

type ErrandRepository interface {
	GetActive(ctx context.Context) ([]*repository.Errand, error)
}

// ErrandCache keeps active errands (pending/accepted/in_progress) in memory
// for the read path. It is a materialization only: writes go through the
// lifecycle engine, which refreshes the cache after commit.
type ErrandCache struct {
	mu    sync.RWMutex
	cache map[string]*repository.Errand
	repo  ErrandRepository
}

func NewErrandCache(repo ErrandRepository) *ErrandCache {
	return &ErrandCache{
		cache: make(map[string]*repository.Errand),
		repo:  repo,
	}
}

func (c *ErrandCache) LoadInitialData(ctx context.Context) error {
	log.Println("Loading active errands into cache...")
	errands, err := c.repo.GetActive(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, errand := range errands {
		errandCopy := *errand
		c.cache[errand.ID] = &errandCopy
	}
	metrics.ErrandCacheItems.Set(float64(len(c.cache)))
	log.Printf("Successfully loaded %d active errands into cache.", len(c.cache))
	return nil
}

func (c *ErrandCache) Get(errandID string) (*repository.Errand, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	errand, found := c.cache[errandID]
	if !found {
		return nil, false
	}
	errandCopy := *errand
	return &errandCopy, true
}

// Set stores active errands and evicts terminal ones.
func (c *ErrandCache) Set(errand *repository.Errand) {
	if !errand.Status.IsActive() {
		c.Delete(errand.ID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	errandCopy := *errand
	c.cache[errand.ID] = &errandCopy
	metrics.ErrandCacheItems.Set(float64(len(c.cache)))
}

func (c *ErrandCache) Delete(errandID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, found := c.cache[errandID]; found {
		delete(c.cache, errandID)
		metrics.ErrandCacheItems.Set(float64(len(c.cache)))
	}
}
