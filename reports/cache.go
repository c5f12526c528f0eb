package reports

import (
	"context"
	"sync"
	"time"

	"github.com/linesmerrill/avenue-police-api/models"
)

// Store is what the cache reads from.
type Store interface {
	ListArrestReports(ctx context.Context) ([]models.ArrestReport, error)
	ListOfficers(ctx context.Context) ([]models.User, error)
}

// Snapshot is a point in time copy of everything the dashboards aggregate.
type Snapshot struct {
	Reports  []models.ArrestReport
	Officers []models.User
	LoadedAt time.Time
}

// Cache holds the last loaded Snapshot until it is invalidated.
type Cache struct {
	store Store
	mu    sync.Mutex
	snap  *Snapshot
}

// NewCache returns an empty cache backed by store.
func NewCache(store Store) *Cache {
	return &Cache{store: store}
}

// Get returns the cached snapshot, loading it first if there is none.
func (c *Cache) Get(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snap != nil {
		return *c.snap, nil
	}
	reports, err := c.store.ListArrestReports(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	officers, err := c.store.ListOfficers(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	c.snap = &Snapshot{Reports: reports, Officers: officers, LoadedAt: time.Now()}
	return *c.snap, nil
}

// Invalidate drops the cached snapshot; the next Get refetches.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.snap = nil
	c.mu.Unlock()
}
