package metrics

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultRefreshInterval bounds how often Update actually hits the counter
// source; concurrent request handlers calling Update inside the window share
// the previous pull.
const DefaultRefreshInterval = 10 * time.Second

// CounterSource supplies the raw counters, grouped per task manager id.
// Implemented by the etcd cluster.
type CounterSource interface {
	AllMetricCounters(ctx context.Context) (map[string]map[string]string, error)
}

// Cache holds periodically refreshed metric snapshots per task manager.
// Safe for concurrent use from many request handlers.
type Cache struct {
	source   CounterSource
	interval time.Duration
	logger   *log.Logger

	mu          sync.Mutex // guards refresh bookkeeping
	lastRefresh time.Time

	snapMu    sync.RWMutex
	snapshots map[string]*TaskManagerSnapshot
}

func NewCache(source CounterSource, interval time.Duration, logger *log.Logger) *Cache {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Cache{
		source:    source,
		interval:  interval,
		logger:    logger,
		snapshots: make(map[string]*TaskManagerSnapshot),
	}
}

// Update refreshes the cached snapshots from the source. Best-effort: a
// failed pull is logged and the previous snapshots stay in place. Calls
// within the refresh interval of the last pull are no-ops.
func (c *Cache) Update(ctx context.Context) {
	c.mu.Lock()
	if time.Since(c.lastRefresh) < c.interval {
		c.mu.Unlock()
		return
	}
	c.lastRefresh = time.Now()
	c.mu.Unlock()

	all, err := c.source.AllMetricCounters(ctx)
	if err != nil {
		if c.logger != nil {
			c.logger.Printf("metric refresh failed: %v", err)
		}
		return
	}

	snapshots := make(map[string]*TaskManagerSnapshot, len(all))
	for id, counters := range all {
		snapshots[id] = NewTaskManagerSnapshot(counters)
	}

	c.snapMu.Lock()
	c.snapshots = snapshots
	c.snapMu.Unlock()
}

// Snapshot returns the cached snapshot for a task manager id (hex form).
func (c *Cache) Snapshot(id string) (*TaskManagerSnapshot, bool) {
	c.snapMu.RLock()
	defer c.snapMu.RUnlock()
	s, ok := c.snapshots[id]
	return s, ok
}
