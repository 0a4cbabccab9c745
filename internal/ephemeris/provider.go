package ephemeris

import (
	"context"
	"sync"
	"time"
)

// Provider supplies the celestial state for a reference date. Any field of
// the returned snapshot may be absent; callers must not assume completeness.
type Provider interface {
	Snapshot(ctx context.Context, referenceDate time.Time) (*Snapshot, error)
}

// CachedProvider memoizes snapshots per calendar day so a whole cohort scored
// against one reference date shares a single read-only snapshot.
type CachedProvider struct {
	inner Provider

	mu     sync.RWMutex
	byDay  map[string]*Snapshot
	hits   uint64
	misses uint64
}

// NewCachedProvider wraps inner with a per-day snapshot cache.
func NewCachedProvider(inner Provider) *CachedProvider {
	return &CachedProvider{
		inner: inner,
		byDay: make(map[string]*Snapshot),
	}
}

func (c *CachedProvider) Snapshot(ctx context.Context, referenceDate time.Time) (*Snapshot, error) {
	key := referenceDate.Format("2006-01-02")

	c.mu.RLock()
	snap, ok := c.byDay[key]
	c.mu.RUnlock()
	if ok {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return snap, nil
	}

	snap, err := c.inner.Snapshot(ctx, referenceDate)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.misses++
	// A concurrent fill for the same day wins; keep the first stored snapshot
	// so every entity in the cohort sees the identical value.
	if existing, ok := c.byDay[key]; ok {
		snap = existing
	} else {
		c.byDay[key] = snap
	}
	c.mu.Unlock()

	return snap, nil
}

// Stats reports cache hit and miss counts.
func (c *CachedProvider) Stats() (hits, misses uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
