package adapter

import (
	"context"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"vehicle-status-backend/internal/carconnect"
	"vehicle-status-backend/internal/logging"
	"vehicle-status-backend/internal/metrics"
)

// DefaultTTL is how long a fetched vehicle list is served without refetching.
const DefaultTTL = 5 * time.Minute

const snapshotKey = "vehicles"

// Fetcher loads the current vehicle list from the backend.
type Fetcher interface {
	FetchVehicles(ctx context.Context) ([]*carconnect.Vehicle, error)
}

// Snapshot is one generation of fetched vehicles. Vehicles must not be kept
// beyond the generation they came from.
type Snapshot struct {
	Vehicles   []*carconnect.Vehicle
	FetchedAt  time.Time
	Generation uint64
}

// CacheState describes the cache for diagnostics.
type CacheState struct {
	FetchedAt  *time.Time    `json:"fetched_at"`
	TTL        time.Duration `json:"ttl"`
	Fresh      bool          `json:"fresh"`
	Generation uint64        `json:"generation"`
}

// Cache serves the vehicle list from memory while it is fresh and refetches
// it once the TTL has elapsed or after Invalidate. A single mutex covers the
// check, the fetch and the store, so concurrent readers at expiry cause one
// backend fetch. Fetch failures are returned and never answered with stale
// data.
type Cache struct {
	mu         sync.Mutex
	fetcher    Fetcher
	ttl        time.Duration
	store      *gocache.Cache
	generation uint64
	lastFetch  *time.Time
	log        *zap.Logger
}

// NewCache returns an empty (stale) cache in front of fetcher.
func NewCache(fetcher Fetcher, ttl time.Duration, logger *zap.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		fetcher: fetcher,
		ttl:     ttl,
		// No janitor: expired entries are simply not returned by Get.
		store: gocache.New(ttl, 0),
		log:   logging.OrNop(logger).Named("cache"),
	}
}

// Snapshot returns the held snapshot while fresh, fetching a new generation
// otherwise.
func (c *Cache) Snapshot(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if item, found := c.store.Get(snapshotKey); found {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return item.(*Snapshot), nil
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	start := time.Now()
	vehicles, err := c.fetcher.FetchVehicles(ctx)
	metrics.ObserveUpstream("fetch", start, err)
	if err != nil {
		c.log.Warn("vehicle fetch failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}

	c.generation++
	now := time.Now()
	snap := &Snapshot{Vehicles: vehicles, FetchedAt: now, Generation: c.generation}
	c.store.Set(snapshotKey, snap, c.ttl)
	c.lastFetch = &now

	c.log.Debug("vehicle list refreshed",
		zap.Int("vehicles", len(vehicles)),
		zap.Uint64("generation", c.generation),
		zap.Duration("duration", time.Since(start)))
	return snap, nil
}

// Vehicles returns the fleet listing. Vehicles that cannot be summarised are
// skipped so one bad entry does not fail the whole listing.
func (c *Cache) Vehicles(ctx context.Context) ([]VehicleSummary, error) {
	snap, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	extractor := NewExtractor()
	summaries := make([]VehicleSummary, 0, len(snap.Vehicles))
	for i, v := range snap.Vehicles {
		summary, err := safeSummary(extractor, v)
		if err != nil {
			c.log.Warn("skipping malformed vehicle", zap.Int("index", i), zap.Error(err))
			continue
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func safeSummary(e *Extractor, v *carconnect.Vehicle) (summary VehicleSummary, err error) {
	if v == nil || v.VIN == "" {
		return VehicleSummary{}, fmt.Errorf("%w: vehicle without VIN", ErrMalformedVehicle)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrMalformedVehicle, v.VIN, r)
		}
	}()
	return e.Summary(v), nil
}

// Invalidate marks the cache stale so the next read fetches again. It waits
// for an in-flight fetch to finish first.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Delete(snapshotKey)
}

// State reports the current freshness of the cache.
func (c *Cache) State() CacheState {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := CacheState{TTL: c.ttl, Generation: c.generation}
	if c.lastFetch != nil {
		at := *c.lastFetch
		state.FetchedAt = &at
	}
	_, state.Fresh = c.store.Get(snapshotKey)
	return state
}
