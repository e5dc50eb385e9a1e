package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/torresnicolas0/clima-chatbot/src/models"
)

// DefaultTTL matches the refresh period of the upstream weather API.
const DefaultTTL = time.Hour

// DefaultFetchTimeout bounds a shared provider call once it no longer follows
// the cancellation of the caller that started it.
const DefaultFetchTimeout = 30 * time.Second

// ErrWeatherUnavailable is returned when the provider could not produce a
// record. Failed fetches are never stored.
var ErrWeatherUnavailable = errors.New("weather data unavailable")

// Signature identifies one cacheable weather lookup.
type Signature struct {
	City     string
	Units    string
	Language string
}

func (s Signature) Key() string {
	return s.City + "|" + s.Units + "|" + s.Language
}

// WeatherCache serves weather records younger than its TTL and fetches the
// rest from the provider. Concurrent lookups of one signature share a single
// provider call.
type WeatherCache struct {
	store    Store
	provider models.WeatherProvider
	apiKey   string
	ttl      time.Duration
	timeout  time.Duration
	now      func() time.Time
	group    singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

type Option func(*WeatherCache)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *WeatherCache) { c.now = now }
}

func WithTTL(ttl time.Duration) Option {
	return func(c *WeatherCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithFetchTimeout(timeout time.Duration) Option {
	return func(c *WeatherCache) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

func NewWeatherCache(store Store, provider models.WeatherProvider, apiKey string, opts ...Option) *WeatherCache {
	c := &WeatherCache{
		store:    store,
		provider: provider,
		apiKey:   apiKey,
		ttl:      DefaultTTL,
		timeout:  DefaultFetchTimeout,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *WeatherCache) GetOrFetch(ctx context.Context, city, units, language string) (*models.WeatherRecord, error) {
	key := Signature{City: city, Units: units, Language: language}.Key()

	if record := c.lookup(ctx, key); record != nil {
		c.hits.Add(1)
		return record, nil
	}

	// The shared fetch outlives any single caller; each caller only waits as
	// long as its own ctx allows.
	ch := c.group.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		return c.fetch(fetchCtx, key, city, units, language)
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrWeatherUnavailable, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.WeatherRecord), nil
	}
}

func (c *WeatherCache) fetch(ctx context.Context, key, city, units, language string) (*models.WeatherRecord, error) {
	// Another caller may have stored the record while we waited.
	if record := c.lookup(ctx, key); record != nil {
		c.hits.Add(1)
		return record, nil
	}

	c.misses.Add(1)
	record, err := c.provider.Fetch(ctx, city, c.apiKey, units, language)
	if err != nil {
		log.Printf("Weather fetch failed for %q: %v", city, err)
		return nil, fmt.Errorf("%w: %v", ErrWeatherUnavailable, err)
	}
	if record == nil {
		return nil, ErrWeatherUnavailable
	}

	if err := c.store.Set(ctx, key, &Entry{Record: record, FetchedAt: c.now()}); err != nil {
		log.Printf("⚠️  Failed to cache weather for %q: %v", city, err)
	}
	return record, nil
}

func (c *WeatherCache) lookup(ctx context.Context, key string) *models.WeatherRecord {
	entry, err := c.store.Get(ctx, key)
	if err != nil {
		log.Printf("⚠️  Weather cache read failed for %q: %v", key, err)
		return nil
	}
	if entry == nil || entry.Record == nil {
		return nil
	}
	if c.now().Sub(entry.FetchedAt) >= c.ttl {
		return nil
	}
	return entry.Record
}

// Sweep removes stale entries from stores that do not expire them on their
// own.
func (c *WeatherCache) Sweep() int {
	sweeper, ok := c.store.(Sweeper)
	if !ok {
		return 0
	}
	return sweeper.Sweep(c.now().Add(-c.ttl))
}

func (c *WeatherCache) Stats(ctx context.Context) models.CacheStats {
	stats := models.CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
	if n, err := c.store.Len(ctx); err == nil {
		stats.Entries = n
	}
	return stats
}

func (c *WeatherCache) Close() error {
	return c.store.Close()
}
