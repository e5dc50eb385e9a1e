package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/torresnicolas0/clima-chatbot/src/mocks"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func setupWeatherCache() (*WeatherCache, *mocks.MockWeatherProvider, *fakeClock) {
	provider := new(mocks.MockWeatherProvider)
	clock := &fakeClock{now: time.Date(2024, 6, 25, 12, 0, 0, 0, time.UTC)}
	c := NewWeatherCache(NewMemoryStore(), provider, "test-key", WithClock(clock.Now))
	return c, provider, clock
}

func TestSignature_Key(t *testing.T) {
	key := Signature{City: "madrid", Units: "metric", Language: "es"}.Key()
	assert.Equal(t, "madrid|metric|es", key)
	assert.NotEqual(t, key, Signature{City: "madrid", Units: "imperial", Language: "es"}.Key())
}

func TestWeatherCache_SecondLookupWithinTTLIsServedFromCache(t *testing.T) {
	c, provider, clock := setupWeatherCache()
	ctx := context.Background()

	provider.On("Fetch", mock.Anything, "madrid", "test-key", "metric", "es").
		Return(sampleRecord("Madrid"), nil).Once()

	first, err := c.GetOrFetch(ctx, "madrid", "metric", "es")
	require.NoError(t, err)

	clock.Advance(59 * time.Minute)
	second, err := c.GetOrFetch(ctx, "madrid", "metric", "es")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	provider.AssertNumberOfCalls(t, "Fetch", 1)

	stats := c.Stats(ctx)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Entries)
}

func TestWeatherCache_RefetchesAfterTTL(t *testing.T) {
	c, provider, clock := setupWeatherCache()
	ctx := context.Background()

	provider.On("Fetch", mock.Anything, "madrid", "test-key", "metric", "es").
		Return(sampleRecord("Madrid"), nil).Twice()

	_, err := c.GetOrFetch(ctx, "madrid", "metric", "es")
	require.NoError(t, err)

	clock.Advance(time.Hour)
	_, err = c.GetOrFetch(ctx, "madrid", "metric", "es")
	require.NoError(t, err)

	provider.AssertNumberOfCalls(t, "Fetch", 2)
}

func TestWeatherCache_SignatureIncludesUnitsAndLanguage(t *testing.T) {
	c, provider, _ := setupWeatherCache()
	ctx := context.Background()

	provider.On("Fetch", mock.Anything, "madrid", "test-key", mock.Anything, mock.Anything).
		Return(sampleRecord("Madrid"), nil)

	_, err := c.GetOrFetch(ctx, "madrid", "metric", "es")
	require.NoError(t, err)
	_, err = c.GetOrFetch(ctx, "madrid", "imperial", "es")
	require.NoError(t, err)
	_, err = c.GetOrFetch(ctx, "madrid", "metric", "en")
	require.NoError(t, err)

	provider.AssertNumberOfCalls(t, "Fetch", 3)
}

func TestWeatherCache_FailureIsNotCached(t *testing.T) {
	c, provider, _ := setupWeatherCache()
	ctx := context.Background()

	provider.On("Fetch", mock.Anything, "atlantis", "test-key", "metric", "es").
		Return(nil, errors.New("404 city not found"))

	record, err := c.GetOrFetch(ctx, "atlantis", "metric", "es")
	assert.Nil(t, record)
	assert.ErrorIs(t, err, ErrWeatherUnavailable)

	_, err = c.GetOrFetch(ctx, "atlantis", "metric", "es")
	assert.ErrorIs(t, err, ErrWeatherUnavailable)

	provider.AssertNumberOfCalls(t, "Fetch", 2)
	assert.Equal(t, 0, c.Stats(ctx).Entries)
}

func TestWeatherCache_ConcurrentLookupsShareOneFetch(t *testing.T) {
	c, provider, _ := setupWeatherCache()
	ctx := context.Background()

	release := make(chan struct{})
	provider.On("Fetch", mock.Anything, "lima", "test-key", "metric", "es").
		Run(func(mock.Arguments) { <-release }).
		Return(sampleRecord("Lima"), nil)

	const callers = 8
	var wg sync.WaitGroup
	results := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.GetOrFetch(ctx, "lima", "metric", "es")
			results <- err
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(results)

	for err := range results {
		assert.NoError(t, err)
	}
	provider.AssertNumberOfCalls(t, "Fetch", 1)
}

func TestWeatherCache_CancelledCallerDoesNotFailOthers(t *testing.T) {
	c, provider, _ := setupWeatherCache()

	started := make(chan struct{})
	release := make(chan struct{})
	var fetchErr error
	provider.On("Fetch", mock.Anything, "quito", "test-key", "metric", "es").
		Run(func(args mock.Arguments) {
			close(started)
			<-release
			fetchErr = args.Get(0).(context.Context).Err()
		}).
		Return(sampleRecord("Quito"), nil).Once()

	first, cancel := context.WithCancel(context.Background())
	firstDone := make(chan error, 1)
	go func() {
		_, err := c.GetOrFetch(first, "quito", "metric", "es")
		firstDone <- err
	}()
	<-started

	type result struct {
		city string
		err  error
	}
	secondDone := make(chan result, 1)
	go func() {
		record, err := c.GetOrFetch(context.Background(), "quito", "metric", "es")
		if record != nil {
			secondDone <- result{city: record.Name, err: err}
			return
		}
		secondDone <- result{err: err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	err := <-firstDone
	assert.ErrorIs(t, err, ErrWeatherUnavailable)
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	second := <-secondDone
	require.NoError(t, second.err)
	assert.Equal(t, "Quito", second.city)
	assert.NoError(t, fetchErr)
	provider.AssertNumberOfCalls(t, "Fetch", 1)
}

func TestWeatherCache_Sweep(t *testing.T) {
	c, provider, clock := setupWeatherCache()
	ctx := context.Background()

	provider.On("Fetch", mock.Anything, mock.Anything, "test-key", "metric", "es").
		Return(sampleRecord("X"), nil)

	_, err := c.GetOrFetch(ctx, "madrid", "metric", "es")
	require.NoError(t, err)
	clock.Advance(30 * time.Minute)
	_, err = c.GetOrFetch(ctx, "lima", "metric", "es")
	require.NoError(t, err)

	clock.Advance(45 * time.Minute)
	assert.Equal(t, 1, c.Sweep())
	assert.Equal(t, 1, c.Stats(ctx).Entries)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	fetchedAt := time.Now()

	require.NoError(t, store.Set(ctx, "k", &Entry{Record: sampleRecord("A"), FetchedAt: fetchedAt}))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	got.FetchedAt = time.Time{}

	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, fetchedAt, again.FetchedAt)
}
