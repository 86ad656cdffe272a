package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseai-health/hospital-directory/internal/domain/entities"
	"github.com/pulseai-health/hospital-directory/internal/domain/providers"
)

// fakeCache records DeletePattern calls.
type fakeCache struct {
	mu       sync.Mutex
	deleted  []string
	entries  map[string][]byte
	patterns chan string
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		entries:  make(map[string][]byte),
		patterns: make(chan string, 16),
	}
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.entries[key]; ok {
		return v, nil
	}
	return nil, context.Canceled
}

func (c *fakeCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *fakeCache) DeletePattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	c.deleted = append(c.deleted, pattern)
	c.mu.Unlock()
	c.patterns <- pattern
	return nil
}

func (c *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok, nil
}

// fakeEventBus is an in-process bus good enough for one subscriber.
type fakeEventBus struct {
	mu       sync.Mutex
	channels map[string]chan *entities.HospitalEvent
}

func newFakeEventBus() *fakeEventBus {
	return &fakeEventBus{channels: make(map[string]chan *entities.HospitalEvent)}
}

func (b *fakeEventBus) Publish(ctx context.Context, channel string, event *entities.HospitalEvent) error {
	b.mu.Lock()
	ch, ok := b.channels[channel]
	b.mu.Unlock()
	if ok {
		ch <- event
	}
	return nil
}

func (b *fakeEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.HospitalEvent, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan *entities.HospitalEvent, 16)
	b.channels[channel] = ch
	return ch, nil
}

func (b *fakeEventBus) Unsubscribe(ctx context.Context, channel string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.channels, channel)
	return nil
}

func (b *fakeEventBus) Close() error { return nil }

func waitForPattern(t *testing.T, cache *fakeCache) string {
	t.Helper()
	select {
	case p := <-cache.patterns:
		return p
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for cache invalidation")
		return ""
	}
}

func TestCacheInvalidation_ReviewEventClearsReviewsAndHospitals(t *testing.T) {
	cache := newFakeCache()
	bus := newFakeEventBus()

	svc := NewCacheInvalidationService(cache, bus)
	require.NoError(t, svc.Start())
	defer svc.Stop()

	event := entities.NewHospitalEvent("H1", entities.HospitalEventTypeReviewAdded, nil)
	require.NoError(t, bus.Publish(context.Background(), providers.EventChannelHospitalUpdates, event))

	first := waitForPattern(t, cache)
	second := waitForPattern(t, cache)
	assert.ElementsMatch(t, []string{"reviews:*", "hospitals:*"}, []string{first, second})
}

func TestCacheInvalidation_ServiceEventClearsServices(t *testing.T) {
	cache := newFakeCache()
	bus := newFakeEventBus()

	svc := NewCacheInvalidationService(cache, bus)
	require.NoError(t, svc.Start())
	defer svc.Stop()

	event := entities.NewHospitalEvent("H1", entities.HospitalEventTypeServiceAdded, nil)
	require.NoError(t, bus.Publish(context.Background(), providers.EventChannelHospitalUpdates, event))

	assert.Equal(t, "services:*", waitForPattern(t, cache))
}

func TestCacheInvalidation_InvalidateHospitalCache(t *testing.T) {
	cache := newFakeCache()
	bus := newFakeEventBus()
	svc := NewCacheInvalidationService(cache, bus)

	require.NoError(t, svc.InvalidateHospitalCache(context.Background(), "H9"))

	cache.mu.Lock()
	defer cache.mu.Unlock()
	assert.Equal(t, []string{
		"hospitals:by-id:H9",
		"services:by-hospital:H9",
		"reviews:by-hospital:H9",
	}, cache.deleted)
}
