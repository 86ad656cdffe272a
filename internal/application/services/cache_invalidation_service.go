package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pulseai-health/hospital-directory/internal/domain/entities"
	"github.com/pulseai-health/hospital-directory/internal/domain/providers"
)

// CacheInvalidationService clears cached directory data when hospital
// update events arrive on the bus. The writing instance invalidates its
// own cache inline; this service keeps other instances consistent.
type CacheInvalidationService struct {
	cache    providers.CacheProvider
	eventBus providers.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(cache providers.CacheProvider, eventBus providers.EventBus) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:    cache,
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins listening for events and invalidating cache
func (s *CacheInvalidationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelHospitalUpdates)
	if err != nil {
		return fmt.Errorf("failed to subscribe to hospital updates: %w", err)
	}

	go s.processEvents(eventChan)
	log.Info().Msg("Cache invalidation service started")
	return nil
}

// Stop stops the cache invalidation service
func (s *CacheInvalidationService) Stop() {
	s.cancel()
	log.Info().Msg("Cache invalidation service stopped")
}

// processEvents processes hospital events and invalidates cache accordingly
func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.HospitalEvent) {
	for {
		select {
		case <-s.ctx.Done():
			return
		case event := <-eventChan:
			if event == nil {
				continue
			}
			s.handleEvent(event)
		}
	}
}

// handleEvent handles a single hospital event. HTTP response caches are
// left to their short TTLs; only the data-layer keys are cleared, they
// use plain prefixes that DeletePattern can match.
func (s *CacheInvalidationService) handleEvent(event *entities.HospitalEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Debug().
		Str("event_id", event.ID).
		Str("hospital_id", event.HospitalID).
		Str("event_type", string(event.EventType)).
		Msg("Processing cache invalidation")

	patterns := patternsForEvent(event.EventType)
	for _, pattern := range patterns {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			log.Warn().Err(err).Str("pattern", pattern).Msg("Failed to invalidate cache pattern")
		}
	}
}

func patternsForEvent(eventType entities.HospitalEventType) []string {
	switch eventType {
	case entities.HospitalEventTypeProfileCreated:
		return []string{"hospitals:*"}
	case entities.HospitalEventTypeServiceAdded:
		return []string{"services:*"}
	case entities.HospitalEventTypeReviewAdded:
		// A review also moves the hospital's rolling average
		return []string{"reviews:*", "hospitals:*"}
	default:
		return []string{"hospitals:*", "services:*", "reviews:*"}
	}
}

// InvalidateHospitalCache clears the cached entries of one hospital.
func (s *CacheInvalidationService) InvalidateHospitalCache(ctx context.Context, hospitalID string) error {
	patterns := []string{
		fmt.Sprintf("hospitals:by-id:%s", hospitalID),
		fmt.Sprintf("services:by-hospital:%s", hospitalID),
		fmt.Sprintf("reviews:by-hospital:%s", hospitalID),
	}
	for _, pattern := range patterns {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			return fmt.Errorf("failed to invalidate pattern %s: %w", pattern, err)
		}
	}
	return nil
}

// InvalidateAll clears every cached directory entry. Maintenance use
// only, for bulk data loads.
func (s *CacheInvalidationService) InvalidateAll(ctx context.Context) error {
	patterns := []string{"hospitals:*", "services:*", "reviews:*", "http:cache:*"}
	for _, pattern := range patterns {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			return fmt.Errorf("failed to invalidate pattern %s: %w", pattern, err)
		}
	}
	return nil
}
