package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/pulseai-health/hospital-directory/internal/domain/entities"
	"github.com/pulseai-health/hospital-directory/internal/domain/providers"
	"github.com/pulseai-health/hospital-directory/internal/domain/repositories"
)

// CachedDirectoryAdapter wraps a HospitalDirectory with read-through
// caching. Writes invalidate the affected keys by pattern.
type CachedDirectoryAdapter struct {
	directory repositories.HospitalDirectory
	cache     providers.CacheProvider
}

// NewCachedDirectoryAdapter creates a new cached directory adapter
func NewCachedDirectoryAdapter(directory repositories.HospitalDirectory, cache providers.CacheProvider) repositories.HospitalDirectory {
	return &CachedDirectoryAdapter{
		directory: directory,
		cache:     cache,
	}
}

// Cache TTLs (in seconds)
const (
	hospitalByIDTTL  = 300 // 5 minutes for single hospital
	hospitalsListTTL = 180 // 3 minutes for the full directory
	servicesTTL      = 180
	reviewsTTL       = 120
)

// Cache key generators
func hospitalCacheKey(id string) string {
	return fmt.Sprintf("hospitals:by-id:%s", id)
}

func hospitalsListCacheKey() string {
	return "hospitals:list"
}

func servicesCacheKey(hospitalID string) string {
	if hospitalID == "" {
		return "services:all"
	}
	return fmt.Sprintf("services:by-hospital:%s", hospitalID)
}

func reviewsCacheKey(hospitalID string) string {
	return fmt.Sprintf("reviews:by-hospital:%s", hospitalID)
}

// ListHospitals returns the full directory with caching.
func (a *CachedDirectoryAdapter) ListHospitals(ctx context.Context) ([]*entities.Hospital, error) {
	cacheKey := hospitalsListCacheKey()

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var hospitals []*entities.Hospital
		if err := json.Unmarshal(cached, &hospitals); err == nil {
			return hospitals, nil
		}
		log.Warn().Err(err).Msg("failed to unmarshal cached hospital list")
	}

	hospitals, err := a.directory.ListHospitals(ctx)
	if err != nil {
		return nil, err
	}

	a.setAsync(cacheKey, hospitals, hospitalsListTTL)
	return hospitals, nil
}

// GetHospital returns one hospital with caching.
func (a *CachedDirectoryAdapter) GetHospital(ctx context.Context, id string) (*entities.Hospital, error) {
	cacheKey := hospitalCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var hospital entities.Hospital
		if err := json.Unmarshal(cached, &hospital); err == nil {
			return &hospital, nil
		}
		log.Warn().Err(err).Str("hospital_id", id).Msg("failed to unmarshal cached hospital")
	}

	hospital, err := a.directory.GetHospital(ctx, id)
	if err != nil {
		return nil, err
	}

	a.setAsync(cacheKey, hospital, hospitalByIDTTL)
	return hospital, nil
}

// CreateHospital writes through and invalidates the directory listing.
func (a *CachedDirectoryAdapter) CreateHospital(ctx context.Context, hospital *entities.Hospital) error {
	if err := a.directory.CreateHospital(ctx, hospital); err != nil {
		return err
	}
	a.invalidateAsync("hospitals:*")
	return nil
}

// ListAllServices returns all services with caching.
func (a *CachedDirectoryAdapter) ListAllServices(ctx context.Context) ([]*entities.Service, error) {
	return a.cachedServices(ctx, servicesCacheKey(""), func() ([]*entities.Service, error) {
		return a.directory.ListAllServices(ctx)
	})
}

// ListServices returns one hospital's services with caching.
func (a *CachedDirectoryAdapter) ListServices(ctx context.Context, hospitalID string) ([]*entities.Service, error) {
	return a.cachedServices(ctx, servicesCacheKey(hospitalID), func() ([]*entities.Service, error) {
		return a.directory.ListServices(ctx, hospitalID)
	})
}

func (a *CachedDirectoryAdapter) cachedServices(ctx context.Context, cacheKey string, fetch func() ([]*entities.Service, error)) ([]*entities.Service, error) {
	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var services []*entities.Service
		if err := json.Unmarshal(cached, &services); err == nil {
			return services, nil
		}
		log.Warn().Err(err).Str("cache_key", cacheKey).Msg("failed to unmarshal cached services")
	}

	services, err := fetch()
	if err != nil {
		return nil, err
	}

	a.setAsync(cacheKey, services, servicesTTL)
	return services, nil
}

// AddService writes through and invalidates service listings.
func (a *CachedDirectoryAdapter) AddService(ctx context.Context, service *entities.Service) error {
	if err := a.directory.AddService(ctx, service); err != nil {
		return err
	}
	a.invalidateAsync("services:*")
	return nil
}

// ListReviews returns one hospital's published reviews with caching.
func (a *CachedDirectoryAdapter) ListReviews(ctx context.Context, hospitalID string) ([]*entities.Review, error) {
	cacheKey := reviewsCacheKey(hospitalID)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var reviews []*entities.Review
		if err := json.Unmarshal(cached, &reviews); err == nil {
			return reviews, nil
		}
		log.Warn().Err(err).Str("hospital_id", hospitalID).Msg("failed to unmarshal cached reviews")
	}

	reviews, err := a.directory.ListReviews(ctx, hospitalID)
	if err != nil {
		return nil, err
	}

	a.setAsync(cacheKey, reviews, reviewsTTL)
	return reviews, nil
}

// AddReview writes through and invalidates reviews plus the hospital
// entries, whose rolling average just changed.
func (a *CachedDirectoryAdapter) AddReview(ctx context.Context, review *entities.Review) error {
	if err := a.directory.AddReview(ctx, review); err != nil {
		return err
	}
	a.invalidateAsync("reviews:*")
	a.invalidateAsync("hospitals:*")
	return nil
}

// setAsync caches a value without blocking the response.
func (a *CachedDirectoryAdapter) setAsync(cacheKey string, value interface{}, ttlSeconds int) {
	go func() {
		bgCtx := context.Background()
		data, err := json.Marshal(value)
		if err != nil {
			return
		}
		if err := a.cache.Set(bgCtx, cacheKey, data, ttlSeconds); err != nil {
			log.Warn().Err(err).Str("cache_key", cacheKey).Msg("failed to cache value")
		}
	}()
}

// invalidateAsync deletes keys matching the pattern without blocking.
func (a *CachedDirectoryAdapter) invalidateAsync(pattern string) {
	go func() {
		bgCtx := context.Background()
		if err := a.cache.DeletePattern(bgCtx, pattern); err != nil {
			log.Warn().Err(err).Str("pattern", pattern).Msg("failed to invalidate cache")
		}
	}()
}
