package search

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/pulseai-health/hospital-directory/internal/domain/entities"
	"github.com/pulseai-health/hospital-directory/internal/domain/repositories"
	"github.com/pulseai-health/hospital-directory/internal/infrastructure/observability"
)

// DefaultRadiusKm is the radius cutoff applied in geo mode when the
// caller does not supply one.
const DefaultRadiusKm = 50.0

// Params are the search filters. Latitude and Longitude enable geo
// mode only when both are present.
type Params struct {
	Service           string
	City              string
	Region            string
	EstablishmentType string
	Latitude          *float64
	Longitude         *float64
	RadiusKm          float64
}

// GeoMode reports whether the query carries a full coordinate pair.
func (p Params) GeoMode() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// Result is the search outcome. Error carries a diagnostic when the
// directory fetch failed; the result is then empty but still a result,
// never a request failure.
type Result struct {
	Total     int                        `json:"total"`
	Hospitals []*entities.RankedHospital `json:"hospitals"`
	Error     string                     `json:"error,omitempty"`
}

// Engine filters and ranks hospital candidates against a directory
// snapshot fetched fresh per search. It holds no mutable state, so
// concurrent searches are independent.
type Engine struct {
	directory     repositories.HospitalDirectory
	defaultRadius float64
	now           func() time.Time
	metrics       *observability.Metrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock injects the reference time used by the availability check.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithDefaultRadius overrides the default geo-mode radius cutoff.
func WithDefaultRadius(radiusKm float64) Option {
	return func(e *Engine) {
		if radiusKm > 0 {
			e.defaultRadius = radiusKm
		}
	}
}

// WithMetrics enables fetch-duration and result-count metrics.
func WithMetrics(metrics *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = metrics
	}
}

// NewEngine creates a search engine over the given directory.
func NewEngine(directory repositories.HospitalDirectory, opts ...Option) *Engine {
	e := &Engine{
		directory:     directory,
		defaultRadius: DefaultRadiusKm,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Search runs the full pipeline: fetch, categorical filters, then
// either geo scoring or the rating-sorted plain listing. A directory
// fetch failure degrades to an empty result with a diagnostic instead
// of an error; discovery reads prefer availability over strictness.
func (e *Engine) Search(ctx context.Context, params Params) *Result {
	ctx, span := observability.StartSpan(ctx, "search.Engine.Search")
	defer span.End()
	observability.SetSpanAttributes(span,
		attribute.Bool("search.geo", params.GeoMode()),
		attribute.String("search.service", params.Service),
	)

	fetchStart := time.Now()
	hospitals, err := e.directory.ListHospitals(ctx)
	if err != nil {
		observability.RecordError(span, err)
		return &Result{Hospitals: []*entities.RankedHospital{}, Error: err.Error()}
	}

	services, err := e.directory.ListAllServices(ctx)
	if err != nil {
		observability.RecordError(span, err)
		return &Result{Hospitals: []*entities.RankedHospital{}, Error: err.Error()}
	}
	if e.metrics != nil {
		observability.RecordDirectoryFetchMetric(ctx, e.metrics, "search", time.Since(fetchStart))
	}

	servicesByHospital := make(map[string][]*entities.Service, len(hospitals))
	for _, svc := range services {
		servicesByHospital[svc.HospitalID] = append(servicesByHospital[svc.HospitalID], svc)
	}

	candidates := e.filter(hospitals, servicesByHospital, params)

	var ranked []*entities.RankedHospital
	if params.GeoMode() {
		ranked = e.rankByScore(candidates, servicesByHospital, params)
	} else {
		ranked = e.listByRating(candidates, servicesByHospital)
	}

	if e.metrics != nil {
		observability.RecordSearchResultCount(ctx, e.metrics, params.GeoMode(), len(ranked))
	}
	return &Result{Total: len(ranked), Hospitals: ranked}
}

// filter applies the categorical filters. Each is a pure narrowing and
// they commute, applied here before any geo work.
func (e *Engine) filter(hospitals []*entities.Hospital, servicesByHospital map[string][]*entities.Service, params Params) []*entities.Hospital {
	kept := make([]*entities.Hospital, 0, len(hospitals))
	for _, h := range hospitals {
		if params.Service != "" && !hasService(servicesByHospital[h.ID], params.Service) {
			continue
		}
		if params.City != "" && !strings.EqualFold(h.City, params.City) {
			continue
		}
		if params.Region != "" && !strings.EqualFold(h.Region, params.Region) {
			continue
		}
		if params.EstablishmentType != "" && !strings.EqualFold(h.EstablishmentType, params.EstablishmentType) {
			continue
		}
		kept = append(kept, h)
	}
	return kept
}

func hasService(services []*entities.Service, name string) bool {
	for _, svc := range services {
		if svc.Name == name {
			return true
		}
	}
	return false
}

// rankByScore computes distance, availability, equipment bonus and the
// recommendation score per candidate, drops everything beyond the
// radius and sorts by score. The sort is stable: equal scores keep the
// directory's incoming order, no secondary key is defined.
func (e *Engine) rankByScore(candidates []*entities.Hospital, servicesByHospital map[string][]*entities.Service, params Params) []*entities.RankedHospital {
	origin := entities.Location{Latitude: *params.Latitude, Longitude: *params.Longitude}
	radius := params.RadiusKm
	if radius <= 0 {
		radius = e.defaultRadius
	}
	now := e.now()

	ranked := make([]*entities.RankedHospital, 0, len(candidates))
	for _, h := range candidates {
		distance := UnknownDistanceKm
		if h.HasCoordinates() {
			distance = DistanceKm(origin, h.Coordinates())
		}
		if distance > radius {
			continue
		}

		hospitalServices := servicesByHospital[h.ID]
		bonus, _ := EquipmentBonus(hospitalServices)
		open := IsOpen(h.OpeningHours, now)
		score := Score(distance, h.AverageRating, h.AvgWaitMinutes, bonus, open)

		entry := &entities.RankedHospital{
			Hospital:            *h,
			Services:            serviceNames(hospitalServices),
			DistanceKm:          &distance,
			EquipmentBonus:      &bonus,
			IsOpen:              &open,
			RecommendationScore: &score,
		}
		ranked = append(ranked, entry)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].RecommendationScore > *ranked[j].RecommendationScore
	})
	return ranked
}

// listByRating is the non-geo listing path: no distance, score or
// open-state fields, ordered by average rating descending.
func (e *Engine) listByRating(candidates []*entities.Hospital, servicesByHospital map[string][]*entities.Service) []*entities.RankedHospital {
	listed := make([]*entities.RankedHospital, 0, len(candidates))
	for _, h := range candidates {
		listed = append(listed, &entities.RankedHospital{
			Hospital: *h,
			Services: serviceNames(servicesByHospital[h.ID]),
		})
	}

	sort.SliceStable(listed, func(i, j int) bool {
		return listed[i].AverageRating > listed[j].AverageRating
	})
	return listed
}

func serviceNames(services []*entities.Service) []string {
	names := make([]string, 0, len(services))
	for _, svc := range services {
		names = append(names, svc.Name)
	}
	return names
}
