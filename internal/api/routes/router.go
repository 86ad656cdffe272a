package routes

import (
	"net/http"

	"github.com/pulseai-health/hospital-directory/internal/api/handlers"
	"github.com/pulseai-health/hospital-directory/internal/api/middleware"
	"github.com/pulseai-health/hospital-directory/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	hospitalHandler *handlers.HospitalHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	hospitalHandler *handlers.HospitalHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		hospitalHandler: hospitalHandler,
		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Hospital directory endpoints
	r.mux.HandleFunc("GET /api/v1/hospitals/search", r.hospitalHandler.SearchHospitals)
	r.mux.HandleFunc("GET /api/v1/hospitals", r.hospitalHandler.ListHospitals)
	r.mux.HandleFunc("POST /api/v1/hospitals", r.hospitalHandler.CreateHospital)
	r.mux.HandleFunc("GET /api/v1/hospitals/{id}", r.hospitalHandler.GetHospital)
	r.mux.HandleFunc("POST /api/v1/hospitals/{id}/services", r.hospitalHandler.AddService)
	r.mux.HandleFunc("GET /api/v1/hospitals/{id}/reviews", r.hospitalHandler.ListReviews)
	r.mux.HandleFunc("POST /api/v1/hospitals/{id}/reviews", r.hospitalHandler.AddReview)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Apply HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
