package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/pulseai-health/hospital-directory/internal/domain/entities"
	"github.com/pulseai-health/hospital-directory/internal/domain/providers"
	"github.com/pulseai-health/hospital-directory/internal/domain/repositories"
	"github.com/pulseai-health/hospital-directory/internal/search"
	apperrors "github.com/pulseai-health/hospital-directory/pkg/errors"
)

// HospitalHandler handles hospital directory HTTP requests
type HospitalHandler struct {
	directory repositories.HospitalDirectory
	engine    *search.Engine
	eventBus  providers.EventBus
}

// NewHospitalHandler creates a new hospital handler. The event bus is
// optional; without one, writes simply skip event publication.
func NewHospitalHandler(directory repositories.HospitalDirectory, engine *search.Engine, eventBus providers.EventBus) *HospitalHandler {
	return &HospitalHandler{
		directory: directory,
		engine:    engine,
		eventBus:  eventBus,
	}
}

// SearchHospitals handles GET /api/v1/hospitals/search
func (h *HospitalHandler) SearchHospitals(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	params := search.Params{
		Service:           query.Get("service"),
		City:              query.Get("ville"),
		Region:            query.Get("region"),
		EstablishmentType: query.Get("type_etablissement"),
	}

	lat, latOK := parseFloatParam(query.Get("latitude"))
	lon, lonOK := parseFloatParam(query.Get("longitude"))
	if latOK && lonOK {
		params.Latitude = &lat
		params.Longitude = &lon
	}
	if radius, ok := parseFloatParam(query.Get("rayon_km")); ok {
		params.RadiusKm = radius
	}

	// Search never fails the request: a directory outage surfaces as an
	// empty result with a diagnostic, still HTTP 200.
	result := h.engine.Search(r.Context(), params)
	respondWithJSON(w, http.StatusOK, result)
}

// ListHospitals handles GET /api/v1/hospitals
func (h *HospitalHandler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	result := h.engine.Search(r.Context(), search.Params{})
	if result.Error != "" {
		respondWithError(w, http.StatusInternalServerError, "failed to list hospitals")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"total":     result.Total,
		"hospitals": result.Hospitals,
	})
}

// GetHospital handles GET /api/v1/hospitals/{id}
func (h *HospitalHandler) GetHospital(w http.ResponseWriter, r *http.Request) {
	hospitalID := r.PathValue("id")
	if hospitalID == "" {
		respondWithError(w, http.StatusBadRequest, "hospital ID is required")
		return
	}

	hospital, err := h.directory.GetHospital(r.Context(), hospitalID)
	if err != nil {
		handleDirectoryError(w, err)
		return
	}

	services, err := h.directory.ListServices(r.Context(), hospitalID)
	if err != nil {
		handleDirectoryError(w, err)
		return
	}

	reviews, err := h.directory.ListReviews(r.Context(), hospitalID)
	if err != nil {
		handleDirectoryError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"hospital": hospital,
		"services": services,
		"reviews":  reviews,
	})
}

// CreateHospital handles POST /api/v1/hospitals
func (h *HospitalHandler) CreateHospital(w http.ResponseWriter, r *http.Request) {
	var hospital entities.Hospital
	if err := json.NewDecoder(r.Body).Decode(&hospital); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if hospital.Name == "" {
		respondWithError(w, http.StatusBadRequest, "nom is required")
		return
	}

	if err := h.directory.CreateHospital(r.Context(), &hospital); err != nil {
		handleDirectoryError(w, err)
		return
	}

	h.publishEvent(hospital.ID, entities.HospitalEventTypeProfileCreated, nil)

	respondWithJSON(w, http.StatusCreated, hospital)
}

// AddService handles POST /api/v1/hospitals/{id}/services
func (h *HospitalHandler) AddService(w http.ResponseWriter, r *http.Request) {
	hospitalID := r.PathValue("id")
	if hospitalID == "" {
		respondWithError(w, http.StatusBadRequest, "hospital ID is required")
		return
	}

	if _, err := h.directory.GetHospital(r.Context(), hospitalID); err != nil {
		handleDirectoryError(w, err)
		return
	}

	var service entities.Service
	if err := json.NewDecoder(r.Body).Decode(&service); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if service.Name == "" {
		respondWithError(w, http.StatusBadRequest, "nom_service is required")
		return
	}
	service.HospitalID = hospitalID

	if err := h.directory.AddService(r.Context(), &service); err != nil {
		handleDirectoryError(w, err)
		return
	}

	h.publishEvent(hospitalID, entities.HospitalEventTypeServiceAdded, map[string]interface{}{
		"service_id": service.ID,
	})

	respondWithJSON(w, http.StatusCreated, service)
}

// ListReviews handles GET /api/v1/hospitals/{id}/reviews
func (h *HospitalHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	hospitalID := r.PathValue("id")
	if hospitalID == "" {
		respondWithError(w, http.StatusBadRequest, "hospital ID is required")
		return
	}

	if _, err := h.directory.GetHospital(r.Context(), hospitalID); err != nil {
		handleDirectoryError(w, err)
		return
	}

	reviews, err := h.directory.ListReviews(r.Context(), hospitalID)
	if err != nil {
		handleDirectoryError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"total":        len(reviews),
		"note_moyenne": entities.AverageRating(reviews),
		"reviews":      reviews,
	})
}

// AddReview handles POST /api/v1/hospitals/{id}/reviews
func (h *HospitalHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	hospitalID := r.PathValue("id")
	if hospitalID == "" {
		respondWithError(w, http.StatusBadRequest, "hospital ID is required")
		return
	}

	var review entities.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if review.Rating < 0 || review.Rating > 5 {
		respondWithError(w, http.StatusBadRequest, "note must be between 0 and 5")
		return
	}

	if _, err := h.directory.GetHospital(r.Context(), hospitalID); err != nil {
		handleDirectoryError(w, err)
		return
	}

	review.HospitalID = hospitalID
	if err := h.directory.AddReview(r.Context(), &review); err != nil {
		handleDirectoryError(w, err)
		return
	}

	h.publishEvent(hospitalID, entities.HospitalEventTypeReviewAdded, map[string]interface{}{
		"review_id": review.ID,
	})

	respondWithJSON(w, http.StatusCreated, review)
}

func (h *HospitalHandler) publishEvent(hospitalID string, eventType entities.HospitalEventType, changedFields map[string]interface{}) {
	if h.eventBus == nil {
		return
	}
	event := entities.NewHospitalEvent(hospitalID, eventType, changedFields)
	go func() {
		if err := h.eventBus.Publish(context.Background(), providers.EventChannelHospitalUpdates, event); err != nil {
			log.Warn().Err(err).Str("hospital_id", hospitalID).Msg("failed to publish hospital event")
		}
	}()
}

func parseFloatParam(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func handleDirectoryError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		case apperrors.ErrorTypeExternal:
			respondWithError(w, http.StatusBadGateway, appErr.Message)
		default:
			respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
