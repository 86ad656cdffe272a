package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pulseai-health/hospital-directory/internal/api/handlers"
	"github.com/pulseai-health/hospital-directory/internal/domain/entities"
	"github.com/pulseai-health/hospital-directory/internal/search"
	apperrors "github.com/pulseai-health/hospital-directory/pkg/errors"
)

type MockHospitalDirectory struct {
	mock.Mock
}

func (m *MockHospitalDirectory) ListHospitals(ctx context.Context) ([]*entities.Hospital, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Hospital), args.Error(1)
}

func (m *MockHospitalDirectory) GetHospital(ctx context.Context, id string) (*entities.Hospital, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Hospital), args.Error(1)
}

func (m *MockHospitalDirectory) CreateHospital(ctx context.Context, hospital *entities.Hospital) error {
	args := m.Called(ctx, hospital)
	return args.Error(0)
}

func (m *MockHospitalDirectory) ListAllServices(ctx context.Context) ([]*entities.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Service), args.Error(1)
}

func (m *MockHospitalDirectory) ListServices(ctx context.Context, hospitalID string) ([]*entities.Service, error) {
	args := m.Called(ctx, hospitalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Service), args.Error(1)
}

func (m *MockHospitalDirectory) AddService(ctx context.Context, service *entities.Service) error {
	args := m.Called(ctx, service)
	return args.Error(0)
}

func (m *MockHospitalDirectory) ListReviews(ctx context.Context, hospitalID string) ([]*entities.Review, error) {
	args := m.Called(ctx, hospitalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Review), args.Error(1)
}

func (m *MockHospitalDirectory) AddReview(ctx context.Context, review *entities.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

// Wednesday 10:00, inside office hours for every descriptor.
func testClock() time.Time {
	return time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
}

func newTestHandler(directory *MockHospitalDirectory) *handlers.HospitalHandler {
	engine := search.NewEngine(directory, search.WithClock(testClock))
	return handlers.NewHospitalHandler(directory, engine, nil)
}

func TestSearchHospitals_GeoModeReturnsRankedResults(t *testing.T) {
	directory := new(MockHospitalDirectory)
	handler := newTestHandler(directory)

	hospitals := []*entities.Hospital{
		{ID: "h1", Name: "Hôpital Principal", City: "Dakar", Latitude: 14.6937, Longitude: -17.4441, AverageRating: 4.0, OpeningHours: "24h/24"},
		{ID: "h2", Name: "Clinique du Cap", City: "Dakar", Latitude: 14.6937, Longitude: -17.4441, AverageRating: 3.0, OpeningHours: "24h/24"},
	}
	services := []*entities.Service{
		{ID: "s1", HospitalID: "h2", Name: "Urgences", Equipment: "Scanner"},
	}
	directory.On("ListHospitals", mock.Anything).Return(hospitals, nil)
	directory.On("ListAllServices", mock.Anything).Return(services, nil)

	req := httptest.NewRequest("GET", "/api/v1/hospitals/search?latitude=14.6937&longitude=-17.4441&rayon_km=25", nil)
	w := httptest.NewRecorder()

	handler.SearchHospitals(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp search.Result
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Empty(t, resp.Error)

	// h2 carries the scanner bonus: 1000 + 150 + 150 > 1000 + 200.
	assert.Equal(t, "h2", resp.Hospitals[0].ID)
	assert.Equal(t, "h1", resp.Hospitals[1].ID)
	if assert.NotNil(t, resp.Hospitals[0].RecommendationScore) {
		assert.Equal(t, 1300.0, *resp.Hospitals[0].RecommendationScore)
	}
	if assert.NotNil(t, resp.Hospitals[0].DistanceKm) {
		assert.Equal(t, 0.0, *resp.Hospitals[0].DistanceKm)
	}
}

func TestSearchHospitals_DirectoryFailureStillReturns200(t *testing.T) {
	directory := new(MockHospitalDirectory)
	handler := newTestHandler(directory)

	directory.On("ListHospitals", mock.Anything).Return(nil, apperrors.NewExternalError("sheets", assert.AnError))

	req := httptest.NewRequest("GET", "/api/v1/hospitals/search?ville=Dakar", nil)
	w := httptest.NewRecorder()

	handler.SearchHospitals(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp search.Result
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Equal(t, 0, resp.Total)
	assert.Empty(t, resp.Hospitals)
	assert.NotEmpty(t, resp.Error)
}

func TestSearchHospitals_IgnoresHalfGeoPair(t *testing.T) {
	directory := new(MockHospitalDirectory)
	handler := newTestHandler(directory)

	hospitals := []*entities.Hospital{
		{ID: "h1", Name: "Hôpital A", AverageRating: 3.0},
		{ID: "h2", Name: "Hôpital B", AverageRating: 4.5},
	}
	directory.On("ListHospitals", mock.Anything).Return(hospitals, nil)
	directory.On("ListAllServices", mock.Anything).Return([]*entities.Service{}, nil)

	// Latitude without longitude: falls back to the rating-sorted listing.
	req := httptest.NewRequest("GET", "/api/v1/hospitals/search?latitude=14.69", nil)
	w := httptest.NewRecorder()

	handler.SearchHospitals(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp search.Result
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "h2", resp.Hospitals[0].ID)
	assert.Nil(t, resp.Hospitals[0].RecommendationScore)
	assert.Nil(t, resp.Hospitals[0].DistanceKm)
}

func TestGetHospital_NotFoundReturns404(t *testing.T) {
	directory := new(MockHospitalDirectory)
	handler := newTestHandler(directory)

	directory.On("GetHospital", mock.Anything, "missing").Return(nil, apperrors.NewNotFoundError("hospital not found"))

	req := httptest.NewRequest("GET", "/api/v1/hospitals/missing", nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	handler.GetHospital(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetHospital_ReturnsProfileWithServicesAndReviews(t *testing.T) {
	directory := new(MockHospitalDirectory)
	handler := newTestHandler(directory)

	hospital := &entities.Hospital{ID: "h1", Name: "Hôpital Principal", City: "Dakar"}
	services := []*entities.Service{{ID: "s1", HospitalID: "h1", Name: "Cardiologie"}}
	reviews := []*entities.Review{{ID: "r1", HospitalID: "h1", Rating: 4.0, Status: entities.ReviewStatusPublished}}

	directory.On("GetHospital", mock.Anything, "h1").Return(hospital, nil)
	directory.On("ListServices", mock.Anything, "h1").Return(services, nil)
	directory.On("ListReviews", mock.Anything, "h1").Return(reviews, nil)

	req := httptest.NewRequest("GET", "/api/v1/hospitals/h1", nil)
	req.SetPathValue("id", "h1")
	w := httptest.NewRecorder()

	handler.GetHospital(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Hospital entities.Hospital   `json:"hospital"`
		Services []*entities.Service `json:"services"`
		Reviews  []*entities.Review  `json:"reviews"`
	}
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Equal(t, "h1", resp.Hospital.ID)
	assert.Len(t, resp.Services, 1)
	assert.Len(t, resp.Reviews, 1)
}

func TestCreateHospital_RequiresName(t *testing.T) {
	directory := new(MockHospitalDirectory)
	handler := newTestHandler(directory)

	body := bytes.NewBufferString(`{"ville": "Dakar"}`)
	req := httptest.NewRequest("POST", "/api/v1/hospitals", body)
	w := httptest.NewRecorder()

	handler.CreateHospital(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	directory.AssertNotCalled(t, "CreateHospital", mock.Anything, mock.Anything)
}

func TestCreateHospital_Returns201(t *testing.T) {
	directory := new(MockHospitalDirectory)
	handler := newTestHandler(directory)

	directory.On("CreateHospital", mock.Anything, mock.MatchedBy(func(h *entities.Hospital) bool {
		return h.Name == "Clinique Pasteur" && h.City == "Thiès"
	})).Return(nil)

	body := bytes.NewBufferString(`{"nom": "Clinique Pasteur", "ville": "Thiès"}`)
	req := httptest.NewRequest("POST", "/api/v1/hospitals", body)
	w := httptest.NewRecorder()

	handler.CreateHospital(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	directory.AssertExpectations(t)
}

func TestAddService_UnknownHospitalReturns404(t *testing.T) {
	directory := new(MockHospitalDirectory)
	handler := newTestHandler(directory)

	directory.On("GetHospital", mock.Anything, "missing").Return(nil, apperrors.NewNotFoundError("hospital not found"))

	body := bytes.NewBufferString(`{"nom_service": "Urgences"}`)
	req := httptest.NewRequest("POST", "/api/v1/hospitals/missing/services", body)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	handler.AddService(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	directory.AssertNotCalled(t, "AddService", mock.Anything, mock.Anything)
}

func TestAddService_AttachesHospitalID(t *testing.T) {
	directory := new(MockHospitalDirectory)
	handler := newTestHandler(directory)

	directory.On("GetHospital", mock.Anything, "h1").Return(&entities.Hospital{ID: "h1", Name: "Hôpital Principal"}, nil)
	directory.On("AddService", mock.Anything, mock.MatchedBy(func(s *entities.Service) bool {
		return s.HospitalID == "h1" && s.Name == "Radiologie"
	})).Return(nil)

	body := bytes.NewBufferString(`{"nom_service": "Radiologie", "equipements": "Scanner"}`)
	req := httptest.NewRequest("POST", "/api/v1/hospitals/h1/services", body)
	req.SetPathValue("id", "h1")
	w := httptest.NewRecorder()

	handler.AddService(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	directory.AssertExpectations(t)
}

func TestAddReview_RatingOutOfRangeReturns400(t *testing.T) {
	directory := new(MockHospitalDirectory)
	handler := newTestHandler(directory)

	for _, raw := range []string{`{"note": 5.5}`, `{"note": -1}`} {
		req := httptest.NewRequest("POST", "/api/v1/hospitals/h1/reviews", bytes.NewBufferString(raw))
		req.SetPathValue("id", "h1")
		w := httptest.NewRecorder()

		handler.AddReview(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
	directory.AssertNotCalled(t, "AddReview", mock.Anything, mock.Anything)
}

func TestAddReview_Returns201(t *testing.T) {
	directory := new(MockHospitalDirectory)
	handler := newTestHandler(directory)

	directory.On("GetHospital", mock.Anything, "h1").Return(&entities.Hospital{ID: "h1", Name: "Hôpital Principal"}, nil)
	directory.On("AddReview", mock.Anything, mock.MatchedBy(func(r *entities.Review) bool {
		return r.HospitalID == "h1" && r.Rating == 4.5
	})).Return(nil)

	body := bytes.NewBufferString(`{"note": 4.5, "commentaire": "Très bon accueil"}`)
	req := httptest.NewRequest("POST", "/api/v1/hospitals/h1/reviews", body)
	req.SetPathValue("id", "h1")
	w := httptest.NewRecorder()

	handler.AddReview(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	directory.AssertExpectations(t)
}

func TestListReviews_ReportsAverageOfPublishedRatings(t *testing.T) {
	directory := new(MockHospitalDirectory)
	handler := newTestHandler(directory)

	reviews := []*entities.Review{
		{ID: "r1", HospitalID: "h1", Rating: 4.0},
		{ID: "r2", HospitalID: "h1", Rating: 5.0},
		{ID: "r3", HospitalID: "h1", Rating: 0},
	}
	directory.On("GetHospital", mock.Anything, "h1").Return(&entities.Hospital{ID: "h1", Name: "Hôpital Principal"}, nil)
	directory.On("ListReviews", mock.Anything, "h1").Return(reviews, nil)

	req := httptest.NewRequest("GET", "/api/v1/hospitals/h1/reviews", nil)
	req.SetPathValue("id", "h1")
	w := httptest.NewRecorder()

	handler.ListReviews(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Total       int                `json:"total"`
		NoteMoyenne float64            `json:"note_moyenne"`
		Reviews     []*entities.Review `json:"reviews"`
	}
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 4.5, resp.NoteMoyenne)
	assert.Len(t, resp.Reviews, 3)
}

func TestListHospitals_DirectoryFailureReturns500(t *testing.T) {
	directory := new(MockHospitalDirectory)
	handler := newTestHandler(directory)

	directory.On("ListHospitals", mock.Anything).Return(nil, apperrors.NewExternalError("sheets", assert.AnError))

	req := httptest.NewRequest("GET", "/api/v1/hospitals", nil)
	w := httptest.NewRecorder()

	handler.ListHospitals(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
