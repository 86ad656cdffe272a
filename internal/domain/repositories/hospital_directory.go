package repositories

import (
	"context"

	"github.com/pulseai-health/hospital-directory/internal/domain/entities"
)

// HospitalDirectory defines the read/write operations over the hospital
// data store. Two interchangeable backends implement it: the spreadsheet
// adapter (Google Sheets rows) and the relational adapter (PostgreSQL).
//
// The search engine takes this interface as an explicit dependency, so
// tests can drive it with canned data instead of a live backend.
type HospitalDirectory interface {
	// ListHospitals returns every hospital profile in the directory.
	ListHospitals(ctx context.Context) ([]*entities.Hospital, error)

	// GetHospital returns one hospital by ID.
	GetHospital(ctx context.Context, id string) (*entities.Hospital, error)

	// CreateHospital registers a new hospital profile.
	CreateHospital(ctx context.Context, hospital *entities.Hospital) error

	// ListAllServices returns every service record across all hospitals.
	// The search engine groups them per hospital in one pass instead of
	// issuing a lookup per candidate.
	ListAllServices(ctx context.Context) ([]*entities.Service, error)

	// ListServices returns the service records of one hospital.
	ListServices(ctx context.Context, hospitalID string) ([]*entities.Service, error)

	// AddService attaches a service record to a hospital.
	AddService(ctx context.Context, service *entities.Service) error

	// ListReviews returns the published reviews of one hospital.
	ListReviews(ctx context.Context, hospitalID string) ([]*entities.Review, error)

	// AddReview stores a review and recomputes the hospital's rolling
	// average rating and review count.
	AddReview(ctx context.Context, review *entities.Review) error
}
