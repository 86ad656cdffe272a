package spreadsheet

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/pulseai-health/hospital-directory/internal/domain/entities"
	"github.com/pulseai-health/hospital-directory/internal/domain/repositories"
	"github.com/pulseai-health/hospital-directory/internal/infrastructure/clients/sheets"
	apperrors "github.com/pulseai-health/hospital-directory/pkg/errors"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// DirectoryAdapter implements HospitalDirectory on top of a Google
// spreadsheet with the Hopitaux, Services and Avis sheets.
type DirectoryAdapter struct {
	client *sheets.Client
	now    func() time.Time
}

// NewDirectoryAdapter creates a new spreadsheet-backed directory.
func NewDirectoryAdapter(client *sheets.Client) repositories.HospitalDirectory {
	return &DirectoryAdapter{
		client: client,
		now:    time.Now,
	}
}

// ListHospitals returns every hospital row in the Hopitaux sheet.
func (a *DirectoryAdapter) ListHospitals(ctx context.Context) ([]*entities.Hospital, error) {
	rows, err := a.client.ReadRange(ctx, hospitalRange)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to read hospital sheet", err)
	}

	hospitals := make([]*entities.Hospital, 0, len(rows))
	for _, row := range rows {
		h := decodeHospital(row)
		if h.ID == "" {
			continue
		}
		hospitals = append(hospitals, h)
	}
	return hospitals, nil
}

// GetHospital returns one hospital by ID.
func (a *DirectoryAdapter) GetHospital(ctx context.Context, id string) (*entities.Hospital, error) {
	hospitals, err := a.ListHospitals(ctx)
	if err != nil {
		return nil, err
	}
	for _, h := range hospitals {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("hospital %s not found", id))
}

// CreateHospital appends a new hospital row with directory defaults.
func (a *DirectoryAdapter) CreateHospital(ctx context.Context, hospital *entities.Hospital) error {
	now := a.now()
	if hospital.ID == "" {
		hospital.ID = uuid.NewString()
	}
	if hospital.Country == "" {
		hospital.Country = "Sénégal"
	}
	if hospital.EstablishmentType == "" {
		hospital.EstablishmentType = "Public"
	}
	if hospital.OpeningHours == "" {
		hospital.OpeningHours = "24h/24"
	}
	hospital.AvgWaitMinutes = 0
	hospital.AverageRating = 0
	hospital.ReviewCount = 0
	hospital.Status = "Actif"
	hospital.CreatedAt = now.Format(dateLayout)
	hospital.UpdatedAt = now.Format(dateTimeLayout)

	if err := a.client.AppendRow(ctx, hospitalSheet, encodeHospital(hospital)); err != nil {
		return apperrors.NewExternalError("failed to append hospital row", err)
	}
	return nil
}

// ListAllServices returns every service row in the Services sheet.
func (a *DirectoryAdapter) ListAllServices(ctx context.Context) ([]*entities.Service, error) {
	rows, err := a.client.ReadRange(ctx, serviceRange)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to read services sheet", err)
	}

	services := make([]*entities.Service, 0, len(rows))
	for _, row := range rows {
		s := decodeService(row)
		if s.ID == "" {
			continue
		}
		services = append(services, s)
	}
	return services, nil
}

// ListServices returns the service rows of one hospital.
func (a *DirectoryAdapter) ListServices(ctx context.Context, hospitalID string) ([]*entities.Service, error) {
	services, err := a.ListAllServices(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*entities.Service, 0)
	for _, s := range services {
		if s.HospitalID == hospitalID {
			matched = append(matched, s)
		}
	}
	return matched, nil
}

// AddService appends a service row for a hospital.
func (a *DirectoryAdapter) AddService(ctx context.Context, service *entities.Service) error {
	if service.ID == "" {
		service.ID = uuid.NewString()
	}
	if service.Status == "" {
		service.Status = "Actif"
	}
	if service.AddedAt == "" {
		service.AddedAt = a.now().Format(dateLayout)
	}

	if err := a.client.AppendRow(ctx, serviceSheet, encodeService(service)); err != nil {
		return apperrors.NewExternalError("failed to append service row", err)
	}
	return nil
}

// ListReviews returns the published reviews of one hospital.
func (a *DirectoryAdapter) ListReviews(ctx context.Context, hospitalID string) ([]*entities.Review, error) {
	rows, err := a.client.ReadRange(ctx, reviewRange)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to read reviews sheet", err)
	}

	reviews := make([]*entities.Review, 0)
	for _, row := range rows {
		r := decodeReview(row)
		if r.HospitalID == hospitalID && r.Status == entities.ReviewStatusPublished {
			reviews = append(reviews, r)
		}
	}
	return reviews, nil
}

// AddReview appends a review row and refreshes the hospital's rolling
// average rating and review count in the Hopitaux sheet.
func (a *DirectoryAdapter) AddReview(ctx context.Context, review *entities.Review) error {
	now := a.now()
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	if review.VisitDate == "" {
		review.VisitDate = now.Format(dateLayout)
	}
	review.ReviewedAt = now.Format(dateTimeLayout)
	review.Status = entities.ReviewStatusPublished

	if err := a.client.AppendRow(ctx, reviewSheet, encodeReview(review)); err != nil {
		return apperrors.NewExternalError("failed to append review row", err)
	}

	return a.refreshHospitalRating(ctx, review.HospitalID)
}

// refreshHospitalRating recomputes the average rating and review count
// from published reviews and writes both back to the hospital row.
func (a *DirectoryAdapter) refreshHospitalRating(ctx context.Context, hospitalID string) error {
	reviews, err := a.ListReviews(ctx, hospitalID)
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		return nil
	}

	avg := entities.AverageRating(reviews)
	if avg == 0 {
		return nil
	}

	rowIndex, err := a.findHospitalRow(ctx, hospitalID)
	if err != nil {
		return err
	}
	if rowIndex == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("hospital %s not found", hospitalID))
	}

	rounded := math.Round(avg*10) / 10
	ratingCell := fmt.Sprintf("%s!T%d", hospitalSheet, rowIndex)
	countCell := fmt.Sprintf("%s!U%d", hospitalSheet, rowIndex)

	if err := a.client.UpdateCell(ctx, ratingCell, rounded); err != nil {
		return apperrors.NewExternalError("failed to update hospital rating", err)
	}
	if err := a.client.UpdateCell(ctx, countCell, len(reviews)); err != nil {
		return apperrors.NewExternalError("failed to update hospital review count", err)
	}
	return nil
}

// findHospitalRow returns the 1-based sheet row of a hospital ID, or 0
// when the ID is absent. Data rows start at row 2.
func (a *DirectoryAdapter) findHospitalRow(ctx context.Context, hospitalID string) (int, error) {
	rows, err := a.client.ReadRange(ctx, hospitalSheet+"!A2:A1000")
	if err != nil {
		return 0, apperrors.NewExternalError("failed to read hospital ids", err)
	}
	for i, row := range rows {
		if cellString(row, 0) == hospitalID {
			return i + 2, nil
		}
	}
	return 0, nil
}
