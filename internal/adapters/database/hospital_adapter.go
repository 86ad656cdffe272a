package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"

	"github.com/pulseai-health/hospital-directory/internal/domain/entities"
	"github.com/pulseai-health/hospital-directory/internal/domain/repositories"
	"github.com/pulseai-health/hospital-directory/internal/infrastructure/clients/postgres"
	apperrors "github.com/pulseai-health/hospital-directory/pkg/errors"
)

var hospitalColumns = []interface{}{
	"id", "nom", "adresse", "ville", "region", "pays",
	"latitude", "longitude", "telephone", "email",
	"description", "type_etablissement", "nombre_lits",
	"horaires_ouverture", "site_web", "image_url",
	"capacite_totale", "capacite_disponible", "temps_moyen_attente",
	"note_moyenne", "nombre_avis", "statut", "created_at", "updated_at",
}

// HospitalAdapter implements HospitalDirectory in Postgres.
type HospitalAdapter struct {
	client *postgres.Client
	db     *goqu.Database
	now    func() time.Time
}

// NewHospitalAdapter creates a new Postgres-backed directory.
func NewHospitalAdapter(client *postgres.Client) repositories.HospitalDirectory {
	return &HospitalAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
		now:    time.Now,
	}
}

// ListHospitals returns every hospital profile.
func (a *HospitalAdapter) ListHospitals(ctx context.Context) ([]*entities.Hospital, error) {
	query, args, err := a.db.From("hospitals").
		Select(hospitalColumns...).
		Order(goqu.I("nom").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build hospital list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list hospitals", err)
	}
	defer rows.Close()

	hospitals := make([]*entities.Hospital, 0)
	for rows.Next() {
		h, err := scanHospital(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan hospital", err)
		}
		hospitals = append(hospitals, h)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate hospitals", err)
	}
	return hospitals, nil
}

// GetHospital returns one hospital by ID.
func (a *HospitalAdapter) GetHospital(ctx context.Context, id string) (*entities.Hospital, error) {
	query, args, err := a.db.From("hospitals").
		Select(hospitalColumns...).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build hospital get query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	h, err := scanHospital(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("hospital %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get hospital", err)
	}
	return h, nil
}

// CreateHospital inserts a new hospital profile with directory defaults.
func (a *HospitalAdapter) CreateHospital(ctx context.Context, hospital *entities.Hospital) error {
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
	hospital.CreatedAt = now.Format("2006-01-02")
	hospital.UpdatedAt = now.Format("2006-01-02 15:04:05")

	record := goqu.Record{
		"id":                  hospital.ID,
		"nom":                 hospital.Name,
		"adresse":             hospital.Address,
		"ville":               hospital.City,
		"region":              hospital.Region,
		"pays":                hospital.Country,
		"latitude":            hospital.Latitude,
		"longitude":           hospital.Longitude,
		"telephone":           hospital.Phone,
		"email":               hospital.Email,
		"description":         hospital.Description,
		"type_etablissement":  hospital.EstablishmentType,
		"nombre_lits":         hospital.BedCount,
		"horaires_ouverture":  hospital.OpeningHours,
		"site_web":            hospital.Website,
		"image_url":           hospital.ImageURL,
		"capacite_totale":     hospital.TotalCapacity,
		"capacite_disponible": hospital.AvailableCapacity,
		"temps_moyen_attente": hospital.AvgWaitMinutes,
		"note_moyenne":        hospital.AverageRating,
		"nombre_avis":         hospital.ReviewCount,
		"statut":              hospital.Status,
		"created_at":          hospital.CreatedAt,
		"updated_at":          hospital.UpdatedAt,
	}

	query, args, err := a.db.Insert("hospitals").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build hospital insert query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create hospital", err)
	}
	return nil
}

// ListAllServices returns every service record across all hospitals.
func (a *HospitalAdapter) ListAllServices(ctx context.Context) ([]*entities.Service, error) {
	return a.listServices(ctx, goqu.Ex{})
}

// ListServices returns the service records of one hospital.
func (a *HospitalAdapter) ListServices(ctx context.Context, hospitalID string) ([]*entities.Service, error) {
	return a.listServices(ctx, goqu.Ex{"hopital_id": hospitalID})
}

func (a *HospitalAdapter) listServices(ctx context.Context, where goqu.Ex) ([]*entities.Service, error) {
	query, args, err := a.db.From("hospital_services").
		Select(
			"id", "hopital_id", "nom_service", "departement", "disponibilite",
			"specialites", "medecins_disponibles", "equipements",
			"tarif_consultation", "commentaires", "statut", "date_ajout",
		).
		Where(where).
		Order(goqu.I("nom_service").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build service list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list services", err)
	}
	defer rows.Close()

	services := make([]*entities.Service, 0)
	for rows.Next() {
		s := &entities.Service{}
		err := rows.Scan(
			&s.ID,
			&s.HospitalID,
			&s.Name,
			&s.Department,
			&s.Availability,
			&s.Specialties,
			&s.DoctorsAvailable,
			&s.Equipment,
			&s.ConsultationFee,
			&s.Comments,
			&s.Status,
			&s.AddedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan service", err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate services", err)
	}
	return services, nil
}

// AddService inserts a service record for a hospital.
func (a *HospitalAdapter) AddService(ctx context.Context, service *entities.Service) error {
	if service.ID == "" {
		service.ID = uuid.NewString()
	}
	if service.Status == "" {
		service.Status = "Actif"
	}
	if service.AddedAt == "" {
		service.AddedAt = a.now().Format("2006-01-02")
	}

	record := goqu.Record{
		"id":                   service.ID,
		"hopital_id":           service.HospitalID,
		"nom_service":          service.Name,
		"departement":          service.Department,
		"disponibilite":        service.Availability,
		"specialites":          service.Specialties,
		"medecins_disponibles": service.DoctorsAvailable,
		"equipements":          service.Equipment,
		"tarif_consultation":   service.ConsultationFee,
		"commentaires":         service.Comments,
		"statut":               service.Status,
		"date_ajout":           service.AddedAt,
	}

	query, args, err := a.db.Insert("hospital_services").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build service insert query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to add service", err)
	}
	return nil
}

// ListReviews returns the published reviews of one hospital.
func (a *HospitalAdapter) ListReviews(ctx context.Context, hospitalID string) ([]*entities.Review, error) {
	query, args, err := a.db.From("hospital_reviews").
		Select(
			"id", "hopital_id", "utilisateur_id", "note", "service_utilise",
			"commentaire", "criteres_notes", "date_visite", "date_avis",
			"verifie", "statut",
		).
		Where(goqu.Ex{
			"hopital_id": hospitalID,
			"statut":     entities.ReviewStatusPublished,
		}).
		Order(goqu.I("date_avis").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build review list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	defer rows.Close()

	reviews := make([]*entities.Review, 0)
	for rows.Next() {
		r := &entities.Review{}
		err := rows.Scan(
			&r.ID,
			&r.HospitalID,
			&r.UserID,
			&r.Rating,
			&r.ServiceUsed,
			&r.Comment,
			&r.CriteriaRatings,
			&r.VisitDate,
			&r.ReviewedAt,
			&r.Verified,
			&r.Status,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate reviews", err)
	}
	return reviews, nil
}

// AddReview inserts a review inside a transaction and refreshes the
// hospital's rolling average rating and review count.
func (a *HospitalAdapter) AddReview(ctx context.Context, review *entities.Review) error {
	now := a.now()
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	if review.VisitDate == "" {
		review.VisitDate = now.Format("2006-01-02")
	}
	review.ReviewedAt = now.Format("2006-01-02 15:04:05")
	review.Status = entities.ReviewStatusPublished

	record := goqu.Record{
		"id":              review.ID,
		"hopital_id":      review.HospitalID,
		"utilisateur_id":  review.UserID,
		"note":            review.Rating,
		"service_utilise": review.ServiceUsed,
		"commentaire":     review.Comment,
		"criteres_notes":  review.CriteriaRatings,
		"date_visite":     review.VisitDate,
		"date_avis":       review.ReviewedAt,
		"verifie":         review.Verified,
		"statut":          review.Status,
	}

	insertQuery, insertArgs, err := a.db.Insert("hospital_reviews").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build review insert query", err)
	}

	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin review transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return apperrors.NewInternalError("failed to add review", err)
	}

	var avg sql.NullFloat64
	var count int
	statsQuery := `
		SELECT AVG(note) FILTER (WHERE note > 0), COUNT(*)
		FROM hospital_reviews
		WHERE hopital_id = $1 AND statut = $2
	`
	err = tx.QueryRowContext(ctx, statsQuery, review.HospitalID, entities.ReviewStatusPublished).
		Scan(&avg, &count)
	if err != nil {
		return apperrors.NewInternalError("failed to compute review stats", err)
	}

	rounded := 0.0
	if avg.Valid {
		rounded = math.Round(avg.Float64*10) / 10
	}

	updateQuery, updateArgs, err := a.db.Update("hospitals").
		Set(goqu.Record{
			"note_moyenne": rounded,
			"nombre_avis":  count,
			"updated_at":   now.Format("2006-01-02 15:04:05"),
		}).
		Where(goqu.Ex{"id": review.HospitalID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build hospital rating update", err)
	}
	if _, err := tx.ExecContext(ctx, updateQuery, updateArgs...); err != nil {
		return apperrors.NewInternalError("failed to update hospital rating", err)
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit review transaction", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHospital(row rowScanner) (*entities.Hospital, error) {
	h := &entities.Hospital{}
	err := row.Scan(
		&h.ID,
		&h.Name,
		&h.Address,
		&h.City,
		&h.Region,
		&h.Country,
		&h.Latitude,
		&h.Longitude,
		&h.Phone,
		&h.Email,
		&h.Description,
		&h.EstablishmentType,
		&h.BedCount,
		&h.OpeningHours,
		&h.Website,
		&h.ImageURL,
		&h.TotalCapacity,
		&h.AvailableCapacity,
		&h.AvgWaitMinutes,
		&h.AverageRating,
		&h.ReviewCount,
		&h.Status,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return h, nil
}
