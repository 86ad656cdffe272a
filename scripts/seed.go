package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/pulseai-health/hospital-directory/internal/adapters/database"
	"github.com/pulseai-health/hospital-directory/internal/domain/entities"
	"github.com/pulseai-health/hospital-directory/internal/infrastructure/clients/postgres"
	"github.com/pulseai-health/hospital-directory/pkg/config"
)

// Seeds the PostgreSQL backend with a small set of Senegalese hospitals,
// their services, and a few reviews. Intended for local development:
//
//	DIRECTORY_BACKEND=postgres go run scripts/seed.go
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				hospital_reviews,
				hospital_services,
				hospitals
			CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	directory := database.NewHospitalAdapter(pgClient)

	now := time.Now()
	date := now.Format("2006-01-02")
	dateTime := now.Format("2006-01-02 15:04:05")

	// 1. Seed hospitals
	hospitals := []*entities.Hospital{
		{
			ID:                uuid.NewString(),
			Name:              "Hôpital Principal de Dakar",
			Address:           "1 Avenue Nelson Mandela",
			City:              "Dakar",
			Region:            "Dakar",
			Country:           "Sénégal",
			Latitude:          14.6592,
			Longitude:         -17.4357,
			Phone:             "+221 33 839 50 50",
			EstablishmentType: "Public",
			BedCount:          450,
			OpeningHours:      "24h/24",
			TotalCapacity:     450,
			AvailableCapacity: 120,
			AvgWaitMinutes:    35,
			Status:            "Actif",
			CreatedAt:         dateTime,
			UpdatedAt:         dateTime,
		},
		{
			ID:                uuid.NewString(),
			Name:              "Hôpital Aristide Le Dantec",
			Address:           "Avenue Pasteur",
			City:              "Dakar",
			Region:            "Dakar",
			Country:           "Sénégal",
			Latitude:          14.6547,
			Longitude:         -17.4378,
			Phone:             "+221 33 889 38 00",
			EstablishmentType: "Public",
			BedCount:          600,
			OpeningHours:      "Lun-Ven 8h-18h",
			TotalCapacity:     600,
			AvailableCapacity: 85,
			AvgWaitMinutes:    60,
			Status:            "Actif",
			CreatedAt:         dateTime,
			UpdatedAt:         dateTime,
		},
		{
			ID:                uuid.NewString(),
			Name:              "Clinique de la Madeleine",
			Address:           "18 Avenue des Jambaars",
			City:              "Dakar",
			Region:            "Dakar",
			Country:           "Sénégal",
			Latitude:          14.6658,
			Longitude:         -17.4312,
			Phone:             "+221 33 889 94 70",
			EstablishmentType: "Privé",
			BedCount:          80,
			OpeningHours:      "24h/24",
			TotalCapacity:     80,
			AvailableCapacity: 30,
			AvgWaitMinutes:    15,
			Status:            "Actif",
			CreatedAt:         dateTime,
			UpdatedAt:         dateTime,
		},
		{
			ID:                uuid.NewString(),
			Name:              "Hôpital Régional de Thiès",
			Address:           "Route de Dakar",
			City:              "Thiès",
			Region:            "Thiès",
			Country:           "Sénégal",
			Latitude:          14.7886,
			Longitude:         -16.9246,
			Phone:             "+221 33 951 10 31",
			EstablishmentType: "Public",
			BedCount:          250,
			OpeningHours:      "24h/24",
			TotalCapacity:     250,
			AvailableCapacity: 60,
			AvgWaitMinutes:    45,
			Status:            "Actif",
			CreatedAt:         dateTime,
			UpdatedAt:         dateTime,
		},
		{
			ID:                uuid.NewString(),
			Name:              "Hôpital Régional de Saint-Louis",
			Address:           "Avenue du Général de Gaulle",
			City:              "Saint-Louis",
			Region:            "Saint-Louis",
			Country:           "Sénégal",
			Latitude:          16.0326,
			Longitude:         -16.4818,
			Phone:             "+221 33 961 10 47",
			EstablishmentType: "Public",
			BedCount:          180,
			OpeningHours:      "Lun-Ven 8h-18h",
			TotalCapacity:     180,
			AvailableCapacity: 40,
			AvgWaitMinutes:    50,
			Status:            "Actif",
			CreatedAt:         dateTime,
			UpdatedAt:         dateTime,
		},
	}

	for _, h := range hospitals {
		if err := directory.CreateHospital(ctx, h); err != nil {
			log.Printf("Failed to create hospital %s: %v", h.Name, err)
		}
	}

	// 2. Seed services
	services := []*entities.Service{
		{HospitalID: hospitals[0].ID, Name: "Urgences", Department: "Urgences", Availability: "24h/24", Equipment: "Scanner, ECG, Défibrillateur", DoctorsAvailable: 8, ConsultationFee: 10000},
		{HospitalID: hospitals[0].ID, Name: "Cardiologie", Department: "Médecine", Availability: "Lun-Ven 8h-18h", Equipment: "ECG, Échographe", DoctorsAvailable: 4, ConsultationFee: 15000},
		{HospitalID: hospitals[1].ID, Name: "Chirurgie", Department: "Chirurgie", Availability: "Lun-Ven 8h-18h", Equipment: "Scanner", DoctorsAvailable: 6, ConsultationFee: 20000},
		{HospitalID: hospitals[1].ID, Name: "Maternité", Department: "Gynécologie", Availability: "24h/24", Equipment: "Échographe", DoctorsAvailable: 5, ConsultationFee: 12000},
		{HospitalID: hospitals[2].ID, Name: "Pédiatrie", Department: "Pédiatrie", Availability: "Lun-Sam 8h-20h", Equipment: "Échographe, ECG", DoctorsAvailable: 3, ConsultationFee: 18000},
		{HospitalID: hospitals[3].ID, Name: "Urgences", Department: "Urgences", Availability: "24h/24", Equipment: "ECG, Défibrillateur", DoctorsAvailable: 4, ConsultationFee: 8000},
		{HospitalID: hospitals[4].ID, Name: "Médecine générale", Department: "Médecine", Availability: "Lun-Ven 8h-18h", Equipment: "", DoctorsAvailable: 6, ConsultationFee: 5000},
	}

	for _, s := range services {
		s.ID = uuid.NewString()
		s.Status = "Actif"
		s.AddedAt = date
		if err := directory.AddService(ctx, s); err != nil {
			log.Printf("Failed to add service %s: %v", s.Name, err)
		}
	}

	// 3. Seed reviews (AddReview recomputes each hospital's average)
	reviews := []*entities.Review{
		{HospitalID: hospitals[0].ID, UserID: "seed-user-1", Rating: 4.5, ServiceUsed: "Urgences", Comment: "Prise en charge rapide et personnel compétent."},
		{HospitalID: hospitals[0].ID, UserID: "seed-user-2", Rating: 4.0, ServiceUsed: "Cardiologie", Comment: "Bon suivi, délais d'attente raisonnables."},
		{HospitalID: hospitals[1].ID, UserID: "seed-user-3", Rating: 3.5, ServiceUsed: "Chirurgie", Comment: "Équipe sérieuse mais longue attente."},
		{HospitalID: hospitals[2].ID, UserID: "seed-user-4", Rating: 5.0, ServiceUsed: "Pédiatrie", Comment: "Excellent accueil pour les enfants."},
		{HospitalID: hospitals[3].ID, UserID: "seed-user-5", Rating: 4.0, ServiceUsed: "Urgences", Comment: "Service correct pour la région."},
	}

	for _, r := range reviews {
		r.ID = uuid.NewString()
		r.Status = entities.ReviewStatusPublished
		r.VisitDate = date
		r.ReviewedAt = dateTime
		if err := directory.AddReview(ctx, r); err != nil {
			log.Printf("Failed to add review for hospital %s: %v", r.HospitalID, err)
		}
	}

	log.Printf("Seeding complete: %d hospitals, %d services, %d reviews", len(hospitals), len(services), len(reviews))
}
