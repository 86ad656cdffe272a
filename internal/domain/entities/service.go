package entities

// Service represents a medical service offered by a hospital.
//
// Equipment is free text from the data source ("Scanner, ECG, ..."); the
// search engine scans it case-insensitively for known equipment keywords.
type Service struct {
	ID               string  `json:"id" db:"id"`
	HospitalID       string  `json:"hopital_id" db:"hopital_id"`
	Name             string  `json:"nom_service" db:"nom_service"`
	Department       string  `json:"departement" db:"departement"`
	Availability     string  `json:"disponibilite" db:"disponibilite"`
	Specialties      string  `json:"specialites" db:"specialites"`
	DoctorsAvailable int     `json:"medecins_disponibles" db:"medecins_disponibles"`
	Equipment        string  `json:"equipements" db:"equipements"`
	ConsultationFee  float64 `json:"tarif_consultation" db:"tarif_consultation"`
	Comments         string  `json:"commentaires" db:"commentaires"`
	Status           string  `json:"statut" db:"statut"`
	AddedAt          string  `json:"date_ajout" db:"date_ajout"`
}
