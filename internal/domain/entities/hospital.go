package entities

// Hospital represents a registered hospital profile in the directory.
//
// JSON field names follow the directory's historical French wire contract
// (the same column names used by the spreadsheet backend), so both storage
// backends and the API speak one vocabulary. Authentication material is
// deliberately not part of this entity; it never reaches API responses.
type Hospital struct {
	ID                string  `json:"id" db:"id"`
	Name              string  `json:"nom" db:"nom"`
	Address           string  `json:"adresse" db:"adresse"`
	City              string  `json:"ville" db:"ville"`
	Region            string  `json:"region" db:"region"`
	Country           string  `json:"pays" db:"pays"`
	Latitude          float64 `json:"latitude" db:"latitude"`
	Longitude         float64 `json:"longitude" db:"longitude"`
	Phone             string  `json:"telephone" db:"telephone"`
	Email             string  `json:"email" db:"email"`
	Description       string  `json:"description" db:"description"`
	EstablishmentType string  `json:"type_etablissement" db:"type_etablissement"`
	BedCount          int     `json:"nombre_lits" db:"nombre_lits"`
	OpeningHours      string  `json:"horaires_ouverture" db:"horaires_ouverture"`
	Website           string  `json:"site_web" db:"site_web"`
	ImageURL          string  `json:"image_url" db:"image_url"`
	TotalCapacity     int     `json:"capacite_totale" db:"capacite_totale"`
	AvailableCapacity int     `json:"capacite_disponible" db:"capacite_disponible"`
	AvgWaitMinutes    int     `json:"temps_moyen_attente" db:"temps_moyen_attente"`
	AverageRating     float64 `json:"note_moyenne" db:"note_moyenne"`
	ReviewCount       int     `json:"nombre_avis" db:"nombre_avis"`
	Status            string  `json:"statut" db:"statut"`
	CreatedAt         string  `json:"created_at" db:"created_at"`
	UpdatedAt         string  `json:"updated_at" db:"updated_at"`
}

// HasCoordinates reports whether the hospital has a usable position.
// The spreadsheet backend coerces missing or broken cells to zero, so a
// (0,0) pair means "location unknown", not a point in the Gulf of Guinea.
func (h *Hospital) HasCoordinates() bool {
	return h.Latitude != 0 || h.Longitude != 0
}

// Coordinates returns the hospital position as a Location.
func (h *Hospital) Coordinates() Location {
	return Location{Latitude: h.Latitude, Longitude: h.Longitude}
}

// Location represents geographical coordinates in decimal degrees.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
