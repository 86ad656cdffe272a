package entities

// RankedHospital is the search payload returned for one hospital. The
// scoring fields are pointers so they serialize only in geo mode; a plain
// listing (no coordinates supplied) carries none of them.
type RankedHospital struct {
	Hospital

	// Services holds the hospital's service names only; full service
	// records are reserved for the detail endpoint.
	Services []string `json:"services"`

	DistanceKm          *float64 `json:"distance_km,omitempty"`
	EquipmentBonus      *int     `json:"equipment_bonus,omitempty"`
	IsOpen              *bool    `json:"is_open,omitempty"`
	RecommendationScore *float64 `json:"recommendation_score,omitempty"`
}
