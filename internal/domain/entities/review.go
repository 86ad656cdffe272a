package entities

// ReviewStatusPublished marks reviews that count toward the rolling average.
const ReviewStatusPublished = "Publié"

// Review represents a patient review of a hospital. Rating is constrained
// to [0,5] at the API boundary; the storage backends recompute the
// hospital's rolling average whenever a review is added.
type Review struct {
	ID              string  `json:"id" db:"id"`
	HospitalID      string  `json:"hopital_id" db:"hopital_id"`
	UserID          string  `json:"utilisateur_id" db:"utilisateur_id"`
	Rating          float64 `json:"note" db:"note"`
	ServiceUsed     string  `json:"service_utilise" db:"service_utilise"`
	Comment         string  `json:"commentaire" db:"commentaire"`
	CriteriaRatings string  `json:"criteres_notes" db:"criteres_notes"`
	VisitDate       string  `json:"date_visite" db:"date_visite"`
	ReviewedAt      string  `json:"date_avis" db:"date_avis"`
	Verified        bool    `json:"verifie" db:"verifie"`
	Status          string  `json:"statut" db:"statut"`
}

// AverageRating returns the mean rating over the given reviews, counting
// only strictly positive ratings (a zero rating means "unrated" in the
// historical data). Returns 0 when nothing is ratable.
func AverageRating(reviews []*Review) float64 {
	var sum float64
	var n int
	for _, r := range reviews {
		if r.Rating > 0 {
			sum += r.Rating
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
