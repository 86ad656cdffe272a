package search

// Scoring policy. The constants are the documented ranking contract of
// the directory, not tunables.
const (
	baseScore            = 1000.0
	distancePenaltyPerKm = 10.0
	ratingBonusPerStar   = 50.0
	waitPenaltyPerMinute = 2.0
	closedPenalty        = 5000.0

	// UnknownDistanceKm is assigned to candidates without coordinates in
	// geo mode: unreachable, excluded by any finite radius.
	UnknownDistanceKm = 999999.0
)

// Score combines distance, rating, wait time, equipment bonus and the
// open/closed state into the recommendation score. May be negative; a
// closed hospital sinks below every open one.
func Score(distanceKm, averageRating float64, avgWaitMinutes, equipmentBonus int, isOpen bool) float64 {
	score := baseScore
	score -= distanceKm * distancePenaltyPerKm
	score += averageRating * ratingBonusPerStar
	score -= float64(avgWaitMinutes) * waitPenaltyPerMinute
	score += float64(equipmentBonus)
	if !isOpen {
		score -= closedPenalty
	}
	return score
}
