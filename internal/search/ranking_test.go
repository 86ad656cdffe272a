package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_EquipmentAndRatingOutweighDistance(t *testing.T) {
	// H1: 2 km away, rating 4.5, 10 min wait, no equipment, open
	h1 := Score(2, 4.5, 10, 0, true)
	assert.Equal(t, 1185.0, h1)

	// H2: 20 km away, rating 5.0, 5 min wait, scanner, open
	h2 := Score(20, 5.0, 5, 150, true)
	assert.Equal(t, 1190.0, h2)

	assert.Greater(t, h2, h1)
}

func TestScore_ClosedPenaltyDominates(t *testing.T) {
	open := Score(2, 4.5, 10, 0, true)
	closed := Score(2, 4.5, 10, 0, false)

	assert.Equal(t, open-5000, closed)
	assert.Equal(t, -3815.0, closed)
}

func TestScore_UnknownDistanceSinksCandidate(t *testing.T) {
	score := Score(UnknownDistanceKm, 5.0, 0, 150, true)
	assert.Less(t, score, -5000.0)
}

func TestScore_ZeroEverything(t *testing.T) {
	assert.Equal(t, baseScore, Score(0, 0, 0, 0, true))
}
