package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsOpen_AlwaysOpenDescriptors(t *testing.T) {
	times := []time.Time{
		time.Date(2024, 6, 5, 3, 0, 0, 0, time.UTC),  // Wednesday 03:00
		time.Date(2024, 6, 8, 23, 0, 0, 0, time.UTC), // Saturday 23:00
		time.Date(2024, 6, 9, 12, 0, 0, 0, time.UTC), // Sunday noon
	}

	for _, at := range times {
		assert.True(t, IsOpen("24h/24", at))
		assert.True(t, IsOpen("Ouvert 24H", at))
		assert.True(t, IsOpen("urgences 24h/24 7j/7", at))
	}
}

func TestIsOpen_OfficeHoursHeuristic(t *testing.T) {
	const descriptor = "Lun-Ven 8h-18h"

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"wednesday mid-morning", time.Date(2024, 6, 5, 10, 0, 0, 0, time.UTC), true},
		{"monday opening hour", time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC), true},
		{"friday last open hour", time.Date(2024, 6, 7, 17, 59, 0, 0, time.UTC), true},
		{"wednesday before opening", time.Date(2024, 6, 5, 7, 59, 0, 0, time.UTC), false},
		{"wednesday at closing", time.Date(2024, 6, 5, 18, 0, 0, 0, time.UTC), false},
		{"wednesday late night", time.Date(2024, 6, 5, 23, 30, 0, 0, time.UTC), false},
		{"saturday mid-morning", time.Date(2024, 6, 8, 10, 0, 0, 0, time.UTC), false},
		{"sunday mid-morning", time.Date(2024, 6, 9, 10, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOpen(descriptor, tt.at))
		})
	}
}

func TestIsOpen_EmptyDescriptor(t *testing.T) {
	// No descriptor falls back to the office-hours heuristic
	assert.True(t, IsOpen("", time.Date(2024, 6, 5, 10, 0, 0, 0, time.UTC)))
	assert.False(t, IsOpen("", time.Date(2024, 6, 9, 10, 0, 0, 0, time.UTC)))
}
