package search

import (
	"strings"
	"time"
)

// IsOpen reports whether a hospital is open at the reference time given
// its free-text opening-hours descriptor.
//
// A descriptor mentioning "24h" means always open. Anything else falls
// back to a coarse office-hours heuristic: open 08:00-17:59, Monday to
// Friday. Per-day schedules, holidays and timezones are not parsed; the
// descriptor format in the data source is too loose to support more.
func IsOpen(descriptor string, at time.Time) bool {
	if strings.Contains(strings.ToLower(descriptor), "24h") {
		return true
	}

	switch at.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}

	return at.Hour() >= 8 && at.Hour() < 18
}
