package engine

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/models"
)

// Cadence spacing and smart-mode triggers.
const (
	hourlySpacing = time.Hour
	fixedSpacing  = 4 * time.Hour
	smartMaxIdle  = 6 * time.Hour

	smartWaterGapML = 250
	smartStepsGap   = 1000
	smartCalGap     = 300
)

// due applies the user's cadence preference. Smart mode nudges when a
// meaningful full-day gap persists, or once enough time has passed since
// the last send.
func due(cadence string, lastSent *time.Time, g Gaps, now time.Time) bool {
	sinceOK := func(min time.Duration) bool {
		return lastSent == nil || now.Sub(*lastSent) >= min
	}

	switch cadence {
	case models.CadenceHourly:
		return sinceOK(hourlySpacing)
	case models.CadenceFixedInterval:
		return sinceOK(fixedSpacing)
	}

	// smart
	if g.DayWaterML > smartWaterGapML || g.DaySteps > smartStepsGap || g.CaloriePace > smartCalGap {
		return true
	}
	return sinceOK(smartMaxIdle)
}
