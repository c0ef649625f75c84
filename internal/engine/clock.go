package engine

import "time"

// Location resolves a stored timezone identifier, falling back silently
// to fallbackTZ and then UTC. It never fails: a user with a corrupted
// timezone still gets nudged, just on the default clock.
func Location(tz, fallbackTZ string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	if loc, err := time.LoadLocation(fallbackTZ); err == nil {
		return loc
	}
	return time.UTC
}

// LocalDayStart returns the user's local midnight translated to UTC, the
// lower bound for all of today's range queries. Day boundaries always
// come from the localized clock, never the UTC calendar date.
func LocalDayStart(nowLocal time.Time) time.Time {
	y, m, d := nowLocal.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, nowLocal.Location()).UTC()
}

// hourOfDay returns the local clock as a fractional hour, e.g. 14.5 for
// 14:30.
func hourOfDay(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60.0
}
