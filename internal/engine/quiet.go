package engine

import (
	"strconv"
	"strings"
	"time"
)

// Default quiet window used when a stored HH:MM value is malformed.
const (
	defaultQuietStart = 22 * 60
	defaultQuietEnd   = 7 * 60
)

// InQuietHours reports whether the local clock falls inside the user's
// [start, end) quiet window. The window may wrap midnight.
func InQuietHours(nowLocal time.Time, start, end string) bool {
	s := parseHHMM(start, defaultQuietStart)
	e := parseHHMM(end, defaultQuietEnd)
	now := nowLocal.Hour()*60 + nowLocal.Minute()

	if s <= e {
		return now >= s && now < e
	}
	// wraps midnight, e.g. 22:00-07:00
	return now >= s || now < e
}

// parseHHMM converts "HH:MM" to minutes since midnight.
func parseHHMM(v string, fallback int) int {
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 {
		return fallback
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return fallback
	}
	return h*60 + m
}
