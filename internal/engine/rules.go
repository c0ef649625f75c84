package engine

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/models"
)

// Nudge types. These are the bandit arms; renaming one orphans its
// pull history.
const (
	NudgeFuelPace    = "fuel_pace"
	NudgeMove        = "move"
	NudgeHydrate     = "hydrate"
	NudgeWindDown    = "wind_down"
	NudgeMealLog     = "meal_log"
	NudgeMoodCheckin = "mood_checkin"
	NudgeMoodReset   = "mood_reset"
	NudgeHeartRate   = "heart_rate"
	NudgeTempCheck   = "temp_check"
	NudgeLateMeal    = "late_meal"
	NudgeBreathe     = "breathe"
)

// Eligibility thresholds and time windows (local hours).
const (
	calorieDeficitMin = 150
	calorieWindowFrom = 11
	stepDeficitMin    = 500
	moveWindowFrom    = 10
	moveWindowTo      = 19
	waterDeficitMin   = 150
	windDownFrom      = 21
	windDownTo        = 22
	mealLogAfterHours = 5.0
	moodWindowFrom    = 12
	moodWindowTo      = 16
	lowMoodMax        = 2
	lateMealAfterHour = 22

	// resting vital-sign ranges; readings outside cue a check-in
	heartRateLow  = 45
	heartRateHigh = 110
	bodyTempLowF  = 95.0
	bodyTempHighF = 100.4
)

// Dedup bucket granularity per nudge type; magnitudes round down to
// these so near-identical conditions collapse to one hash.
var bucketGranularity = map[string]int{
	NudgeFuelPace:  100,
	NudgeMove:      500,
	NudgeHydrate:   150,
	NudgeWindDown:  30,
	NudgeHeartRate: 10, // bpm
	NudgeTempCheck: 10, // tenths of a degree F, so one-degree buckets
}

// Candidate is one eligible nudge: the arm tag, the display text, and a
// bucketed magnitude that keys deduplication (never shown to the user).
type Candidate struct {
	Type      string `json:"type"`
	Text      string `json:"text"`
	Magnitude int    `json:"magnitude"`
	Bucket    int    `json:"bucket"`
}

func newCandidate(nudgeType string, magnitude int) Candidate {
	return Candidate{
		Type:      nudgeType,
		Text:      nudgeText(nudgeType, magnitude),
		Magnitude: magnitude,
		Bucket:    bucketOf(nudgeType, magnitude),
	}
}

func bucketOf(nudgeType string, magnitude int) int {
	gran, ok := bucketGranularity[nudgeType]
	if !ok || gran <= 0 {
		return 0
	}
	return magnitude / gran
}

// Candidates maps (local time, gaps, signals) to the ordered eligible
// set. The breathing micro-break backstops an otherwise-empty set, so
// the result is never empty.
func Candidates(nowLocal time.Time, g Gaps, s Signals) []Candidate {
	h := nowLocal.Hour()
	var cands []Candidate

	if g.CaloriePace >= calorieDeficitMin && h >= calorieWindowFrom && !s.AteRecently {
		cands = append(cands, newCandidate(NudgeFuelPace, g.CaloriePace))
	}
	if g.Steps >= stepDeficitMin && h >= moveWindowFrom && h < moveWindowTo {
		cands = append(cands, newCandidate(NudgeMove, g.Steps))
	}
	if g.WaterML >= waterDeficitMin && h >= waterDayStartH && h <= waterDayEndH {
		cands = append(cands, newCandidate(NudgeHydrate, g.WaterML))
	}
	if h >= windDownFrom && h <= windDownTo && s.SleepMin > 0 && g.SleepMin > 0 {
		cands = append(cands, newCandidate(NudgeWindDown, g.SleepMin))
	}
	if s.HoursSinceLastMeal >= mealLogAfterHours {
		cands = append(cands, newCandidate(NudgeMealLog, 0))
	}
	if !s.MoodLoggedToday && h >= moodWindowFrom && h < moodWindowTo {
		cands = append(cands, newCandidate(NudgeMoodCheckin, 0))
	}
	if s.Mood > 0 && s.Mood <= lowMoodMax {
		cands = append(cands, newCandidate(NudgeMoodReset, 0))
	}
	if s.HeartRate > 0 && (s.HeartRate < heartRateLow || s.HeartRate > heartRateHigh) {
		cands = append(cands, newCandidate(NudgeHeartRate, s.HeartRate))
	}
	if s.BodyTemp > 0 && (s.BodyTemp < bodyTempLowF || s.BodyTemp > bodyTempHighF) {
		// magnitude in tenths keeps the dedup key integral
		cands = append(cands, newCandidate(NudgeTempCheck, int(s.BodyTemp*10)))
	}

	if len(cands) == 0 {
		cands = append(cands, newCandidate(NudgeBreathe, 0))
	}
	return cands
}

// ReflexCandidates produces the immediate candidates for one queue
// event: a meal logged very late at night cues an early wind-down, and a
// zero-water reading from midday on cues hydration. Most events produce
// nothing.
func ReflexCandidates(ev *models.Event, evLocal time.Time, waterML *int, waterGoal int) []Candidate {
	switch ev.Kind {
	case models.EventMealLogged:
		if evLocal.Hour() >= lateMealAfterHour {
			return []Candidate{newCandidate(NudgeLateMeal, 0)}
		}
	case models.EventMetricsSaved:
		if waterML != nil && *waterML == 0 && evLocal.Hour() >= 12 {
			return []Candidate{newCandidate(NudgeHydrate, waterGoal/2)}
		}
	}
	return nil
}
