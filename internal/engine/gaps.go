package engine

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/models"
)

// Pacing constants.
const (
	stepsSlack      = 1.05             // grace multiplier on the day-fraction step pace
	waterBlockMin   = 90               // hydration pacing block length, minutes
	waterDayStartH  = 9                // hydration window, local
	waterDayEndH    = 19
	mealGuardWindow = 75 * time.Minute // recent meal suppresses calorie nudges
	noMealFallbackH = 12.0             // assumed hours since last meal with no history
)

// Gaps holds the non-negative deficits for one user at one instant. The
// pace fields compare against time-of-day expectations; the Day fields
// compare against the full daily goal and feed the smart cadence gate.
type Gaps struct {
	CaloriePace int `json:"calorie_pace"`
	Steps       int `json:"steps"`
	WaterML     int `json:"water_ml"`
	SleepMin    int `json:"sleep_min"`
	DayCalories int `json:"day_calories"`
	DaySteps    int `json:"day_steps"`
	DayWaterML  int `json:"day_water_ml"`
}

// Signals are the boolean and low-cardinality day facts the rule engine
// combines with the gaps.
type Signals struct {
	MoodLoggedToday    bool    `json:"mood_logged_today"`
	AteRecently        bool    `json:"ate_recently"`
	HoursSinceLastMeal float64 `json:"hours_since_last_meal"`
	Mood               int     `json:"mood"`
	SleepMin           int     `json:"sleep_min"`
	HeartRate          int     `json:"heart_rate"`
	BodyTemp           float64 `json:"body_temp"`
}

// ComputeGaps compares today's actuals to the goals and the time-of-day
// expectations. Every deficit is floored at zero.
func ComputeGaps(nowLocal time.Time, goals models.EffectiveGoals, profile PaceProfile, mealsToday []models.MealRecord, latest *models.MetricSample) Gaps {
	var g Gaps

	actualCal := 0
	for _, m := range mealsToday {
		actualCal += m.Calories
	}
	expectedCal := int(float64(goals.Calories) * profile.ExpectedFraction(nowLocal))
	g.CaloriePace = nonNeg(expectedCal - actualCal)
	g.DayCalories = nonNeg(goals.Calories - actualCal)

	steps := 0
	water := 0
	sleep := 0
	if latest != nil {
		steps = intVal(latest.Steps)
		water = intVal(latest.WaterML)
		sleep = intVal(latest.SleepMin)
	}

	dayFrac := hourOfDay(nowLocal) / 24.0
	pace := dayFrac * stepsSlack
	if pace > 1 {
		pace = 1
	}
	g.Steps = nonNeg(int(float64(goals.Steps)*pace) - steps)
	g.DaySteps = nonNeg(goals.Steps - steps)

	g.WaterML = nonNeg(expectedWater(nowLocal, goals.WaterML) - water)
	g.DayWaterML = nonNeg(goals.WaterML - water)

	// last night's total, compared regardless of time of day
	g.SleepMin = nonNeg(goals.SleepMinutes - sleep)

	return g
}

// expectedWater paces the daily water goal in 90-minute blocks across
// the bounded daytime window, each block worth a tenth of the goal.
func expectedWater(nowLocal time.Time, goalML int) int {
	h := nowLocal.Hour()
	if h < waterDayStartH || h > waterDayEndH {
		return 0
	}
	blocks := ((h-waterDayStartH)*60 + nowLocal.Minute()) / waterBlockMin
	if blocks > 10 {
		blocks = 10
	}
	return blocks * (goalML / 10)
}

// BuildSignals derives the day facts from today's meals, the newest
// metric sample, and the mood lookup. now is the UTC decision instant;
// recentMeals spans the 7-day window, newest first.
func BuildSignals(now time.Time, recentMeals []models.MealRecord, latest *models.MetricSample, moodLogged bool) Signals {
	s := Signals{
		MoodLoggedToday:    moodLogged,
		HoursSinceLastMeal: noMealFallbackH,
	}
	if len(recentMeals) > 0 {
		since := now.Sub(recentMeals[0].TS)
		if since < 0 {
			since = 0
		}
		s.HoursSinceLastMeal = since.Hours()
		s.AteRecently = since < mealGuardWindow
	}
	if latest != nil {
		s.Mood = intVal(latest.Mood)
		s.SleepMin = intVal(latest.SleepMin)
		s.HeartRate = intVal(latest.HeartRate)
		if latest.BodyTemp != nil {
			s.BodyTemp = *latest.BodyTemp
		}
	}
	return s
}

func nonNeg(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func intVal(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
