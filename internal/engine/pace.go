package engine

import (
	"sort"
	"time"

	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/models"
)

// Anchor is one point on the cumulative expected-consumption curve.
type Anchor struct {
	Hour     float64
	Fraction float64
}

// PaceProfile maps local hour-of-day to the expected cumulative fraction
// of the daily calorie goal, as a step function over its anchors.
type PaceProfile struct {
	Anchors []Anchor
}

// defaultAnchors is the curve used when a user has no meal history yet.
var defaultAnchors = []Anchor{
	{Hour: 10.5, Fraction: 0.25},
	{Hour: 14.0, Fraction: 0.60},
	{Hour: 17.0, Fraction: 0.70},
	{Hour: 20.0, Fraction: 0.95},
}

// Anchor hours assumed for meal types absent from the history window.
var fallbackMealHours = map[string]float64{
	models.MealBreakfast: 9.5,
	models.MealLunch:     13.0,
	models.MealSnacks:    16.0,
	models.MealDinner:    19.5,
}

var mealOrder = []string{models.MealBreakfast, models.MealLunch, models.MealSnacks, models.MealDinner}

// BuildPaceProfile derives a user's personal curve from the trailing
// 7 days of meals. Each meal-type bucket contributes its share of total
// calories at the median local hour it was eaten. Unrecognized meal
// types fold into snacks.
func BuildPaceProfile(meals []models.MealRecord, loc *time.Location) PaceProfile {
	if len(meals) == 0 {
		return PaceProfile{Anchors: defaultAnchors}
	}

	hoursByType := make(map[string][]float64, 4)
	kcalByType := make(map[string]int, 4)
	totalKcal := 0
	for _, m := range meals {
		mt := m.MealType
		if _, ok := fallbackMealHours[mt]; !ok {
			mt = models.MealSnacks
		}
		kcalByType[mt] += m.Calories
		totalKcal += m.Calories
		hoursByType[mt] = append(hoursByType[mt], hourOfDay(m.TS.In(loc)))
	}
	if totalKcal < 1 {
		totalKcal = 1
	}

	anchors := make([]Anchor, 0, 4)
	for _, mt := range mealOrder {
		hour := fallbackMealHours[mt]
		if hs := hoursByType[mt]; len(hs) > 0 {
			hour = median(hs)
		}
		anchors = append(anchors, Anchor{
			Hour:     hour,
			Fraction: float64(kcalByType[mt]) / float64(totalKcal),
		})
	}

	// accumulate in chronological order, capped at 1.0
	sort.Slice(anchors, func(i, j int) bool { return anchors[i].Hour < anchors[j].Hour })
	cum := 0.0
	for i := range anchors {
		cum += anchors[i].Fraction
		if cum > 1.0 {
			cum = 1.0
		}
		anchors[i].Fraction = cum
	}

	return PaceProfile{Anchors: anchors}
}

// ExpectedFraction looks up the expected cumulative fraction at the
// given local time. The curve is flat between anchors and jumps at each
// one; it is never interpolated.
func (p PaceProfile) ExpectedFraction(nowLocal time.Time) float64 {
	h := hourOfDay(nowLocal)
	frac := 0.0
	for _, a := range p.Anchors {
		if h >= a.Hour {
			frac = a.Fraction
		} else {
			break
		}
	}
	if frac < 0 {
		return 0
	}
	if frac > 1 {
		return 1
	}
	return frac
}

// median of unsorted hours; resists a single unusually-timed meal far
// better than the mean.
func median(vals []float64) float64 {
	s := make([]float64, len(vals))
	copy(s, vals)
	sort.Float64s(s)
	n := len(s)
	if n == 0 {
		return 12.0
	}
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2.0
}
