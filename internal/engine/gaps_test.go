package engine

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/models"
)

func intp(v int) *int { return &v }

func defaultGoals() models.EffectiveGoals {
	return models.Goals{}.Effective()
}

func TestComputeGapsNeverNegative(t *testing.T) {
	goals := defaultGoals()
	latest := &models.MetricSample{
		Steps:    intp(50000),
		WaterML:  intp(9000),
		SleepMin: intp(800),
	}
	meals := []models.MealRecord{
		mealAt(10, 8, 0, models.MealBreakfast, 5000),
	}
	g := ComputeGaps(localClock(18, 0), goals, PaceProfile{Anchors: defaultAnchors}, meals, latest)

	for name, v := range map[string]int{
		"calorie_pace": g.CaloriePace,
		"steps":        g.Steps,
		"water_ml":     g.WaterML,
		"sleep_min":    g.SleepMin,
		"day_calories": g.DayCalories,
		"day_steps":    g.DaySteps,
		"day_water_ml": g.DayWaterML,
	} {
		if v < 0 {
			t.Errorf("%s deficit is negative: %d", name, v)
		}
	}
}

func TestComputeGapsCaloriePace(t *testing.T) {
	goals := defaultGoals() // 2000 kcal
	// default curve expects 60% by 14:00 -> 1200 kcal
	meals := []models.MealRecord{
		mealAt(10, 12, 0, models.MealLunch, 900),
	}
	g := ComputeGaps(localClock(14, 0), goals, PaceProfile{Anchors: defaultAnchors}, meals, nil)
	if g.CaloriePace != 300 {
		t.Errorf("calorie pace gap = %d, want 300", g.CaloriePace)
	}
}

func TestComputeGapsStepsSlack(t *testing.T) {
	goals := defaultGoals() // 8000 steps
	latest := &models.MetricSample{Steps: intp(4000)}
	g := ComputeGaps(localClock(12, 0), goals, PaceProfile{Anchors: defaultAnchors}, nil, latest)

	// expected = 8000 * (12/24 * 1.05) = 4200
	if g.Steps != 200 {
		t.Errorf("steps gap = %d, want 200", g.Steps)
	}
}

func TestExpectedWaterBlocks(t *testing.T) {
	tests := []struct {
		hour, min int
		want      int
	}{
		{8, 30, 0},    // before the window
		{9, 0, 0},     // window opens, no full block yet
		{10, 30, 250}, // one 90-min block
		{14, 0, 750},  // three blocks
		{19, 0, 1500}, // six blocks
		{21, 0, 0},    // window closed
	}
	for _, tt := range tests {
		if got := expectedWater(localClock(tt.hour, tt.min), 2500); got != tt.want {
			t.Errorf("expectedWater at %02d:%02d = %d, want %d", tt.hour, tt.min, got, tt.want)
		}
	}
}

func TestBuildSignalsMealGuard(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

	recent := []models.MealRecord{
		{TS: now.Add(-30 * time.Minute), MealType: models.MealLunch, Calories: 500},
	}
	s := BuildSignals(now, recent, nil, false)
	if !s.AteRecently {
		t.Error("meal 30 minutes ago should set AteRecently")
	}

	older := []models.MealRecord{
		{TS: now.Add(-2 * time.Hour), MealType: models.MealLunch, Calories: 500},
	}
	s = BuildSignals(now, older, nil, false)
	if s.AteRecently {
		t.Error("meal 2 hours ago should not set AteRecently")
	}
	if s.HoursSinceLastMeal < 1.9 || s.HoursSinceLastMeal > 2.1 {
		t.Errorf("HoursSinceLastMeal = %v, want ~2", s.HoursSinceLastMeal)
	}
}

func TestBuildSignalsVitals(t *testing.T) {
	temp := 101.2
	latest := &models.MetricSample{
		Mood:      intp(2),
		SleepMin:  intp(360),
		HeartRate: intp(118),
		BodyTemp:  &temp,
	}
	s := BuildSignals(time.Now().UTC(), nil, latest, true)
	if s.HeartRate != 118 {
		t.Errorf("HeartRate = %d, want 118", s.HeartRate)
	}
	if s.BodyTemp != 101.2 {
		t.Errorf("BodyTemp = %v, want 101.2", s.BodyTemp)
	}

	s = BuildSignals(time.Now().UTC(), nil, nil, false)
	if s.HeartRate != 0 || s.BodyTemp != 0 {
		t.Errorf("vitals without a sample = (%d, %v), want zero", s.HeartRate, s.BodyTemp)
	}
}

func TestBuildSignalsNoMealsFallback(t *testing.T) {
	s := BuildSignals(time.Now().UTC(), nil, nil, false)
	if s.HoursSinceLastMeal != noMealFallbackH {
		t.Errorf("HoursSinceLastMeal with no history = %v, want %v", s.HoursSinceLastMeal, noMealFallbackH)
	}
	if s.AteRecently {
		t.Error("AteRecently should be false with no meals")
	}
}
