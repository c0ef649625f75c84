package engine

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/models"
	"github.com/google/uuid"
)

func mealAt(day int, hour, min int, mealType string, kcal int) models.MealRecord {
	return models.MealRecord{
		ID:       uuid.New(),
		UID:      uuid.New(),
		TS:       time.Date(2025, 6, day, hour, min, 0, 0, time.UTC),
		MealType: mealType,
		Calories: kcal,
	}
}

func TestBuildPaceProfileNoHistory(t *testing.T) {
	p := BuildPaceProfile(nil, time.UTC)
	if len(p.Anchors) != 4 {
		t.Fatalf("default profile has %d anchors, want 4", len(p.Anchors))
	}
	if got := p.ExpectedFraction(localClock(14, 0)); got != 0.60 {
		t.Errorf("default expected fraction at 14:00 = %v, want 0.60", got)
	}
}

func TestPaceProfileMonotoneAndBounded(t *testing.T) {
	meals := []models.MealRecord{
		mealAt(3, 8, 30, models.MealBreakfast, 400),
		mealAt(3, 13, 0, models.MealLunch, 700),
		mealAt(3, 19, 30, models.MealDinner, 800),
		mealAt(4, 9, 0, models.MealBreakfast, 450),
		mealAt(4, 16, 0, "brunch", 200), // unknown type folds into snacks
		mealAt(4, 20, 0, models.MealDinner, 750),
	}
	p := BuildPaceProfile(meals, time.UTC)

	prev := 0.0
	for h := 0; h < 24; h++ {
		f := p.ExpectedFraction(localClock(h, 0))
		if f < prev {
			t.Fatalf("fraction decreased at hour %d: %v < %v", h, f, prev)
		}
		if f < 0 || f > 1 {
			t.Fatalf("fraction out of bounds at hour %d: %v", h, f)
		}
		prev = f
	}
	if end := p.ExpectedFraction(localClock(23, 59)); end < 0.99 {
		t.Errorf("end-of-day fraction = %v, want ~1.0", end)
	}
}

func TestPaceProfileStepNotInterpolated(t *testing.T) {
	meals := []models.MealRecord{
		mealAt(3, 12, 0, models.MealLunch, 1000),
	}
	p := BuildPaceProfile(meals, time.UTC)

	// flat before the lunch anchor, jump at it
	if f := p.ExpectedFraction(localClock(11, 59)); f != 0 {
		t.Errorf("fraction just before anchor = %v, want 0", f)
	}
	if f := p.ExpectedFraction(localClock(12, 0)); f != 1.0 {
		t.Errorf("fraction at anchor = %v, want 1.0", f)
	}
	if f := p.ExpectedFraction(localClock(15, 0)); f != 1.0 {
		t.Errorf("fraction between anchors = %v, want flat 1.0", f)
	}
}

func TestPaceProfileMedianResistsOutlier(t *testing.T) {
	meals := []models.MealRecord{
		mealAt(1, 13, 0, models.MealLunch, 500),
		mealAt(2, 13, 0, models.MealLunch, 500),
		mealAt(3, 13, 0, models.MealLunch, 500),
		mealAt(4, 13, 0, models.MealLunch, 500),
		mealAt(5, 3, 0, models.MealLunch, 500), // one odd 3am lunch
	}
	p := BuildPaceProfile(meals, time.UTC)

	// the lunch anchor stays at 13:00, so nothing is expected at noon
	if f := p.ExpectedFraction(localClock(12, 0)); f != 0 {
		t.Errorf("fraction at 12:00 = %v, want 0 (median anchor at 13:00)", f)
	}
	if f := p.ExpectedFraction(localClock(13, 0)); f != 1.0 {
		t.Errorf("fraction at 13:00 = %v, want 1.0", f)
	}
}

func TestPaceProfileLocalizesMealHours(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	// 08:00 UTC is 13:00 local
	meals := []models.MealRecord{
		mealAt(3, 8, 0, models.MealLunch, 600),
	}
	p := BuildPaceProfile(meals, loc)

	noonLocal := time.Date(2025, 6, 10, 12, 0, 0, 0, loc)
	onePMLocal := time.Date(2025, 6, 10, 13, 0, 0, 0, loc)
	if f := p.ExpectedFraction(noonLocal); f != 0 {
		t.Errorf("fraction at 12:00 local = %v, want 0", f)
	}
	if f := p.ExpectedFraction(onePMLocal); f != 1.0 {
		t.Errorf("fraction at 13:00 local = %v, want 1.0", f)
	}
}
