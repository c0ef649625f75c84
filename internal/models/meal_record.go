package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Meal type buckets used by the pace profile. Records default to the
// literal "unknown", which the profile builder folds into snacks along
// with any other unrecognized type.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnacks    = "snacks"
)

// MealRecord is one logged meal. Rows are append-only.
type MealRecord struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UID       uuid.UUID      `gorm:"type:uuid;not null;index:idx_meals_uid_ts" json:"uid"`
	TS        time.Time      `gorm:"not null;index:idx_meals_uid_ts" json:"ts"`
	MealType  string         `gorm:"size:20;default:'unknown'" json:"meal_type"`
	Calories  int            `json:"calories"`
	ProteinG  float64        `json:"protein_g"`
	CarbsG    float64        `json:"carbs_g"`
	FatG      float64        `json:"fat_g"`
	Items     datatypes.JSON `gorm:"type:jsonb" json:"items"`
	RawText   string         `gorm:"type:text" json:"raw_text"`
	CreatedAt time.Time      `json:"created_at"`
}

func (MealRecord) TableName() string { return "meal_records" }
