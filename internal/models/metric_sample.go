package models

import (
	"time"

	"github.com/google/uuid"
)

// MetricSample is one self-reported or device-sourced reading. Numeric
// fields are running totals for the civil day as of TS; the newest sample
// in a day range is authoritative per field.
type MetricSample struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UID         uuid.UUID  `gorm:"type:uuid;not null;index:idx_metrics_uid_ts" json:"uid"`
	TS          time.Time  `gorm:"not null;index:idx_metrics_uid_ts" json:"ts"`
	Source      string     `gorm:"size:30;default:'manual'" json:"source"`
	Steps       *int       `json:"steps"`
	WaterML     *int       `json:"water_ml"`
	SleepMin    *int       `json:"sleep_minutes"`
	HeartRate   *int       `json:"heart_rate"`
	Mood        *int       `json:"mood"`
	MealQuality *int       `json:"meal_quality"`
	BodyTemp    *float64   `json:"body_temp"`
	Calories    *int       `json:"calories"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (MetricSample) TableName() string { return "metric_samples" }
