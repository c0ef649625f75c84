package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Event kinds emitted by the logging surfaces.
const (
	EventMetricsSaved = "metrics_saved"
	EventMealLogged   = "meal_logged"
)

// Event is one row in the at-least-once reflex queue. Processed is a
// queue cursor, not the idempotency mechanism; replaying a processed
// event must stay safe because the dedup ledger suppresses the re-send.
type Event struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"uid"`
	Kind      string         `gorm:"size:30;not null" json:"kind"`
	TS        time.Time      `gorm:"not null;index" json:"ts"`
	Processed bool           `gorm:"default:false;index" json:"processed"`
	Payload   datatypes.JSON `gorm:"type:jsonb" json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}

func (Event) TableName() string { return "events" }
