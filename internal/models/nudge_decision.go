package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NudgeDecision is one dispatch attempt, delivered or not. The Context
// snapshot is self-describing so later bandit training does not need to
// re-derive the inputs. Reward stays NULL until an engagement signal is
// recorded by an external feedback path.
type NudgeDecision struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UID         uuid.UUID      `gorm:"type:uuid;not null;index:idx_decisions_uid_at" json:"uid"`
	DecidedAt   time.Time      `gorm:"not null;index:idx_decisions_uid_at" json:"decided_at"`
	NudgeType   string         `gorm:"size:30;not null;index" json:"nudge_type"`
	Channel     string         `gorm:"size:20;not null" json:"channel"`
	Delivered   bool           `gorm:"default:false" json:"delivered"`
	ContentHash string         `gorm:"size:64;index" json:"content_hash"`
	Context     datatypes.JSON `gorm:"type:jsonb" json:"context"`
	Reward      *float64       `json:"reward"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (NudgeDecision) TableName() string { return "nudge_decisions" }

// Notification is the in-app channel target: inserting a row is the
// delivery.
type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"uid"`
	Body      string     `gorm:"type:text;not null" json:"body"`
	ReadAt    *time.Time `json:"read_at"`
	CreatedAt time.Time  `json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
