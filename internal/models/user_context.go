package models

import (
	"time"

	"github.com/google/uuid"
)

// Delivery channels.
const (
	ChannelTelegram = "telegram"
	ChannelInApp    = "inapp"
)

// Nudge cadences.
const (
	CadenceHourly        = "hourly"
	CadenceFixedInterval = "fixed_interval"
	CadenceSmart         = "smart"
)

// UserContext is the per-user preference row the worker reads each cycle.
// LastNudgeHash/LastNudgeAt are written back after every dispatch so the
// dedup short-circuit survives restarts and is shared across workers.
type UserContext struct {
	UID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"uid"`
	TZ            string     `gorm:"size:64;default:'America/New_York'" json:"tz"`
	QuietStart    string     `gorm:"size:5;default:'22:00'" json:"quiet_start"`
	QuietEnd      string     `gorm:"size:5;default:'07:00'" json:"quiet_end"`
	CalendarURL   string     `gorm:"type:text" json:"calendar_url"`
	Channel       string     `gorm:"size:20;default:'telegram'" json:"channel"`
	Cadence       string     `gorm:"size:20;default:'smart'" json:"cadence"`
	TGChatID      string     `gorm:"size:64" json:"-"`
	Active        bool       `gorm:"default:true;index" json:"active"`
	LastNudgeHash string     `gorm:"size:64" json:"-"`
	LastNudgeAt   *time.Time `json:"-"`
	Goals         Goals      `gorm:"embedded;embeddedPrefix:goal_" json:"goals"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (UserContext) TableName() string { return "user_contexts" }

// Goals holds the optional per-user targets. Absent fields resolve to the
// defaults in Effective.
type Goals struct {
	Steps         *int     `json:"steps"`
	WaterML       *int     `json:"water_ml"`
	SleepMinutes  *int     `json:"sleep_minutes"`
	Calories      *int     `json:"calories"`
	ProteinG      *int     `json:"protein_g"`
	SugarG        *int     `json:"sugar_g"`
	FiberG        *int     `json:"fiber_g"`
	Journaling    *string  `gorm:"size:20" json:"journaling"`
	MeditationMin *int     `json:"meditation_min"`
	MoodTarget    *float64 `json:"mood_target"`
}

// EffectiveGoals is Goals with every field resolved.
type EffectiveGoals struct {
	Steps         int     `json:"steps"`
	WaterML       int     `json:"water_ml"`
	SleepMinutes  int     `json:"sleep_minutes"`
	Calories      int     `json:"calories"`
	ProteinG      int     `json:"protein_g"`
	SugarG        int     `json:"sugar_g"`
	FiberG        int     `json:"fiber_g"`
	Journaling    string  `json:"journaling"`
	MeditationMin int     `json:"meditation_min"`
	MoodTarget    float64 `json:"mood_target"`
}

// Effective resolves missing goals to the documented defaults.
func (g Goals) Effective() EffectiveGoals {
	return EffectiveGoals{
		Steps:         intOr(g.Steps, 8000),
		WaterML:       intOr(g.WaterML, 2500),
		SleepMinutes:  intOr(g.SleepMinutes, 420),
		Calories:      intOr(g.Calories, 2000),
		ProteinG:      intOr(g.ProteinG, 75),
		SugarG:        intOr(g.SugarG, 50),
		FiberG:        intOr(g.FiberG, 0),
		Journaling:    strOr(g.Journaling, "none"),
		MeditationMin: intOr(g.MeditationMin, 10),
		MoodTarget:    floatOr(g.MoodTarget, 3.5),
	}
}

func intOr(p *int, def int) int {
	if p == nil || *p == 0 {
		return def
	}
	return *p
}

func strOr(p *string, def string) string {
	if p == nil || *p == "" {
		return def
	}
	return *p
}

func floatOr(p *float64, def float64) float64 {
	if p == nil || *p == 0 {
		return def
	}
	return *p
}
