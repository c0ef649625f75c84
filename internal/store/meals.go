package store

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MealStore reads the append-only meal log.
type MealStore struct {
	db *gorm.DB
}

// InRange returns meals in [from, to), newest first. Callers use it both
// for today's intake and for the trailing 7-day pace window.
func (s *MealStore) InRange(ctx context.Context, uid uuid.UUID, from, to time.Time) ([]models.MealRecord, error) {
	var meals []models.MealRecord
	err := withRetry(ctx, func() error {
		return s.db.WithContext(ctx).
			Where("uid = ? AND ts >= ? AND ts < ?", uid, from, to).
			Order("ts DESC").
			Find(&meals).Error
	})
	return meals, err
}
