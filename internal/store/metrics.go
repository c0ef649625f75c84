package store

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MetricStore reads metric samples. Samples carry running day totals, so
// the newest row in a range is authoritative.
type MetricStore struct {
	db *gorm.DB
}

// LatestInRange returns the newest sample in [from, to), or nil when the
// user logged nothing in the range.
func (s *MetricStore) LatestInRange(ctx context.Context, uid uuid.UUID, from, to time.Time) (*models.MetricSample, error) {
	var samples []models.MetricSample
	err := withRetry(ctx, func() error {
		return s.db.WithContext(ctx).
			Where("uid = ? AND ts >= ? AND ts < ?", uid, from, to).
			Order("ts DESC").
			Limit(1).
			Find(&samples).Error
	})
	if err != nil || len(samples) == 0 {
		return nil, err
	}
	return &samples[0], nil
}

// MoodLoggedBetween reports whether any sample in [from, to) carries a
// mood value.
func (s *MetricStore) MoodLoggedBetween(ctx context.Context, uid uuid.UUID, from, to time.Time) (bool, error) {
	var count int64
	err := withRetry(ctx, func() error {
		return s.db.WithContext(ctx).Model(&models.MetricSample{}).
			Where("uid = ? AND ts >= ? AND ts < ? AND mood IS NOT NULL", uid, from, to).
			Count(&count).Error
	})
	return count > 0, err
}
