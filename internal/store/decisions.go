package store

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// banditWindow caps how many recent decisions feed the selector stats.
const banditWindow = 200

// ArmStats is the per-type pull history the selector consumes.
type ArmStats struct {
	Count     int
	RewardSum float64
}

// DecisionStore appends to and reads the nudge decision ledger. The same
// rows back the bandit statistics and the dedup/cooldown lookups.
type DecisionStore struct {
	db *gorm.DB
}

func (s *DecisionStore) Append(ctx context.Context, d *models.NudgeDecision) error {
	return withRetry(ctx, func() error {
		return s.db.WithContext(ctx).Create(d).Error
	})
}

// Stats aggregates (count, reward sum) per nudge type over the user's
// most recent decisions. A NULL reward counts as zero.
func (s *DecisionStore) Stats(ctx context.Context, uid uuid.UUID) (map[string]ArmStats, error) {
	var rows []models.NudgeDecision
	err := withRetry(ctx, func() error {
		return s.db.WithContext(ctx).
			Select("nudge_type", "reward").
			Where("uid = ?", uid).
			Order("decided_at DESC").
			Limit(banditWindow).
			Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	stats := make(map[string]ArmStats, 8)
	for _, r := range rows {
		st := stats[r.NudgeType]
		st.Count++
		if r.Reward != nil {
			st.RewardSum += *r.Reward
		}
		stats[r.NudgeType] = st
	}
	return stats, nil
}

// LastSentAt returns the time of the user's most recent decision, or nil
// when none exists yet.
func (s *DecisionStore) LastSentAt(ctx context.Context, uid uuid.UUID) (*time.Time, error) {
	var rows []models.NudgeDecision
	err := withRetry(ctx, func() error {
		return s.db.WithContext(ctx).
			Select("decided_at").
			Where("uid = ?", uid).
			Order("decided_at DESC").
			Limit(1).
			Find(&rows).Error
	})
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return &rows[0].DecidedAt, nil
}

// HashSeenSince reports whether the same content hash was decided for
// this user at or after since, delivered or not.
func (s *DecisionStore) HashSeenSince(ctx context.Context, uid uuid.UUID, hash string, since time.Time) (bool, error) {
	var count int64
	err := withRetry(ctx, func() error {
		return s.db.WithContext(ctx).Model(&models.NudgeDecision{}).
			Where("uid = ? AND content_hash = ? AND decided_at >= ?", uid, hash, since).
			Count(&count).Error
	})
	return count > 0, err
}

// TypeSentSince reports whether any nudge of the given type was decided
// at or after since. Failed deliveries count, so a broken channel is not
// hot-looped.
func (s *DecisionStore) TypeSentSince(ctx context.Context, uid uuid.UUID, nudgeType string, since time.Time) (bool, error) {
	var count int64
	err := withRetry(ctx, func() error {
		return s.db.WithContext(ctx).Model(&models.NudgeDecision{}).
			Where("uid = ? AND nudge_type = ? AND decided_at >= ?", uid, nudgeType, since).
			Count(&count).Error
	})
	return count > 0, err
}
