package store

import (
	"context"
	"errors"
	"time"

	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user context not found")

// UserStore reads and writes per-user preference rows.
type UserStore struct {
	db *gorm.DB
}

// All returns every active user context, the periodic sweep's work list.
func (s *UserStore) All(ctx context.Context) ([]models.UserContext, error) {
	var users []models.UserContext
	err := withRetry(ctx, func() error {
		return s.db.WithContext(ctx).Where("active = ?", true).Find(&users).Error
	})
	return users, err
}

func (s *UserStore) Get(ctx context.Context, uid uuid.UUID) (*models.UserContext, error) {
	var user models.UserContext
	err := withRetry(ctx, func() error {
		return s.db.WithContext(ctx).Where("uid = ?", uid).First(&user).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetLastNudge writes the externalized dedup short-circuit cache back to
// the preference row so it survives restarts and concurrent workers.
func (s *UserStore) SetLastNudge(ctx context.Context, uid uuid.UUID, hash string, at time.Time) error {
	return withRetry(ctx, func() error {
		return s.db.WithContext(ctx).Model(&models.UserContext{}).
			Where("uid = ?", uid).
			Updates(map[string]interface{}{
				"last_nudge_hash": hash,
				"last_nudge_at":   at,
			}).Error
	})
}
