package store

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/models"
	"gorm.io/gorm"
)

// NotificationStore inserts in-app notification rows; insertion is the
// in-app channel's delivery.
type NotificationStore struct {
	db *gorm.DB
}

func (s *NotificationStore) Insert(ctx context.Context, n *models.Notification) error {
	return withRetry(ctx, func() error {
		return s.db.WithContext(ctx).Create(n).Error
	})
}
