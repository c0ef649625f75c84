package delivery

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/models"
	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/store"
	"github.com/google/uuid"
)

// InAppChannel queues a notification row; a successful insert is the
// delivery.
type InAppChannel struct {
	notifications *store.NotificationStore
}

func NewInAppChannel(notifications *store.NotificationStore) *InAppChannel {
	return &InAppChannel{notifications: notifications}
}

func (c *InAppChannel) Send(ctx context.Context, user *models.UserContext, text string) error {
	return c.notifications.Insert(ctx, &models.Notification{
		ID:   uuid.New(),
		UID:  user.UID,
		Body: text,
	})
}
