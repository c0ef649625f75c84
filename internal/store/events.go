package store

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventStore drains the reflex queue. Marking processed is a cursor
// optimization; replay safety comes from the decision ledger.
type EventStore struct {
	db *gorm.DB
}

// Unprocessed returns up to limit pending events, oldest first.
func (s *EventStore) Unprocessed(ctx context.Context, limit int) ([]models.Event, error) {
	var events []models.Event
	err := withRetry(ctx, func() error {
		return s.db.WithContext(ctx).
			Where("processed = ?", false).
			Order("ts ASC").
			Limit(limit).
			Find(&events).Error
	})
	return events, err
}

func (s *EventStore) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	return withRetry(ctx, func() error {
		return s.db.WithContext(ctx).Model(&models.Event{}).
			Where("id = ?", id).
			Update("processed", true).Error
	})
}
