package store

import (
	"gorm.io/gorm"
)

// Store bundles the typed data-access layers sharing one gorm handle.
// Every query goes through the bounded-retry wrapper in retry.go.
type Store struct {
	Users         *UserStore
	Metrics       *MetricStore
	Meals         *MealStore
	Events        *EventStore
	Decisions     *DecisionStore
	Notifications *NotificationStore
}

func New(db *gorm.DB) *Store {
	return &Store{
		Users:         &UserStore{db: db},
		Metrics:       &MetricStore{db: db},
		Meals:         &MealStore{db: db},
		Events:        &EventStore{db: db},
		Decisions:     &DecisionStore{db: db},
		Notifications: &NotificationStore{db: db},
	}
}
