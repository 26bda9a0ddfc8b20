package models

import (
	"time"

	"github.com/google/uuid"
)

// Well-known notification types emitted by the core flows.
const (
	NotificationSpendingAlert = "Spending Alert"
	NotificationGoalReminder  = "Goal Reminder"
)

type Notification struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Message   string    `db:"message"`
	Type      string    `db:"type"`
	IsRead    bool      `db:"is_read"`
	CreatedAt time.Time `db:"created_at"`
}
