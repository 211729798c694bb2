package model

import "time"

// NotificationType 通知類型
type NotificationType string

const (
	NotificationTypeReminder     NotificationType = "reminder"
	NotificationTypeUpdate       NotificationType = "update"
	NotificationTypeCancellation NotificationType = "cancellation"
)

// Notification 通知模型
type Notification struct {
	ID        int              `json:"id" db:"id"`
	EventID   int              `json:"event_id" db:"event_id"`
	UserID    int              `json:"user_id" db:"user_id"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	Type      NotificationType `json:"notification_type" db:"notification_type"`
	IsRead    bool             `json:"is_read" db:"is_read"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}
