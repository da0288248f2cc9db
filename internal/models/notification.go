package models

import "time"

// NotificationStatus tracks outbox dispatch state.
type NotificationStatus string

const (
	NotificationQueued     NotificationStatus = "QUEUED"
	NotificationDispatched NotificationStatus = "DISPATCHED"
)

// Notification is an outbox row addressed to a role group. The surrounding
// application consumes dispatched rows and fans them out to users.
type Notification struct {
	ID           string             `db:"id" json:"id"`
	RoleID       string             `db:"role_id" json:"role_id"`
	Title        string             `db:"title" json:"title"`
	Content      string             `db:"content" json:"content"`
	Status       NotificationStatus `db:"status" json:"status"`
	CreatedAt    time.Time          `db:"created_at" json:"created_at"`
	DispatchedAt *time.Time         `db:"dispatched_at" json:"dispatched_at,omitempty"`
}
