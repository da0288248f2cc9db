package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/boleta-api/internal/models"
)

// NotificationRepository persists the notification outbox.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository constructs a NotificationRepository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Insert stores a queued notification.
func (r *NotificationRepository) Insert(ctx context.Context, notification *models.Notification) error {
	query := `INSERT INTO notifications (id, role_id, title, content, status, created_at)
        VALUES (:id, :role_id, :title, :content, :status, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, notification); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// MarkDispatched records the dispatch time of a queued notification.
func (r *NotificationRepository) MarkDispatched(ctx context.Context, id string, ts time.Time) error {
	query := `UPDATE notifications SET status = $1, dispatched_at = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, models.NotificationDispatched, ts, id); err != nil {
		return fmt.Errorf("mark notification dispatched: %w", err)
	}
	return nil
}
