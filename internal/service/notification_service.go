package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/boleta-api/internal/models"
	"github.com/noah-isme/boleta-api/pkg/config"
	"github.com/noah-isme/boleta-api/pkg/jobs"
)

type notificationRepository interface {
	Insert(ctx context.Context, notification *models.Notification) error
	MarkDispatched(ctx context.Context, id string, ts time.Time) error
}

// NotificationService persists role-addressed notifications to the outbox
// and dispatches them asynchronously. Callers fire and forget: a failure
// here is logged and never propagated to the save path.
type NotificationService struct {
	repo   notificationRepository
	queue  *jobs.Queue
	logger *zap.Logger
	cfg    config.NotificationConfig
}

// NewNotificationService builds the service and its dispatch queue. Start
// must be called before notifications flow.
func NewNotificationService(repo notificationRepository, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &NotificationService{repo: repo, logger: logger, cfg: cfg}
	s.queue = jobs.NewQueue("notifications", s.dispatch, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
	})
	return s
}

// Start launches the dispatch workers.
func (s *NotificationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the dispatch workers.
func (s *NotificationService) Stop() {
	s.queue.Stop()
}

// NotifyRole queues a notification addressed to every member of a role.
func (s *NotificationService) NotifyRole(ctx context.Context, roleID, title, content string) {
	if !s.cfg.Enabled {
		return
	}
	notification := &models.Notification{
		ID:      uuid.NewString(),
		RoleID:  roleID,
		Title:   title,
		Content: content,
		Status:  models.NotificationQueued,
	}
	if err := s.repo.Insert(ctx, notification); err != nil {
		s.logger.Error("failed to persist notification", zap.String("role_id", roleID), zap.Error(err))
		return
	}
	if err := s.queue.Enqueue(jobs.Job{ID: notification.ID, Type: "role_notification"}); err != nil {
		s.logger.Warn("failed to enqueue notification dispatch", zap.String("id", notification.ID), zap.Error(err))
	}
}

func (s *NotificationService) dispatch(ctx context.Context, job jobs.Job) error {
	if err := s.repo.MarkDispatched(ctx, job.ID, time.Now().UTC()); err != nil {
		return fmt.Errorf("mark notification %s dispatched: %w", job.ID, err)
	}
	return nil
}
