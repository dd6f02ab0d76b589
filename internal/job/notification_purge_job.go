package job

import (
	"Bastion/internal/pkg/consts"
	"Bastion/internal/service"
	"context"
	log "log/slog"
	"time"
)

type NotificationPurgeJob struct {
	notificationSvc service.NotificationService
	retention       time.Duration
}

func NewNotificationPurgeJob(notificationSvc service.NotificationService, retentionDays int) *NotificationPurgeJob {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	return &NotificationPurgeJob{
		notificationSvc: notificationSvc,
		retention:       time.Duration(retentionDays) * 24 * time.Hour,
	}
}

func (s *NotificationPurgeJob) Run() {
	withLock("notification-purge", consts.NotificationPurgeLock, 10*time.Minute, func(ctx context.Context) error {
		n, err := s.notificationSvc.PurgeRead(ctx, s.retention)
		if err != nil {
			return err
		}
		log.InfoContext(ctx, "read notifications purged", "count", n)
		return nil
	})
}
