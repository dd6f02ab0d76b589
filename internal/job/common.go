package job

import (
	"Bastion/internal/pkg/logger"
	"Bastion/internal/pkg/redis"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// withLock runs fn only on the instance that wins lockKey; the lock expires after ttl if the holder dies
func withLock(name, lockKey string, ttl time.Duration, fn func(ctx context.Context) error) {
	traceID := "job-" + name + "-" + uuid.NewString()
	ctx := logger.WithTraceID(context.Background(), traceID)

	ok, err := redis.TryLock(ctx, lockKey, traceID, ttl, 1)
	if err != nil {
		log.ErrorContext(ctx, "job lock error", "job", name, "err", err)
		return
	}
	if !ok {
		log.DebugContext(ctx, "job skipped, lock held elsewhere", "job", name)
		return
	}
	defer redis.UnLock(ctx, lockKey, traceID)

	start := time.Now()
	if err := fn(ctx); err != nil {
		log.ErrorContext(ctx, "job failed", "job", name, "err", err)
		return
	}
	log.InfoContext(ctx, "job finished", "job", name, "cost", time.Since(start).String())
}
