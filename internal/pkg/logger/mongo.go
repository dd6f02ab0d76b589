package logger

import (
	"context"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/event"
)

// NewMongoMonitor logs failed and slow mongo commands
func NewMongoMonitor() *event.CommandMonitor {
	return &event.CommandMonitor{
		Succeeded: func(ctx context.Context, evt *event.CommandSucceededEvent) {
			if evt.Duration > 200*time.Millisecond {
				log.WarnContext(ctx, "MongoDB slow", "command", evt.CommandName, "latency", evt.Duration, "request_id", evt.RequestID)
			}
		},
		Failed: func(ctx context.Context, evt *event.CommandFailedEvent) {
			log.ErrorContext(ctx, "MongoDB failed",
				"command", evt.CommandName,
				"latency", evt.Duration,
				"request_id", evt.RequestID,
				"err", evt.Failure,
			)
		},
	}
}
