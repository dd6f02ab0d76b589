package kafka

import (
	"Bastion/internal/pkg/logger"
	"context"
	log "log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"
)

const (
	batchSize    = 32
	batchTimeout = 1 * time.Second
	maxRetryWait = 5 * time.Second
	maxAttempts  = 8
)

type LogicFunc func(ctx context.Context, msg *sarama.ConsumerMessage) error

// pullMessageBatch collects up to batchSize messages or whatever arrived within batchTimeout
func pullMessageBatch(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim, logic LogicFunc) error {
	batch := make([]*sarama.ConsumerMessage, 0, batchSize)
	ticker := time.NewTicker(batchTimeout)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				if len(batch) > 0 {
					processBatch(session, batch, logic)
				}
				return nil
			}
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				processBatch(session, batch, logic)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
				ticker.Reset(batchTimeout)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				processBatch(session, batch, logic)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
			}
		case <-session.Context().Done():
			return nil
		}
	}
}

// processBatch runs logic for every message concurrently with backoff. A message that
// still fails after maxAttempts is logged and skipped so it cannot wedge the partition.
func processBatch(session sarama.ConsumerGroupSession, messages []*sarama.ConsumerMessage, logic LogicFunc) {
	ctx := logger.WithTraceID(session.Context(), "")
	var wg sync.WaitGroup

	for _, msg := range messages {
		wg.Add(1)

		go func(m *sarama.ConsumerMessage) {
			defer wg.Done()
			retryInterval := 100 * time.Millisecond

			for attempt := 1; ; attempt++ {
				err := logic(ctx, m)
				if err == nil {
					return
				}
				if attempt >= maxAttempts {
					log.ErrorContext(ctx, "dropping message after retries", "topic", m.Topic, "offset", m.Offset, "attempts", attempt, "err", err)
					return
				}
				log.WarnContext(ctx, "process message error", "topic", m.Topic, "offset", m.Offset, "attempt", attempt, "err", err)

				select {
				case <-ctx.Done():
					return
				case <-time.After(retryInterval):
				}

				retryInterval *= 2
				if retryInterval > maxRetryWait {
					retryInterval = maxRetryWait
				}
			}
		}(msg)
	}

	wg.Wait()

	if ctx.Err() == nil && len(messages) > 0 {
		session.MarkMessage(messages[len(messages)-1], "")
		session.Commit()
	}
}
