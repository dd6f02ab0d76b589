package kafka

import (
	"Bastion/internal/api/config"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager runs the search indexing consumer group
type ConsumerManager struct {
	topic    string
	consumer sarama.ConsumerGroup
	handler  sarama.ConsumerGroupHandler
}

func NewConsumerManager(cfg config.KafkaConfig, handler sarama.ConsumerGroupHandler) (*ConsumerManager, error) {
	consumer, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.IndexGroupID, newSaramaConfig(cfg))
	if err != nil {
		return nil, err
	}
	return &ConsumerManager{
		topic:    cfg.ActivityTopic,
		consumer: consumer,
		handler:  handler,
	}, nil
}

// Start blocks until ctx is cancelled
func (m *ConsumerManager) Start(ctx context.Context) error {
	go func() {
		for err := range m.consumer.Errors() {
			log.Error("Error from consumer group", "err", err)
		}
	}()

	log.Info("Index consumer started", "topic", m.topic)
	for {
		if err := m.consumer.Consume(ctx, []string{m.topic}, m.handler); err != nil {
			log.Error("Error from consumer", "err", err)
		}
		if ctx.Err() != nil {
			break
		}
	}

	log.Info("Kafka Manager shutting down...")
	if err := m.consumer.Close(); err != nil {
		log.Error("Failed to close index consumer", "err", err)
	}
	return nil
}
