package kafka

import (
	"Bastion/internal/api/config"
	"context"
	"fmt"
	log "log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// Producer publishes activity events
type Producer interface {
	Emit(ctx context.Context, ev ActivityEvent) error
	Close() error
}

type SyncProducer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewProducer returns a NopProducer when no brokers are configured
func NewProducer(cfg config.KafkaConfig) (Producer, error) {
	if len(cfg.Brokers) == 0 {
		log.Warn("Kafka not configured, activity events are dropped")
		return NopProducer{}, nil
	}
	p, err := sarama.NewSyncProducer(cfg.Brokers, newSaramaConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return &SyncProducer{producer: p, topic: cfg.ActivityTopic}, nil
}

// Emit keys by entity id so one entity's events stay ordered within a partition
func (p *SyncProducer) Emit(ctx context.Context, ev ActivityEvent) error {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	kind, _, _ := strings.Cut(ev.Type, ".")
	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(kind + ":" + strconv.FormatUint(ev.EntityID, 10)),
		Value: sarama.ByteEncoder(b),
	})
	if err != nil {
		return fmt.Errorf("emit %s: %w", ev.Type, err)
	}
	log.DebugContext(ctx, "activity event emitted", "type", ev.Type, "id", ev.EntityID, "partition", partition, "offset", offset)
	return nil
}

func (p *SyncProducer) Close() error {
	return p.producer.Close()
}

type NopProducer struct{}

func (NopProducer) Emit(context.Context, ActivityEvent) error { return nil }

func (NopProducer) Close() error { return nil }
