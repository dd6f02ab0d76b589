package realtime

import (
	"context"
	log "log/slog"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Frame kinds
const (
	KindBroadcast = "broadcast"
	KindSession   = "session"
	KindTopic     = "topic"
)

// Frame one delivery instruction, already encoded for the wire
type Frame struct {
	Kind    string `json:"kind"`
	Target  string `json:"target,omitempty"`
	Payload []byte `json:"payload"`
}

// Relay carries frames to every instance, including the publishing one
type Relay interface {
	Publish(ctx context.Context, f Frame) error
	Run(ctx context.Context, deliver func(Frame)) error
}

// RedisRelay fans frames out over a pub/sub channel
type RedisRelay struct {
	rdb     *redis.Client
	channel string
}

func NewRedisRelay(rdb *redis.Client, channel string) *RedisRelay {
	return &RedisRelay{rdb: rdb, channel: channel}
}

func (r *RedisRelay) Publish(ctx context.Context, f Frame) error {
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return r.rdb.Publish(ctx, r.channel, b).Err()
}

// Run blocks until ctx is cancelled
func (r *RedisRelay) Run(ctx context.Context, deliver func(Frame)) error {
	sub := r.rdb.Subscribe(ctx, r.channel)
	defer func() { _ = sub.Close() }()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var f Frame
			if err := json.Unmarshal([]byte(msg.Payload), &f); err != nil {
				log.WarnContext(ctx, "dropping malformed fan-out frame", "err", err)
				continue
			}
			deliver(f)
		}
	}
}
