package kafka

import (
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// Activity event types
const (
	EventPostCreated = "post.created"
	EventPostUpdated = "post.updated"
	EventPostDeleted = "post.deleted"
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
)

// ActivityEvent tells downstream consumers that an entity changed; they reload it from the database
type ActivityEvent struct {
	Type     string    `json:"type"`
	EntityID uint64    `json:"entity_id"`
	ActorID  uint64    `json:"actor_id,omitempty"`
	At       time.Time `json:"at"`
}

func decodeEvent(msg *sarama.ConsumerMessage) (*ActivityEvent, error) {
	var ev ActivityEvent
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
