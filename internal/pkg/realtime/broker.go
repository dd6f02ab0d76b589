// Package realtime delivers named events to connected websocket sessions.
//
// Three delivery modes exist: broadcast to every session, addressed delivery to the
// session registered for a user, and topic delivery to sessions that subscribed to a
// topic such as "post-42". Delivery is best effort; nothing is queued for offline users.
package realtime

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
)

// Broker is the publishing side used by services
type Broker interface {
	Broadcast(ctx context.Context, event string, payload any)
	PublishToUser(ctx context.Context, userID uint64, event string, payload any)
	PublishToTopic(ctx context.Context, topic string, event string, payload any)
}

// Envelope wire frame for both directions
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Encode builds the wire bytes for one event
func Encode(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", event, err)
	}
	return json.Marshal(Envelope{Event: event, Data: data})
}

// PostTopic topic carrying comment traffic for one post
func PostTopic(postID uint64) string {
	return fmt.Sprintf("post-%d", postID)
}

// NopBroker discards everything
type NopBroker struct{}

func (NopBroker) Broadcast(context.Context, string, any) {}

func (NopBroker) PublishToUser(context.Context, uint64, string, any) {}

func (NopBroker) PublishToTopic(context.Context, string, string, any) {}
