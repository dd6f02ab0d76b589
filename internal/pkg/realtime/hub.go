package realtime

import (
	"context"
	log "log/slog"
	"sync"
	"time"
)

// DefaultHeartbeat how often a hub renews the registry leases of its users
const DefaultHeartbeat = 30 * time.Second

// Hub owns the sessions of this instance and implements Broker
type Hub struct {
	registry  Registry
	relay     Relay
	heartbeat time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
	topics   map[string]map[string]*Session
}

// NewHub relay may be nil, in which case frames are delivered in-process only
func NewHub(registry Registry, relay Relay) *Hub {
	if registry == nil {
		registry = NewLocalRegistry()
	}
	return &Hub{
		registry:  registry,
		relay:     relay,
		heartbeat: DefaultHeartbeat,
		sessions:  make(map[string]*Session),
		topics:    make(map[string]map[string]*Session),
	}
}

// Run renews presence and consumes relayed frames until ctx ends
func (h *Hub) Run(ctx context.Context) error {
	go h.keepAlive(ctx)
	if h.relay == nil {
		<-ctx.Done()
		return nil
	}
	return h.relay.Run(ctx, h.deliver)
}

func (h *Hub) keepAlive(ctx context.Context) {
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.refreshPresence(ctx)
		}
	}
}

// refreshPresence renews the users connected here and re-announces the list when stale ones were dropped
func (h *Hub) refreshPresence(ctx context.Context) {
	h.mu.RLock()
	ids := make([]uint64, 0, len(h.sessions))
	for _, s := range h.sessions {
		if s.Authenticated() {
			ids = append(ids, s.UserID)
		}
	}
	h.mu.RUnlock()

	purged, err := h.registry.Refresh(ctx, ids)
	if err != nil {
		log.ErrorContext(ctx, "registry refresh failed", "err", err)
		return
	}
	if purged > 0 {
		log.InfoContext(ctx, "purged stale online users", "count", purged)
		h.broadcastOnline(ctx)
	}
}

// Connect registers s and announces the new online list
func (h *Hub) Connect(ctx context.Context, s *Session) {
	h.mu.Lock()
	h.sessions[s.ID] = s
	h.mu.Unlock()

	if !s.Authenticated() {
		return
	}
	if err := h.registry.Register(ctx, s.UserID, s.ID); err != nil {
		log.ErrorContext(ctx, "registry register failed", "user_id", s.UserID, "err", err)
	}
	h.broadcastOnline(ctx)
}

// Disconnect drops s everywhere and announces the new online list
func (h *Hub) Disconnect(ctx context.Context, s *Session) {
	h.mu.Lock()
	delete(h.sessions, s.ID)
	for topic, subs := range h.topics {
		delete(subs, s.ID)
		if len(subs) == 0 {
			delete(h.topics, topic)
		}
	}
	h.mu.Unlock()
	s.Close()

	if !s.Authenticated() {
		return
	}
	if _, err := h.registry.Unregister(ctx, s.UserID, s.ID); err != nil {
		log.ErrorContext(ctx, "registry unregister failed", "user_id", s.UserID, "err", err)
	}
	h.broadcastOnline(ctx)
}

func (h *Hub) broadcastOnline(ctx context.Context) {
	ids, err := h.registry.OnlineUsers(ctx)
	if err != nil {
		log.ErrorContext(ctx, "registry list failed", "err", err)
		return
	}
	h.Broadcast(ctx, EventUpdateOnlineUsers, ids)
}

func (h *Hub) Subscribe(s *Session, topic string) {
	h.mu.Lock()
	subs, ok := h.topics[topic]
	if !ok {
		subs = make(map[string]*Session)
		h.topics[topic] = subs
	}
	subs[s.ID] = s
	h.mu.Unlock()
}

func (h *Hub) Unsubscribe(s *Session, topic string) {
	h.mu.Lock()
	if subs, ok := h.topics[topic]; ok {
		delete(subs, s.ID)
		if len(subs) == 0 {
			delete(h.topics, topic)
		}
	}
	h.mu.Unlock()
}

// Reply sends directly to one session, used for acknowledgements and errors
func (h *Hub) Reply(ctx context.Context, s *Session, event string, payload any) {
	b, err := Encode(event, payload)
	if err != nil {
		log.ErrorContext(ctx, "encode reply failed", "event", event, "err", err)
		return
	}
	h.sendTo(s, b)
}

func (h *Hub) Broadcast(ctx context.Context, event string, payload any) {
	h.publish(ctx, KindBroadcast, "", event, payload)
}

// PublishToUser is a no-op when the user has no registered session
func (h *Hub) PublishToUser(ctx context.Context, userID uint64, event string, payload any) {
	sid, ok, err := h.registry.Lookup(ctx, userID)
	if err != nil {
		log.ErrorContext(ctx, "registry lookup failed", "user_id", userID, "err", err)
		return
	}
	if !ok {
		log.DebugContext(ctx, "user offline, dropping addressed event", "user_id", userID, "event", event)
		return
	}
	h.publish(ctx, KindSession, sid, event, payload)
}

func (h *Hub) PublishToTopic(ctx context.Context, topic string, event string, payload any) {
	h.publish(ctx, KindTopic, topic, event, payload)
}

func (h *Hub) publish(ctx context.Context, kind, target, event string, payload any) {
	b, err := Encode(event, payload)
	if err != nil {
		log.ErrorContext(ctx, "encode event failed", "event", event, "err", err)
		return
	}
	f := Frame{Kind: kind, Target: target, Payload: b}
	if h.relay == nil {
		h.deliver(f)
		return
	}
	if err := h.relay.Publish(ctx, f); err != nil {
		log.ErrorContext(ctx, "relay publish failed, delivering locally", "event", event, "err", err)
		h.deliver(f)
	}
}

// deliver hands a frame to the matching sessions of this instance
func (h *Hub) deliver(f Frame) {
	var targets []*Session

	h.mu.RLock()
	switch f.Kind {
	case KindBroadcast:
		targets = make([]*Session, 0, len(h.sessions))
		for _, s := range h.sessions {
			targets = append(targets, s)
		}
	case KindSession:
		if s, ok := h.sessions[f.Target]; ok {
			targets = []*Session{s}
		}
	case KindTopic:
		subs := h.topics[f.Target]
		targets = make([]*Session, 0, len(subs))
		for _, s := range subs {
			targets = append(targets, s)
		}
	}
	h.mu.RUnlock()

	for _, s := range targets {
		h.sendTo(s, f.Payload)
	}
}

// sendTo closes sessions whose buffer is full so one slow reader cannot stall the others
func (h *Hub) sendTo(s *Session, b []byte) {
	if !s.Send(b) {
		select {
		case <-s.Done():
		default:
			log.Warn("session send buffer full, closing", "session_id", s.ID, "user_id", s.UserID)
			s.Close()
		}
	}
}

// SessionCount sessions attached to this instance
func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}
