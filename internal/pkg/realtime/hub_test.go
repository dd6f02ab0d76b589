package realtime

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv(t *testing.T, s *Session) Envelope {
	t.Helper()
	select {
	case b := <-s.Outbound():
		var env Envelope
		require.NoError(t, json.Unmarshal(b, &env))
		return env
	case <-time.After(time.Second):
		t.Fatal("no frame delivered")
		return Envelope{}
	}
}

// drain discards frames such as updateOnlineUsers produced by Connect
func drain(s *Session) {
	for {
		select {
		case <-s.Outbound():
		default:
			return
		}
	}
}

func assertEmpty(t *testing.T, s *Session) {
	t.Helper()
	select {
	case b := <-s.Outbound():
		t.Fatalf("unexpected frame %s", b)
	default:
	}
}

func TestHubPublishToOfflineUserIsNoop(t *testing.T) {
	ctx := context.Background()
	hub := NewHub(nil, nil)
	other := NewSession(1)
	hub.Connect(ctx, other)
	drain(other)

	hub.PublishToUser(ctx, 99, EventReceiveMessage, map[string]string{"message": "hi"})

	assertEmpty(t, other)
}

func TestHubLastConnectionWins(t *testing.T) {
	ctx := context.Background()
	hub := NewHub(nil, nil)

	first := NewSession(7)
	second := NewSession(7)
	hub.Connect(ctx, first)
	hub.Connect(ctx, second)
	drain(first)
	drain(second)

	hub.PublishToUser(ctx, 7, EventNewNotification, map[string]string{"title": "x"})
	env := recv(t, second)
	assert.Equal(t, EventNewNotification, env.Event)
	assertEmpty(t, first)

	// the stale session leaving must not evict the live one
	hub.Disconnect(ctx, first)
	drain(second)
	hub.PublishToUser(ctx, 7, EventNewNotification, map[string]string{"title": "y"})
	assert.Equal(t, EventNewNotification, recv(t, second).Event)
}

func TestHubOnlineUsersBroadcast(t *testing.T) {
	ctx := context.Background()
	hub := NewHub(nil, nil)

	viewer := NewSession(0)
	hub.Connect(ctx, viewer)
	assertEmpty(t, viewer)

	hub.Connect(ctx, NewSession(3))
	env := recv(t, viewer)
	require.Equal(t, EventUpdateOnlineUsers, env.Event)
	var ids []uint64
	require.NoError(t, json.Unmarshal(env.Data, &ids))
	assert.Equal(t, []uint64{3}, ids)
}

func TestHubTopics(t *testing.T) {
	ctx := context.Background()
	hub := NewHub(nil, nil)

	sub := NewSession(1)
	other := NewSession(2)
	hub.Connect(ctx, sub)
	hub.Connect(ctx, other)
	drain(sub)
	drain(other)

	topic := PostTopic(42)
	assert.Equal(t, "post-42", topic)
	hub.Subscribe(sub, topic)

	hub.PublishToTopic(ctx, topic, EventNewComment, map[string]uint64{"postId": 42})
	assert.Equal(t, EventNewComment, recv(t, sub).Event)
	assertEmpty(t, other)

	hub.Unsubscribe(sub, topic)
	hub.PublishToTopic(ctx, topic, EventNewComment, map[string]uint64{"postId": 42})
	assertEmpty(t, sub)
}

func TestHubBroadcastReachesAnonymous(t *testing.T) {
	ctx := context.Background()
	hub := NewHub(nil, nil)
	anon := NewSession(0)
	hub.Connect(ctx, anon)

	hub.Broadcast(ctx, EventPostDeleted, 5)
	env := recv(t, anon)
	assert.Equal(t, EventPostDeleted, env.Event)
	assert.JSONEq(t, "5", string(env.Data))
	assert.Equal(t, 1, hub.SessionCount())

	hub.Disconnect(ctx, anon)
	assert.Equal(t, 0, hub.SessionCount())
	select {
	case <-anon.Done():
	default:
		t.Fatal("session not closed")
	}
}

func TestHubClosesSlowSession(t *testing.T) {
	ctx := context.Background()
	hub := NewHub(nil, nil)
	slow := NewSession(0)
	hub.Connect(ctx, slow)

	for i := 0; i <= defaultSendBuffer; i++ {
		hub.Broadcast(ctx, EventNewLike, i)
	}
	select {
	case <-slow.Done():
	default:
		t.Fatal("slow session should be closed once its buffer overflows")
	}
}

// leaseRegistry records Refresh calls and reports a fixed number of purged entries
type leaseRegistry struct {
	*LocalRegistry
	mu        sync.Mutex
	refreshed [][]uint64
	purged    int
}

func (r *leaseRegistry) Refresh(_ context.Context, ids []uint64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sorted := append([]uint64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	r.refreshed = append(r.refreshed, sorted)
	return r.purged, nil
}

func TestHubRefreshPresence(t *testing.T) {
	ctx := context.Background()
	reg := &leaseRegistry{LocalRegistry: NewLocalRegistry()}
	hub := NewHub(reg, nil)
	alice, bob, anon := NewSession(1), NewSession(2), NewSession(0)
	for _, s := range []*Session{alice, bob, anon} {
		hub.Connect(ctx, s)
	}
	drain(alice)
	drain(bob)
	drain(anon)

	hub.refreshPresence(ctx)
	require.Len(t, reg.refreshed, 1)
	assert.Equal(t, []uint64{1, 2}, reg.refreshed[0])
	assertEmpty(t, anon)

	reg.purged = 3
	hub.refreshPresence(ctx)
	env := recv(t, anon)
	assert.Equal(t, EventUpdateOnlineUsers, env.Event)
	assert.JSONEq(t, `[1,2]`, string(env.Data))
}

func TestHubRunRefreshesOnHeartbeat(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reg := &leaseRegistry{LocalRegistry: NewLocalRegistry()}
	hub := NewHub(reg, nil)
	hub.heartbeat = 10 * time.Millisecond
	hub.Connect(ctx, NewSession(5))

	go func() { _ = hub.Run(ctx) }()

	assert.Eventually(t, func() bool {
		reg.mu.Lock()
		defer reg.mu.Unlock()
		return len(reg.refreshed) >= 2
	}, time.Second, 5*time.Millisecond)
}
