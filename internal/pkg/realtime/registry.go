package realtime

import (
	"context"
	"sort"
	"sync"
)

// Registry maps a user to the one session that receives addressed events.
// Register overwrites any previous entry; Unregister only removes the entry while sessionID still owns it.
type Registry interface {
	Register(ctx context.Context, userID uint64, sessionID string) error
	Unregister(ctx context.Context, userID uint64, sessionID string) (bool, error)
	Lookup(ctx context.Context, userID uint64) (string, bool, error)
	OnlineUsers(ctx context.Context) ([]uint64, error)
	// Refresh keeps userIDs alive and drops entries nobody renewed, returning how many were dropped
	Refresh(ctx context.Context, userIDs []uint64) (int, error)
}

// LocalRegistry in-process registry for a single instance
type LocalRegistry struct {
	mu      sync.RWMutex
	entries map[uint64]string
}

func NewLocalRegistry() *LocalRegistry {
	return &LocalRegistry{entries: make(map[uint64]string)}
}

func (r *LocalRegistry) Register(_ context.Context, userID uint64, sessionID string) error {
	r.mu.Lock()
	r.entries[userID] = sessionID
	r.mu.Unlock()
	return nil
}

func (r *LocalRegistry) Unregister(_ context.Context, userID uint64, sessionID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries[userID] != sessionID {
		return false, nil
	}
	delete(r.entries, userID)
	return true, nil
}

func (r *LocalRegistry) Lookup(_ context.Context, userID uint64) (string, bool, error) {
	r.mu.RLock()
	sid, ok := r.entries[userID]
	r.mu.RUnlock()
	return sid, ok, nil
}

func (r *LocalRegistry) OnlineUsers(_ context.Context) ([]uint64, error) {
	r.mu.RLock()
	ids := make([]uint64, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Refresh is a no-op; local entries die with the process
func (r *LocalRegistry) Refresh(context.Context, []uint64) (int, error) {
	return 0, nil
}
