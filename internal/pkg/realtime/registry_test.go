package realtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalRegistry(t *testing.T) {
	ctx := context.Background()
	r := NewLocalRegistry()

	require.NoError(t, r.Register(ctx, 2, "a"))
	require.NoError(t, r.Register(ctx, 1, "b"))
	require.NoError(t, r.Register(ctx, 2, "c"))

	sid, ok, err := r.Lookup(ctx, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "c", sid)

	removed, err := r.Unregister(ctx, 2, "a")
	require.NoError(t, err)
	assert.False(t, removed)

	ids, err := r.OnlineUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2}, ids)

	removed, err = r.Unregister(ctx, 2, "c")
	require.NoError(t, err)
	assert.True(t, removed)

	_, ok, err = r.Lookup(ctx, 2)
	require.NoError(t, err)
	assert.False(t, ok)
}
