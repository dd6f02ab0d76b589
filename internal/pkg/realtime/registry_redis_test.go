package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockRegistry(t *testing.T) (*RedisRegistry, redismock.ClientMock) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	r := NewRedisRegistry(db, "ws:online", time.Minute)
	r.now = func() time.Time { return time.Unix(1000, 0) }
	return r, mock
}

func TestRedisRegistryRegisterTakesLease(t *testing.T) {
	r, mock := mockRegistry(t)
	mock.ExpectHSet("ws:online", "4", "sid-4").SetVal(1)
	mock.ExpectZAdd("ws:online:lease", redis.Z{Score: 1060, Member: "4"}).SetVal(1)

	require.NoError(t, r.Register(context.Background(), 4, "sid-4"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisRegistryOnlineUsersSkipsLapsedLeases(t *testing.T) {
	r, mock := mockRegistry(t)
	mock.ExpectHKeys("ws:online").SetVal([]string{"3", "1", "2"})
	mock.ExpectZRangeByScore("ws:online:lease", &redis.ZRangeBy{Min: "(1000", Max: "+inf"}).SetVal([]string{"1", "3"})

	ids, err := r.OnlineUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 3}, ids)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisRegistryLookupIgnoresLapsedLease(t *testing.T) {
	r, mock := mockRegistry(t)
	ctx := context.Background()
	mock.ExpectHGet("ws:online", "2").SetVal("sid-2")
	mock.ExpectZScore("ws:online:lease", "2").SetVal(990)
	mock.ExpectHGet("ws:online", "3").SetVal("sid-3")
	mock.ExpectZScore("ws:online:lease", "3").SetVal(1030)

	_, ok, err := r.Lookup(ctx, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	sid, ok, err := r.Lookup(ctx, 3)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "sid-3", sid)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisRegistryRefreshRenewsAndPurges(t *testing.T) {
	r, mock := mockRegistry(t)
	mock.ExpectZAdd("ws:online:lease",
		redis.Z{Score: 1060, Member: "1"},
		redis.Z{Score: 1060, Member: "2"},
	).SetVal(0)
	mock.ExpectEvalSha(purgeLapsed.Hash(), []string{"ws:online", "ws:online:lease"}, int64(1000)).SetVal(int64(2))

	purged, err := r.Refresh(context.Background(), []uint64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 2, purged)
	require.NoError(t, mock.ExpectationsWereMet())
}
