package realtime

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var compareAndDelete = redis.NewScript(`
if redis.call('hget', KEYS[1], ARGV[1]) == ARGV[2] then
	redis.call('zrem', KEYS[2], ARGV[1])
	return redis.call('hdel', KEYS[1], ARGV[1])
end
return 0`)

// purgeLapsed drops every entry whose lease ended at or before ARGV[1]
var purgeLapsed = redis.NewScript(`
local ids = redis.call('zrangebyscore', KEYS[2], '-inf', ARGV[1])
for _, id in ipairs(ids) do
	redis.call('hdel', KEYS[1], id)
	redis.call('zrem', KEYS[2], id)
end
return #ids`)

// RedisRegistry shares the registry between instances through one hash.
// A sorted set beside it scores each user with a lease deadline; an instance
// that dies stops renewing, so its users lapse and get purged by a live one.
type RedisRegistry struct {
	rdb   *redis.Client
	key   string
	lease string
	ttl   time.Duration
	now   func() time.Time
}

func NewRedisRegistry(rdb *redis.Client, key string, ttl time.Duration) *RedisRegistry {
	return &RedisRegistry{rdb: rdb, key: key, lease: key + ":lease", ttl: ttl, now: time.Now}
}

func (r *RedisRegistry) Register(ctx context.Context, userID uint64, sessionID string) error {
	field := strconv.FormatUint(userID, 10)
	if err := r.rdb.HSet(ctx, r.key, field, sessionID).Err(); err != nil {
		return err
	}
	return r.rdb.ZAdd(ctx, r.lease, redis.Z{Score: r.deadline(), Member: field}).Err()
}

func (r *RedisRegistry) Unregister(ctx context.Context, userID uint64, sessionID string) (bool, error) {
	n, err := compareAndDelete.Run(ctx, r.rdb, []string{r.key, r.lease}, strconv.FormatUint(userID, 10), sessionID).Int64()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RedisRegistry) Lookup(ctx context.Context, userID uint64) (string, bool, error) {
	field := strconv.FormatUint(userID, 10)
	sid, err := r.rdb.HGet(ctx, r.key, field).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	until, err := r.rdb.ZScore(ctx, r.lease, field).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	if until <= float64(r.now().Unix()) {
		return "", false, nil
	}
	return sid, true, nil
}

// OnlineUsers lists registered users whose lease has not lapsed
func (r *RedisRegistry) OnlineUsers(ctx context.Context) ([]uint64, error) {
	fields, err := r.rdb.HKeys(ctx, r.key).Result()
	if err != nil {
		return nil, err
	}
	live, err := r.rdb.ZRangeByScore(ctx, r.lease, &redis.ZRangeBy{
		Min: "(" + strconv.FormatInt(r.now().Unix(), 10),
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, err
	}
	alive := make(map[string]struct{}, len(live))
	for _, f := range live {
		alive[f] = struct{}{}
	}

	ids := make([]uint64, 0, len(fields))
	for _, f := range fields {
		if _, ok := alive[f]; !ok {
			continue
		}
		id, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Refresh renews the leases of userIDs, then purges lapsed entries left by dead instances
func (r *RedisRegistry) Refresh(ctx context.Context, userIDs []uint64) (int, error) {
	if len(userIDs) > 0 {
		deadline := r.deadline()
		members := make([]redis.Z, 0, len(userIDs))
		for _, id := range userIDs {
			members = append(members, redis.Z{Score: deadline, Member: strconv.FormatUint(id, 10)})
		}
		if err := r.rdb.ZAdd(ctx, r.lease, members...).Err(); err != nil {
			return 0, err
		}
	}
	n, err := purgeLapsed.Run(ctx, r.rdb, []string{r.key, r.lease}, r.now().Unix()).Int64()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *RedisRegistry) deadline() float64 {
	return float64(r.now().Add(r.ttl).Unix())
}
