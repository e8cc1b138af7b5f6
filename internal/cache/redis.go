package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisEnvelope is the persisted entry shape. The absolute deadline rides
// along with the payload because redis only keeps a single TTL per key and
// the sliding window must never extend past the absolute deadline.
type redisEnvelope struct {
	Value             []byte `json:"value"`
	AbsoluteExpiresAt int64  `json:"absolute_expires_at,omitempty"`
	SlidingSeconds    int    `json:"sliding_window_seconds,omitempty"`
}

// RedisStore keeps cache entries in redis under a shared prefix. A nil
// client makes every operation a no-op so the service degrades to direct
// store reads when redis is not configured.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "catalog_cache"
	}
	return &RedisStore{
		client: client,
		prefix: prefix,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.client == nil {
		return nil, false, nil
	}
	raw, err := s.client.Get(ctx, s.dataKey(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var env redisEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		// Unreadable entry: drop it and report a miss.
		_ = s.client.Del(ctx, s.dataKey(key)).Err()
		return nil, false, nil
	}
	now := s.now()
	if env.AbsoluteExpiresAt > 0 && now.Unix() >= env.AbsoluteExpiresAt {
		_ = s.client.Del(ctx, s.dataKey(key)).Err()
		return nil, false, nil
	}
	if env.SlidingSeconds > 0 {
		ttl := time.Duration(env.SlidingSeconds) * time.Second
		if env.AbsoluteExpiresAt > 0 {
			if remaining := time.Unix(env.AbsoluteExpiresAt, 0).Sub(now); remaining < ttl {
				ttl = remaining
			}
		}
		if ttl > 0 {
			_ = s.client.Expire(ctx, s.dataKey(key), ttl).Err()
		}
	}
	return env.Value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, absoluteTTL, slidingTTL time.Duration) error {
	if s.client == nil {
		return nil
	}
	env := redisEnvelope{Value: value}
	if absoluteTTL > 0 {
		env.AbsoluteExpiresAt = s.now().Add(absoluteTTL).Unix()
	}
	if slidingTTL > 0 {
		env.SlidingSeconds = int(slidingTTL / time.Second)
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return err
	}
	ttl := absoluteTTL
	if slidingTTL > 0 && (ttl <= 0 || slidingTTL < ttl) {
		ttl = slidingTTL
	}
	return s.client.Set(ctx, s.dataKey(key), raw, ttl).Err()
}

func (s *RedisStore) Invalidate(ctx context.Context, key string) error {
	if s.client == nil {
		return nil
	}
	return s.client.Del(ctx, s.dataKey(key)).Err()
}

func (s *RedisStore) dataKey(key string) string {
	return s.prefix + ":data:" + key
}
