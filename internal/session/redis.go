package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each session as a hash under one key, so Clear is a
// single DEL and the TTL covers the whole session.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) hashKey(sid string) string { return "examgate:session:" + sid }

func (s *RedisStore) Set(ctx context.Context, sid, key, value string) error {
	k := s.hashKey(sid)
	if err := s.rdb.HSet(ctx, k, key, value).Err(); err != nil {
		return err
	}
	if s.ttl > 0 {
		return s.rdb.Expire(ctx, k, s.ttl).Err()
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, sid, key string) (string, bool, error) {
	v, err := s.rdb.HGet(ctx, s.hashKey(sid), key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisStore) Remove(ctx context.Context, sid, key string) error {
	return s.rdb.HDel(ctx, s.hashKey(sid), key).Err()
}

func (s *RedisStore) Clear(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, s.hashKey(sid)).Err()
}
