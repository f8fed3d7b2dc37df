package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store 会话存储，Get 在会话不存在时返回 (nil, nil)
type Store interface {
	Get(ctx context.Context, token string) (*Record, error)
	Save(ctx context.Context, r *Record, ttl time.Duration) error
	Delete(ctx context.Context, token string) error
}

type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

func NewRedisStore(client *redis.Client, keyPrefix string) *RedisStore {
	return &RedisStore{client: client, keyPrefix: keyPrefix}
}

func (s *RedisStore) key(token string) string {
	return s.keyPrefix + token
}

func (s *RedisStore) Get(ctx context.Context, token string) (*Record, error) {
	data, err := s.client.Get(ctx, s.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	r, err := Decode(data)
	if err != nil {
		return nil, err
	}
	// 记录必须属于查询它的 key
	if r.SessionID != token {
		return nil, fmt.Errorf("%w: session id %q stored under %q", ErrMalformedRecord, r.SessionID, token)
	}
	return r, nil
}

// Save 每次写入都重置 TTL
func (s *RedisStore) Save(ctx context.Context, r *Record, ttl time.Duration) error {
	data, err := Encode(r)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err = s.client.Set(ctx, s.key(r.SessionID), data, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
