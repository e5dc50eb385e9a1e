package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/torresnicolas0/clima-chatbot/src/config"
)

const redisKeyPrefix = "weather:"

// RedisStore shares weather entries between replicas. Keys expire with the
// cache TTL so Redis never holds stale records for long.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis. ttl should be the weather cache TTL so keys
// expire when their records go stale.
func NewRedisStore(cfg *config.RedisConfig, ttl time.Duration) (*RedisStore, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &RedisStore{
		client: client,
		ttl:    ttl,
	}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (*Entry, error) {
	val, err := s.client.Get(ctx, redisKeyPrefix+key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entry Entry
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		return nil, err
	}

	return &entry, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, entry *Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, redisKeyPrefix+key, data, s.ttl).Err()
}

// Len counts weather keys with SCAN so large keyspaces are not blocked.
func (s *RedisStore) Len(ctx context.Context) (int, error) {
	n := 0
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		n++
	}
	if err := iter.Err(); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
