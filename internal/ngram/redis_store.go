package ngram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
	TTL      time.Duration
}

// ErrEmptyAddress is returned when the Redis address is not configured.
var ErrEmptyAddress = errors.New("redis address is required")

const connectionTimeout = 5 * time.Second

// RedisStore keeps baselines in Redis as JSON so several processes share them.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	if cfg.Address == "" {
		return nil, ErrEmptyAddress
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &RedisStore{client: client, ttl: cfg.TTL}, nil
}

func (s *RedisStore) Get(ctx context.Context, key BaselineKey) (Counts, bool, error) {
	b, err := s.client.Get(ctx, key.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return Counts{}, false, nil
	}
	if err != nil {
		return Counts{}, false, fmt.Errorf("redis get: %w", err)
	}
	var c Counts
	if err := json.Unmarshal(b, &c); err != nil {
		return Counts{}, false, fmt.Errorf("decode baseline: %w", err)
	}
	return c, true, nil
}

func (s *RedisStore) Put(ctx context.Context, key BaselineKey, c Counts) error {
	b, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode baseline: %w", err)
	}
	if err := s.client.Set(ctx, key.String(), b, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
