package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nikolayk812/rocketcart/internal/port"
	"github.com/redis/go-redis/v9"
)

type redisStorage struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis stores values as plain redis strings. A zero ttl keeps them forever.
func NewRedis(client *redis.Client, ttl time.Duration) port.CartStorage {
	return &redisStorage{
		client: client,
		ttl:    ttl,
	}
}

// OpenRedis accepts a redis:// or rediss:// URL or a bare host:port address.
func OpenRedis(ctx context.Context, addr string) (*redis.Client, error) {
	opts, err := redisOptions(addr)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Join(fmt.Errorf("client.Ping: %w", err), client.Close())
	}

	return client, nil
}

func redisOptions(addr string) (*redis.Options, error) {
	opts := &redis.Options{Addr: addr}
	if strings.Contains(addr, "://") {
		var err error
		opts, err = redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("redis.ParseURL: %w", err)
		}
	}

	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 3 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 3 * time.Second
	}

	return opts, nil
}

func (r *redisStorage) Read(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}

	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("client.Get: %w", err)
	}

	return value, true, nil
}

func (r *redisStorage) Write(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	if err := r.client.Set(ctx, key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("client.Set: %w", err)
	}

	return nil
}
