// Package redis backs CredentialStorage with a Redis instance, letting
// several console processes on different hosts share one session. Writes
// publish the changed key on a pub/sub channel, which drives Watch.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ia-technology/catalog-console/internal/core/domain"
	"github.com/ia-technology/catalog-console/internal/core/ports"
)

const (
	defaultTimeout = 5 * time.Second
	keyPrefix      = "catalog:session:"
	eventsChannel  = "catalog:session:events"
)

// Config captures the settings for establishing a Redis connection.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect initialises a Redis client and validates connectivity with a
// ping. A default timeout is applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

type Storage struct {
	client *redis.Client
}

// New wraps an established Redis client as a CredentialStorage.
func New(client *redis.Client) *Storage {
	return &Storage{client: client}
}

func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get: %w", err)
	}
	return v, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, keyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return s.publish(ctx, key)
}

func (s *Storage) Delete(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = keyPrefix + k
	}
	if err := s.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	for _, k := range keys {
		if err := s.publish(ctx, k); err != nil {
			return err
		}
	}
	return nil
}

// Watch subscribes to the session events channel and converts messages
// into storage events. The subscription stops when ctx is cancelled.
func (s *Storage) Watch(ctx context.Context) (<-chan ports.StorageEvent, error) {
	sub := s.client.Subscribe(ctx, eventsChannel)
	// Force the subscription to be established before returning, so no
	// event published after Watch returns is missed.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("redis subscribe: %w", err)
	}

	ch := make(chan ports.StorageEvent, 16)
	go func() {
		defer close(ch)
		defer sub.Close()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case ch <- ports.StorageEvent{Key: msg.Payload}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}

func (s *Storage) publish(ctx context.Context, key string) error {
	if err := s.client.Publish(ctx, eventsChannel, key).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}
