package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

const draftKeyPrefix = "booking:draft:"

// RedisDrafts keeps booking drafts in redis under a sliding TTL.
type RedisDrafts struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDrafts(client *redis.Client, ttl time.Duration) *RedisDrafts {
	return &RedisDrafts{client: client, ttl: ttl}
}

// NewClient connects to redis and pings it once.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

func draftKey(sessionID string) string {
	return draftKeyPrefix + sessionID
}

func (s *RedisDrafts) Load(ctx context.Context, sessionID string) (*models.BookingDraft, error) {
	data, err := s.client.Get(ctx, draftKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}

	var d models.BookingDraft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &d, nil
}

func (s *RedisDrafts) Save(ctx context.Context, sessionID string, d models.BookingDraft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := s.client.Set(ctx, draftKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("set draft: %w", err)
	}
	return nil
}

func (s *RedisDrafts) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, draftKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}
