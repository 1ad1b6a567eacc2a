package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "lorebound:save:"

// RedisStore keeps save slots as Redis string keys.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore connects to Redis at the given URL and verifies the
// connection with a ping.
func NewRedisStore(ctx context.Context, redisURL string, logger *slog.Logger) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	logger.Info("connected to redis save store", "url", redisURL)
	return &RedisStore{client: client, logger: logger}, nil
}

func (r *RedisStore) Save(ctx context.Context, slot string, data []byte) error {
	raw, err := wrap(data)
	if err != nil {
		return fmt.Errorf("wrapping save: %w", err)
	}
	if err := r.client.Set(ctx, redisKeyPrefix+slot, raw, 0).Err(); err != nil {
		r.logger.Error("redis save failed", "slot", slot, "error", err)
		return fmt.Errorf("redis set failed: %w", err)
	}
	r.logger.Debug("save written", "slot", slot, "bytes", len(raw))
	return nil
}

func (r *RedisStore) Load(ctx context.Context, slot string) ([]byte, error) {
	raw, err := r.client.Get(ctx, redisKeyPrefix+slot).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error("redis load failed", "slot", slot, "error", err)
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return unwrap(raw), nil
}

func (r *RedisStore) List(ctx context.Context) ([]SlotInfo, error) {
	keys, err := r.client.Keys(ctx, redisKeyPrefix+"*").Result()
	if err != nil {
		return nil, fmt.Errorf("redis keys failed: %w", err)
	}

	var slots []SlotInfo
	for _, key := range keys {
		slot := strings.TrimPrefix(key, redisKeyPrefix)
		info := SlotInfo{Slot: slot}
		if raw, err := r.client.Get(ctx, key).Bytes(); err == nil {
			var env Envelope
			if json.Unmarshal(raw, &env) == nil {
				info.ID = env.ID
				info.SavedAt = env.SavedAt
			}
		}
		slots = append(slots, info)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Slot < slots[j].Slot })
	return slots, nil
}

func (r *RedisStore) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("failed to close redis connection", "error", err)
		return err
	}
	return nil
}
