package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/types"
)

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(addr string, ttl time.Duration) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{
		client: rdb,
		ttl:    ttl,
	}
}

func simulationKey(key string) string {
	return "simulation:last:" + key
}

func (r *RedisCache) SaveLast(ctx context.Context, key string, result types.SimulationResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode simulation: %w", err)
	}
	return r.client.Set(ctx, simulationKey(key), payload, r.ttl).Err()
}

func (r *RedisCache) GetLast(ctx context.Context, key string) (*types.SimulationResult, bool, error) {
	payload, err := r.client.Get(ctx, simulationKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var result types.SimulationResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached simulation: %w", err)
	}
	return &result, true, nil
}
