// Package persistence holds external infrastructure clients. The allocation
// state itself is in-memory only; redis carries nothing but an ephemeral
// event broadcast.
package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/parking-service/internal/config"
)

// Redis wraps the go-redis client used for event broadcast.
type Redis struct {
	Client  *redis.Client
	channel string
}

// NewRedis connects to Redis using the provided configuration. An
// unreachable broker is logged and tolerated; broadcasts become no-ops.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client, channel: cfg.EventChannel}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

// Broadcast publishes a JSON-encoded payload on the configured pub/sub
// channel for external observers such as gate displays.
func (r *Redis) Broadcast(ctx context.Context, payload any) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return r.Client.Publish(ctx, r.channel, encoded).Err()
}
