// Package pubsub relays live activity between tracker instances over Redis.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/tracker/internal/application/activity/dto"
	"github.com/orris-inc/tracker/internal/shared/goroutine"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

// ActivityEnvelope is the wire form of a relayed activity message.
type ActivityEnvelope struct {
	InstanceID string               `json:"instance_id"`
	Message    *dto.ActivityMessage `json:"message"`
}

// RedisActivityRelay publishes activity to other instances and delivers theirs to
// the local hub. Messages published by this instance are not delivered back.
type RedisActivityRelay struct {
	client     *redis.Client
	channel    string
	logger     logger.Interface
	instanceID string
}

func NewRedisActivityRelay(client *redis.Client, channel string, logger logger.Interface) *RedisActivityRelay {
	return &RedisActivityRelay{
		client:     client,
		channel:    channel,
		logger:     logger,
		instanceID: uuid.NewString(),
	}
}

// InstanceID identifies this relay on the channel.
func (r *RedisActivityRelay) InstanceID() string {
	return r.instanceID
}

// Publish sends msg to the other instances.
func (r *RedisActivityRelay) Publish(ctx context.Context, msg *dto.ActivityMessage) error {
	data, err := json.Marshal(ActivityEnvelope{InstanceID: r.instanceID, Message: msg})
	if err != nil {
		return fmt.Errorf("failed to marshal activity envelope: %w", err)
	}

	if err := r.client.Publish(ctx, r.channel, data).Err(); err != nil {
		r.logger.Errorw("failed to publish activity",
			"channel", r.channel,
			"event_id", msg.ID,
			"error", err,
		)
		return fmt.Errorf("failed to publish activity: %w", err)
	}
	return nil
}

// Subscribe delivers messages from other instances to handler until ctx is done,
// reconnecting with exponential backoff when the subscription drops.
func (r *RedisActivityRelay) Subscribe(ctx context.Context, handler func(msg *dto.ActivityMessage)) error {
	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		err := r.subscribe(ctx, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		r.logger.Warnw("activity subscription disconnected, reconnecting",
			"channel", r.channel,
			"error", err,
			"backoff", backoff,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxBackoff)
	}
}

func (r *RedisActivityRelay) subscribe(ctx context.Context, handler func(msg *dto.ActivityMessage)) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel %s: %w", r.channel, err)
	}

	r.logger.Infow("subscribed to activity channel", "channel", r.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			r.dispatch(msg.Payload, handler)
		}
	}
}

func (r *RedisActivityRelay) dispatch(payload string, handler func(msg *dto.ActivityMessage)) {
	var env ActivityEnvelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		r.logger.Warnw("failed to unmarshal activity envelope", "payload", payload, "error", err)
		return
	}
	if env.InstanceID == r.instanceID || env.Message == nil {
		return
	}

	defer goroutine.Recover(r.logger, "activity-relay-handler")
	handler(env.Message)
}
