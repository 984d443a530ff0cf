package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisRelay publishes events to a redis channel so that every instance of the
// service delivers them to its own websocket clients. Each instance runs Run
// to subscribe; the publishing instance receives its own events the same way.
type RedisRelay struct {
	client  *redis.Client
	channel string
	hub     *Hub
	logger  *slog.Logger
}

type relayEnvelope struct {
	Room string          `json:"room"`
	Data json.RawMessage `json:"data"`
}

func NewRedisRelay(client *redis.Client, channel string, hub *Hub, logger *slog.Logger) *RedisRelay {
	return &RedisRelay{client: client, channel: channel, hub: hub, logger: logger}
}

// NewRedisClient parses a redis:// URL and verifies the server responds.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}
	return client, nil
}

func (r *RedisRelay) Emit(ctx context.Context, matchID string, event string, payload interface{}) error {
	data, err := EncodeMessage(matchID, event, payload)
	if err != nil {
		return err
	}
	envelope, err := json.Marshal(relayEnvelope{Room: matchID, Data: data})
	if err != nil {
		return fmt.Errorf("failed to encode relay envelope: %w", err)
	}
	if err := r.client.Publish(ctx, r.channel, envelope).Err(); err != nil {
		return fmt.Errorf("failed to publish to redis channel %s: %w", r.channel, err)
	}
	return nil
}

// Run delivers relayed events into the local hub until ctx is cancelled.
func (r *RedisRelay) Run(ctx context.Context) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to redis channel %s: %w", r.channel, err)
	}
	r.logger.Info("redis relay subscribed", slog.String("channel", r.channel))

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return errors.New("redis subscription closed")
			}
			r.handle(msg.Payload)
		}
	}
}

const maxRelayBackoff = 30 * time.Second

// Serve keeps the subscription alive until ctx is cancelled, resubscribing
// with backoff after failures. A lost subscription only degrades live updates.
func (r *RedisRelay) Serve(ctx context.Context, retryDelay time.Duration) {
	delay := retryDelay
	for {
		err := r.Run(ctx)
		if ctx.Err() != nil {
			return
		}
		r.logger.Error("redis relay stopped, resubscribing",
			slog.String("channel", r.channel), slog.Duration("retry_in", delay), slog.Any("error", err))

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		delay = min(delay*2, maxRelayBackoff)
	}
}

func (r *RedisRelay) handle(raw string) {
	var envelope relayEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		r.logger.Warn("dropping malformed relay message", slog.Any("error", err))
		return
	}
	if envelope.Room == "" {
		return
	}
	r.hub.Deliver(envelope.Room, envelope.Data)
}
