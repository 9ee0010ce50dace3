package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"boardsync/internal/observability"

	"github.com/redis/go-redis/v9"
)

// DefaultRelayChannel is the Redis pub/sub channel shared by all instances.
const DefaultRelayChannel = "boardsync:events"

// relayMessage is what crosses the Redis channel: an encoded envelope and the
// group it is addressed to.
type relayMessage struct {
	Group   string          `json:"group"`
	Payload json.RawMessage `json:"payload"`
}

// RedisRelay fans envelopes out across server instances over Redis pub/sub.
// Every instance, including the publisher, receives each message and
// delivers it to its local connections.
type RedisRelay struct {
	rdb     *redis.Client
	channel string
	log     *slog.Logger
}

func NewRedisRelay(rdb *redis.Client, channel string, log *slog.Logger) *RedisRelay {
	if channel == "" {
		channel = DefaultRelayChannel
	}
	if log == nil {
		log = slog.Default()
	}
	return &RedisRelay{rdb: rdb, channel: channel, log: log}
}

func (r *RedisRelay) Publish(ctx context.Context, group string, payload []byte) error {
	msg, err := json.Marshal(relayMessage{Group: group, Payload: payload})
	if err != nil {
		return fmt.Errorf("failed to encode relay message: %w", err)
	}
	if err := r.rdb.Publish(ctx, r.channel, msg).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", r.channel, err)
	}
	observability.RelayMessagesTotal.WithLabelValues("published").Inc()
	return nil
}

// Subscribe confirms the subscription, then hands every received message to
// deliver until ctx is cancelled. The returned channel is closed when the
// receive loop exits.
func (r *RedisRelay) Subscribe(ctx context.Context, deliver func(group string, payload []byte)) (<-chan struct{}, error) {
	pubsub := r.rdb.Subscribe(ctx, r.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", r.channel, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var rm relayMessage
				if err := json.Unmarshal([]byte(msg.Payload), &rm); err != nil || rm.Group == "" {
					observability.RelayMessagesTotal.WithLabelValues("invalid").Inc()
					r.log.Warn("dropping malformed relay message", "channel", msg.Channel)
					continue
				}
				observability.RelayMessagesTotal.WithLabelValues("received").Inc()
				deliver(rm.Group, rm.Payload)
			}
		}
	}()
	return done, nil
}
