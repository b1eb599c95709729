package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"familytree/internal/domain/event"
)

type RedisEventPublisher struct {
	client  *redis.Client
	channel string
	log     *zap.SugaredLogger
}

func NewRedisEventPublisher(client *redis.Client, prefix string, log *zap.SugaredLogger) *RedisEventPublisher {
	return &RedisEventPublisher{
		client:  client,
		channel: EventsChannel(prefix),
		log:     log,
	}
}

// EventsChannel is the pub/sub channel tree events go to.
func EventsChannel(prefix string) string {
	return prefix + ":events"
}

func (r *RedisEventPublisher) PublishTreeChanged(ctx context.Context, ev event.TreeEvent) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal tree event: %w", err)
	}

	receivers, err := r.client.Publish(ctx, r.channel, payload).Result()
	if err != nil {
		return fmt.Errorf("failed to publish tree event: %w", err)
	}

	r.log.Debugf("tree event %s published to %d subscribers", ev.CommandID, receivers)
	return nil
}

// Subscribe streams decoded tree events from the channel until ctx is done.
// It fails if the subscription cannot be confirmed by the server.
func (r *RedisEventPublisher) Subscribe(ctx context.Context) (<-chan event.TreeEvent, error) {
	sub := r.client.Subscribe(ctx, r.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", r.channel, err)
	}

	out := make(chan event.TreeEvent)
	go func() {
		defer close(out)
		defer sub.Close()
		decodeEvents(ctx, sub.Channel(), out, r.log)
	}()
	return out, nil
}

// decodeEvents forwards every decodable payload to out. Undecodable messages
// are logged and skipped.
func decodeEvents(ctx context.Context, messages <-chan *redis.Message, out chan<- event.TreeEvent, log *zap.SugaredLogger) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			var ev event.TreeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Errorf("failed to decode tree event: %v", err)
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}
}
