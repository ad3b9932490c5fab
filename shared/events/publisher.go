package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Publisher is the Redis stream backed Feed.
type Publisher struct {
	client *redis.Client
	stream string
	maxLen int64
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client, stream: ActivityStream, maxLen: DefaultMaxLen}
}

func (p *Publisher) Publish(ctx context.Context, eventType, summary string, data any) error {
	event, err := newEvent(eventType, summary, data)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]any{
			"event": eventJSON,
		},
	}

	if _, err := p.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

func (p *Publisher) Recent(ctx context.Context, n int64) ([]Event, error) {
	messages, err := p.client.XRevRangeN(ctx, p.stream, "+", "-", n).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read activity: %w", err)
	}

	out := make([]Event, 0, len(messages))
	for _, message := range messages {
		event, err := decodeMessage(message)
		if err != nil {
			return nil, fmt.Errorf("message %s: %w", message.ID, err)
		}
		out = append(out, event)
	}
	return out, nil
}

func decodeMessage(message redis.XMessage) (Event, error) {
	eventData, ok := message.Values["event"].(string)
	if !ok {
		return Event{}, fmt.Errorf("invalid message format")
	}

	var event Event
	if err := json.Unmarshal([]byte(eventData), &event); err != nil {
		return Event{}, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	event.ID = message.ID
	return event, nil
}
