package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Publisher records dispatch events.
type Publisher interface {
	// Publish appends an event to the dispatch stream.
	// Returns the message ID assigned by the backend.
	Publish(ctx context.Context, event DispatchEvent) (messageID string, err error)
}

// RedisPublisher implements Publisher using Redis Streams.
type RedisPublisher struct {
	client *redis.Client
	stream string
	maxLen int64
	logger *zap.Logger
}

// NewPublisher creates a new Publisher backed by Redis Streams.
func NewPublisher(client *redis.Client, logger *zap.Logger) *RedisPublisher {
	return &RedisPublisher{
		client: client,
		stream: StreamDispatch,
		maxLen: DefaultStreamMaxLen,
		logger: logger,
	}
}

// Publish adds an event to the stream using XADD.
// Uses "*" for auto-generated message ID and trims the stream approximately to maxLen.
func (p *RedisPublisher) Publish(ctx context.Context, event DispatchEvent) (string, error) {
	startTime := time.Now()

	values, err := event.ToMap()
	if err != nil {
		return "", fmt.Errorf("serialize event: %w", err)
	}

	messageID, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: values,
	}).Result()
	if err != nil {
		return "", fmt.Errorf("xadd to stream: %w", err)
	}

	p.logger.Debug("dispatch event published",
		zap.String("stream", p.stream),
		zap.String("msg_id", messageID),
		zap.String("route", event.Route),
		zap.String("outcome", event.Outcome),
		zap.Duration("duration", time.Since(startTime)),
	)
	return messageID, nil
}

// NoopPublisher discards events. Used when no event stream is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, DispatchEvent) (string, error) { return "", nil }
