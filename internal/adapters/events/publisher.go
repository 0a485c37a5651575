package events

import (
	"context"
	"log/slog"
)

// PublishFunc adapts a function to the EventPublisher port. The worker binary
// uses it to route claimed outbox records into application dispatch.
type PublishFunc func(ctx context.Context, eventType string, payload []byte) error

func (f PublishFunc) Publish(ctx context.Context, eventType string, payload []byte) error {
	return f(ctx, eventType, payload)
}

// LoggingPublisher logs events instead of delivering them. Used in local
// setups without a mail provider configured.
type LoggingPublisher struct {
	logger *slog.Logger
}

func NewLoggingPublisher(logger *slog.Logger) *LoggingPublisher {
	return &LoggingPublisher{logger: logger}
}

func (p *LoggingPublisher) Publish(ctx context.Context, eventType string, payload []byte) error {
	p.logger.InfoContext(ctx, "published event", "event_type", eventType, "payload", string(payload))
	return nil
}
