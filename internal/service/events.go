package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/pearline_shop/pkg/logging"
)

const publishTimeout = 5 * time.Second

type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

// publish sends event after the caller's transaction committed. Failures
// are logged and never reach the caller.
func publish(ctx context.Context, p EventPublisher, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "topic", topic, "type", event["type"], "error", err)
	}
}
