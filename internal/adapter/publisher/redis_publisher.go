package publisher

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/boring-ventures/minka-sub001/internal/domain/event"
	"github.com/boring-ventures/minka-sub001/pkg/messaging"
)

// redisPublisher publishes donation events on a Redis pub/sub channel
type redisPublisher struct {
	client  messaging.RedisClient
	channel string
	logger  *zap.Logger
}

// NewRedisPublisher creates a publisher writing to the given channel
func NewRedisPublisher(client messaging.RedisClient, channel string, logger *zap.Logger) event.Publisher {
	return &redisPublisher{
		client:  client,
		channel: channel,
		logger:  logger,
	}
}

func (p *redisPublisher) Publish(ctx context.Context, evt event.DonationEvent) error {
	if err := p.client.Publish(ctx, p.channel, evt); err != nil {
		return fmt.Errorf("failed to publish %s: %w", evt.Type, err)
	}

	p.logger.Debug("Published donation event",
		zap.String("type", evt.Type),
		zap.String("donation_id", evt.DonationID.String()),
		zap.String("channel", p.channel))
	return nil
}
