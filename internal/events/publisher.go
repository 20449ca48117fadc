package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// GoChannelPublisher broadcasts events to in-process subscribers through a
// watermill gochannel pub/sub. Subscribers that are not listening at publish
// time miss the event; that is the intended at-most-once contract.
type GoChannelPublisher struct {
	pubSub *gochannel.GoChannel
}

func NewGoChannelPublisher(logger *slog.Logger) *GoChannelPublisher {
	return &GoChannelPublisher{
		pubSub: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 64},
			watermill.NewSlogLogger(logger),
		),
	}
}

func (p *GoChannelPublisher) PublishRatingSubmitted(ctx context.Context, event RatingSubmittedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal rating event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)

	if err := p.pubSub.Publish(TopicRatings, msg); err != nil {
		return fmt.Errorf("failed to publish rating event: %w", err)
	}
	return nil
}

// Subscribe returns a channel of raw messages for the given topic.
func (p *GoChannelPublisher) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return p.pubSub.Subscribe(ctx, topic)
}

func (p *GoChannelPublisher) Close() error {
	return p.pubSub.Close()
}
