package service

import (
	"context"
	"encoding/json"

	"blog-cms-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	Publish(ctx context.Context, payload []byte) error
	PublishEvent(ctx context.Context, evt events.Event) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (p *publisherService) Publish(_ context.Context, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return p.pubSub.Publish(p.topicName, msg)
}

// PublishEvent wraps a domain event in the wire envelope consumers
// unmarshal: {"type": ..., "data": ..., "occurred_at": ...}.
func (p *publisherService) PublishEvent(ctx context.Context, evt events.Event) error {
	envelope := map[string]interface{}{
		"type":        evt.EventType(),
		"data":        evt.Payload(),
		"occurred_at": evt.Timestamp(),
	}
	raw, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	return p.Publish(ctx, raw)
}
