// Package events carries in-process notifications about stored media. The
// gallery cache subscribes so listings refresh after every upload or delete.
package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	watermill "github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/bytedance/sonic"

	nlog "github.com/Karin-Goldin/wedding-app/pkg/log"
)

const (
	// TopicMediaStored fires after a blob write succeeds.
	TopicMediaStored = "media.stored"
	// TopicMediaDeleted fires after a blob removal succeeds.
	TopicMediaDeleted = "media.deleted"
)

// MediaEvent is the payload of both media topics.
type MediaEvent struct {
	Key        string    `json:"key"`
	SizeBytes  int64     `json:"size,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Bus is the in-process publish/subscribe channel. A single process serves a
// wedding; a broker-backed bus would be wired here if that ever changes.
type Bus struct {
	pubsub *gochannel.GoChannel
}

var (
	busOnce sync.Once
	busInst *Bus
)

// NewBus creates the shared event bus.
func NewBus() *Bus {
	busOnce.Do(func() {
		ps := gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 64},
			newZerologAdapter(),
		)
		busInst = &Bus{pubsub: ps}
	})

	return busInst
}

// PublishMedia emits a media event on the given topic. Publishing is
// best-effort: a failure is logged, never surfaced to the upload path.
func (b *Bus) PublishMedia(topic string, event MediaEvent) {
	payload, err := sonic.Marshal(event)
	if err != nil {
		nlog.Logger().Warn().Err(err).Str("topic", topic).Msg("encode media event failed")
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := b.pubsub.Publish(topic, msg); err != nil {
		nlog.Logger().Warn().Err(err).Str("topic", topic).Msg("publish media event failed")
	}
}

// SubscribeMedia delivers decoded media events for one topic to fn until ctx
// ends. Runs its own goroutine.
func (b *Bus) SubscribeMedia(ctx context.Context, topic string, fn func(MediaEvent)) error {
	ch, err := b.pubsub.Subscribe(ctx, topic)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}

	go func() {
		for msg := range ch {
			var event MediaEvent
			if err := sonic.Unmarshal(msg.Payload, &event); err != nil {
				nlog.Logger().Warn().Err(err).Str("topic", topic).Msg("decode media event failed")
				msg.Ack()

				continue
			}

			fn(event)
			msg.Ack()
		}
	}()

	return nil
}

// Close shuts the bus down.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}
