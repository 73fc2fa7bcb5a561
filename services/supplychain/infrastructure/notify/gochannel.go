// Package notify implements the domain Notifier against Watermill transports.
// The in-process GoChannel notifier serves observers inside the same process
// with in-order delivery per topic; the Bus notifier mirrors events onto the
// PostgreSQL event bus for other processes.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	pkgevents "github.com/ghuser/beantrail/pkg/events"
	"github.com/ghuser/beantrail/pkg/logger"
	"github.com/ghuser/beantrail/services/supplychain/domain/events"
)

// GoChannel delivers transition events to in-process observers over
// Watermill's gochannel Pub/Sub. Delivery is in-order per topic; per-UPC
// ordering follows from the transition service's per-UPC serialization.
// No ordering is promised across different UPCs.
type GoChannel struct {
	pubsub *gochannel.GoChannel
}

// NewGoChannel returns an in-process notifier. Observers that subscribe after
// an event was published do not receive it (no persistence).
func NewGoChannel(log logger.Logger) *GoChannel {
	return &GoChannel{
		pubsub: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 64},
			pkgevents.NewWatermillLogger(log),
		),
	}
}

// Emit publishes evt on its transition topic. A slow or failing observer
// never blocks the caller beyond the channel buffer.
func (n *GoChannel) Emit(_ context.Context, evt events.TransitionEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("notify: marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", evt.EventID.String())
	if err := n.pubsub.Publish(events.TopicFor(evt.State), msg); err != nil {
		return fmt.Errorf("notify: publish %s: %w", evt.Name, err)
	}
	return nil
}

// Subscribe registers an observer for topic. Messages must be Acked by the
// observer; events.TransitionEvent is the JSON payload.
func (n *GoChannel) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	ch, err := n.pubsub.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("notify: subscribe %s: %w", topic, err)
	}
	return ch, nil
}

// Close shuts down the pub/sub and all subscriber channels.
func (n *GoChannel) Close() error {
	return n.pubsub.Close()
}
