package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	pkgevents "github.com/ghuser/beantrail/pkg/events"
	"github.com/ghuser/beantrail/services/supplychain/domain/events"
)

// Bus mirrors transition events onto the PostgreSQL event bus so the worker
// process (and any other consumer group) observes them.
type Bus struct {
	bus *pkgevents.EventBus
}

// NewBus returns a Notifier publishing through the given event bus.
func NewBus(bus *pkgevents.EventBus) *Bus {
	return &Bus{bus: bus}
}

// Emit publishes evt on its transition topic.
func (n *Bus) Emit(ctx context.Context, evt events.TransitionEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("notify: marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", evt.EventID.String())
	msg.Metadata.Set("event_version", strconv.Itoa(evt.Version))
	if err := n.bus.Publish(ctx, events.TopicFor(evt.State), msg); err != nil {
		return fmt.Errorf("notify: bus publish %s: %w", evt.Name, err)
	}
	return nil
}
