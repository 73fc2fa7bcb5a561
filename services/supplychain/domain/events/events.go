package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/beantrail/services/supplychain/domain/models"
)

// Watermill topics, one per lifecycle transition.
const (
	TopicHarvested = "supplychain.harvested"
	TopicProcessed = "supplychain.processed"
	TopicPacked    = "supplychain.packed"
	TopicForSale   = "supplychain.forsale"
	TopicSold      = "supplychain.sold"
	TopicShipped   = "supplychain.shipped"
	TopicReceived  = "supplychain.received"
	TopicPurchased = "supplychain.purchased"
)

// Topics lists every transition topic, in lifecycle order.
func Topics() []string {
	return []string{
		TopicHarvested, TopicProcessed, TopicPacked, TopicForSale,
		TopicSold, TopicShipped, TopicReceived, TopicPurchased,
	}
}

// TopicFor returns the topic for the state a transition just reached.
func TopicFor(s models.ItemState) string {
	switch s {
	case models.StateHarvested:
		return TopicHarvested
	case models.StateProcessed:
		return TopicProcessed
	case models.StatePacked:
		return TopicPacked
	case models.StateForSale:
		return TopicForSale
	case models.StateSold:
		return TopicSold
	case models.StateShipped:
		return TopicShipped
	case models.StateReceived:
		return TopicReceived
	case models.StatePurchased:
		return TopicPurchased
	default:
		return ""
	}
}

// TransitionEvent is emitted exactly once per successful transition, after the
// ledger mutation commits. Name matches the state reached (Harvested … Purchased).
type TransitionEvent struct {
	EventID    uuid.UUID        `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int              `json:"version"`  // Schema version; increment on breaking changes
	Name       string           `json:"name"`
	UPC        uint64           `json:"upc"`
	State      models.ItemState `json:"state"`
	ActorID    uuid.UUID        `json:"actor_id"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// NewTransitionEvent builds the event for an item that just reached its
// current state through a transition triggered by actor.
func NewTransitionEvent(item *models.Item, actor uuid.UUID) TransitionEvent {
	return TransitionEvent{
		EventID:    uuid.New(),
		Version:    1,
		Name:       item.State.String(),
		UPC:        item.UPC,
		State:      item.State,
		ActorID:    actor,
		OccurredAt: time.Now().UTC(),
	}
}

// Notifier delivers transition events to observers. Emit is called
// synchronously after the corresponding ledger mutation commits, never before.
// A failing observer must not roll back or block the transition; implementations
// absorb delivery errors and callers treat Emit's error as advisory.
type Notifier interface {
	Emit(ctx context.Context, evt TransitionEvent) error
}
