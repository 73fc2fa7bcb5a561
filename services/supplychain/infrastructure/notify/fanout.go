package notify

import (
	"context"

	"github.com/ghuser/beantrail/pkg/logger"
	"github.com/ghuser/beantrail/services/supplychain/domain/events"
)

// Fanout delivers each event to every wrapped Notifier in order. A failing
// sink is logged and skipped; the transition that emitted the event has
// already committed and is never rolled back or blocked.
type Fanout struct {
	sinks []events.Notifier
	log   logger.Logger
}

// NewFanout composes the given notifiers. Nil sinks are ignored.
func NewFanout(log logger.Logger, sinks ...events.Notifier) *Fanout {
	kept := make([]events.Notifier, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &Fanout{sinks: kept, log: log}
}

// Emit sends evt to every sink, absorbing failures.
func (f *Fanout) Emit(ctx context.Context, evt events.TransitionEvent) error {
	for _, s := range f.sinks {
		if err := s.Emit(ctx, evt); err != nil {
			f.log.ErrorContext(ctx, "event delivery failed",
				"event", evt.Name, "upc", evt.UPC, "error", err)
		}
	}
	return nil
}
