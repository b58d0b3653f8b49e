package timelock

import (
	"context"
	"sync"

	"github.com/tetu-io/tetu-timelock/sdk"
	"github.com/tetu-io/tetu-timelock/types"
)

// emit delivers an event after its transition committed. Sink failures are logged and do not
// undo the transition.
func emit(ctx context.Context, sink sdk.EventSink, event types.Event) {
	if err := sink.Emit(ctx, event); err != nil {
		sdk.LoggerFrom(ctx).Warnf("failed to emit %s: %v", event.EventName(), err)
	}
}

// EventLog is an EventSink that records events in memory.
type EventLog struct {
	mu     sync.Mutex
	events []types.Event
}

var _ sdk.EventSink = (*EventLog)(nil)

func (l *EventLog) Emit(_ context.Context, event types.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, event)

	return nil
}

// Events returns a copy of the recorded events in emission order.
func (l *EventLog) Events() []types.Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]types.Event{}, l.events...)
}
