package entity

import "context"

// Event names a lifecycle hook raised on an entity.
type Event string

const (
	// OnDeath is raised on the victim; other is the attacker.
	OnDeath Event = "onDeath"
	// OnKill is raised on the attacker; other is the victim.
	OnKill Event = "onKill"
	// OnGainLevel is raised after one or more levels are gained; other is nil.
	OnGainLevel Event = "onGainLevel"
)

// Listener handles an event raised on self.
type Listener func(ctx context.Context, self, other *Entity) error

type boundListener struct {
	capability string
	fn         Listener
}

// Raise runs every listener registered for ev in attachment order. The first
// failing listener stops the dispatch; effects of earlier listeners remain.
func (e *Entity) Raise(ctx context.Context, ev Event, other *Entity) error {
	ls := e.listeners[ev]
	if len(ls) == 0 {
		return nil
	}
	// Listeners may attach capabilities; iterate over a snapshot.
	snapshot := make([]boundListener, len(ls))
	copy(snapshot, ls)

	for _, l := range snapshot {
		if err := l.fn(ctx, e, other); err != nil {
			return &ListenerError{Event: ev, Capability: l.capability, Err: err}
		}
	}
	return nil
}

// ListenerCount returns how many listeners are registered for ev.
func (e *Entity) ListenerCount(ev Event) int {
	return len(e.listeners[ev])
}
