package entity

import (
	"context"
	"fmt"
	"sort"
)

// Capability groups. At most one capability per group may be attached.
const (
	GroupActor      = "Actor"
	GroupAttacker   = "Attacker"
	GroupSight      = "Sight"
	GroupStatGainer = "StatGainer"
)

// Capability is a named behavior template. It holds no per-entity data; Init
// produces the state stored on each entity it is attached to.
type Capability struct {
	Name  string
	Group string

	// HumanControlled marks an actor that suspends the scheduler for input.
	HumanControlled bool

	Init      func(e *Entity, p Params) (any, error)
	Act       func(ctx context.Context, e *Entity) (TurnResult, error)
	Listeners map[Event]Listener
}

// Attach initializes cap on e and registers its listeners after any that
// are already attached.
func Attach(e *Entity, c *Capability, p Params) error {
	if c == nil || c.Name == "" {
		return fmt.Errorf("attach to %s: capability has no name", e.Name)
	}
	if _, ok := e.caps[c.Name]; ok {
		return fmt.Errorf("attach %s to %s: %w", c.Name, e.Name, ErrDuplicateCapability)
	}
	if c.Group != "" {
		if other, ok := e.groups[c.Group]; ok {
			return fmt.Errorf("attach %s to %s: group %s already held by %s: %w",
				c.Name, e.Name, c.Group, other, ErrDuplicateCapability)
		}
	}
	if c.Act != nil && c.Group != GroupActor {
		return fmt.Errorf("attach %s to %s: only %s capabilities may act", c.Name, e.Name, GroupActor)
	}

	var state any
	if c.Init != nil {
		s, err := c.Init(e, p)
		if err != nil {
			return fmt.Errorf("init %s on %s: %w", c.Name, e.Name, err)
		}
		state = s
	}

	e.caps[c.Name] = c
	e.states[c.Name] = state
	e.order = append(e.order, c.Name)
	if c.Group != "" {
		e.groups[c.Group] = c.Name
	}
	for _, ev := range sortedEvents(c.Listeners) {
		e.listeners[ev] = append(e.listeners[ev], boundListener{capability: c.Name, fn: c.Listeners[ev]})
	}
	return nil
}

func sortedEvents(ls map[Event]Listener) []Event {
	events := make([]Event, 0, len(ls))
	for ev := range ls {
		events = append(events, ev)
	}
	sort.Slice(events, func(i, j int) bool { return events[i] < events[j] })
	return events
}

// State returns the typed state of the named capability. An entity without
// the capability yields a *MissingCapabilityError.
func State[T any](e *Entity, name string) (T, error) {
	var zero T
	raw, ok := e.states[name]
	if !ok {
		return zero, &MissingCapabilityError{Entity: e.Name, Capability: name}
	}
	s, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("capability %s on %s holds %T, not %T", name, e.Name, raw, zero)
	}
	return s, nil
}

// Registry maps capability names to their templates.
type Registry struct {
	caps map[string]*Capability
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{caps: make(map[string]*Capability)}
}

// Register adds a capability. Names must be non-empty and unique.
func (r *Registry) Register(c *Capability) error {
	if c == nil || c.Name == "" {
		return fmt.Errorf("register capability: empty name")
	}
	if _, ok := r.caps[c.Name]; ok {
		return fmt.Errorf("register %s: %w", c.Name, ErrDuplicateCapability)
	}
	r.caps[c.Name] = c
	return nil
}

// Get looks up a capability by name.
func (r *Registry) Get(name string) (*Capability, error) {
	c, ok := r.caps[name]
	if !ok {
		return nil, fmt.Errorf("capability %q: %w", name, ErrUnknownCapability)
	}
	return c, nil
}

// Attach looks up name and attaches it to e.
func (r *Registry) Attach(e *Entity, name string, p Params) error {
	c, err := r.Get(name)
	if err != nil {
		return err
	}
	return Attach(e, c, p)
}
