// Package entity provides composable game objects and the capability registry
// that attaches behaviors to them.
package entity

import (
	"context"

	"github.com/google/uuid"
)

// DefaultSpeed is the scheduler speed of an entity whose template sets none.
const DefaultSpeed = 1000

// TurnResult tells the scheduler what an actor did with its turn.
type TurnResult int

const (
	// TurnDone means the actor completed its turn.
	TurnDone TurnResult = iota
	// TurnAwaitInput means the actor is human-controlled and waits for input.
	TurnAwaitInput
	// TurnSkipped means the act call was ignored (already acting, or no actor).
	TurnSkipped
)

// String returns a human-readable result name.
func (r TurnResult) String() string {
	switch r {
	case TurnDone:
		return "done"
	case TurnAwaitInput:
		return "await_input"
	case TurnSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Entity is a positioned game object (creature, player or item) whose
// behavior comes entirely from attached capabilities.
type Entity struct {
	ID    string
	Name  string
	Glyph rune
	Color string   // Hex color, e.g. "#00FF00"
	Types []string // Creature-type tags, e.g. "infernal", "animal"
	Speed int
	X, Y  int
	Z     int
	Map   Map

	states    map[string]any
	caps      map[string]*Capability
	order     []string
	groups    map[string]string
	listeners map[Event][]boundListener

	alive      bool
	deathCause string
	acting     bool
}

// New creates an entity with no capabilities.
func New(name string, glyph rune) *Entity {
	return &Entity{
		ID:        uuid.NewString(),
		Name:      name,
		Glyph:     glyph,
		Speed:     DefaultSpeed,
		states:    make(map[string]any),
		caps:      make(map[string]*Capability),
		groups:    make(map[string]string),
		listeners: make(map[Event][]boundListener),
		alive:     true,
	}
}

// Position returns the entity's coordinates.
func (e *Entity) Position() (x, y, z int) {
	return e.X, e.Y, e.Z
}

// Point returns the entity's (x, y) on its level.
func (e *Entity) Point() Point {
	return Point{X: e.X, Y: e.Y}
}

// SetPosition updates coordinates without touching the map index.
// Use Map.MoveEntity for entities that are already placed.
func (e *Entity) SetPosition(x, y, z int) {
	e.X, e.Y, e.Z = x, y, z
}

// HasType reports whether the entity carries a creature-type tag.
func (e *Entity) HasType(t string) bool {
	for _, tag := range e.Types {
		if tag == t {
			return true
		}
	}
	return false
}

// Has reports whether a capability with the given name is attached.
func (e *Entity) Has(name string) bool {
	_, ok := e.caps[name]
	return ok
}

// HasGroup reports whether a capability of the given group is attached.
func (e *Entity) HasGroup(group string) bool {
	_, ok := e.groups[group]
	return ok
}

// Capabilities returns capability names in attachment order.
func (e *Entity) Capabilities() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// IsActor reports whether the entity can take scheduled turns.
func (e *Entity) IsActor() bool {
	return e.actor() != nil
}

// HumanControlled reports whether the entity's actor waits for human input.
func (e *Entity) HumanControlled() bool {
	c := e.actor()
	return c != nil && c.HumanControlled
}

func (e *Entity) actor() *Capability {
	name, ok := e.groups[GroupActor]
	if !ok {
		return nil
	}
	return e.caps[name]
}

// Alive reports whether the entity has not been killed.
func (e *Entity) Alive() bool {
	return e.alive
}

// DeathCause returns why the entity died, or "" while alive.
func (e *Entity) DeathCause() string {
	return e.deathCause
}

// MarkDead records the death. It returns false if the entity was already dead.
func (e *Entity) MarkDead(cause string) bool {
	if !e.alive {
		return false
	}
	e.alive = false
	e.deathCause = cause
	return true
}

// Act runs one turn through the entity's actor capability. A nested call
// while the entity is already acting is ignored.
func (e *Entity) Act(ctx context.Context) (TurnResult, error) {
	c := e.actor()
	if c == nil || c.Act == nil {
		return TurnSkipped, nil
	}
	if e.acting {
		return TurnSkipped, nil
	}
	e.acting = true
	defer func() { e.acting = false }()

	return c.Act(ctx, e)
}

// Acting reports whether the entity is in the middle of its turn.
func (e *Entity) Acting() bool {
	return e.acting
}

// String returns the entity's name.
func (e *Entity) String() string {
	return e.Name
}
