// Package narration delivers messages to entities and drives help hints.
package narration

import (
	"context"
	"fmt"

	"github.com/samdwyer/deepcavern/internal/entity"
)

// MessageRecipient is the capability that gives an entity an outbox.
const MessageRecipient = "MessageRecipient"

// NearbyRadius is how far SendNearby reaches.
const NearbyRadius = 5

// Outbox holds the messages an entity has received since the last clear.
type Outbox struct {
	messages []string
}

// Capability returns the MessageRecipient capability.
func Capability() *entity.Capability {
	return &entity.Capability{
		Name: MessageRecipient,
		Init: func(e *entity.Entity, p entity.Params) (any, error) {
			return &Outbox{}, nil
		},
	}
}

// Send formats a message and queues it for e. Entities without an outbox
// drop it silently.
func Send(e *entity.Entity, format string, args ...any) {
	if e == nil {
		return
	}
	box, err := entity.State[*Outbox](e, MessageRecipient)
	if err != nil {
		return
	}
	if len(args) > 0 {
		format = fmt.Sprintf(format, args...)
	}
	box.messages = append(box.messages, format)
}

// SendNearby queues a message for every recipient near (x, y, z).
func SendNearby(m entity.Map, x, y, z int, format string, args ...any) {
	if m == nil {
		return
	}
	for _, e := range m.EntitiesWithinRadius(x, y, z, NearbyRadius) {
		Send(e, format, args...)
	}
}

// Messages returns e's queued messages.
func Messages(e *entity.Entity) ([]string, error) {
	box, err := entity.State[*Outbox](e, MessageRecipient)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(box.messages))
	copy(out, box.messages)
	return out, nil
}

// Clear empties e's outbox.
func Clear(e *entity.Entity) error {
	box, err := entity.State[*Outbox](e, MessageRecipient)
	if err != nil {
		return err
	}
	box.messages = box.messages[:0]
	return nil
}

// Narrator reacts to gameplay moments with hints and story beats.
type Narrator interface {
	// HelpText reports that a hint category became relevant. subject may be nil.
	HelpText(category string, subject *entity.Entity)
	// ProcessTurn runs at the start of the player's turn.
	ProcessTurn(ctx context.Context, player *entity.Entity)
}

// Silent is a Narrator that ignores everything.
type Silent struct{}

func (Silent) HelpText(string, *entity.Entity)             {}
func (Silent) ProcessTurn(context.Context, *entity.Entity) {}
