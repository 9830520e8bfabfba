// Package survival handles hunger, eating and the upkeep every actor runs
// at the start of its turn.
package survival

import (
	"context"
	"errors"
	"fmt"

	"github.com/samdwyer/deepcavern/internal/combat"
	"github.com/samdwyer/deepcavern/internal/entity"
	"github.com/samdwyer/deepcavern/internal/inventory"
	"github.com/samdwyer/deepcavern/internal/narration"
)

// FoodConsumer is the capability that makes an entity hungry.
const FoodConsumer = "FoodConsumer"

// Hunger states, from emptiest to fullest.
const (
	Starving     = "Starving"
	Hungry       = "Hungry"
	NotHungry    = "Not Hungry"
	WellFed      = "Well Fed"
	Oversatiated = "Oversatiated!"
)

// ErrNotEdible is returned when eating an item without the Edible capability.
var ErrNotEdible = errors.New("item is not edible")

type stomach struct {
	fullness  int
	max       int
	depletion int
}

// FoodConsumerCapability returns the FoodConsumer capability.
func FoodConsumerCapability() *entity.Capability {
	return &entity.Capability{
		Name: FoodConsumer,
		Init: func(e *entity.Entity, p entity.Params) (any, error) {
			maxFullness := p.Int("maxFullness", 1000)
			if maxFullness <= 0 {
				return nil, fmt.Errorf("maxFullness must be positive, got %d", maxFullness)
			}
			return &stomach{
				max:       maxFullness,
				fullness:  p.Int("fullness", maxFullness/2),
				depletion: p.Int("fullnessDepletionRate", 1),
			}, nil
		},
	}
}

func stomachOf(e *entity.Entity) (*stomach, error) {
	return entity.State[*stomach](e, FoodConsumer)
}

// AddTurnHunger removes one turn's worth of fullness.
func AddTurnHunger(ctx context.Context, e *entity.Entity) error {
	s, err := stomachOf(e)
	if err != nil {
		return err
	}
	return ModifyFullness(ctx, e, -s.depletion)
}

// ModifyFullness changes fullness by points. Running empty kills by
// starvation; overfilling kills by gluttony.
func ModifyFullness(ctx context.Context, e *entity.Entity, points int) error {
	s, err := stomachOf(e)
	if err != nil {
		return err
	}
	if points < -10 {
		narration.Send(e, "That item you ate made you sick (lose %d nutrition).", -points)
	}
	s.fullness += points
	switch {
	case s.fullness <= 0:
		combat.Kill(ctx, e, combat.CauseStarvation, "You have died of starvation!")
	case s.fullness > s.max:
		combat.Kill(ctx, e, combat.CauseGluttony, "You choke while eating and die!")
	}
	return nil
}

// Fullness returns current and maximum fullness.
func Fullness(e *entity.Entity) (current, maximum int, err error) {
	s, err := stomachOf(e)
	if err != nil {
		return 0, 0, err
	}
	return s.fullness, s.max, nil
}

// HungerState labels e's fullness as a share of its maximum.
func HungerState(e *entity.Entity) (string, error) {
	s, err := stomachOf(e)
	if err != nil {
		return "", err
	}
	perPercent := float64(s.max) / 100
	f := float64(s.fullness)
	switch {
	case f <= perPercent*25:
		return Starving, nil
	case f <= perPercent*50:
		return Hungry, nil
	case f >= perPercent*95:
		return Oversatiated, nil
	case f >= perPercent*75:
		return WellFed, nil
	default:
		return NotHungry, nil
	}
}

// Eat takes one bite of the edible item in the given inventory slot. A
// finished item leaves the inventory.
func Eat(ctx context.Context, e *entity.Entity, slot int) error {
	if _, err := stomachOf(e); err != nil {
		return err
	}
	item, err := inventory.Item(e, slot)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("eat slot %d: %w", slot, inventory.ErrEmptySlot)
	}
	if !item.Has(inventory.Edible) {
		return fmt.Errorf("eat %s: %w", item.Name, ErrNotEdible)
	}

	name := inventory.Describe(item)
	food, ok, err := inventory.Consume(item)
	if err != nil {
		return err
	}
	if ok {
		narration.Send(e, "You eat the %s.", name)
		if err := ModifyFullness(ctx, e, food); err != nil {
			return err
		}
	}
	if !inventory.HasRemaining(item) {
		return inventory.RemoveItem(e, slot)
	}
	return nil
}
