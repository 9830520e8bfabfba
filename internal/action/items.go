package action

import (
	"context"
	"errors"

	"github.com/samdwyer/deepcavern/internal/entity"
	"github.com/samdwyer/deepcavern/internal/inventory"
	"github.com/samdwyer/deepcavern/internal/narration"
	"github.com/samdwyer/deepcavern/internal/survival"
)

// Item actions return true when they used the actor's turn. Invalid
// choices produce a message and false.

// Wield equips the item in slot as a weapon.
func Wield(ctx context.Context, e *entity.Entity, slot int) (bool, error) {
	item, ok, err := slotItem(e, slot)
	if err != nil || !ok {
		return false, err
	}
	if eq, err := inventory.EquipmentOf(item); err != nil || !eq.Wieldable {
		narration.Send(e, "You cannot wield the %s.", item.Name)
		return false, nil
	}
	if err := inventory.Unequip(e, item); err != nil {
		return false, err
	}
	if err := inventory.Wield(e, item); err != nil {
		return false, err
	}
	narration.Send(e, "You are wielding the %s.", item.Name)
	return true, nil
}

// Wear puts on the item in slot as armor.
func Wear(ctx context.Context, e *entity.Entity, slot int) (bool, error) {
	item, ok, err := slotItem(e, slot)
	if err != nil || !ok {
		return false, err
	}
	if eq, err := inventory.EquipmentOf(item); err != nil || !eq.Wearable {
		narration.Send(e, "You cannot wear the %s.", item.Name)
		return false, nil
	}
	if err := inventory.Unequip(e, item); err != nil {
		return false, err
	}
	if err := inventory.Wear(e, item); err != nil {
		return false, err
	}
	narration.Send(e, "You are wearing the %s.", item.Name)
	return true, nil
}

// Unwield puts away the wielded weapon.
func Unwield(ctx context.Context, e *entity.Entity) (bool, error) {
	w, err := inventory.Weapon(e)
	if err != nil {
		return false, err
	}
	if w == nil {
		narration.Send(e, "You are not wielding anything.")
		return false, nil
	}
	if err := inventory.Unwield(e); err != nil {
		return false, err
	}
	narration.Send(e, "You put away the %s.", w.Name)
	return true, nil
}

// TakeOff removes the worn armor.
func TakeOff(ctx context.Context, e *entity.Entity) (bool, error) {
	a, err := inventory.Armor(e)
	if err != nil {
		return false, err
	}
	if a == nil {
		narration.Send(e, "You are not wearing anything.")
		return false, nil
	}
	if err := inventory.TakeOff(e); err != nil {
		return false, err
	}
	narration.Send(e, "You take off the %s.", a.Name)
	return true, nil
}

// Drop puts the item in slot on the floor.
func Drop(ctx context.Context, e *entity.Entity, slot int) (bool, error) {
	item, ok, err := slotItem(e, slot)
	if err != nil || !ok {
		return false, err
	}
	if err := inventory.DropItem(e, slot); err != nil {
		return false, err
	}
	narration.Send(e, "You drop the %s.", inventory.Describe(item))
	return true, nil
}

// Pickup takes the floor items at the given indices. An empty index list
// takes everything.
func Pickup(ctx context.Context, e *entity.Entity, indices []int) (bool, error) {
	if e.Map == nil {
		return false, nil
	}
	floor := e.Map.ItemsAt(e.X, e.Y, e.Z)
	if len(floor) == 0 {
		narration.Send(e, "There is nothing here to pick up.")
		return false, nil
	}
	if len(indices) == 0 {
		indices = make([]int, len(floor))
		for i := range floor {
			indices[i] = i
		}
	}

	all, err := inventory.PickupItems(e, indices)
	if err != nil {
		if errors.Is(err, inventory.ErrBadSlot) {
			narration.Send(e, "There is no such item here.")
			return false, nil
		}
		return false, err
	}
	switch {
	case len(indices) == 1 && all:
		narration.Send(e, "You pick up the %s.", inventory.Describe(floor[indices[0]]))
	case len(indices) == 1:
		narration.Send(e, "Your inventory is full! Nothing was picked up.")
	case all:
		narration.Send(e, "You pick up everything.")
	default:
		narration.Send(e, "Your inventory is full! Not all items were picked up.")
	}
	return true, nil
}

// Eat eats from the item in slot.
func Eat(ctx context.Context, e *entity.Entity, slot int) (bool, error) {
	item, ok, err := slotItem(e, slot)
	if err != nil || !ok {
		return false, err
	}
	if !item.Has(inventory.Edible) {
		narration.Send(e, "You cannot eat the %s.", item.Name)
		return false, nil
	}
	if err := survival.Eat(ctx, e, slot); err != nil {
		return false, err
	}
	return true, nil
}

// slotItem returns the item in slot, messaging e when there is none.
func slotItem(e *entity.Entity, slot int) (*entity.Entity, bool, error) {
	item, err := inventory.Item(e, slot)
	if errors.Is(err, inventory.ErrBadSlot) || (err == nil && item == nil) {
		narration.Send(e, "You have nothing in that slot.")
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return item, true, nil
}
