package inventory

import (
	"fmt"
	"sort"

	"github.com/samdwyer/deepcavern/internal/entity"
	"github.com/samdwyer/deepcavern/internal/narration"
)

// Holder is the capability that gives an entity inventory slots.
const Holder = "InventoryHolder"

// DefaultSlots is the inventory size when the template sets none.
const DefaultSlots = 10

// Inventory is a fixed array of nullable item slots.
type Inventory struct {
	slots    []*entity.Entity
	narrator narration.Narrator
}

// HolderCapability returns the InventoryHolder capability. Help hints for
// new items go to narrator.
func HolderCapability(narrator narration.Narrator) *entity.Capability {
	if narrator == nil {
		narrator = narration.Silent{}
	}
	return &entity.Capability{
		Name: Holder,
		Init: func(e *entity.Entity, p entity.Params) (any, error) {
			n := p.Int("inventorySlots", DefaultSlots)
			if n <= 0 {
				return nil, fmt.Errorf("inventorySlots must be positive, got %d", n)
			}
			return &Inventory{slots: make([]*entity.Entity, n), narrator: narrator}, nil
		},
	}
}

func inventoryOf(e *entity.Entity) (*Inventory, error) {
	return entity.State[*Inventory](e, Holder)
}

// Items returns a copy of e's slots. Empty slots are nil.
func Items(e *entity.Entity) ([]*entity.Entity, error) {
	inv, err := inventoryOf(e)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Entity, len(inv.slots))
	copy(out, inv.slots)
	return out, nil
}

// Item returns the item in slot i, which may be nil.
func Item(e *entity.Entity, i int) (*entity.Entity, error) {
	inv, err := inventoryOf(e)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(inv.slots) {
		return nil, fmt.Errorf("slot %d: %w", i, ErrBadSlot)
	}
	return inv.slots[i], nil
}

// AddItem stores item in the first empty slot. It returns false when the
// inventory is full.
func AddItem(e, item *entity.Entity) (bool, error) {
	inv, err := inventoryOf(e)
	if err != nil {
		return false, err
	}
	for i, slot := range inv.slots {
		if slot != nil {
			continue
		}
		inv.slots[i] = item
		inv.hint(item)
		return true, nil
	}
	return false, nil
}

func (inv *Inventory) hint(item *entity.Entity) {
	if item.Has(Edible) {
		inv.narrator.HelpText(narration.HelpEdible, item)
	}
	if eq, err := EquipmentOf(item); err == nil {
		if eq.Wearable {
			inv.narrator.HelpText(narration.HelpWearable, item)
		}
		if eq.Wieldable {
			inv.narrator.HelpText(narration.HelpWieldable, item)
		}
	}
}

// CanAddItem reports whether e has a free slot.
func CanAddItem(e *entity.Entity) (bool, error) {
	inv, err := inventoryOf(e)
	if err != nil {
		return false, err
	}
	for _, slot := range inv.slots {
		if slot == nil {
			return true, nil
		}
	}
	return false, nil
}

// RemoveItem clears slot i, unequipping its item first.
func RemoveItem(e *entity.Entity, i int) error {
	inv, err := inventoryOf(e)
	if err != nil {
		return err
	}
	if i < 0 || i >= len(inv.slots) {
		return fmt.Errorf("slot %d: %w", i, ErrBadSlot)
	}
	if item := inv.slots[i]; item != nil && e.Has(Equipper) {
		if err := Unequip(e, item); err != nil {
			return err
		}
	}
	inv.slots[i] = nil
	return nil
}

// PickupItems moves the floor items at the given indices (as returned by
// Map.ItemsAt) into e's inventory. It stops at the first item that does not
// fit and reports whether every requested item was taken. Items not taken
// stay on the floor.
func PickupItems(e *entity.Entity, indices []int) (bool, error) {
	inv, err := inventoryOf(e)
	if err != nil {
		return false, err
	}
	if e.Map == nil {
		return false, fmt.Errorf("pickup: %s is not on a map", e.Name)
	}

	floor := e.Map.ItemsAt(e.X, e.Y, e.Z)
	order := make([]int, len(indices))
	copy(order, indices)
	sort.Ints(order)
	for i, idx := range order {
		if idx < 0 || idx >= len(floor) {
			return false, fmt.Errorf("floor item %d: %w", idx, ErrBadSlot)
		}
		if i > 0 && order[i-1] == idx {
			return false, fmt.Errorf("floor item %d requested twice", idx)
		}
	}

	added := 0
	for _, idx := range order {
		pos := idx - added
		ok, err := AddItem(e, floor[pos])
		if err != nil {
			return false, err
		}
		if !ok {
			inv.narrator.HelpText(narration.HelpDrop, nil)
			break
		}
		floor = append(floor[:pos], floor[pos+1:]...)
		added++
	}
	e.Map.SetItemsAt(e.X, e.Y, e.Z, floor)
	return added == len(order), nil
}

// DropItem moves the item in slot i to the floor under e.
func DropItem(e *entity.Entity, i int) error {
	item, err := Item(e, i)
	if err != nil {
		return err
	}
	if item == nil {
		return nil
	}
	if e.Map != nil {
		e.Map.AddItem(e.X, e.Y, e.Z, item)
	}
	return RemoveItem(e, i)
}
