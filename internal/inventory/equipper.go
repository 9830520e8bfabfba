package inventory

import (
	"fmt"

	"github.com/samdwyer/deepcavern/internal/entity"
)

// Equipper is the capability that lets an entity wield and wear items.
const Equipper = "Equipper"

// Slots holds weak references into the inventory. Clearing a slot never
// destroys the item.
type Slots struct {
	weapon *entity.Entity
	armor  *entity.Entity
}

// EquipperCapability returns the Equipper capability.
func EquipperCapability() *entity.Capability {
	return &entity.Capability{
		Name: Equipper,
		Init: func(e *entity.Entity, p entity.Params) (any, error) {
			return &Slots{}, nil
		},
	}
}

func slotsOf(e *entity.Entity) (*Slots, error) {
	return entity.State[*Slots](e, Equipper)
}

// Wield sets the weapon. The item must be wieldable.
func Wield(e, item *entity.Entity) error {
	s, err := slotsOf(e)
	if err != nil {
		return err
	}
	eq, err := EquipmentOf(item)
	if err != nil {
		return err
	}
	if !eq.Wieldable {
		return fmt.Errorf("wield %s: %w", item.Name, ErrNotWieldable)
	}
	s.weapon = item
	return nil
}

// Unwield clears the weapon.
func Unwield(e *entity.Entity) error {
	s, err := slotsOf(e)
	if err != nil {
		return err
	}
	s.weapon = nil
	return nil
}

// Wear sets the armor. The item must be wearable.
func Wear(e, item *entity.Entity) error {
	s, err := slotsOf(e)
	if err != nil {
		return err
	}
	eq, err := EquipmentOf(item)
	if err != nil {
		return err
	}
	if !eq.Wearable {
		return fmt.Errorf("wear %s: %w", item.Name, ErrNotWearable)
	}
	s.armor = item
	return nil
}

// TakeOff clears the armor.
func TakeOff(e *entity.Entity) error {
	s, err := slotsOf(e)
	if err != nil {
		return err
	}
	s.armor = nil
	return nil
}

// Unequip clears whichever slots reference item.
func Unequip(e, item *entity.Entity) error {
	s, err := slotsOf(e)
	if err != nil {
		return err
	}
	if s.weapon == item {
		s.weapon = nil
	}
	if s.armor == item {
		s.armor = nil
	}
	return nil
}

// Weapon returns the wielded item, or nil.
func Weapon(e *entity.Entity) (*entity.Entity, error) {
	s, err := slotsOf(e)
	if err != nil {
		return nil, err
	}
	return s.weapon, nil
}

// Armor returns the worn item, or nil.
func Armor(e *entity.Entity) (*entity.Entity, error) {
	s, err := slotsOf(e)
	if err != nil {
		return nil, err
	}
	return s.armor, nil
}

// IsEquipped reports whether item is wielded or worn by e.
func IsEquipped(e, item *entity.Entity) bool {
	s, err := slotsOf(e)
	if err != nil || item == nil {
		return false
	}
	return s.weapon == item || s.armor == item
}
