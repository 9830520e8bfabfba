// Package inventory holds item storage, equipment and loot drops.
package inventory

import (
	"github.com/samdwyer/deepcavern/internal/entity"
)

// Item capability names.
const (
	Equippable = "Equippable"
	Edible     = "Edible"
)

// Equipment is the state of an item that can be wielded or worn.
type Equipment struct {
	AttackValue  int
	DefenseValue int
	Wieldable    bool
	Wearable     bool
}

// Food is the state of an edible item.
type Food struct {
	FoodValue       int
	MaxConsumptions int
	Remaining       int
}

// EquippableCapability returns the Equippable item capability.
func EquippableCapability() *entity.Capability {
	return &entity.Capability{
		Name: Equippable,
		Init: func(e *entity.Entity, p entity.Params) (any, error) {
			return &Equipment{
				AttackValue:  p.Int("attackValue", 0),
				DefenseValue: p.Int("defenseValue", 0),
				Wieldable:    p.Bool("wieldable", false),
				Wearable:     p.Bool("wearable", false),
			}, nil
		},
	}
}

// EdibleCapability returns the Edible item capability.
func EdibleCapability() *entity.Capability {
	return &entity.Capability{
		Name: Edible,
		Init: func(e *entity.Entity, p entity.Params) (any, error) {
			n := p.Int("consumptions", 1)
			return &Food{
				FoodValue:       p.Int("foodValue", 5),
				MaxConsumptions: n,
				Remaining:       n,
			}, nil
		},
	}
}

// EquipmentOf returns an item's equipment stats.
func EquipmentOf(item *entity.Entity) (*Equipment, error) {
	return entity.State[*Equipment](item, Equippable)
}

// Consume takes one bite of an edible item and returns its food value.
// ok is false once the item has been eaten up.
func Consume(item *entity.Entity) (food int, ok bool, err error) {
	f, err := entity.State[*Food](item, Edible)
	if err != nil {
		return 0, false, err
	}
	if f.Remaining <= 0 {
		return 0, false, nil
	}
	f.Remaining--
	return f.FoodValue, true, nil
}

// HasRemaining reports whether an edible item has any bites left.
func HasRemaining(item *entity.Entity) bool {
	f, err := entity.State[*Food](item, Edible)
	return err == nil && f.Remaining > 0
}

// Describe returns the item's display name, noting partly eaten food.
func Describe(item *entity.Entity) string {
	if f, err := entity.State[*Food](item, Edible); err == nil {
		if f.Remaining < f.MaxConsumptions {
			return "partly eaten " + item.Name
		}
	}
	return item.Name
}
