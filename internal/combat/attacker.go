package combat

import (
	"github.com/samdwyer/deepcavern/internal/entity"
	"github.com/samdwyer/deepcavern/internal/inventory"
	"github.com/samdwyer/deepcavern/internal/narration"
	"github.com/samdwyer/deepcavern/internal/rng"
)

// Attacker is the capability that lets an entity attack Destructible ones.
const Attacker = "Attacker"

// attackerState is the per-entity Attacker data.
type attackerState struct {
	attackValue    int
	poisonous      bool
	poisonRate     int
	poisonDuration int
	src            rng.Source
}

// AttackerCapability returns the Attacker capability. Damage rolls draw from src.
func AttackerCapability(src rng.Source) *entity.Capability {
	return &entity.Capability{
		Name:  Attacker,
		Group: entity.GroupAttacker,
		Init: func(e *entity.Entity, p entity.Params) (any, error) {
			return &attackerState{
				attackValue:    p.Int("attackValue", 1),
				poisonous:      p.Bool("poisonous", false),
				poisonRate:     p.Int("poisonRate", 0),
				poisonDuration: p.Int("poisonDuration", 0),
				src:            src,
			}, nil
		},
	}
}

func attackerOf(e *entity.Entity) (*attackerState, error) {
	return entity.State[*attackerState](e, Attacker)
}

// AttackValue returns base attack plus the wielded weapon's attack bonus.
// Armor never adds attack.
func AttackValue(e *entity.Entity) (int, error) {
	a, err := attackerOf(e)
	if err != nil {
		return 0, err
	}
	total := a.attackValue
	if e.Has(inventory.Equipper) {
		if w, _ := inventory.Weapon(e); w != nil {
			if eq, err := inventory.EquipmentOf(w); err == nil {
				total += eq.AttackValue
			}
		}
	}
	return total, nil
}

// IncreaseAttackValue raises base attack by value, or by 2 when value is not positive.
func IncreaseAttackValue(e *entity.Entity, value int) error {
	a, err := attackerOf(e)
	if err != nil {
		return err
	}
	if value <= 0 {
		value = 2
	}
	a.attackValue += value
	if e.HumanControlled() {
		narration.Send(e, "You look stronger!")
	}
	return nil
}
