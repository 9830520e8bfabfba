package combat

import (
	"context"

	"github.com/samdwyer/deepcavern/internal/entity"
	"github.com/samdwyer/deepcavern/internal/narration"
)

// Poisonable is the capability that lets an entity be poisoned.
const Poisonable = "Poisonable"

// poison is the per-entity status record. It is not an entity of its own.
type poison struct {
	turns    int
	rate     int
	attacker *entity.Entity
	poisoned bool
}

// PoisonableCapability returns the Poisonable capability.
func PoisonableCapability() *entity.Capability {
	return &entity.Capability{
		Name: Poisonable,
		Init: func(e *entity.Entity, p entity.Params) (any, error) {
			return &poison{rate: p.Int("poisonDmgRate", 5)}, nil
		},
	}
}

func poisonOf(e *entity.Entity) (*poison, error) {
	return entity.State[*poison](e, Poisonable)
}

// ApplyPoison overwrites any current poisoning: turns and rate are replaced
// and damage is attributed to the new attacker.
func ApplyPoison(target, attacker *entity.Entity, turns, rate int) error {
	p, err := poisonOf(target)
	if err != nil {
		return err
	}
	p.turns = turns
	p.rate = rate
	p.attacker = attacker
	p.poisoned = turns > 0
	return nil
}

// TickPoison runs one turn of poison on e: a turn is used up and rate damage
// is dealt on behalf of the poisoner. The flag clears with the last turn.
func TickPoison(ctx context.Context, e *entity.Entity) error {
	p, err := poisonOf(e)
	if err != nil {
		return err
	}
	if p.turns <= 0 {
		p.poisoned = false
		return nil
	}

	p.turns--
	p.poisoned = p.turns > 0
	if !e.Has(Destructible) {
		return nil
	}
	narration.Send(e, "You take %d poison damage.", p.rate)
	return TakeDamage(ctx, p.attacker, e, p.rate)
}

// PoisonState reports whether e is poisoned and how many turns remain.
func PoisonState(e *entity.Entity) (poisoned bool, turns int, err error) {
	p, err := poisonOf(e)
	if err != nil {
		return false, 0, err
	}
	return p.poisoned, p.turns, nil
}
