package combat

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/samdwyer/deepcavern/internal/entity"
	"github.com/samdwyer/deepcavern/internal/inventory"
	"github.com/samdwyer/deepcavern/internal/narration"
)

// Destructible is the capability that gives an entity hit points.
const Destructible = "Destructible"

// Causes of death recorded on human-controlled entities.
const (
	CauseInfernal   = "infernal"
	CauseAnimal     = "animal"
	CauseCombat     = "combat"
	CauseStarvation = "starvation"
	CauseGluttony   = "gluttony"
)

type health struct {
	hp           int
	maxHP        int
	defenseValue int
}

// DestructibleCapability returns the Destructible capability. Gaining a
// level restores HP to full.
func DestructibleCapability() *entity.Capability {
	return &entity.Capability{
		Name: Destructible,
		Init: func(e *entity.Entity, p entity.Params) (any, error) {
			maxHP := p.Int("maxHp", 10)
			return &health{
				maxHP:        maxHP,
				hp:           p.Int("hp", maxHP),
				defenseValue: p.Int("defenseValue", 0),
			}, nil
		},
		Listeners: map[entity.Event]entity.Listener{
			entity.OnGainLevel: func(ctx context.Context, self, _ *entity.Entity) error {
				h, err := healthOf(self)
				if err != nil {
					return err
				}
				h.hp = h.maxHP
				return nil
			},
		},
	}
}

func healthOf(e *entity.Entity) (*health, error) {
	return entity.State[*health](e, Destructible)
}

// HP returns current hit points.
func HP(e *entity.Entity) (int, error) {
	h, err := healthOf(e)
	if err != nil {
		return 0, err
	}
	return h.hp, nil
}

// MaxHP returns maximum hit points.
func MaxHP(e *entity.Entity) (int, error) {
	h, err := healthOf(e)
	if err != nil {
		return 0, err
	}
	return h.maxHP, nil
}

// SetHP overwrites current hit points.
func SetHP(e *entity.Entity, hp int) error {
	h, err := healthOf(e)
	if err != nil {
		return err
	}
	h.hp = hp
	return nil
}

// Heal restores up to amount hit points and returns how many were restored.
func Heal(e *entity.Entity, amount int) (int, error) {
	h, err := healthOf(e)
	if err != nil {
		return 0, err
	}
	if amount <= 0 || h.hp >= h.maxHP {
		return 0, nil
	}
	actual := min(amount, h.maxHP-h.hp)
	h.hp += actual
	return actual, nil
}

// DefenseValue returns base defense plus the defense of any wielded weapon
// and worn armor.
func DefenseValue(e *entity.Entity) (int, error) {
	h, err := healthOf(e)
	if err != nil {
		return 0, err
	}
	total := h.defenseValue
	if e.Has(inventory.Equipper) {
		w, _ := inventory.Weapon(e)
		a, _ := inventory.Armor(e)
		for _, item := range []*entity.Entity{w, a} {
			if item == nil {
				continue
			}
			if eq, err := inventory.EquipmentOf(item); err == nil {
				total += eq.DefenseValue
			}
		}
	}
	return total, nil
}

// IncreaseDefenseValue raises base defense by value, or by 2 when value is not positive.
func IncreaseDefenseValue(e *entity.Entity, value int) error {
	h, err := healthOf(e)
	if err != nil {
		return err
	}
	if value <= 0 {
		value = 2
	}
	h.defenseValue += value
	if e.HumanControlled() {
		narration.Send(e, "You look tougher!")
	}
	return nil
}

// IncreaseMaxHP raises both max and current HP by value, or by 10 when
// value is not positive.
func IncreaseMaxHP(e *entity.Entity, value int) error {
	h, err := healthOf(e)
	if err != nil {
		return err
	}
	if value <= 0 {
		value = 10
	}
	h.maxHP += value
	h.hp += value
	if e.HumanControlled() {
		narration.Send(e, "You look healthier!")
	}
	return nil
}

// TakeDamage subtracts amount from target's HP. At zero or below the target
// dies exactly once: onDeath is raised on it, onKill on the attacker, and
// then the body is removed (or, for a human-controlled target, kept with a
// cause of death). Damage to a dead target does nothing.
func TakeDamage(ctx context.Context, attacker, target *entity.Entity, amount int) error {
	h, err := healthOf(target)
	if err != nil {
		return err
	}
	if !target.Alive() {
		return nil
	}

	h.hp -= amount
	if h.hp > 0 {
		return nil
	}

	cause := CauseCombat
	if attacker != nil {
		switch {
		case attacker.HasType("infernal"):
			cause = CauseInfernal
		case attacker.HasType("animal"):
			cause = CauseAnimal
		}
	}
	if !target.MarkDead(cause) {
		return nil
	}

	narration.Send(attacker, "You kill the %s!", target.Name)

	if err := target.Raise(ctx, entity.OnDeath, attacker); err != nil {
		logListenerError(err, target)
	}
	if attacker != nil {
		if err := attacker.Raise(ctx, entity.OnKill, target); err != nil {
			logListenerError(err, attacker)
		}
	}

	finishKill(ctx, target, "You have died!")
	return nil
}

// Kill ends e outright with the given cause and last message. It returns
// false if e was already dead.
func Kill(ctx context.Context, e *entity.Entity, cause, message string) bool {
	if !e.MarkDead(cause) {
		return false
	}
	finishKill(ctx, e, message)
	return true
}

// finishKill delivers the last message. Human-controlled bodies stay and get
// one more act so their actor can end the game; others leave the map.
func finishKill(ctx context.Context, e *entity.Entity, message string) {
	if !e.HumanControlled() {
		if e.Map != nil {
			e.Map.RemoveEntity(e)
		}
		return
	}

	if message == "" {
		message = "You have died!"
	}
	narration.Send(e, "%s", message)
	if _, err := e.Act(ctx); err != nil {
		logger().WithError(err).WithField("entity", e.Name).Error("final act failed")
	}
}

func logListenerError(err error, e *entity.Entity) {
	logger().WithError(err).WithFields(logrus.Fields{
		"entity": e.Name,
	}).Warn("listener failed")
}
