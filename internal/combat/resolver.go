// Package combat resolves attacks, damage, death and poison for entities.
package combat

import (
	"context"
	"math"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/deepcavern/internal/entity"
	"github.com/samdwyer/deepcavern/internal/logging"
	"github.com/samdwyer/deepcavern/internal/narration"
	"github.com/samdwyer/deepcavern/internal/rng"
	"github.com/samdwyer/deepcavern/internal/telemetry"
)

// AttackResult describes what a single attack did.
type AttackResult struct {
	Connected bool // False when the target cannot take damage
	Damage    int
	Killed    bool
	Poisoned  bool
}

// Damage rolls 1 + floor(u * max(0, attack-defense)). The result is never
// below 1.
func Damage(attack, defense int, src rng.Source) int {
	spread := max(0, attack-defense)
	return 1 + int(math.Floor(src.Uniform()*float64(spread)))
}

// Attack makes attacker strike target. Targets without Destructible are
// ignored. A poisonous attacker poisons a Poisonable target that survives.
func Attack(ctx context.Context, attacker, target *entity.Entity) (AttackResult, error) {
	var result AttackResult
	if !target.Has(Destructible) {
		return result, nil
	}

	a, err := attackerOf(attacker)
	if err != nil {
		return result, err
	}

	ctx, span := telemetry.Tracer("combat").Start(ctx, "combat.attack")
	defer span.End()

	atk, err := AttackValue(attacker)
	if err != nil {
		return result, err
	}
	def, err := DefenseValue(target)
	if err != nil {
		return result, err
	}

	result.Connected = true
	result.Damage = Damage(atk, def, a.src)

	narration.Send(attacker, "You strike the %s for %d damage!", target.Name, result.Damage)
	narration.Send(target, "The %s strikes you for %d damage!", attacker.Name, result.Damage)

	if err := TakeDamage(ctx, attacker, target, result.Damage); err != nil {
		return result, err
	}
	result.Killed = !target.Alive()

	if a.poisonous && target.Has(Poisonable) && target.Alive() {
		if err := ApplyPoison(target, attacker, a.poisonDuration, a.poisonRate); err != nil {
			return result, err
		}
		result.Poisoned = true
	}

	span.SetAttributes(
		attribute.String("combat.attacker", attacker.Name),
		attribute.String("combat.target", target.Name),
		attribute.Int("combat.attack", atk),
		attribute.Int("combat.defense", def),
		attribute.Int("combat.damage", result.Damage),
		attribute.Bool("combat.killed", result.Killed),
	)
	logger().WithFields(logrus.Fields{
		"attacker": attacker.Name,
		"target":   target.Name,
		"damage":   result.Damage,
		"killed":   result.Killed,
	}).Debug("attack resolved")

	return result, nil
}

func logger() *logrus.Entry {
	return logging.For("combat")
}
