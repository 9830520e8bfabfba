package progression

import (
	"context"
	"fmt"

	"github.com/samdwyer/deepcavern/internal/ai"
	"github.com/samdwyer/deepcavern/internal/combat"
	"github.com/samdwyer/deepcavern/internal/entity"
	"github.com/samdwyer/deepcavern/internal/rng"
)

// Stat is one way to spend a stat point.
type Stat string

const (
	StatAttack  Stat = "Increase attack value"
	StatDefense Stat = "Increase defense value"
	StatMaxHP   Stat = "Increase max health"
	StatSight   Stat = "Increase sight range"
)

// Stat gainer capability names.
const (
	RandomStatGainer = "RandomStatGainer"
	PlayerStatGainer = "PlayerStatGainer"
)

// StatPrompter asks a human to spend stat points.
type StatPrompter interface {
	StatAllocation(e *entity.Entity)
}

// StatOptions lists the stats e can raise, in a fixed order, based on the
// capabilities it holds.
func StatOptions(e *entity.Entity) []Stat {
	var opts []Stat
	if e.Has(combat.Attacker) {
		opts = append(opts, StatAttack)
	}
	if e.Has(combat.Destructible) {
		opts = append(opts, StatDefense, StatMaxHP)
	}
	if e.Has(ai.Sight) {
		opts = append(opts, StatSight)
	}
	return opts
}

// SpendStatPoint applies stat once and uses up one stat point.
func SpendStatPoint(ctx context.Context, e *entity.Entity, stat Stat) error {
	r, err := recordOf(e)
	if err != nil {
		return err
	}
	if r.statPoints <= 0 {
		return fmt.Errorf("%s: %w", e.Name, ErrNoStatPoints)
	}
	if err := applyStat(e, stat); err != nil {
		return err
	}
	r.statPoints--
	return nil
}

func applyStat(e *entity.Entity, stat Stat) error {
	available := false
	for _, o := range StatOptions(e) {
		if o == stat {
			available = true
			break
		}
	}
	if !available {
		return fmt.Errorf("%s: %q: %w", e.Name, stat, ErrUnknownStat)
	}

	switch stat {
	case StatAttack:
		return combat.IncreaseAttackValue(e, 0)
	case StatDefense:
		return combat.IncreaseDefenseValue(e, 0)
	case StatMaxHP:
		return combat.IncreaseMaxHP(e, 0)
	case StatSight:
		return ai.IncreaseSightRadius(e, 0)
	}
	return fmt.Errorf("%s: %q: %w", e.Name, stat, ErrUnknownStat)
}

// RandomStatGainerCapability spends every stat point on a random option
// whenever its entity gains a level.
func RandomStatGainerCapability(src rng.Source) *entity.Capability {
	return &entity.Capability{
		Name:  RandomStatGainer,
		Group: entity.GroupStatGainer,
		Listeners: map[entity.Event]entity.Listener{
			entity.OnGainLevel: func(ctx context.Context, self, _ *entity.Entity) error {
				opts := StatOptions(self)
				if len(opts) == 0 {
					return nil
				}
				for {
					points, err := StatPoints(self)
					if err != nil {
						return err
					}
					if points <= 0 {
						return nil
					}
					if err := SpendStatPoint(ctx, self, rng.Pick(src, opts)); err != nil {
						return err
					}
				}
			},
		},
	}
}

// PlayerStatGainerCapability hands level gains to prompt so a human can
// choose where the points go.
func PlayerStatGainerCapability(prompt StatPrompter) *entity.Capability {
	return &entity.Capability{
		Name:  PlayerStatGainer,
		Group: entity.GroupStatGainer,
		Listeners: map[entity.Event]entity.Listener{
			entity.OnGainLevel: func(ctx context.Context, self, _ *entity.Entity) error {
				if prompt != nil {
					prompt.StatAllocation(self)
				}
				return nil
			},
		},
	}
}
