// Package progression tracks experience and levels and turns level gains
// into stat increases.
package progression

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/deepcavern/internal/combat"
	"github.com/samdwyer/deepcavern/internal/entity"
	"github.com/samdwyer/deepcavern/internal/logging"
	"github.com/samdwyer/deepcavern/internal/narration"
	"github.com/samdwyer/deepcavern/internal/telemetry"
)

// ExperienceGainer is the capability that lets an entity level up.
const ExperienceGainer = "ExperienceGainer"

var (
	ErrNoStatPoints = errors.New("no stat points to spend")
	ErrUnknownStat  = errors.New("stat not available")
)

type record struct {
	level              int
	experience         int
	statPointsPerLevel int
	statPoints         int
}

// ExperienceGainerCapability returns the ExperienceGainer capability. Every
// kill awards experience based on how tough the victim was.
func ExperienceGainerCapability() *entity.Capability {
	return &entity.Capability{
		Name: ExperienceGainer,
		Init: func(e *entity.Entity, p entity.Params) (any, error) {
			return &record{
				level:              max(1, p.Int("level", 1)),
				experience:         max(0, p.Int("experience", 0)),
				statPointsPerLevel: max(1, p.Int("statPointsPerLevel", 1)),
			}, nil
		},
		Listeners: map[entity.Event]entity.Listener{
			entity.OnKill: func(ctx context.Context, self, victim *entity.Entity) error {
				award, err := KillAward(self, victim)
				if err != nil {
					return err
				}
				if award <= 0 {
					return nil
				}
				return GiveExperience(ctx, self, award)
			},
		},
	}
}

func recordOf(e *entity.Entity) (*record, error) {
	return entity.State[*record](e, ExperienceGainer)
}

// Level returns e's current level.
func Level(e *entity.Entity) (int, error) {
	r, err := recordOf(e)
	if err != nil {
		return 0, err
	}
	return r.level, nil
}

// Experience returns e's cumulative experience.
func Experience(e *entity.Entity) (int, error) {
	r, err := recordOf(e)
	if err != nil {
		return 0, err
	}
	return r.experience, nil
}

// NextLevelExperience returns the cumulative experience needed to leave the
// current level: level² × 10.
func NextLevelExperience(e *entity.Entity) (int, error) {
	r, err := recordOf(e)
	if err != nil {
		return 0, err
	}
	return r.threshold(), nil
}

func (r *record) threshold() int {
	return r.level * r.level * 10
}

// StatPoints returns the unspent stat points of e.
func StatPoints(e *entity.Entity) (int, error) {
	r, err := recordOf(e)
	if err != nil {
		return 0, err
	}
	return r.statPoints, nil
}

// GiveExperience adds points to e, crossing as many level thresholds as the
// points allow. If at least one level was gained onGainLevel is raised once.
func GiveExperience(ctx context.Context, e *entity.Entity, points int) error {
	r, err := recordOf(e)
	if err != nil {
		return err
	}
	if points <= 0 {
		return nil
	}

	gained := 0
	for points > 0 {
		if r.experience+points < r.threshold() {
			r.experience += points
			break
		}
		used := r.threshold() - r.experience
		points -= used
		r.experience += used
		r.level++
		r.statPoints += r.statPointsPerLevel
		gained++
	}
	if gained == 0 {
		return nil
	}

	ctx, span := telemetry.Tracer("progression").Start(ctx, "progression.level_up")
	defer span.End()
	span.SetAttributes(
		attribute.String("progression.entity", e.Name),
		attribute.Int("progression.level", r.level),
		attribute.Int("progression.levels_gained", gained),
	)
	logger().WithFields(logrus.Fields{
		"entity": e.Name,
		"level":  r.level,
		"gained": gained,
	}).Debug("level up")

	if e.HumanControlled() {
		narration.Send(e, "You advance to level %d.", r.level)
	}
	if err := e.Raise(ctx, entity.OnGainLevel, nil); err != nil {
		logger().WithError(err).WithField("entity", e.Name).Warn("listener failed")
	}
	return nil
}

// KillAward is the experience killer earns for victim: the victim's max HP
// and defense, plus its attack if it has one, less three points for every
// level the killer is above a victim that also levels.
func KillAward(killer, victim *entity.Entity) (int, error) {
	maxHP, err := combat.MaxHP(victim)
	if err != nil {
		return 0, fmt.Errorf("award for %s: %w", victim.Name, err)
	}
	def, err := combat.DefenseValue(victim)
	if err != nil {
		return 0, fmt.Errorf("award for %s: %w", victim.Name, err)
	}
	award := maxHP + def
	if victim.Has(combat.Attacker) {
		atk, err := combat.AttackValue(victim)
		if err != nil {
			return 0, err
		}
		award += atk
	}
	if victim.Has(ExperienceGainer) {
		kl, err := Level(killer)
		if err != nil {
			return 0, err
		}
		vl, err := Level(victim)
		if err != nil {
			return 0, err
		}
		award -= (kl - vl) * 3
	}
	return award, nil
}

func logger() *logrus.Entry {
	return logging.For("progression")
}
