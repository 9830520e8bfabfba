package game

import (
	"context"

	"github.com/samdwyer/deepcavern/internal/entity"
	"github.com/samdwyer/deepcavern/internal/narration"
	"github.com/samdwyer/deepcavern/internal/survival"
)

// PlayerActor is the human-controlled actor capability.
const PlayerActor = "PlayerActor"

// playerActor returns the actor that hands each of the player's turns to
// the viewer and suspends the scheduler until input arrives.
func (g *Game) playerActor() *entity.Capability {
	return &entity.Capability{
		Name:            PlayerActor,
		Group:           entity.GroupActor,
		HumanControlled: true,
		Act: func(ctx context.Context, e *entity.Entity) (entity.TurnResult, error) {
			if e.Alive() {
				if err := survival.Upkeep(ctx, e); err != nil {
					return entity.TurnDone, err
				}
			}
			g.narrator.ProcessTurn(ctx, e)

			if !e.Alive() {
				g.lose(ctx, e)
				return entity.TurnDone, nil
			}

			g.viewer.Refresh(g)
			if err := narration.Clear(e); err != nil {
				return entity.TurnDone, err
			}
			return entity.TurnAwaitInput, nil
		},
	}
}

func (g *Game) lose(ctx context.Context, e *entity.Entity) {
	if g.outcome != Playing {
		return
	}
	g.outcome = Lost
	g.scheduler.End(ctx)
	narration.Send(e, "Press [Enter] to continue!")
	logger().WithField("cause", e.DeathCause()).Info("player died")
	g.viewer.GameOver(g)
}

func (g *Game) bossDefeated(ctx context.Context, boss, killer *entity.Entity) {
	if g.outcome != Playing {
		return
	}
	g.outcome = Won
	g.scheduler.End(ctx)
	if killer != nil {
		narration.Send(killer, "The %s falls! The cavern is silent at last.", boss.Name)
	}
	logger().WithField("boss", boss.Name).Info("boss defeated")
	g.viewer.Victory(g)
}

// StatAllocation opens stat allocation when the player gains a level.
// Nothing is offered once the game is over.
func (g *Game) StatAllocation(e *entity.Entity) {
	if e != g.player || g.outcome != Playing {
		return
	}
	g.allocating = true
	g.viewer.StatAllocation(g)
}
