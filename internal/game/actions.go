package game

import (
	"context"
	"fmt"

	"github.com/samdwyer/deepcavern/internal/action"
	"github.com/samdwyer/deepcavern/internal/progression"
)

// ActionKind is what the player asked to do.
type ActionKind int

const (
	ActMove ActionKind = iota
	ActWait
	ActDescend
	ActAscend
	ActPickup
	ActDrop
	ActEat
	ActWield
	ActWear
	ActUnwield
	ActTakeOff
)

// Action is one player command. DX and DY apply to moves, Slot to item
// commands and Indices to pickups (nil picks up everything).
type Action struct {
	Kind    ActionKind
	DX, DY  int
	Slot    int
	Indices []int
}

// Move returns a move by (dx, dy).
func Move(dx, dy int) Action {
	return Action{Kind: ActMove, DX: dx, DY: dy}
}

// Handle applies a player action. A refused action does not use up the
// turn and redraws the view so its messages show.
func (g *Game) Handle(ctx context.Context, a Action) error {
	if g.outcome != Playing {
		return ErrGameOver
	}
	if g.allocating {
		return ErrAllocating
	}

	before := g.scheduler.Turns()
	err := g.scheduler.Resume(ctx, g.player, func(ctx context.Context) (bool, error) {
		return g.apply(ctx, a)
	})
	if err != nil {
		return err
	}
	if g.outcome == Playing && g.scheduler.Turns() == before {
		g.viewer.Refresh(g)
	}
	return nil
}

func (g *Game) apply(ctx context.Context, a Action) (bool, error) {
	p := g.player
	switch a.Kind {
	case ActMove:
		return action.TryMove(ctx, p, p.X+a.DX, p.Y+a.DY, p.Z)
	case ActWait:
		return true, nil
	case ActDescend:
		return action.TryMove(ctx, p, p.X, p.Y, p.Z+1)
	case ActAscend:
		return action.TryMove(ctx, p, p.X, p.Y, p.Z-1)
	case ActPickup:
		return action.Pickup(ctx, p, a.Indices)
	case ActDrop:
		return action.Drop(ctx, p, a.Slot)
	case ActEat:
		return action.Eat(ctx, p, a.Slot)
	case ActWield:
		return action.Wield(ctx, p, a.Slot)
	case ActWear:
		return action.Wear(ctx, p, a.Slot)
	case ActUnwield:
		return action.Unwield(ctx, p)
	case ActTakeOff:
		return action.TakeOff(ctx, p)
	default:
		return false, fmt.Errorf("unknown action %d", a.Kind)
	}
}

// AllocateStat spends one stat point while allocation is open. It never
// uses up a turn. Allocation closes once every point is spent.
func (g *Game) AllocateStat(ctx context.Context, stat progression.Stat) error {
	if !g.allocating {
		return ErrNotAllocating
	}
	if err := progression.SpendStatPoint(ctx, g.player, stat); err != nil {
		return err
	}
	points, err := progression.StatPoints(g.player)
	if err != nil {
		return err
	}
	if points == 0 {
		g.allocating = false
	}
	g.viewer.Refresh(g)
	return nil
}
