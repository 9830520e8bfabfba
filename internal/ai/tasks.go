package ai

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/deepcavern/internal/action"
	"github.com/samdwyer/deepcavern/internal/combat"
	"github.com/samdwyer/deepcavern/internal/entity"
	"github.com/samdwyer/deepcavern/internal/rng"
	"github.com/samdwyer/deepcavern/internal/telemetry"
)

// Base task names.
const (
	TaskHunt   = "hunt"
	TaskWander = "wander"
)

// Behavior knows a set of tasks: whether one applies this turn and how to
// carry it out.
type Behavior interface {
	Recognizes(task string) bool
	CanDo(ctx context.Context, e *entity.Entity, task string) (bool, error)
	Do(ctx context.Context, e *entity.Entity, task string) error
}

// Pathfinder finds 4-directional paths on one level. Both ends are
// included in the result; nil means unreachable.
type Pathfinder interface {
	Path(z int, from, to entity.Point, passable func(x, y int) bool) []entity.Point
}

// ChooseTask runs the first eligible task in order and returns its name,
// or "" when none applied. Later tasks are not evaluated once one runs.
func ChooseTask(ctx context.Context, e *entity.Entity, tasks []string, b Behavior) (string, error) {
	ctx, span := telemetry.Tracer("ai").Start(ctx, "ai.task")
	defer span.End()
	span.SetAttributes(attribute.String("ai.entity", e.Name))

	for _, task := range tasks {
		if !b.Recognizes(task) {
			return "", fmt.Errorf("%s: task %q: %w", e.Name, task, ErrUnknownTask)
		}
		ok, err := b.CanDo(ctx, e, task)
		if err != nil {
			return "", err
		}
		if !ok {
			continue
		}
		span.SetAttributes(attribute.String("ai.task", task))
		return task, b.Do(ctx, e, task)
	}
	return "", nil
}

// Base is the behavior every task actor starts from: hunt the player when
// visible, otherwise wander.
type Base struct {
	Src   rng.Source
	Paths Pathfinder // nil means use the entity's map if it can find paths
}

// Recognizes reports hunt and wander.
func (b Base) Recognizes(task string) bool {
	return task == TaskHunt || task == TaskWander
}

// CanDo checks hunt against sight of the player; wander always applies.
func (b Base) CanDo(ctx context.Context, e *entity.Entity, task string) (bool, error) {
	switch task {
	case TaskHunt:
		if !e.Has(Sight) || e.Map == nil {
			return false, nil
		}
		return CanSee(e, e.Map.Player())
	case TaskWander:
		return true, nil
	default:
		return false, fmt.Errorf("task %q: %w", task, ErrUnknownTask)
	}
}

// Do runs hunt or wander.
func (b Base) Do(ctx context.Context, e *entity.Entity, task string) error {
	switch task {
	case TaskHunt:
		return b.hunt(ctx, e)
	case TaskWander:
		return b.wander(ctx, e)
	default:
		return fmt.Errorf("task %q: %w", task, ErrUnknownTask)
	}
}

func (b Base) hunt(ctx context.Context, e *entity.Entity) error {
	m := e.Map
	player := m.Player()
	if player == nil {
		return nil
	}

	if e.Point().Manhattan(player.Point()) == 1 && e.Has(combat.Attacker) {
		_, err := combat.Attack(ctx, e, player)
		return err
	}

	paths := b.Paths
	if paths == nil {
		pf, ok := m.(Pathfinder)
		if !ok {
			return nil
		}
		paths = pf
	}

	z := e.Z
	path := paths.Path(z, e.Point(), player.Point(), func(x, y int) bool {
		if other := m.EntityAt(x, y, z); other != nil && other != player && other != e {
			return false
		}
		return m.IsWalkable(x, y, z)
	})
	if len(path) < 2 {
		return nil
	}
	_, err := action.TryMove(ctx, e, path[1].X, path[1].Y, z)
	return err
}

func (b Base) wander(ctx context.Context, e *entity.Entity) error {
	offset := -1
	if rng.Coin(b.Src) {
		offset = 1
	}
	x, y := e.X, e.Y
	if rng.Coin(b.Src) {
		x += offset
	} else {
		y += offset
	}
	_, err := action.TryMove(ctx, e, x, y, e.Z)
	return err
}
