// Package action implements the moves shared by player input and AI:
// walking, attacking by bumping, taking stairs and handling items.
package action

import (
	"context"
	"fmt"

	"github.com/samdwyer/deepcavern/internal/combat"
	"github.com/samdwyer/deepcavern/internal/entity"
	"github.com/samdwyer/deepcavern/internal/inventory"
	"github.com/samdwyer/deepcavern/internal/narration"
)

// TryMove moves e toward (x, y, z). A different z takes the staircase
// under e. An occupied cell is attacked when e can attack and either side
// is human-controlled. It reports whether the move used e's turn.
func TryMove(ctx context.Context, e *entity.Entity, x, y, z int) (bool, error) {
	m := e.Map
	if m == nil {
		return false, fmt.Errorf("move %s: not on a map", e.Name)
	}

	switch {
	case z < e.Z:
		return takeStairs(e, z, "up", "You ascend to level %d!")
	case z > e.Z:
		return takeStairs(e, z, "down", "You descend to level %d!")
	}

	if target := m.EntityAt(x, y, z); target != nil {
		if target == e {
			return false, nil
		}
		if e.Has(combat.Attacker) && (e.HumanControlled() || target.HumanControlled()) {
			if _, err := combat.Attack(ctx, e, target); err != nil {
				return false, err
			}
			return true, nil
		}
		return false, nil
	}

	if !m.IsWalkable(x, y, z) {
		return false, nil
	}
	m.MoveEntity(e, x, y, z)
	if e.HumanControlled() {
		describeFloor(e)
	}
	return true, nil
}

func takeStairs(e *entity.Entity, z int, dir, arrive string) (bool, error) {
	m := e.Map
	dest, destZ, ok := m.StairsAt(e.X, e.Y, e.Z)
	if !ok || destZ != z {
		narration.Send(e, "You can't go %s here!", dir)
		return false, nil
	}
	if other := m.EntityAt(dest.X, dest.Y, destZ); other != nil && other != e {
		narration.Send(e, "The %s blocks the stairs.", other.Name)
		return false, nil
	}
	m.MoveEntity(e, dest.X, dest.Y, destZ)
	narration.Send(e, arrive, destZ+1)
	return true, nil
}

func describeFloor(e *entity.Entity) {
	items := e.Map.ItemsAt(e.X, e.Y, e.Z)
	switch len(items) {
	case 0:
	case 1:
		narration.Send(e, "You see %s.", inventory.Describe(items[0]))
	default:
		narration.Send(e, "There are several objects here.")
	}
}
