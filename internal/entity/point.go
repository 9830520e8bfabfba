package entity

import "github.com/zyedidia/generic/mapset"

// Point is a cell on a single depth level.
type Point struct {
	X, Y int
}

// Manhattan returns the 4-directional distance between two points.
func (p Point) Manhattan(o Point) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Map is the level collaborator an entity lives on. Entities never own the
// map; the map owns their positions.
type Map interface {
	IsWalkable(x, y, z int) bool
	IsEmptyFloor(x, y, z int) bool
	EntityAt(x, y, z int) *Entity
	ItemsAt(x, y, z int) []*Entity
	SetItemsAt(x, y, z int, items []*Entity)
	AddItem(x, y, z int, item *Entity)
	AddEntity(e *Entity) error
	RemoveEntity(e *Entity)
	MoveEntity(e *Entity, x, y, z int)
	EntitiesWithinRadius(x, y, z, radius int) []*Entity
	// FOV returns the cells visible from (x, y) on level z.
	FOV(x, y, z, radius int) mapset.Set[Point]
	// StairsAt returns the destination of a staircase at (x, y, z), if any.
	StairsAt(x, y, z int) (dest Point, destZ int, ok bool)
	Player() *Entity
}
