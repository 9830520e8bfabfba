package world

import (
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/deepcavern/internal/entity"
)

// Scheduler receives actors as they enter and leave the map.
type Scheduler interface {
	Add(e *entity.Entity)
	Remove(e *entity.Entity)
}

type cell struct {
	X, Y, Z int
}

// Map stacks dungeon levels and indexes the entities and items on them.
// It implements entity.Map.
type Map struct {
	levels    []*Dungeon
	entities  map[cell]*entity.Entity
	items     map[cell][]*entity.Entity
	stairs    map[cell]cell
	explored  []mapset.Set[entity.Point]
	player    *entity.Entity
	scheduler Scheduler
}

var _ entity.Map = (*Map)(nil)

// NewMap builds a map over the given levels, top level first.
func NewMap(levels ...*Dungeon) *Map {
	explored := make([]mapset.Set[entity.Point], len(levels))
	for i := range explored {
		explored[i] = mapset.New[entity.Point]()
	}
	return &Map{
		levels:   levels,
		entities: make(map[cell]*entity.Entity),
		items:    make(map[cell][]*entity.Entity),
		stairs:   make(map[cell]cell),
		explored: explored,
	}
}

// SetScheduler attaches the scheduler that tracks actors on this map.
func (m *Map) SetScheduler(s Scheduler) {
	m.scheduler = s
}

// Depth returns the number of levels.
func (m *Map) Depth() int {
	return len(m.levels)
}

// Level returns the dungeon at depth z, or nil.
func (m *Map) Level(z int) *Dungeon {
	if z < 0 || z >= len(m.levels) {
		return nil
	}
	return m.levels[z]
}

// Tile returns the tile at the position; anything off the map is a wall.
func (m *Map) Tile(x, y, z int) Tile {
	lvl := m.Level(z)
	if lvl == nil {
		return TileWall
	}
	return lvl.GetTile(x, y)
}

// IsWalkable reports whether the tile at the position can be walked on.
func (m *Map) IsWalkable(x, y, z int) bool {
	return m.Tile(x, y, z).IsPassable()
}

// IsEmptyFloor reports a plain floor tile with no entity on it.
func (m *Map) IsEmptyFloor(x, y, z int) bool {
	return m.Tile(x, y, z) == TileFloor && m.EntityAt(x, y, z) == nil
}

// EntityAt returns the entity at the position, or nil.
func (m *Map) EntityAt(x, y, z int) *entity.Entity {
	return m.entities[cell{x, y, z}]
}

// ItemsAt returns a copy of the items lying at the position.
func (m *Map) ItemsAt(x, y, z int) []*entity.Entity {
	items := m.items[cell{x, y, z}]
	if len(items) == 0 {
		return nil
	}
	out := make([]*entity.Entity, len(items))
	copy(out, items)
	return out
}

// SetItemsAt replaces the items at the position.
func (m *Map) SetItemsAt(x, y, z int, items []*entity.Entity) {
	c := cell{x, y, z}
	if len(items) == 0 {
		delete(m.items, c)
		return
	}
	stored := make([]*entity.Entity, len(items))
	copy(stored, items)
	m.items[c] = stored
}

// AddItem drops an item on the position.
func (m *Map) AddItem(x, y, z int, item *entity.Entity) {
	c := cell{x, y, z}
	item.SetPosition(x, y, z)
	m.items[c] = append(m.items[c], item)
}

// AddEntity places an entity at its current position. Actors are handed to
// the scheduler; a human-controlled entity becomes the player.
func (m *Map) AddEntity(e *entity.Entity) error {
	lvl := m.Level(e.Z)
	if lvl == nil || e.X < 0 || e.X >= lvl.Width || e.Y < 0 || e.Y >= lvl.Height {
		return fmt.Errorf("add %s at (%d,%d,%d): out of bounds", e.Name, e.X, e.Y, e.Z)
	}
	c := cell{e.X, e.Y, e.Z}
	if other, ok := m.entities[c]; ok && other != e {
		return fmt.Errorf("add %s at (%d,%d,%d): occupied by %s", e.Name, e.X, e.Y, e.Z, other.Name)
	}
	e.Map = m
	m.entities[c] = e
	if e.HumanControlled() {
		m.player = e
	}
	if e.IsActor() && m.scheduler != nil {
		m.scheduler.Add(e)
	}
	return nil
}

// AddEntityAtRandomPosition places e on a random empty floor of level z.
func (m *Map) AddEntityAtRandomPosition(e *entity.Entity, z int) error {
	p, ok := m.RandomEmptyFloor(z)
	if !ok {
		return fmt.Errorf("add %s on level %d: no empty floor", e.Name, z)
	}
	e.SetPosition(p.X, p.Y, z)
	return m.AddEntity(e)
}

// AddItemAtRandomPosition drops an item on a random floor tile of level z.
func (m *Map) AddItemAtRandomPosition(item *entity.Entity, z int) {
	lvl := m.Level(z)
	if lvl == nil {
		return
	}
	p := lvl.RandomFloor()
	m.AddItem(p.X, p.Y, z, item)
}

// RandomEmptyFloor finds an unoccupied floor tile on level z.
func (m *Map) RandomEmptyFloor(z int) (entity.Point, bool) {
	lvl := m.Level(z)
	if lvl == nil {
		return entity.Point{}, false
	}
	for i := 0; i < 1000; i++ {
		p := lvl.RandomFloor()
		if p.X >= 0 && m.IsEmptyFloor(p.X, p.Y, z) {
			return p, true
		}
	}
	return entity.Point{}, false
}

// RemoveEntity takes e off the map and out of the scheduler.
func (m *Map) RemoveEntity(e *entity.Entity) {
	c := cell{e.X, e.Y, e.Z}
	if m.entities[c] == e {
		delete(m.entities, c)
	}
	if m.player == e {
		m.player = nil
	}
	if e.IsActor() && m.scheduler != nil {
		m.scheduler.Remove(e)
	}
}

// MoveEntity relocates a placed entity, keeping the position index current.
func (m *Map) MoveEntity(e *entity.Entity, x, y, z int) {
	old := cell{e.X, e.Y, e.Z}
	if m.entities[old] == e {
		delete(m.entities, old)
	}
	e.SetPosition(x, y, z)
	m.entities[cell{x, y, z}] = e
}

// EntitiesWithinRadius returns entities on level z inside the square of the
// given radius around (x, y).
func (m *Map) EntitiesWithinRadius(x, y, z, radius int) []*entity.Entity {
	var out []*entity.Entity
	for c, e := range m.entities {
		if c.Z == z && c.X >= x-radius && c.X <= x+radius && c.Y >= y-radius && c.Y <= y+radius {
			out = append(out, e)
		}
	}
	sortByPosition(out)
	return out
}

// Entities returns every placed entity ordered by level, row and column.
func (m *Map) Entities() []*entity.Entity {
	out := make([]*entity.Entity, 0, len(m.entities))
	for _, e := range m.entities {
		out = append(out, e)
	}
	sortByPosition(out)
	return out
}

func sortByPosition(es []*entity.Entity) {
	sort.Slice(es, func(i, j int) bool {
		a, b := es[i], es[j]
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
}

// FOV returns the cells visible from (x, y) on level z.
func (m *Map) FOV(x, y, z, radius int) mapset.Set[entity.Point] {
	lvl := m.Level(z)
	if lvl == nil {
		return mapset.New[entity.Point]()
	}
	return lvl.FOV(x, y, radius)
}

// Path finds a 4-directional path on level z.
func (m *Map) Path(z int, from, to entity.Point, passable func(x, y int) bool) []entity.Point {
	lvl := m.Level(z)
	if lvl == nil {
		return nil
	}
	return lvl.FindPath(from, to, passable)
}

// Explore marks cells of level z as seen.
func (m *Map) Explore(z int, cells mapset.Set[entity.Point]) {
	if z < 0 || z >= len(m.explored) {
		return
	}
	cells.Each(func(p entity.Point) {
		m.explored[z].Put(p)
	})
}

// IsExplored reports whether a cell of level z has been seen.
func (m *Map) IsExplored(x, y, z int) bool {
	if z < 0 || z >= len(m.explored) {
		return false
	}
	return m.explored[z].Has(entity.Point{X: x, Y: y})
}

// LinkStairs places a down staircase on level z and an up staircase on
// level z+1 and connects them both ways.
func (m *Map) LinkStairs(down entity.Point, z int, up entity.Point) error {
	if m.Level(z) == nil || m.Level(z+1) == nil {
		return fmt.Errorf("link stairs: no level pair at %d", z)
	}
	m.levels[z].SetTile(down.X, down.Y, TileStairsDown)
	m.levels[z+1].SetTile(up.X, up.Y, TileStairsUp)
	a := cell{down.X, down.Y, z}
	b := cell{up.X, up.Y, z + 1}
	m.stairs[a] = b
	m.stairs[b] = a
	return nil
}

// ConnectLevels links every level to the next with a random staircase pair.
func (m *Map) ConnectLevels() error {
	for z := 0; z+1 < len(m.levels); z++ {
		down, ok := m.RandomEmptyFloor(z)
		if !ok {
			return fmt.Errorf("connect level %d: no floor for stairs", z)
		}
		up, ok := m.RandomEmptyFloor(z + 1)
		if !ok {
			return fmt.Errorf("connect level %d: no floor for stairs", z+1)
		}
		if err := m.LinkStairs(down, z, up); err != nil {
			return err
		}
	}
	return nil
}

// StairsAt returns where the staircase at the position leads.
func (m *Map) StairsAt(x, y, z int) (entity.Point, int, bool) {
	dest, ok := m.stairs[cell{x, y, z}]
	if !ok {
		return entity.Point{}, 0, false
	}
	return entity.Point{X: dest.X, Y: dest.Y}, dest.Z, true
}

// Player returns the human-controlled entity, or nil.
func (m *Map) Player() *entity.Entity {
	return m.player
}
