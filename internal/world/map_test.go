package world

import (
	"context"
	"testing"

	"github.com/samdwyer/deepcavern/internal/entity"
)

type recordingScheduler struct {
	added, removed []*entity.Entity
}

func (s *recordingScheduler) Add(e *entity.Entity)    { s.added = append(s.added, e) }
func (s *recordingScheduler) Remove(e *entity.Entity) { s.removed = append(s.removed, e) }

func newActor(name string, human bool) *entity.Entity {
	e := entity.New(name, 'a')
	_ = entity.Attach(e, &entity.Capability{
		Name:            name + "Actor",
		Group:           entity.GroupActor,
		HumanControlled: human,
		Act: func(ctx context.Context, e *entity.Entity) (entity.TurnResult, error) {
			return entity.TurnDone, nil
		},
	}, nil)
	return e
}

func testMap() *Map {
	top := levelFromRows(
		"######",
		"#....#",
		"#....#",
		"######",
	)
	bottom := levelFromRows(
		"######",
		"#....#",
		"#..~.#",
		"######",
	)
	return NewMap(top, bottom)
}

func TestMapAddRemoveEntity(t *testing.T) {
	m := testMap()
	sched := &recordingScheduler{}
	m.SetScheduler(sched)

	player := newActor("player", true)
	player.SetPosition(1, 1, 0)
	if err := m.AddEntity(player); err != nil {
		t.Fatalf("AddEntity failed: %v", err)
	}
	if m.Player() != player {
		t.Error("Expected human-controlled entity to become the player")
	}
	if player.Map != m {
		t.Error("Expected entity map reference to be set")
	}

	rock := entity.New("rock", '*')
	rock.SetPosition(1, 1, 0)
	if err := m.AddEntity(rock); err == nil {
		t.Error("Expected error adding to an occupied cell")
	}

	outside := entity.New("ghost", 'g')
	outside.SetPosition(10, 10, 0)
	if err := m.AddEntity(outside); err == nil {
		t.Error("Expected error adding out of bounds")
	}

	m.RemoveEntity(player)
	if m.EntityAt(1, 1, 0) != nil {
		t.Error("Expected cell to be empty after removal")
	}
	if len(sched.added) != 1 || len(sched.removed) != 1 {
		t.Errorf("Expected one scheduler add and remove, got %d/%d", len(sched.added), len(sched.removed))
	}
}

func TestMapMoveEntity(t *testing.T) {
	m := testMap()
	e := entity.New("bat", 'b')
	e.SetPosition(1, 1, 0)
	if err := m.AddEntity(e); err != nil {
		t.Fatalf("AddEntity failed: %v", err)
	}

	m.MoveEntity(e, 2, 2, 1)
	if m.EntityAt(1, 1, 0) != nil {
		t.Error("Expected old cell to be cleared")
	}
	if m.EntityAt(2, 2, 1) != e {
		t.Error("Expected entity at new cell")
	}
	if e.Z != 1 {
		t.Errorf("Expected level 1, got %d", e.Z)
	}
}

func TestMapWalkability(t *testing.T) {
	m := testMap()
	tests := []struct {
		name       string
		x, y, z    int
		walkable   bool
		emptyFloor bool
	}{
		{"floor", 1, 1, 0, true, true},
		{"wall", 0, 0, 0, false, false},
		{"water", 3, 2, 1, false, false},
		{"off map", 1, 1, 5, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.IsWalkable(tt.x, tt.y, tt.z); got != tt.walkable {
				t.Errorf("IsWalkable = %v, want %v", got, tt.walkable)
			}
			if got := m.IsEmptyFloor(tt.x, tt.y, tt.z); got != tt.emptyFloor {
				t.Errorf("IsEmptyFloor = %v, want %v", got, tt.emptyFloor)
			}
		})
	}
}

func TestMapItems(t *testing.T) {
	m := testMap()
	apple := entity.New("apple", '%')
	rock := entity.New("rock", '*')
	m.AddItem(2, 1, 0, apple)
	m.AddItem(2, 1, 0, rock)

	items := m.ItemsAt(2, 1, 0)
	if len(items) != 2 || items[0] != apple {
		t.Fatalf("Expected [apple rock], got %v", items)
	}

	items[0] = nil
	if m.ItemsAt(2, 1, 0)[0] != apple {
		t.Error("Expected ItemsAt to return a copy")
	}

	m.SetItemsAt(2, 1, 0, []*entity.Entity{rock})
	if got := m.ItemsAt(2, 1, 0); len(got) != 1 || got[0] != rock {
		t.Errorf("Expected [rock], got %v", got)
	}
	m.SetItemsAt(2, 1, 0, nil)
	if got := m.ItemsAt(2, 1, 0); got != nil {
		t.Errorf("Expected no items, got %v", got)
	}
}

func TestMapStairs(t *testing.T) {
	m := testMap()
	if err := m.LinkStairs(entity.Point{X: 4, Y: 1}, 0, entity.Point{X: 1, Y: 1}); err != nil {
		t.Fatalf("LinkStairs failed: %v", err)
	}

	dest, z, ok := m.StairsAt(4, 1, 0)
	if !ok || z != 1 || dest != (entity.Point{X: 1, Y: 1}) {
		t.Errorf("Expected stairs down to (1,1,1), got %v %d %v", dest, z, ok)
	}
	back, z, ok := m.StairsAt(1, 1, 1)
	if !ok || z != 0 || back != (entity.Point{X: 4, Y: 1}) {
		t.Errorf("Expected stairs up to (4,1,0), got %v %d %v", back, z, ok)
	}
	if m.Tile(4, 1, 0) != TileStairsDown || m.Tile(1, 1, 1) != TileStairsUp {
		t.Error("Expected stair tiles to be placed")
	}
	if err := m.LinkStairs(entity.Point{}, 1, entity.Point{}); err == nil {
		t.Error("Expected error linking past the last level")
	}
}

func TestEntitiesWithinRadius(t *testing.T) {
	m := testMap()
	near := entity.New("near", 'n')
	near.SetPosition(2, 1, 0)
	far := entity.New("far", 'f')
	far.SetPosition(4, 2, 0)
	other := entity.New("other", 'o')
	other.SetPosition(1, 1, 1)
	for _, e := range []*entity.Entity{near, far, other} {
		if err := m.AddEntity(e); err != nil {
			t.Fatalf("AddEntity failed: %v", err)
		}
	}

	got := m.EntitiesWithinRadius(1, 1, 0, 1)
	if len(got) != 1 || got[0] != near {
		t.Errorf("Expected only near, got %v", got)
	}
	if got := m.EntitiesWithinRadius(1, 1, 0, 5); len(got) != 2 {
		t.Errorf("Expected 2 entities on level 0, got %v", got)
	}
}
