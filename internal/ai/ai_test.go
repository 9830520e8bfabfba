package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/samdwyer/deepcavern/internal/combat"
	"github.com/samdwyer/deepcavern/internal/entity"
	"github.com/samdwyer/deepcavern/internal/narration"
	"github.com/samdwyer/deepcavern/internal/rng"
	"github.com/samdwyer/deepcavern/internal/world"
)

func mustAttach(t *testing.T, e *entity.Entity, c *entity.Capability, p entity.Params) {
	t.Helper()
	if err := entity.Attach(e, c, p); err != nil {
		t.Fatalf("Attach %s failed: %v", c.Name, err)
	}
}

// scriptedBehavior records which task bodies ran.
type scriptedBehavior struct {
	eligible map[string]bool
	ran      []string
}

func (b *scriptedBehavior) Recognizes(task string) bool {
	_, ok := b.eligible[task]
	return ok
}

func (b *scriptedBehavior) CanDo(ctx context.Context, e *entity.Entity, task string) (bool, error) {
	return b.eligible[task], nil
}

func (b *scriptedBehavior) Do(ctx context.Context, e *entity.Entity, task string) error {
	b.ran = append(b.ran, task)
	return nil
}

// creatureSpawner builds bare creatures for spawn tasks.
type creatureSpawner struct {
	created []string
}

func (s *creatureSpawner) CreateCreature(name string) (*entity.Entity, error) {
	s.created = append(s.created, name)
	return entity.New(name, 's'), nil
}

func newPlayer(t *testing.T) *entity.Entity {
	t.Helper()
	p := entity.New("player", '@')
	mustAttach(t, p, &entity.Capability{Name: "PlayerActor", Group: entity.GroupActor, HumanControlled: true}, nil)
	mustAttach(t, p, combat.DestructibleCapability(), entity.Params{"maxHp": 30})
	mustAttach(t, p, narration.Capability(), nil)
	return p
}

func newHunter(t *testing.T, src rng.Source) *entity.Entity {
	t.Helper()
	h := entity.New("jackal", 'j')
	mustAttach(t, h, TaskActorCapability(Base{Src: src}), entity.Params{"tasks": []any{"hunt", "wander"}})
	mustAttach(t, h, SightCapability(), entity.Params{"sightRadius": 8})
	mustAttach(t, h, combat.AttackerCapability(src), entity.Params{"attackValue": 2})
	mustAttach(t, h, combat.DestructibleCapability(), nil)
	return h
}

func room(t *testing.T, rows ...string) *world.Map {
	t.Helper()
	return world.NewMap(world.FromRows(rng.NewSequence(0.5), rows...))
}

func place(t *testing.T, m *world.Map, e *entity.Entity, x, y int) {
	t.Helper()
	e.SetPosition(x, y, 0)
	if err := m.AddEntity(e); err != nil {
		t.Fatalf("AddEntity failed: %v", err)
	}
}

func TestChooseTaskFirstEligibleWins(t *testing.T) {
	tests := []struct {
		name     string
		eligible map[string]bool
		want     []string
	}{
		{"both eligible", map[string]bool{"A": true, "B": true}, []string{"A"}},
		{"first ineligible", map[string]bool{"A": false, "B": true}, []string{"B"}},
		{"none eligible", map[string]bool{"A": false, "B": false}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &scriptedBehavior{eligible: tt.eligible}
			_, err := ChooseTask(context.Background(), entity.New("x", 'x'), []string{"A", "B"}, b)
			if err != nil {
				t.Fatal(err)
			}
			if len(b.ran) != len(tt.want) || (len(tt.want) > 0 && b.ran[0] != tt.want[0]) {
				t.Errorf("Expected %v to run, got %v", tt.want, b.ran)
			}
		})
	}
}

func TestUnknownTask(t *testing.T) {
	b := &scriptedBehavior{eligible: map[string]bool{"A": false}}
	_, err := ChooseTask(context.Background(), entity.New("x", 'x'), []string{"A", "dance"}, b)
	if !errors.Is(err, ErrUnknownTask) {
		t.Errorf("Expected ErrUnknownTask from ChooseTask, got %v", err)
	}

	e := entity.New("x", 'x')
	err = entity.Attach(e, TaskActorCapability(Base{}), entity.Params{"tasks": []any{"hunt", "dance"}})
	if !errors.Is(err, ErrUnknownTask) {
		t.Errorf("Expected ErrUnknownTask from Init, got %v", err)
	}
	if e.IsActor() {
		t.Error("Expected misconfigured actor not to be attached")
	}
}

func TestDefaultTasks(t *testing.T) {
	e := entity.New("bat", 'b')
	mustAttach(t, e, TaskActorCapability(Base{}), nil)
	tasks, err := Tasks(e)
	if err != nil || len(tasks) != 1 || tasks[0] != TaskWander {
		t.Errorf("Expected [wander], got %v %v", tasks, err)
	}
}

func TestCanSee(t *testing.T) {
	m := room(t,
		"##########",
		"#........#",
		"#....#...#",
		"#........#",
		"##########",
	)
	watcher := entity.New("owl", 'o')
	mustAttach(t, watcher, SightCapability(), entity.Params{"sightRadius": 4})
	place(t, m, watcher, 3, 2)

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"in view", 3, 1, true},
		{"behind pillar", 7, 2, false},
		{"out of range", 8, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := entity.New("mouse", 'm')
			place(t, m, target, tt.x, tt.y)
			defer m.RemoveEntity(target)

			got, err := CanSee(watcher, target)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}

	blind := entity.New("worm", 'w')
	if _, err := CanSee(blind, watcher); !errors.Is(err, entity.ErrMissingCapability) {
		t.Errorf("Expected ErrMissingCapability, got %v", err)
	}
}

func TestHuntAttacksWhenAdjacent(t *testing.T) {
	src := rng.NewSequence(0.0)
	m := room(t,
		"######",
		"#....#",
		"######",
	)
	player := newPlayer(t)
	hunter := newHunter(t, src)
	place(t, m, player, 1, 1)
	place(t, m, hunter, 2, 1)

	if _, err := hunter.Act(context.Background()); err != nil {
		t.Fatal(err)
	}
	if hp, _ := combat.HP(player); hp != 29 {
		t.Errorf("Expected player HP 29, got %d", hp)
	}
	if hunter.Point() != (entity.Point{X: 2, Y: 1}) {
		t.Error("Expected hunter to stay put while attacking")
	}
}

func TestHuntStepsAlongPath(t *testing.T) {
	m := room(t,
		"#######",
		"#.....#",
		"#.###.#",
		"#.....#",
		"#######",
	)
	player := newPlayer(t)
	hunter := newHunter(t, rng.NewSequence(0.0))
	place(t, m, player, 1, 3)
	place(t, m, hunter, 5, 3)

	if _, err := hunter.Act(context.Background()); err != nil {
		t.Fatal(err)
	}
	if hunter.Point() != (entity.Point{X: 4, Y: 3}) {
		t.Errorf("Expected one step toward the player, got %v", hunter.Point())
	}
}

func TestHuntBlockedByOthers(t *testing.T) {
	m := room(t,
		"#######",
		"#.....#",
		"#######",
	)
	player := newPlayer(t)
	hunter := newHunter(t, rng.NewSequence(0.0))
	rock := entity.New("boulder", '0')
	place(t, m, player, 1, 1)
	place(t, m, rock, 3, 1)
	place(t, m, hunter, 5, 1)

	task, err := ChooseTask(context.Background(), hunter, []string{TaskHunt}, Base{Src: rng.NewSequence(0.0)})
	if err != nil || task != TaskHunt {
		t.Fatalf("Expected hunt to run, got %q %v", task, err)
	}
	if hunter.Point() != (entity.Point{X: 5, Y: 1}) {
		t.Errorf("Expected hunter stuck behind the boulder, got %v", hunter.Point())
	}
}

func TestWander(t *testing.T) {
	tests := []struct {
		name  string
		rolls []float64
		want  entity.Point
	}{
		{"east", []float64{0.9, 0.9}, entity.Point{X: 3, Y: 2}},
		{"west", []float64{0.1, 0.9}, entity.Point{X: 1, Y: 2}},
		{"south", []float64{0.9, 0.1}, entity.Point{X: 2, Y: 3}},
		{"north into wall", []float64{0.1, 0.1}, entity.Point{X: 2, Y: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := room(t,
				"#####",
				"#####",
				"#...#",
				"#...#",
				"#####",
			)
			bat := entity.New("bat", 'b')
			place(t, m, bat, 2, 2)

			b := Base{Src: rng.NewSequence(tt.rolls...)}
			if err := b.Do(context.Background(), bat, TaskWander); err != nil {
				t.Fatal(err)
			}
			if bat.Point() != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, bat.Point())
			}
		})
	}
}

func newBoss(t *testing.T, src rng.Source, spawner Spawner, defeated *int) *entity.Entity {
	t.Helper()
	b := Boss{Base: Base{Src: src}, Src: src, Spawner: spawner}
	e := entity.New("Shub-Niggurath", 'S')
	mustAttach(t, e, GiantBossActorCapability(b, func(ctx context.Context, boss, killer *entity.Entity) {
		*defeated++
	}), entity.Params{"tasks": []any{"wander"}})
	mustAttach(t, e, combat.AttackerCapability(src), entity.Params{"attackValue": 4})
	mustAttach(t, e, combat.DestructibleCapability(), entity.Params{"maxHp": 50})
	return e
}

func TestBossTasksFixed(t *testing.T) {
	defeated := 0
	e := newBoss(t, rng.NewSequence(0.5), &creatureSpawner{}, &defeated)
	tasks, _ := Tasks(e)
	if len(tasks) != 4 || tasks[0] != TaskGrowArm || tasks[3] != TaskWander {
		t.Errorf("Expected boss task list, got %v", tasks)
	}
}

func TestBossGrowsArmOnce(t *testing.T) {
	src := rng.NewSequence(0.99)
	defeated := 0
	m := room(t,
		"#####",
		"#...#",
		"#####",
	)
	e := newBoss(t, src, &creatureSpawner{}, &defeated)
	place(t, m, e, 2, 1)
	_ = combat.SetHP(e, 20)

	tasks, _ := Tasks(e)
	task, err := ChooseTask(context.Background(), e, tasks, Boss{Base: Base{Src: src}, Src: src})
	if err != nil || task != TaskGrowArm {
		t.Fatalf("Expected growArm, got %q %v", task, err)
	}
	if atk, _ := combat.AttackValue(e); atk != 9 {
		t.Errorf("Expected attack 9 after growing an arm, got %d", atk)
	}

	task, _ = ChooseTask(context.Background(), e, tasks, Boss{Base: Base{Src: src}, Src: src})
	if task == TaskGrowArm {
		t.Error("Expected growArm to run only once")
	}
}

func TestBossSpawnsSlime(t *testing.T) {
	// 0.05 passes the spawn roll; offsets 0.99 -> +1, 0.5 -> 0.
	src := rng.NewSequence(0.05, 0.99, 0.5)
	spawner := &creatureSpawner{}
	defeated := 0
	m := room(t,
		"#####",
		"#...#",
		"#####",
	)
	e := newBoss(t, src, spawner, &defeated)
	place(t, m, e, 2, 1)

	b := Boss{Base: Base{Src: src}, Src: src, Spawner: spawner}
	task, err := ChooseTask(context.Background(), e, BossTasks, b)
	if err != nil || task != TaskSpawnSlime {
		t.Fatalf("Expected spawnSlime, got %q %v", task, err)
	}
	if len(spawner.created) != 1 || spawner.created[0] != "slime" {
		t.Fatalf("Expected a slime, got %v", spawner.created)
	}
	if other := m.EntityAt(3, 1, 0); other == nil || other.Name != "slime" {
		t.Errorf("Expected slime at (3,1), got %v", other)
	}
}

func TestBossDefeat(t *testing.T) {
	src := rng.NewSequence(0.0)
	defeated := 0
	e := newBoss(t, src, &creatureSpawner{}, &defeated)
	hero := entity.New("hero", '@')
	mustAttach(t, hero, combat.AttackerCapability(src), nil)

	if err := combat.TakeDamage(context.Background(), hero, e, 100); err != nil {
		t.Fatal(err)
	}
	if defeated != 1 {
		t.Errorf("Expected defeat callback once, got %d", defeated)
	}
}

func TestFungusSpreads(t *testing.T) {
	tests := []struct {
		name  string
		rolls []float64
		grow  bool
	}{
		{"grows", []float64{0.0, 0.99, 0.5}, true},
		{"roll too high", []float64{0.5}, false},
		{"offset onto itself", []float64{0.0, 0.5, 0.5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spawner := &creatureSpawner{}
			m := room(t,
				"#####",
				"#...#",
				"#####",
			)
			f := entity.New("fungus", 'F')
			mustAttach(t, f, FungusActorCapability(rng.NewSequence(tt.rolls...), spawner), nil)
			place(t, m, f, 2, 1)

			if _, err := f.Act(context.Background()); err != nil {
				t.Fatal(err)
			}
			grew := m.EntityAt(3, 1, 0) != nil
			if grew != tt.grow {
				t.Errorf("Expected grow=%v, got %v", tt.grow, grew)
			}
		})
	}
}
