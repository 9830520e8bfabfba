package ai

import (
	"context"
	"fmt"

	"github.com/samdwyer/deepcavern/internal/combat"
	"github.com/samdwyer/deepcavern/internal/entity"
	"github.com/samdwyer/deepcavern/internal/narration"
	"github.com/samdwyer/deepcavern/internal/rng"
	"github.com/samdwyer/deepcavern/internal/survival"
)

// Actor capability names.
const (
	TaskActor      = "TaskActor"
	GiantBossActor = "GiantBossActor"
	FungusActor    = "FungusActor"
)

// Boss task names.
const (
	TaskGrowArm    = "growArm"
	TaskSpawnSlime = "spawnSlime"
)

// BossTasks is the fixed task list of the giant boss.
var BossTasks = []string{TaskGrowArm, TaskSpawnSlime, TaskHunt, TaskWander}

// Spawner creates creatures from templates.
type Spawner interface {
	CreateCreature(name string) (*entity.Entity, error)
}

// DefeatFunc is called when a boss dies.
type DefeatFunc func(ctx context.Context, boss, killer *entity.Entity)

type taskList struct {
	tasks    []string
	behavior Behavior
}

// initTasks reads the task list from params and checks that b knows every task.
func initTasks(p entity.Params, b Behavior) (*taskList, error) {
	tasks := p.Strings("tasks", []string{TaskWander})
	for _, task := range tasks {
		if !b.Recognizes(task) {
			return nil, fmt.Errorf("task %q: %w", task, ErrUnknownTask)
		}
	}
	return &taskList{tasks: tasks, behavior: b}, nil
}

// TaskActorCapability returns the generic AI actor driven by b.
func TaskActorCapability(b Behavior) *entity.Capability {
	return &entity.Capability{
		Name:  TaskActor,
		Group: entity.GroupActor,
		Init: func(e *entity.Entity, p entity.Params) (any, error) {
			return initTasks(p, b)
		},
		Act: func(ctx context.Context, e *entity.Entity) (entity.TurnResult, error) {
			tl, err := entity.State[*taskList](e, TaskActor)
			if err != nil {
				return entity.TurnDone, err
			}
			return actTasks(ctx, e, tl)
		},
	}
}

// Tasks returns the task list of an AI actor.
func Tasks(e *entity.Entity) ([]string, error) {
	if st, err := entity.State[*boss](e, GiantBossActor); err == nil {
		return append([]string(nil), st.tasks...), nil
	}
	tl, err := entity.State[*taskList](e, TaskActor)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), tl.tasks...), nil
}

func actTasks(ctx context.Context, e *entity.Entity, tl *taskList) (entity.TurnResult, error) {
	if err := survival.Upkeep(ctx, e); err != nil {
		return entity.TurnDone, err
	}
	if !e.Alive() {
		return entity.TurnDone, nil
	}
	_, err := ChooseTask(ctx, e, tl.tasks, tl.behavior)
	return entity.TurnDone, err
}

// boss specializes the task list with a once-only arm growth.
type boss struct {
	*taskList
	grownArm bool
}

// Boss extends a base behavior with growArm and spawnSlime and hands every
// other task to the base.
type Boss struct {
	Base    Behavior
	Src     rng.Source
	Spawner Spawner
}

// Recognizes reports the boss tasks and anything the base knows.
func (b Boss) Recognizes(task string) bool {
	return task == TaskGrowArm || task == TaskSpawnSlime || b.Base.Recognizes(task)
}

// CanDo grows an arm once at 20 HP or less and spawns a slime on about one
// turn in ten.
func (b Boss) CanDo(ctx context.Context, e *entity.Entity, task string) (bool, error) {
	switch task {
	case TaskGrowArm:
		st, err := entity.State[*boss](e, GiantBossActor)
		if err != nil {
			return false, err
		}
		hp, err := combat.HP(e)
		if err != nil {
			return false, err
		}
		return hp <= 20 && !st.grownArm, nil
	case TaskSpawnSlime:
		return rng.Percent(b.Src, 10), nil
	default:
		return b.Base.CanDo(ctx, e, task)
	}
}

// Do runs a boss task or delegates to the base.
func (b Boss) Do(ctx context.Context, e *entity.Entity, task string) error {
	switch task {
	case TaskGrowArm:
		st, err := entity.State[*boss](e, GiantBossActor)
		if err != nil {
			return err
		}
		st.grownArm = true
		if err := combat.IncreaseAttackValue(e, 5); err != nil {
			return err
		}
		narration.SendNearby(e.Map, e.X, e.Y, e.Z, "An extra tentacle erupts on the monster!")
		return nil
	case TaskSpawnSlime:
		x, y := e.X+rng.Offset(b.Src), e.Y+rng.Offset(b.Src)
		if e.Map == nil || !e.Map.IsEmptyFloor(x, y, e.Z) {
			return nil
		}
		slime, err := b.Spawner.CreateCreature("slime")
		if err != nil {
			return err
		}
		slime.SetPosition(x, y, e.Z)
		if err := e.Map.AddEntity(slime); err != nil {
			return err
		}
		narration.SendNearby(e.Map, e.X, e.Y, e.Z, "A Formless Spawn crawls from a hole nearby to fight!")
		return nil
	default:
		return b.Base.Do(ctx, e, task)
	}
}

// GiantBossActorCapability returns the boss actor. Its task list is fixed;
// onDefeat runs when it dies.
func GiantBossActorCapability(b Boss, onDefeat DefeatFunc) *entity.Capability {
	return &entity.Capability{
		Name:  GiantBossActor,
		Group: entity.GroupActor,
		Init: func(e *entity.Entity, p entity.Params) (any, error) {
			tl, err := initTasks(p.Merge(entity.Params{"tasks": BossTasks}), b)
			if err != nil {
				return nil, err
			}
			return &boss{taskList: tl}, nil
		},
		Act: func(ctx context.Context, e *entity.Entity) (entity.TurnResult, error) {
			st, err := entity.State[*boss](e, GiantBossActor)
			if err != nil {
				return entity.TurnDone, err
			}
			return actTasks(ctx, e, st.taskList)
		},
		Listeners: map[entity.Event]entity.Listener{
			entity.OnDeath: func(ctx context.Context, self, killer *entity.Entity) error {
				if onDefeat != nil {
					onDefeat(ctx, self, killer)
				}
				return nil
			},
		},
	}
}

type fungus struct {
	growthsRemaining int
}

// FungusActorCapability returns the actor of a fungus, which spreads to an
// adjacent empty floor on about one turn in a hundred, up to three times.
func FungusActorCapability(src rng.Source, spawner Spawner) *entity.Capability {
	return &entity.Capability{
		Name:  FungusActor,
		Group: entity.GroupActor,
		Init: func(e *entity.Entity, p entity.Params) (any, error) {
			return &fungus{growthsRemaining: p.Int("growths", 3)}, nil
		},
		Act: func(ctx context.Context, e *entity.Entity) (entity.TurnResult, error) {
			f, err := entity.State[*fungus](e, FungusActor)
			if err != nil {
				return entity.TurnDone, err
			}
			if err := survival.Upkeep(ctx, e); err != nil || !e.Alive() {
				return entity.TurnDone, err
			}
			if f.growthsRemaining <= 0 || src.Uniform() > 0.01 {
				return entity.TurnDone, nil
			}
			dx, dy := rng.Offset(src), rng.Offset(src)
			if dx == 0 && dy == 0 {
				return entity.TurnDone, nil
			}
			x, y := e.X+dx, e.Y+dy
			if e.Map == nil || !e.Map.IsEmptyFloor(x, y, e.Z) {
				return entity.TurnDone, nil
			}
			child, err := spawner.CreateCreature("fungus")
			if err != nil {
				return entity.TurnDone, err
			}
			child.SetPosition(x, y, e.Z)
			if err := e.Map.AddEntity(child); err != nil {
				return entity.TurnDone, err
			}
			f.growthsRemaining--
			narration.SendNearby(e.Map, x, y, e.Z, "The fungus is spreading!")
			return entity.TurnDone, nil
		},
	}
}
