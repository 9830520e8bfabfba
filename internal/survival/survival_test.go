package survival

import (
	"context"
	"errors"
	"testing"

	"github.com/samdwyer/deepcavern/internal/combat"
	"github.com/samdwyer/deepcavern/internal/entity"
	"github.com/samdwyer/deepcavern/internal/inventory"
	"github.com/samdwyer/deepcavern/internal/narration"
	"github.com/samdwyer/deepcavern/internal/rng"
)

func mustAttach(t *testing.T, e *entity.Entity, c *entity.Capability, p entity.Params) {
	t.Helper()
	if err := entity.Attach(e, c, p); err != nil {
		t.Fatalf("Attach %s failed: %v", c.Name, err)
	}
}

func newEater(t *testing.T, p entity.Params) *entity.Entity {
	t.Helper()
	e := entity.New("hero", '@')
	mustAttach(t, e, FoodConsumerCapability(), p)
	mustAttach(t, e, inventory.HolderCapability(nil), nil)
	mustAttach(t, e, narration.Capability(), nil)
	return e
}

func TestHungerState(t *testing.T) {
	tests := []struct {
		fullness int
		want     string
	}{
		{100, Starving},
		{250, Starving},
		{251, Hungry},
		{500, Hungry},
		{600, NotHungry},
		{750, WellFed},
		{949, WellFed},
		{950, Oversatiated},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			e := newEater(t, entity.Params{"fullness": tt.fullness})
			got, err := HungerState(e)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("fullness %d: expected %s, got %s", tt.fullness, tt.want, got)
			}
		})
	}
}

func TestDefaultFullness(t *testing.T) {
	e := newEater(t, nil)
	cur, maximum, _ := Fullness(e)
	if maximum != 1000 || cur != 500 {
		t.Errorf("Expected 500/1000, got %d/%d", cur, maximum)
	}
}

func TestStarvation(t *testing.T) {
	e := newEater(t, entity.Params{"fullness": 2, "fullnessDepletionRate": 1})
	ctx := context.Background()

	if err := AddTurnHunger(ctx, e); err != nil {
		t.Fatal(err)
	}
	if !e.Alive() {
		t.Fatal("Expected hero to survive the first hungry turn")
	}
	if err := AddTurnHunger(ctx, e); err != nil {
		t.Fatal(err)
	}
	if e.Alive() || e.DeathCause() != combat.CauseStarvation {
		t.Errorf("Expected starvation, got alive=%v cause=%q", e.Alive(), e.DeathCause())
	}
}

func TestGluttonyAndSickness(t *testing.T) {
	ctx := context.Background()

	full := newEater(t, entity.Params{"fullness": 990})
	if err := ModifyFullness(ctx, full, 20); err != nil {
		t.Fatal(err)
	}
	if full.Alive() || full.DeathCause() != combat.CauseGluttony {
		t.Errorf("Expected gluttony, got alive=%v cause=%q", full.Alive(), full.DeathCause())
	}

	sick := newEater(t, nil)
	if err := ModifyFullness(ctx, sick, -20); err != nil {
		t.Fatal(err)
	}
	msgs, _ := narration.Messages(sick)
	if len(msgs) != 1 || msgs[0] != "That item you ate made you sick (lose 20 nutrition)." {
		t.Errorf("Unexpected messages %v", msgs)
	}
}

func TestEat(t *testing.T) {
	ctx := context.Background()
	e := newEater(t, entity.Params{"fullness": 300})

	pie := entity.New("pie", '%')
	mustAttach(t, pie, inventory.EdibleCapability(), entity.Params{"foodValue": 100, "consumptions": 2})
	rock := entity.New("rock", '*')
	_, _ = inventory.AddItem(e, pie)
	_, _ = inventory.AddItem(e, rock)

	if err := Eat(ctx, e, 0); err != nil {
		t.Fatalf("Eat failed: %v", err)
	}
	if cur, _, _ := Fullness(e); cur != 400 {
		t.Errorf("Expected fullness 400, got %d", cur)
	}
	if item, _ := inventory.Item(e, 0); item != pie {
		t.Error("Expected partly eaten pie to stay in the inventory")
	}

	if err := Eat(ctx, e, 0); err != nil {
		t.Fatalf("Eat failed: %v", err)
	}
	if item, _ := inventory.Item(e, 0); item != nil {
		t.Error("Expected finished pie to leave the inventory")
	}
	msgs, _ := narration.Messages(e)
	if len(msgs) != 2 || msgs[1] != "You eat the partly eaten pie." {
		t.Errorf("Unexpected messages %v", msgs)
	}

	if err := Eat(ctx, e, 1); !errors.Is(err, ErrNotEdible) {
		t.Errorf("Expected ErrNotEdible, got %v", err)
	}
	if err := Eat(ctx, e, 0); !errors.Is(err, inventory.ErrEmptySlot) {
		t.Errorf("Expected ErrEmptySlot, got %v", err)
	}
}

func TestUpkeepOrder(t *testing.T) {
	ctx := context.Background()
	e := newEater(t, entity.Params{"fullness": 50, "fullnessDepletionRate": 10})
	mustAttach(t, e, combat.DestructibleCapability(), entity.Params{"maxHp": 20})
	mustAttach(t, e, combat.PoisonableCapability(), nil)

	spider := entity.New("spider", 's')
	mustAttach(t, spider, combat.AttackerCapability(rng.NewSequence(0)), nil)
	_ = combat.ApplyPoison(e, spider, 2, 3)

	if err := Upkeep(ctx, e); err != nil {
		t.Fatal(err)
	}
	cur, _, _ := Fullness(e)
	hp, _ := combat.HP(e)
	if cur != 40 || hp != 17 {
		t.Errorf("Expected fullness 40 and HP 17, got %d and %d", cur, hp)
	}

	msgs, _ := narration.Messages(e)
	if len(msgs) != 1 || msgs[0] != "You take 3 poison damage." {
		t.Errorf("Unexpected messages %v", msgs)
	}
}

func TestUpkeepSkipsPoisonAfterStarving(t *testing.T) {
	ctx := context.Background()
	e := newEater(t, entity.Params{"fullness": 1})
	mustAttach(t, e, combat.DestructibleCapability(), entity.Params{"maxHp": 20})
	mustAttach(t, e, combat.PoisonableCapability(), nil)
	_ = combat.ApplyPoison(e, e, 2, 3)

	if err := Upkeep(ctx, e); err != nil {
		t.Fatal(err)
	}
	if _, turns, _ := combat.PoisonState(e); turns != 2 {
		t.Errorf("Expected poison untouched on a dead entity, got %d turns", turns)
	}
}

func TestUpkeepWithoutCapabilities(t *testing.T) {
	rock := entity.New("rock", '*')
	if err := Upkeep(context.Background(), rock); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}
