package gamedata

import (
	"context"
	"errors"
	"testing"

	"github.com/samdwyer/deepcavern/internal/combat"
	"github.com/samdwyer/deepcavern/internal/entity"
	"github.com/samdwyer/deepcavern/internal/inventory"
	"github.com/samdwyer/deepcavern/internal/rng"
	"github.com/samdwyer/deepcavern/internal/world"
)

// playerActor stands in for the game's human actor.
func playerActor() *entity.Capability {
	return &entity.Capability{
		Name:            "PlayerActor",
		Group:           entity.GroupActor,
		HumanControlled: true,
		Act: func(ctx context.Context, e *entity.Entity) (entity.TurnResult, error) {
			return entity.TurnAwaitInput, nil
		},
	}
}

func loadCatalog(t *testing.T, src rng.Source) *Catalog {
	t.Helper()
	c, err := Load(Deps{Src: src}, playerActor())
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	return c
}

func TestLoadTemplates(t *testing.T) {
	creatures, err := LoadCreatures()
	if err != nil {
		t.Fatalf("Failed to load creatures: %v", err)
	}
	items, err := LoadItems()
	if err != nil {
		t.Fatalf("Failed to load items: %v", err)
	}

	expected := map[string]bool{"player": false, "fungus": false, "slime": false, "shub-niggurath": false}
	for _, c := range creatures {
		if _, ok := expected[c.Name]; ok {
			expected[c.Name] = true
		}
	}
	for _, name := range []string{"corpse", "meat", "bone"} {
		expected[name] = false
	}
	for _, it := range items {
		if _, ok := expected[it.Name]; ok {
			expected[it.Name] = true
		}
	}

	for name, found := range expected {
		if !found {
			t.Errorf("Expected template %q not found", name)
		}
	}
}

func TestCreateEveryTemplate(t *testing.T) {
	c := loadCatalog(t, rng.New(1))

	for _, tmpl := range c.Creatures.All() {
		e, err := c.CreateCreature(tmpl.Name)
		if err != nil {
			t.Errorf("CreateCreature(%q) failed: %v", tmpl.Name, err)
			continue
		}
		if !e.IsActor() {
			t.Errorf("Expected creature %q to act", tmpl.Name)
		}
	}
	for _, tmpl := range c.Items.All() {
		if _, err := c.CreateItem(tmpl.Name, nil); err != nil {
			t.Errorf("CreateItem(%q) failed: %v", tmpl.Name, err)
		}
	}
}

func TestCreateAppliesTemplate(t *testing.T) {
	c := loadCatalog(t, rng.New(1))

	bat, err := c.CreateCreature("bat")
	if err != nil {
		t.Fatal(err)
	}
	if bat.Glyph != 'B' || bat.Speed != 2000 || !bat.HasType("animal") {
		t.Errorf("Expected a fast animal B, got %c speed %d types %v", bat.Glyph, bat.Speed, bat.Types)
	}
	if hp, _ := combat.MaxHP(bat); hp != 5 {
		t.Errorf("Expected max HP 5, got %d", hp)
	}

	player, err := c.CreateCreature("player")
	if err != nil {
		t.Fatal(err)
	}
	if !player.HumanControlled() {
		t.Error("Expected player to be human-controlled")
	}
	if player.Speed != entity.DefaultSpeed {
		t.Errorf("Expected default speed, got %d", player.Speed)
	}
}

func TestCreateOverrides(t *testing.T) {
	c := loadCatalog(t, rng.New(1))

	corpse, err := c.CreateItem("corpse", entity.Params{"name": "jackal corpse", "color": "#123456"})
	if err != nil {
		t.Fatal(err)
	}
	if corpse.Name != "jackal corpse" || corpse.Color != "#123456" {
		t.Errorf("Expected renamed corpse, got %q %q", corpse.Name, corpse.Color)
	}

	meat, err := c.CreateItem("meat", entity.Params{"foodValue": 12})
	if err != nil {
		t.Fatal(err)
	}
	food, ok, err := inventory.Consume(meat)
	if err != nil || !ok || food != 12 {
		t.Errorf("Expected 12 food from meat, got %d %v %v", food, ok, err)
	}
}

func TestUnknownTemplate(t *testing.T) {
	c := loadCatalog(t, rng.New(1))
	if _, err := c.CreateCreature("shoggoth"); !errors.Is(err, ErrUnknownTemplate) {
		t.Errorf("Expected ErrUnknownTemplate, got %v", err)
	}
}

func TestTemplatesValidated(t *testing.T) {
	creatures := []Template{{Name: "golem", Glyph: "G", Capabilities: []string{"Destructible", "Digger"}}}
	if _, err := New(Deps{}, creatures, nil); !errors.Is(err, entity.ErrUnknownCapability) {
		t.Errorf("Expected ErrUnknownCapability, got %v", err)
	}

	dupes := []Template{{Name: "golem"}, {Name: "golem"}}
	if _, err := New(Deps{}, dupes, nil); err == nil {
		t.Error("Expected duplicate template names to fail")
	}
}

func TestSpawnRandom(t *testing.T) {
	c := loadCatalog(t, rng.New(1))

	// Same seed, same spawns.
	rng1 := rng.New(12345)
	rng2 := rng.New(12345)
	for i := 0; i < 20; i++ {
		a := c.Creatures.SpawnRandom(rng1)
		b := c.Creatures.SpawnRandom(rng2)
		if a == nil || b == nil {
			t.Fatal("Expected a template")
		}
		if a.Name != b.Name {
			t.Errorf("Spawn %d mismatch: %s != %s", i, a.Name, b.Name)
		}
		if a.SpawnWeight <= 0 {
			t.Errorf("Expected only weighted templates, got %s", a.Name)
		}
	}

	// The lowest roll picks the first weighted template.
	if got := c.Creatures.SpawnRandom(rng.NewSequence(0.0)); got == nil || got.Name != "fungus" {
		t.Errorf("Expected fungus for roll 0, got %v", got)
	}

	empty, _ := NewRepository("creature", []Template{{Name: "boss"}})
	if empty.SpawnRandom(rng.New(1)) != nil {
		t.Error("Expected nothing to spawn without weights")
	}
}

func TestCorpseDropUsesCatalog(t *testing.T) {
	c := loadCatalog(t, rng.NewSequence(0.0))
	m := world.NewMap(world.FromRows(rng.NewSequence(0.5),
		"#####",
		"#...#",
		"#####",
	))

	jackal, err := c.CreateCreature("jackal")
	if err != nil {
		t.Fatal(err)
	}
	jackal.SetPosition(2, 1, 0)
	if err := m.AddEntity(jackal); err != nil {
		t.Fatal(err)
	}

	if err := combat.TakeDamage(context.Background(), nil, jackal, 100); err != nil {
		t.Fatal(err)
	}
	items := m.ItemsAt(2, 1, 0)
	if len(items) != 2 {
		t.Fatalf("Expected corpse and meat, got %d items", len(items))
	}
	if items[0].Name != "jackal corpse" || items[1].Name != "jackal meat" {
		t.Errorf("Expected jackal corpse and meat, got %q and %q", items[0].Name, items[1].Name)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"FF0000", true},
		{"#00FF00", true},
		{"#FFFFFF", true},
		{"#000000", true},
		{"invalid", false},
		{"#FFF", false}, // Too short
		{"#GG0000", false},
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
	}
}

func TestColorOf(t *testing.T) {
	e := entity.New("thing", 't')
	e.Color = "#FF0000"
	if ColorOf(e) == 0 {
		t.Error("ColorOf returned zero color")
	}
	e.Color = ""
	if got := ColorOf(e); got.Hex() != 0xFFFFFF {
		t.Errorf("Expected white fallback, got %06x", got.Hex())
	}
}
