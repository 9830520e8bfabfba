package gamedata

import (
	"fmt"

	"github.com/samdwyer/deepcavern/internal/ai"
	"github.com/samdwyer/deepcavern/internal/combat"
	"github.com/samdwyer/deepcavern/internal/entity"
	"github.com/samdwyer/deepcavern/internal/inventory"
	"github.com/samdwyer/deepcavern/internal/narration"
	"github.com/samdwyer/deepcavern/internal/progression"
	"github.com/samdwyer/deepcavern/internal/rng"
	"github.com/samdwyer/deepcavern/internal/survival"
)

// Deps are the collaborators capabilities are built with.
type Deps struct {
	Src      rng.Source
	Narrator narration.Narrator
	Prompter progression.StatPrompter
	OnDefeat ai.DefeatFunc
	Paths    ai.Pathfinder // nil lets hunters use their map
}

// Catalog is the creature and item repositories sharing one capability
// registry.
type Catalog struct {
	Creatures *Repository
	Items     *Repository
	Registry  *entity.Registry
}

// Load builds a catalog from the embedded templates. extra registers
// capabilities owned by callers, such as the player's actor.
func Load(deps Deps, extra ...*entity.Capability) (*Catalog, error) {
	creatures, err := LoadCreatures()
	if err != nil {
		return nil, err
	}
	items, err := LoadItems()
	if err != nil {
		return nil, err
	}
	return New(deps, creatures, items, extra...)
}

// New builds a catalog from the given templates and checks that every
// capability they name is registered.
func New(deps Deps, creatures, items []Template, extra ...*entity.Capability) (*Catalog, error) {
	if deps.Src == nil {
		deps.Src = rng.New(0)
	}
	if deps.Narrator == nil {
		deps.Narrator = narration.Silent{}
	}

	cr, err := NewRepository("creature", creatures)
	if err != nil {
		return nil, err
	}
	it, err := NewRepository("item", items)
	if err != nil {
		return nil, err
	}
	c := &Catalog{Creatures: cr, Items: it}

	reg, err := c.registry(deps, extra)
	if err != nil {
		return nil, err
	}
	c.Registry = reg
	cr.registry = reg
	it.registry = reg

	if err := cr.validate(reg); err != nil {
		return nil, err
	}
	if err := it.validate(reg); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) registry(deps Deps, extra []*entity.Capability) (*entity.Registry, error) {
	base := ai.Base{Src: deps.Src, Paths: deps.Paths}
	boss := ai.Boss{Base: base, Src: deps.Src, Spawner: c}

	caps := []*entity.Capability{
		narration.Capability(),
		combat.AttackerCapability(deps.Src),
		combat.DestructibleCapability(),
		combat.PoisonableCapability(),
		inventory.HolderCapability(deps.Narrator),
		inventory.EquipperCapability(),
		inventory.EquippableCapability(),
		inventory.EdibleCapability(),
		inventory.CorpseDropperCapability(deps.Src, c),
		inventory.MeatDropperCapability(deps.Src, c),
		inventory.ItemDropperCapability(deps.Src, c),
		survival.FoodConsumerCapability(),
		ai.SightCapability(),
		ai.TaskActorCapability(base),
		ai.GiantBossActorCapability(boss, deps.OnDefeat),
		ai.FungusActorCapability(deps.Src, c),
		progression.ExperienceGainerCapability(),
		progression.RandomStatGainerCapability(deps.Src),
		progression.PlayerStatGainerCapability(deps.Prompter),
	}
	caps = append(caps, extra...)

	reg := entity.NewRegistry()
	for _, capability := range caps {
		if err := reg.Register(capability); err != nil {
			return nil, fmt.Errorf("build registry: %w", err)
		}
	}
	return reg, nil
}

// CreateCreature builds a creature from its template.
func (c *Catalog) CreateCreature(name string) (*entity.Entity, error) {
	return c.Creatures.Create(name, nil)
}

// CreateItem builds an item from its template with params overridden by over.
func (c *Catalog) CreateItem(name string, over entity.Params) (*entity.Entity, error) {
	return c.Items.Create(name, over)
}
