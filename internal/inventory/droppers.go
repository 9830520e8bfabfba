package inventory

import (
	"context"

	"github.com/samdwyer/deepcavern/internal/entity"
	"github.com/samdwyer/deepcavern/internal/rng"
)

// Loot capability names.
const (
	CorpseDropper = "CorpseDropper"
	MeatDropper   = "MeatDropper"
	ItemDropper   = "ItemDropper"
)

// ItemSpawner creates items from templates.
type ItemSpawner interface {
	CreateItem(name string, over entity.Params) (*entity.Entity, error)
}

type dropRate struct {
	rate      int
	foodValue int
	list      []string
}

// CorpseDropperCapability drops "<name> corpse" on death, corpseDropRate
// percent of the time.
func CorpseDropperCapability(src rng.Source, items ItemSpawner) *entity.Capability {
	return &entity.Capability{
		Name: CorpseDropper,
		Init: func(e *entity.Entity, p entity.Params) (any, error) {
			return &dropRate{rate: p.Int("corpseDropRate", 100)}, nil
		},
		Listeners: map[entity.Event]entity.Listener{
			entity.OnDeath: func(ctx context.Context, self, attacker *entity.Entity) error {
				d, err := entity.State[*dropRate](self, CorpseDropper)
				if err != nil {
					return err
				}
				if !rng.Percent(src, d.rate) {
					return nil
				}
				return drop(self, items, "corpse", entity.Params{
					"name":  self.Name + " corpse",
					"color": self.Color,
				})
			},
		},
	}
}

// MeatDropperCapability drops "<name> meat" carrying the creature's
// foodValue, meatDropRate percent of the time.
func MeatDropperCapability(src rng.Source, items ItemSpawner) *entity.Capability {
	return &entity.Capability{
		Name: MeatDropper,
		Init: func(e *entity.Entity, p entity.Params) (any, error) {
			return &dropRate{rate: p.Int("meatDropRate", 0), foodValue: p.Int("foodValue", 50)}, nil
		},
		Listeners: map[entity.Event]entity.Listener{
			entity.OnDeath: func(ctx context.Context, self, attacker *entity.Entity) error {
				d, err := entity.State[*dropRate](self, MeatDropper)
				if err != nil {
					return err
				}
				if !rng.Percent(src, d.rate) {
					return nil
				}
				return drop(self, items, "meat", entity.Params{
					"name":      self.Name + " meat",
					"color":     self.Color,
					"foodValue": d.foodValue,
				})
			},
		},
	}
}

// ItemDropperCapability drops one random item from itemDropList,
// itemDropRate percent of the time.
func ItemDropperCapability(src rng.Source, items ItemSpawner) *entity.Capability {
	return &entity.Capability{
		Name: ItemDropper,
		Init: func(e *entity.Entity, p entity.Params) (any, error) {
			return &dropRate{
				rate: p.Int("itemDropRate", 100),
				list: p.Strings("itemDropList", nil),
			}, nil
		},
		Listeners: map[entity.Event]entity.Listener{
			entity.OnDeath: func(ctx context.Context, self, attacker *entity.Entity) error {
				d, err := entity.State[*dropRate](self, ItemDropper)
				if err != nil {
					return err
				}
				if !rng.Percent(src, d.rate) || len(d.list) == 0 {
					return nil
				}
				return drop(self, items, rng.Pick(src, d.list), nil)
			},
		},
	}
}

func drop(self *entity.Entity, items ItemSpawner, template string, over entity.Params) error {
	if self.Map == nil {
		return nil
	}
	item, err := items.CreateItem(template, over)
	if err != nil {
		return err
	}
	self.Map.AddItem(self.X, self.Y, self.Z, item)
	return nil
}
