package survival

import (
	"context"

	"github.com/samdwyer/deepcavern/internal/combat"
	"github.com/samdwyer/deepcavern/internal/entity"
)

// Upkeep runs the per-turn hunger tick and then the poison tick. Entities
// lacking either capability skip that part.
func Upkeep(ctx context.Context, e *entity.Entity) error {
	if e.Has(FoodConsumer) {
		if err := AddTurnHunger(ctx, e); err != nil {
			return err
		}
	}
	if e.Alive() && e.Has(combat.Poisonable) {
		if err := combat.TickPoison(ctx, e); err != nil {
			return err
		}
	}
	return nil
}
