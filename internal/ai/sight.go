// Package ai drives computer-controlled actors: sight, task selection and
// the special behaviors of bosses and fungi.
package ai

import (
	"github.com/samdwyer/deepcavern/internal/entity"
	"github.com/samdwyer/deepcavern/internal/narration"
)

// Sight is the capability that gives an entity a field of view.
const Sight = "Sight"

type sight struct {
	radius int
}

// SightCapability returns the Sight capability.
func SightCapability() *entity.Capability {
	return &entity.Capability{
		Name:  Sight,
		Group: entity.GroupSight,
		Init: func(e *entity.Entity, p entity.Params) (any, error) {
			return &sight{radius: p.Int("sightRadius", 5)}, nil
		},
	}
}

func sightOf(e *entity.Entity) (*sight, error) {
	return entity.State[*sight](e, Sight)
}

// SightRadius returns how far e can see.
func SightRadius(e *entity.Entity) (int, error) {
	s, err := sightOf(e)
	if err != nil {
		return 0, err
	}
	return s.radius, nil
}

// IncreaseSightRadius widens e's view by value, or by 1 when value is not positive.
func IncreaseSightRadius(e *entity.Entity, value int) error {
	s, err := sightOf(e)
	if err != nil {
		return err
	}
	if value <= 0 {
		value = 1
	}
	s.radius += value
	if e.HumanControlled() {
		narration.Send(e, "You are more aware of your surroundings!")
	}
	return nil
}

// CanSee reports whether other is within e's radius and field of view on
// the same level.
func CanSee(e, other *entity.Entity) (bool, error) {
	s, err := sightOf(e)
	if err != nil {
		return false, err
	}
	if other == nil || e.Map == nil || e.Map != other.Map || e.Z != other.Z {
		return false, nil
	}
	dx, dy := other.X-e.X, other.Y-e.Y
	if dx*dx+dy*dy > s.radius*s.radius {
		return false, nil
	}
	return e.Map.FOV(e.X, e.Y, e.Z, s.radius).Has(other.Point()), nil
}
