package gamedata

import (
	"errors"
	"fmt"

	"github.com/samdwyer/deepcavern/internal/entity"
	"github.com/samdwyer/deepcavern/internal/rng"
)

// ErrUnknownTemplate is returned when creating from a name no template has.
var ErrUnknownTemplate = errors.New("unknown template")

// Repository holds the templates of one kind and builds entities from them.
type Repository struct {
	kind        string
	templates   []Template
	byName      map[string]*Template
	totalWeight int
	registry    *entity.Registry
}

// NewRepository creates a repository of the given kind ("creature", "item").
// Template names must be unique.
func NewRepository(kind string, templates []Template) (*Repository, error) {
	r := &Repository{
		kind:      kind,
		templates: templates,
		byName:    make(map[string]*Template, len(templates)),
	}
	for i := range templates {
		t := &templates[i]
		if t.Name == "" {
			return nil, fmt.Errorf("%s template %d has no name", kind, i)
		}
		if _, ok := r.byName[t.Name]; ok {
			return nil, fmt.Errorf("duplicate %s template %q", kind, t.Name)
		}
		r.byName[t.Name] = t
		if t.SpawnWeight > 0 {
			r.totalWeight += t.SpawnWeight
		}
	}
	return r, nil
}

// validate checks every template's capabilities against reg.
func (r *Repository) validate(reg *entity.Registry) error {
	for i := range r.templates {
		for _, name := range r.templates[i].Capabilities {
			if _, err := reg.Get(name); err != nil {
				return fmt.Errorf("%s template %q: %w", r.kind, r.templates[i].Name, err)
			}
		}
	}
	return nil
}

// Create builds an entity from the named template. over replaces template
// params; "name" and "color" in over rename and recolor the entity.
func (r *Repository) Create(name string, over entity.Params) (*entity.Entity, error) {
	t, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%s %q: %w", r.kind, name, ErrUnknownTemplate)
	}
	if r.registry == nil {
		return nil, fmt.Errorf("%s %q: repository has no capability registry", r.kind, name)
	}

	p := t.Parameters().Merge(over)
	e := entity.New(p.String("name", t.Name), t.GlyphRune())
	e.Color = p.String("color", t.Color)
	e.Types = append([]string(nil), t.Types...)
	if speed := p.Int("speed", t.Speed); speed > 0 {
		e.Speed = speed
	}

	for _, c := range t.Capabilities {
		if err := r.registry.Attach(e, c, p); err != nil {
			return nil, fmt.Errorf("create %s %q: %w", r.kind, name, err)
		}
	}
	return e, nil
}

// SpawnRandom selects a template using weighted probability. Templates with
// higher spawnWeight are more likely to be selected.
func (r *Repository) SpawnRandom(src rng.Source) *Template {
	if r.totalWeight <= 0 {
		return nil
	}

	roll := rng.Intn(src, r.totalWeight)
	cumulative := 0
	for i := range r.templates {
		if r.templates[i].SpawnWeight <= 0 {
			continue
		}
		cumulative += r.templates[i].SpawnWeight
		if roll < cumulative {
			return &r.templates[i]
		}
	}
	return nil
}

// CreateRandom builds an entity from a weighted random template.
func (r *Repository) CreateRandom(src rng.Source) (*entity.Entity, error) {
	t := r.SpawnRandom(src)
	if t == nil {
		return nil, fmt.Errorf("no %s templates can spawn", r.kind)
	}
	return r.Create(t.Name, nil)
}

// GetByName returns the template with the given name, or nil if not found.
func (r *Repository) GetByName(name string) *Template {
	return r.byName[name]
}

// All returns all templates.
func (r *Repository) All() []Template {
	return r.templates
}

// Count returns the number of templates in the repository.
func (r *Repository) Count() int {
	return len(r.templates)
}
