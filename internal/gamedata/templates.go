package gamedata

import "github.com/samdwyer/deepcavern/internal/entity"

// Template describes how to build one kind of creature or item.
type Template struct {
	Name         string         `yaml:"name"`         // Unique template name, also the default entity name
	Glyph        string         `yaml:"glyph"`        // Single character for rendering
	Color        string         `yaml:"color"`        // Hex color code (e.g., "#00FF00")
	Types        []string       `yaml:"types"`        // Creature-type tags ("animal", "infernal")
	Speed        int            `yaml:"speed"`        // Scheduler speed; 0 means the default
	SpawnWeight  int            `yaml:"spawnWeight"`  // Relative random spawn frequency; 0 never spawns randomly
	Capabilities []string       `yaml:"capabilities"` // Capability names in attachment order
	Params       map[string]any `yaml:"params"`       // Parameters shared by every capability
}

// GlyphRune returns the glyph as a rune for rendering.
func (t *Template) GlyphRune() rune {
	if len(t.Glyph) == 0 {
		return '?'
	}
	return []rune(t.Glyph)[0]
}

// Parameters returns the template params as entity params.
func (t *Template) Parameters() entity.Params {
	return entity.Params(t.Params)
}

// CreaturesFile represents the structure of creatures.yaml.
type CreaturesFile struct {
	Creatures []Template `yaml:"creatures"`
}

// ItemsFile represents the structure of items.yaml.
type ItemsFile struct {
	Items []Template `yaml:"items"`
}

// LoadCreatures loads creature templates from the embedded creatures.yaml file.
func LoadCreatures() ([]Template, error) {
	file, err := loadYAML[CreaturesFile]("creatures.yaml")
	if err != nil {
		return nil, err
	}
	return file.Creatures, nil
}

// LoadItems loads item templates from the embedded items.yaml file.
func LoadItems() ([]Template, error) {
	file, err := loadYAML[ItemsFile]("items.yaml")
	if err != nil {
		return nil, err
	}
	return file.Items, nil
}
