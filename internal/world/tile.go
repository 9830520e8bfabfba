// Package world provides level generation, the multi-level map that
// entities live on, field of view and pathfinding.
package world

// Tile represents a single map tile.
type Tile rune

const (
	// TileWall represents an impassable wall tile.
	TileWall Tile = '#'
	// TileFloor represents a passable floor tile.
	TileFloor Tile = '.'
	// TileStairsDown leads to the level below.
	TileStairsDown Tile = '>'
	// TileStairsUp leads to the level above.
	TileStairsUp Tile = '<'
	// TileWater blocks movement but not sight.
	TileWater Tile = '~'
)

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t == TileFloor || t == TileStairsDown || t == TileStairsUp
}

// IsTransparent returns true if light passes through the tile.
func (t Tile) IsTransparent() bool {
	return t != TileWall
}

// IsStairs returns true for either staircase.
func (t Tile) IsStairs() bool {
	return t == TileStairsDown || t == TileStairsUp
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}
