package world

// Layout shapes the rooms of one BSP level.
type Layout struct {
	MinRoom int // shortest room side
	MaxRoom int // longest room side
	MinLeaf int // partitions shorter than twice this are not split
}

// LayoutFor returns the layout of level z out of levels dungeon levels.
// The top level is a warren of small rooms; rooms grow and thin out on
// the way down toward the boss cavern.
func LayoutFor(z, levels int) Layout {
	step := 0
	if levels > 1 {
		step = min(z, levels-1) * 4 / (levels - 1)
	}
	return Layout{
		MinRoom: 4 + step/2,
		MaxRoom: 8 + step*2,
		MinLeaf: 8 + step/2,
	}
}
